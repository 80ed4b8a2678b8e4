// Command formdata writes multipart/form-data documents from the command line.
//
//	formdata build -f title=Report -F upload=report.pdf -o body.bin --header-out headers.txt
//	curl -H @headers.txt --data-binary @body.bin https://example.com/upload
package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

// Global carries shared state into subcommands.
type Global struct {
	Stdout io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Verbose bool `short:"v" help:"Enable verbose logging"`

	Build    BuildCmd    `cmd:"" help:"Write a multipart/form-data document"`
	Boundary BoundaryCmd `cmd:"" help:"Print a freshly generated boundary"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("formdata"),
		kong.Description("Build multipart/form-data request bodies."),
		kong.UsageOnError(),
	)
	err := ctx.Run(&Global{Stdout: os.Stdout})
	ctx.FatalIfErrorf(err)
}
