package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	formdata "github.com/iliana/form-data-builder"
)

// BuildCmd implements the 'build' command.
//
// Manifest parts are written first, then --field parts, then --file parts,
// each group in command-line order.
type BuildCmd struct {
	Manifest  string   `short:"m" help:"YAML manifest listing the parts" type:"path"`
	EnvFile   string   `help:"Load variables from this .env file before expanding the manifest" type:"path"`
	Field     []string `short:"f" help:"Text field as name=value (repeatable)" sep:"none"`
	File      []string `short:"F" help:"File field as name=path[;type=content-type] (repeatable)" sep:"none"`
	Out       string   `short:"o" help:"Write the document to this file instead of stdout" type:"path"`
	Encoding  string   `short:"e" help:"Content coding applied to the document (${enum})" enum:"identity,gzip,deflate,zstd,br,lz4" default:"identity"`
	Boundary  string   `help:"Use this boundary instead of a generated one"`
	HeaderOut string   `help:"Write the request headers for the document to this file" type:"path"`
}

func (b *BuildCmd) Run(g *Global) error {
	parts, err := b.parts()
	if err != nil {
		return err
	}
	if len(parts) == 0 {
		return fmt.Errorf("no parts given: use --manifest, --field or --file")
	}
	enc, err := formdata.ParseEncoding(b.Encoding)
	if err != nil {
		return err
	}

	out := g.Stdout
	if b.Out != "" {
		f, err := os.Create(b.Out)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer func() {
			_ = f.Close()
		}()
		out = f
	}
	counter := &countingWriter{w: out}

	ew, err := formdata.NewEncodedWriter(counter, enc)
	if err != nil {
		return err
	}
	var opts []formdata.Option
	if b.Boundary != "" {
		opts = append(opts, formdata.WithBoundary(b.Boundary))
	}
	form, err := formdata.New(ew, opts...)
	if err != nil {
		return err
	}

	for _, p := range parts {
		if err := writePart(form, p); err != nil {
			return err
		}
		slog.Debug("Part written", "name", p.Name, "file", p.isFile())
	}
	ew, err = form.Finish()
	if err != nil {
		return err
	}
	if err := ew.Close(); err != nil {
		return fmt.Errorf("flush %s stream: %w", enc, err)
	}

	if b.HeaderOut != "" {
		if err := os.WriteFile(b.HeaderOut, []byte(headerLines(form.ContentType(), enc)), 0o644); err != nil {
			return fmt.Errorf("write headers: %w", err)
		}
	}

	slog.Info("Document written",
		"parts", len(parts),
		"bytes", counter.n,
		"encoding", string(enc),
		"content_type", form.ContentType())
	return nil
}

func (b *BuildCmd) parts() ([]Part, error) {
	var parts []Part
	if b.Manifest != "" {
		m, err := LoadManifest(b.Manifest, b.EnvFile)
		if err != nil {
			return nil, err
		}
		parts = append(parts, m.Parts...)
	}
	for _, s := range b.Field {
		p, err := parseFieldFlag(s)
		if err != nil {
			return nil, err
		}
		parts = append(parts, p)
	}
	for _, s := range b.File {
		p, err := parseFileFlag(s)
		if err != nil {
			return nil, err
		}
		parts = append(parts, p)
	}
	return parts, nil
}

func writePart[W io.Writer](form *formdata.Builder[W], p Part) error {
	switch {
	case !p.isFile():
		return form.WriteField(p.Name, *p.Value)
	case p.Filename == nil:
		return form.WritePath(p.Name, p.Path, p.contentType())
	}
	f, err := os.Open(p.Path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return form.WriteFile(p.Name, f, *p.Filename, p.contentType())
}

// headerLines renders the headers to send with the document, one per line,
// in the format curl accepts for -H @file.
func headerLines(contentType string, enc formdata.Encoding) string {
	var sb strings.Builder
	sb.WriteString("Content-Type: " + contentType + "\n")
	if v := enc.HeaderValue(); v != "" {
		sb.WriteString("Content-Encoding: " + v + "\n")
	}
	return sb.String()
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
