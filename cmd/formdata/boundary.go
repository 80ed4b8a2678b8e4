package main

import (
	"fmt"
	"io"

	formdata "github.com/iliana/form-data-builder"
)

// BoundaryCmd implements the 'boundary' command.
type BoundaryCmd struct{}

func (b *BoundaryCmd) Run(g *Global) error {
	form, err := formdata.New(io.Discard)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(g.Stdout, form.Boundary())
	return err
}
