package formdata

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const crlf = "\r\n"

// Function variables for testing injection.
var openFile = func(name string) (io.ReadCloser, error) { return os.Open(name) }

// Builder writes a multipart/form-data document to a W.
//
// Parts are written to the sink in the order the Write methods are called.
// A Builder must not be used from more than one goroutine at a time.
type Builder[W io.Writer] struct {
	// sink is nil once Finish has taken the writer back.
	sink     *W
	boundary string
}

// New starts a multipart/form-data document on w.
//
// Unless WithBoundary is given, New generates a boundary from the current
// time and a random nonce. It fails if the clock reads earlier than the Unix
// epoch or the random source cannot be read; no Builder is returned then.
func New[W io.Writer](w W, opts ...Option) (*Builder[W], error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	boundary := cfg.boundary
	if cfg.hasBoundary {
		if err := validateBoundary(boundary); err != nil {
			return nil, err
		}
	} else {
		b, err := newBoundary()
		if err != nil {
			return nil, err
		}
		boundary = b
	}

	return &Builder[W]{sink: &w, boundary: boundary}, nil
}

// Boundary returns the boundary delimiting the parts of the document.
func (b *Builder[W]) Boundary() string {
	return b.boundary
}

// ContentType returns the Content-Type header value for the document. It may
// be called at any time, including after Finish.
func (b *Builder[W]) ContentType() string {
	return "multipart/form-data; boundary=" + b.boundary
}

// Finished reports whether Finish has been called.
func (b *Builder[W]) Finished() bool {
	return b.sink == nil
}

// WriteField writes a non-file field.
func (b *Builder[W]) WriteField(name, value string) error {
	w, err := b.writeHeader(name, "", "")
	if err != nil {
		return wrapIO("write field", name, err)
	}
	if _, err := io.WriteString(w, value); err != nil {
		return wrapIO("write field", name, err)
	}
	if _, err := io.WriteString(w, crlf); err != nil {
		return wrapIO("write field", name, err)
	}
	return nil
}

// WriteFile writes a file field, copying its content from r until EOF.
//
// RFC 7578 §4.2 says a filename SHOULD be supplied but allows leaving it out
// when it is unavailable or private; pass "" to omit the filename parameter.
// The content is copied verbatim.
func (b *Builder[W]) WriteFile(name string, r io.Reader, filename, contentType string) error {
	return wrapIO("write file", name, b.writeFile(name, r, filename, contentType))
}

// WritePath writes a file field with the content of the file at path. The
// filename parameter is the last element of path; use WriteFile to choose a
// different one or none at all.
//
// If path cannot be opened nothing is written and the open error is returned,
// so errors.Is(err, fs.ErrNotExist) reports a missing file.
func (b *Builder[W]) WritePath(name, path, contentType string) error {
	if b.sink == nil {
		return ErrFinished
	}
	f, err := openFile(path)
	if err != nil {
		return wrapIO("write path", name, err)
	}
	defer f.Close()
	return wrapIO("write path", name, b.writeFile(name, f, filepath.Base(path), contentType))
}

// Finish writes the closing boundary and returns the writer.
//
// Finish succeeds once. Later calls, and every Write method after the first
// call, return ErrFinished without writing. If the closing boundary cannot be
// written the writer is still returned together with the error, and the
// Builder counts as finished.
func (b *Builder[W]) Finish() (W, error) {
	if b.sink == nil {
		var zero W
		return zero, ErrFinished
	}
	w := *b.sink
	b.sink = nil
	if _, err := io.WriteString(w, "--"+b.boundary+"--"+crlf); err != nil {
		return w, fmt.Errorf("formdata: finish: %w", err)
	}
	return w, nil
}

func (b *Builder[W]) writeFile(name string, r io.Reader, filename, contentType string) error {
	w, err := b.writeHeader(name, filename, contentType)
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, r); err != nil {
		return err
	}
	_, err = io.WriteString(w, crlf)
	return err
}

// writeHeader writes the delimiter and header block of a part and returns the
// sink for the part's body. Empty filename or contentType leave out the
// respective header parameter. Names and filenames are not escaped.
func (b *Builder[W]) writeHeader(name, filename, contentType string) (W, error) {
	if b.sink == nil {
		var zero W
		return zero, ErrFinished
	}
	w := *b.sink

	var h strings.Builder
	h.WriteString("--")
	h.WriteString(b.boundary)
	h.WriteString(crlf)
	h.WriteString(`Content-Disposition: form-data; name="`)
	h.WriteString(name)
	h.WriteByte('"')
	if filename != "" {
		h.WriteString(`; filename="`)
		h.WriteString(strings.ToValidUTF8(filename, "\uFFFD"))
		h.WriteByte('"')
	}
	h.WriteString(crlf)
	if contentType != "" {
		h.WriteString("Content-Type: ")
		h.WriteString(contentType)
		h.WriteString(crlf)
	}
	h.WriteString(crlf)

	if _, err := io.WriteString(w, h.String()); err != nil {
		return w, err
	}
	return w, nil
}

// wrapIO adds the operation and field name to err. ErrFinished is returned
// as is so callers can compare it directly.
func wrapIO(op, name string, err error) error {
	if err == nil || errors.Is(err, ErrFinished) {
		return err
	}
	return fmt.Errorf("formdata: %s %q: %w", op, name, err)
}
