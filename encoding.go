package formdata

import (
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Encoding is an HTTP content coding applied to a whole document.
type Encoding string

const (
	EncodingIdentity Encoding = "identity"
	EncodingGzip     Encoding = "gzip"
	EncodingDeflate  Encoding = "deflate" // zlib stream, RFC 9110 §8.4.1.2
	EncodingZstd     Encoding = "zstd"
	EncodingBrotli   Encoding = "br"
	EncodingLZ4      Encoding = "lz4" // LZ4 frame format; not IANA registered
)

// Function variables for testing injection.
var (
	newGzipWriter   = func(w io.Writer) io.WriteCloser { return gzip.NewWriter(w) }
	newZlibWriter   = func(w io.Writer) io.WriteCloser { return zlib.NewWriter(w) }
	newZstdEncoder  = func(w io.Writer) (io.WriteCloser, error) { return zstd.NewWriter(w) }
	newBrotliWriter = func(w io.Writer) io.WriteCloser { return brotli.NewWriter(w) }
	newLZ4Writer    = func(w io.Writer) io.WriteCloser { return lz4.NewWriter(w) }
)

// ParseEncoding parses a Content-Encoding token. Matching is case-insensitive
// and an empty string means identity.
func ParseEncoding(s string) (Encoding, error) {
	switch e := Encoding(strings.ToLower(strings.TrimSpace(s))); e {
	case "":
		return EncodingIdentity, nil
	case EncodingIdentity, EncodingGzip, EncodingDeflate, EncodingZstd, EncodingBrotli, EncodingLZ4:
		return e, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedEncoding, s)
}

// HeaderValue returns the Content-Encoding header value for e, or "" when no
// header should be sent.
func (e Encoding) HeaderValue() string {
	if e == EncodingIdentity {
		return ""
	}
	return string(e)
}

// EncodedWriter compresses everything written to it into an underlying
// writer. Close flushes the compressed stream; it does not close the
// underlying writer.
type EncodedWriter struct {
	enc    Encoding
	w      io.Writer
	zw     io.WriteCloser // nil for identity
	closed bool
}

// NewEncodedWriter returns a writer that encodes its input with enc and writes
// the result to w.
func NewEncodedWriter(w io.Writer, enc Encoding) (*EncodedWriter, error) {
	ew := &EncodedWriter{enc: enc, w: w}
	switch enc {
	case EncodingIdentity:
	case EncodingGzip:
		ew.zw = newGzipWriter(w)
	case EncodingDeflate:
		ew.zw = newZlibWriter(w)
	case EncodingZstd:
		zw, err := newZstdEncoder(w)
		if err != nil {
			return nil, err
		}
		ew.zw = zw
	case EncodingBrotli:
		ew.zw = newBrotliWriter(w)
	case EncodingLZ4:
		ew.zw = newLZ4Writer(w)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, string(enc))
	}
	return ew, nil
}

// Encoding returns the content coding applied by ew.
func (ew *EncodedWriter) Encoding() Encoding {
	return ew.enc
}

func (ew *EncodedWriter) Write(p []byte) (int, error) {
	if ew.closed {
		return 0, ErrEncoderClosed
	}
	if ew.zw == nil {
		return ew.w.Write(p)
	}
	return ew.zw.Write(p)
}

// Close writes any buffered data and the stream trailer. Calling Close more
// than once is a no-op.
func (ew *EncodedWriter) Close() error {
	if ew.closed {
		return nil
	}
	ew.closed = true
	if ew.zw == nil {
		return nil
	}
	return ew.zw.Close()
}
