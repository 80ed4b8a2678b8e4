package formdata

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"strings"
	"time"
)

// boundaryWidth is the length of every generated boundary. The base64 nonce
// fills the tail and dashes fill the head, the way browsers lay theirs out.
const boundaryWidth = 68

// maxBoundaryLen is the RFC 2046 §5.1.1 limit.
const maxBoundaryLen = 70

// Function variables for testing injection.
var (
	now        = time.Now
	randomRead = rand.Read
)

// newBoundary returns a fresh boundary built from the current time and 12
// random bytes.
//
// Buffer layout (24 bytes, little-endian):
//
//	[0:4]   sub-second nanoseconds
//	[4:12]  seconds since the Unix epoch
//	[12:24] random
func newBoundary() (string, error) {
	t := now()
	if t.Before(time.Unix(0, 0)) {
		return "", ErrClockBeforeEpoch
	}
	var buf [24]byte
	binary.LittleEndian.PutUint32(buf[0:4], uint32(t.Nanosecond()))
	binary.LittleEndian.PutUint64(buf[4:12], uint64(t.Unix()))
	if _, err := randomRead(buf[12:]); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRandomUnavailable, err)
	}
	nonce := base64.URLEncoding.EncodeToString(buf[:])
	return strings.Repeat("-", boundaryWidth-len(nonce)) + nonce, nil
}

// validateBoundary checks b against the bchars grammar of RFC 2046 §5.1.1.
func validateBoundary(b string) error {
	if len(b) < 1 || len(b) > maxBoundaryLen {
		return fmt.Errorf("%w: length %d not in 1..%d", ErrInvalidBoundary, len(b), maxBoundaryLen)
	}
	for i := 0; i < len(b); i++ {
		c := b[i]
		if 'A' <= c && c <= 'Z' || 'a' <= c && c <= 'z' || '0' <= c && c <= '9' {
			continue
		}
		switch c {
		case '\'', '(', ')', '+', '_', ',', '-', '.', '/', ':', '=', '?':
			continue
		case ' ':
			if i != len(b)-1 {
				continue
			}
			return fmt.Errorf("%w: must not end with a space", ErrInvalidBoundary)
		}
		return fmt.Errorf("%w: character %q not allowed", ErrInvalidBoundary, c)
	}
	return nil
}
