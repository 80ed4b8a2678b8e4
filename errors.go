package formdata

import "errors"

var (
	ErrFinished            = errors.New("formdata: builder already finished")
	ErrInvalidBoundary     = errors.New("formdata: invalid boundary")
	ErrClockBeforeEpoch    = errors.New("formdata: system time is before the Unix epoch")
	ErrRandomUnavailable   = errors.New("formdata: random source unavailable")
	ErrUnsupportedEncoding = errors.New("formdata: unsupported content encoding")
	ErrEncoderClosed       = errors.New("formdata: encoded writer closed")
)
