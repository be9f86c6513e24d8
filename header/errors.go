package header

import "github.com/ghettovoice/rtsp/internal/errorutil"

const (
	// ErrInvalidName is returned by [ParseName] for empty input or bytes that
	// are not a valid token.
	ErrInvalidName errorutil.Error = "invalid header name"
	// ErrInvalidValue is returned by [ParseValue] for disallowed control bytes.
	ErrInvalidValue errorutil.Error = "invalid header value"
)
