// Package codec implements the RTSP wire encoder and a stateful streaming
// decoder driven by a [stateless.StateMachine] over the three message
// phases: start line, headers, body.
package codec

import "github.com/ghettovoice/rtsp/internal/errorutil"

// ErrNeedMore is returned by [Decoder.Decode] when the buffered bytes do
// not yet hold a complete message. The caller should Write more data and
// retry.
const ErrNeedMore errorutil.Error = "need more data"

// ErrBadStartLine is wrapped into the error returned when the start line
// cannot be parsed as a request or response line.
const ErrBadStartLine errorutil.Error = "bad start line"

// ErrBadHeader is wrapped into the error returned when a header line is
// malformed. A header name or value over its length limit is reported as
// [ErrLineTooLong] instead.
const ErrBadHeader errorutil.Error = "bad header"

// ErrBadContentLength is wrapped into the error returned when the
// Content-Length header cannot be decoded.
const ErrBadContentLength errorutil.Error = "bad content length"

// ErrBodyTooLarge is returned when Content-Length exceeds [MaxBodySize].
const ErrBodyTooLarge errorutil.Error = "body too large"

// ErrLineTooLong is returned when a single unterminated line exceeds its
// length limit before a CRLF is found, and when a header's name or unfolded
// value exceeds [MaxHeaderNameSize] or [MaxHeaderValueSize].
const ErrLineTooLong errorutil.Error = "line too long"

func badStartLine(args ...any) error {
	return errorutil.NewWrapperError(ErrBadStartLine, args...) //errtrace:skip
}

func badHeader(args ...any) error {
	return errorutil.NewWrapperError(ErrBadHeader, args...) //errtrace:skip
}

func badContentLength(args ...any) error {
	return errorutil.NewWrapperError(ErrBadContentLength, args...) //errtrace:skip
}
