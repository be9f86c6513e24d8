package typed

import (
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/rtsp/header"
	"github.com/ghettovoice/rtsp/internal/grammar"
)

// MaxContentLength is the largest value a Content-Length may carry: 1*19DIGIT.
const MaxContentLength uint64 = 9_999_999_999_999_999_999

// ContentLength is the Content-Length header field. Its default value, used
// when the header is absent, is 0.
type ContentLength uint64

// Name returns the header name ContentLength is carried under.
func (ContentLength) Name() header.Name { return header.ContentLength }

// Encode renders the Content-Length as a single raw value.
func (c ContentLength) Encode() []header.Value {
	return []header.Value{header.Value(strconv.FormatUint(uint64(c), 10))}
}

// DecodeContentLength parses a raw Content-Length value list. An absent
// header (empty vs) decodes to the default value 0; more than one value is
// an error.
//
// Only leading linear whitespace is trimmed before parsing; trailing
// whitespace fails the parse.
func DecodeContentLength(vs []header.Value) (ContentLength, error) {
	if len(vs) == 0 {
		return 0, nil
	}
	if len(vs) > 1 {
		return 0, errtrace.Wrap(invalid("Content-Length requires at most one value, got %d", len(vs)))
	}
	s := grammar.TrimLeadingOWS(string(vs[0]))
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n > MaxContentLength {
		return 0, errtrace.Wrap(invalid("Content-Length: not a valid length: %q", vs[0]))
	}
	return ContentLength(n), nil
}
