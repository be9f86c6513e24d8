package header

import (
	"braces.dev/errtrace"

	"github.com/ghettovoice/rtsp/internal/grammar"
)

// Value is a validated RTSP header value: any bytes except control
// characters (the horizontal tab used for line folding is allowed), so no
// bare CR or LF once unfolded. Bytes above 0x7F are not rejected.
// The zero Value is the empty string, which is permitted.
type Value string

// ParseValue validates s as a header value. Folded continuation lines must
// already have been joined by the caller (the decoder does this while
// reading); ParseValue itself only rejects disallowed control bytes.
func ParseValue(s string) (Value, error) {
	for i := 0; i < len(s); i++ {
		if grammar.IsControl(s[i]) {
			return "", errtrace.Wrap(ErrInvalidValue)
		}
	}
	return Value(s), nil
}

// MustParseValue is like [ParseValue] but panics on error.
func MustParseValue(s string) Value {
	v, err := ParseValue(s)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Value) String() string { return string(v) }
