package typed

import (
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/rtsp/header"
	"github.com/ghettovoice/rtsp/internal/grammar"
)

// MaxCSeq is the largest value a CSeq may carry: 1*9DIGIT.
const MaxCSeq uint32 = 999_999_999

// CSeq is the CSeq header field: a per-connection sequence number used to
// correlate requests and responses.
type CSeq uint32

// Name returns the header name CSeq is carried under.
func (CSeq) Name() header.Name { return header.CSeq }

// Encode renders the CSeq as a single raw value.
func (c CSeq) Encode() []header.Value {
	return []header.Value{header.Value(strconv.FormatUint(uint64(c), 10))}
}

// DecodeCSeq parses a raw CSeq value list. Exactly one value is required.
func DecodeCSeq(vs []header.Value) (CSeq, error) {
	if len(vs) != 1 {
		return 0, errtrace.Wrap(invalid("CSeq requires exactly one value, got %d", len(vs)))
	}
	s := grammar.TrimOWS(string(vs[0]))
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, errtrace.Wrap(invalid("CSeq: not a decimal integer: %q", vs[0]))
		}
	}
	if len(s) == 0 || len(s) > 9 {
		return 0, errtrace.Wrap(invalid("CSeq: out of range: %q", vs[0]))
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil || uint32(n) > MaxCSeq {
		return 0, errtrace.Wrap(invalid("CSeq: out of range: %q", vs[0]))
	}
	return CSeq(n), nil
}
