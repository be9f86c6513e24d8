// Package header implements RTSP 2.0 header names, values, and the ordered
// multimap that a decoded message's header section is projected into.
package header

//go:generate go tool errtrace -w .

import (
	"net/textproto"

	"braces.dev/errtrace"

	"github.com/ghettovoice/rtsp/internal/constraints"
	"github.com/ghettovoice/rtsp/internal/grammar"
	"github.com/ghettovoice/rtsp/internal/util"
)

// Name is a case-insensitive RTSP header name. The zero value is not valid;
// construct one with [ParseName].
type Name struct {
	canonic string
}

// canonicExceptions holds the standard header names whose canonical form
// net/textproto's generic MIME-header capitalization rule gets wrong.
var canonicExceptions = map[string]string{
	"Cseq":             "CSeq",
	"Www-Authenticate": "WWW-Authenticate",
	"Rtp-Info":         "RTP-Info",
	"Mtag":             "MTag",
}

// ParseName normalizes s into canonical form and returns the corresponding
// Name. It reports an error if s is empty or not a valid token.
func ParseName[T constraints.Byteseq](s T) (Name, error) {
	trimmed := grammar.TrimOWS(s)
	if !grammar.IsToken(trimmed) {
		return Name{}, errtrace.Wrap(ErrInvalidName)
	}
	return Name{canonic: canonicalize(string(trimmed))}, nil
}

// MustParseName is like [ParseName] but panics on error. Intended for
// package-level standard-header-name declarations, not request-time parsing.
func MustParseName(s string) Name {
	n, err := ParseName(s)
	if err != nil {
		panic(err)
	}
	return n
}

func canonicalize(s string) string {
	c := textproto.CanonicalMIMEHeaderKey(s)
	if exc, ok := canonicExceptions[c]; ok {
		return exc
	}
	return c
}

// String returns the canonical form of the name, e.g. "Content-Length".
func (n Name) String() string { return n.canonic }

// Lower returns the lowercase form of the name, used for map keys and
// case-insensitive comparison.
func (n Name) Lower() string { return util.LCase(n.canonic) }

// IsZero reports whether n is the zero Name.
func (n Name) IsZero() bool { return n.canonic == "" }

// Equal reports whether n and other denote the same header name, comparing
// case-insensitively.
func (n Name) Equal(other Name) bool { return util.EqFold(n.canonic, other.canonic) }

// EqualString reports whether n denotes the header name s, comparing
// case-insensitively; s need not already be canonicalized.
func (n Name) EqualString(s string) bool { return util.EqFold(n.canonic, s) }
