// Package grammar implements the byte-class predicates of RFC 7826 §20:
// tokens, quoted strings, and linear whitespace.
package grammar

import "github.com/ghettovoice/rtsp/internal/constraints"

// IsToken reports whether s is a non-empty RFC 7826 token:
//
//	token = 1*(ALPHA / DIGIT / "!" / "#" / "$" / "%" / "&" / "'" / "*" /
//	           "+" / "-" / "." / "^" / "_" / "`" / "|" / "~")
func IsToken[T constraints.Byteseq](s T) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isTokenChar(s[i]) {
			return false
		}
	}
	return true
}

func isTokenChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '!', '#', '$', '%', '&', '\'', '*', '+', '-', '.', '^', '_', '`', '|', '~':
		return true
	}
	return false
}

// IsQuotedString reports whether s is a well-formed RFC 7826 quoted-string: a
// double-quote, zero or more qdtext/quoted-pair bytes, and a closing double-quote.
func IsQuotedString[T constraints.Byteseq](s T) bool {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return false
	}
	for i := 1; i < len(s)-1; i++ {
		c := s[i]
		if c == '"' {
			return false
		}
		if c == '\\' {
			i++
			if i >= len(s)-1 {
				return false
			}
			continue
		}
		if !isQdtext(c) {
			return false
		}
	}
	return true
}

func isQdtext(c byte) bool {
	return c == '\t' || c == ' ' || (c >= 0x21 && c != 0x7f && c != '"' && c != '\\')
}

// IsOWS reports whether c is optional whitespace (space or horizontal tab).
func IsOWS(c byte) bool { return c == ' ' || c == '\t' }

// TrimOWS trims leading and trailing linear whitespace (space and horizontal tab).
func TrimOWS[T constraints.Byteseq](s T) T {
	i, j := 0, len(s)
	for i < j && IsOWS(s[i]) {
		i++
	}
	for j > i && IsOWS(s[j-1]) {
		j--
	}
	return s[i:j]
}

// TrimLeadingOWS trims only leading linear whitespace, leaving trailing
// whitespace in place; Content-Length decoding relies on this asymmetry.
func TrimLeadingOWS[T constraints.Byteseq](s T) T {
	i := 0
	for i < len(s) && IsOWS(s[i]) {
		i++
	}
	return s[i:]
}

// IsControl reports whether c is a control character other than horizontal tab.
func IsControl(c byte) bool { return (c < 0x20 && c != '\t') || c == 0x7f }
