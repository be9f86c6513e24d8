package typed

import (
	"slices"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/rtsp/header"
)

// MethodSet is the shared representation of the Public and Allow header
// fields: one or more values, each a comma-separated list of method tokens.
type MethodSet map[Method]struct{}

// Has reports whether m is a member of the set.
func (s MethodSet) Has(m Method) bool {
	_, ok := s[m]
	return ok
}

func encodeMethodSet(s MethodSet) []header.Value {
	methods := make([]string, 0, len(s))
	for m := range s {
		methods = append(methods, m.String())
	}
	slices.Sort(methods)
	return []header.Value{header.Value(strings.Join(methods, ", "))}
}

func decodeMethodSet(name string, vs []header.Value) (MethodSet, error) {
	if len(vs) == 0 {
		return nil, errtrace.Wrap(invalid("%s requires at least one value", name))
	}
	set := make(MethodSet)
	for _, v := range vs {
		for _, tok := range strings.Split(string(v), ",") {
			tok = strings.TrimSpace(tok)
			if tok == "" {
				continue
			}
			m := Method(tok)
			if !m.IsValid() {
				return nil, errtrace.Wrap(invalid("%s: invalid method token: %q", name, tok))
			}
			set[m] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil, errtrace.Wrap(invalid("%s: no method tokens found", name))
	}
	return set, nil
}

// Public is the Public header field: the set of methods the server supports.
type Public struct{ MethodSet }

// Name returns the header name Public is carried under.
func (Public) Name() header.Name { return header.Public }

// Encode renders the Public set as a single comma-joined raw value.
func (p Public) Encode() []header.Value { return encodeMethodSet(p.MethodSet) }

// DecodePublic parses a raw Public value list.
func DecodePublic(vs []header.Value) (Public, error) {
	set, err := decodeMethodSet("Public", vs)
	if err != nil {
		return Public{}, errtrace.Wrap(err)
	}
	return Public{set}, nil
}

// Allow is the Allow header field: the set of methods the target resource
// supports (as opposed to Public, which describes the server as a whole).
type Allow struct{ MethodSet }

// Name returns the header name Allow is carried under.
func (Allow) Name() header.Name { return header.Allow }

// Encode renders the Allow set as a single comma-joined raw value.
func (a Allow) Encode() []header.Value { return encodeMethodSet(a.MethodSet) }

// DecodeAllow parses a raw Allow value list.
func DecodeAllow(vs []header.Value) (Allow, error) {
	set, err := decodeMethodSet("Allow", vs)
	if err != nil {
		return Allow{}, errtrace.Wrap(err)
	}
	return Allow{set}, nil
}
