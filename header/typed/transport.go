package typed

import (
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/rtsp/header"
	"github.com/ghettovoice/rtsp/internal/grammar"
)

// TransportParam is one semicolon-separated parameter of a Transport
// specification: either a bare flag ("unicast") or a "name=value" pair.
type TransportParam struct {
	Name  string
	Value string // empty for a bare flag
}

// TransportSpec is one "/"-joined transport protocol plus its ordered
// parameter list, e.g. "RTP/AVP;unicast;client_port=4588-4589".
type TransportSpec struct {
	Protocol string
	Params   []TransportParam
}

// Param returns the value of the named parameter and whether it was present.
func (t TransportSpec) Param(name string) (string, bool) {
	for _, p := range t.Params {
		if strings.EqualFold(p.Name, name) {
			return p.Value, true
		}
	}
	return "", false
}

// Transport is the Transport header field: an ordered list of acceptable or
// negotiated transport specifications, the header SETUP exchanges negotiate
// over.
type Transport struct {
	Specs []TransportSpec
}

// Name returns the header name Transport is carried under.
func (Transport) Name() header.Name { return header.Transport }

// Encode renders all Transport specs as a single raw value, the specs
// comma-joined per the RFC grammar.
func (t Transport) Encode() []header.Value {
	specs := make([]string, len(t.Specs))
	for i, s := range t.Specs {
		specs[i] = encodeTransportSpec(s)
	}
	return []header.Value{header.Value(strings.Join(specs, ","))}
}

func encodeTransportSpec(s TransportSpec) string {
	var sb strings.Builder
	sb.WriteString(s.Protocol)
	for _, p := range s.Params {
		sb.WriteByte(';')
		sb.WriteString(p.Name)
		if p.Value != "" {
			sb.WriteByte('=')
			sb.WriteString(p.Value)
		}
	}
	return sb.String()
}

// DecodeTransport parses a raw Transport value list.
func DecodeTransport(vs []header.Value) (Transport, error) {
	if len(vs) == 0 {
		return Transport{}, errtrace.Wrap(invalid("Transport requires at least one value"))
	}

	var t Transport
	for _, v := range vs {
		for _, chunk := range strings.Split(string(v), ",") {
			chunk = grammar.TrimOWS(chunk)
			if chunk == "" {
				continue
			}
			spec, err := decodeTransportSpec(chunk)
			if err != nil {
				return Transport{}, errtrace.Wrap(err)
			}
			t.Specs = append(t.Specs, spec)
		}
	}
	if len(t.Specs) == 0 {
		return Transport{}, errtrace.Wrap(invalid("Transport: no specs found"))
	}
	return t, nil
}

func decodeTransportSpec(s string) (TransportSpec, error) {
	fields := strings.Split(s, ";")
	proto := grammar.TrimOWS(fields[0])
	if proto == "" {
		return TransportSpec{}, errtrace.Wrap(invalid("Transport: missing protocol in %q", s))
	}
	spec := TransportSpec{Protocol: proto}
	for _, f := range fields[1:] {
		f = grammar.TrimOWS(f)
		if f == "" {
			continue
		}
		if name, value, ok := strings.Cut(f, "="); ok {
			spec.Params = append(spec.Params, TransportParam{Name: grammar.TrimOWS(name), Value: grammar.TrimOWS(value)})
		} else {
			spec.Params = append(spec.Params, TransportParam{Name: f})
		}
	}
	return spec, nil
}
