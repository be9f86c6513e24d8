package typed

import (
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/rtsp/header"
	"github.com/ghettovoice/rtsp/internal/grammar"
)

// Range is the Range header field: a range unit (npt, smpte, clock, or an
// extension) plus a start/end pair, either bound of which may be open.
//
//	Range = ranges-spec
//	ranges-spec = ( npt-range | smpte-range | clock-range )
type Range struct {
	Unit  string
	Start string // empty means open
	End   string // empty means open
}

// Name returns the header name Range is carried under.
func (Range) Name() header.Name { return header.Range }

// Encode renders the Range as a single raw value.
func (r Range) Encode() []header.Value {
	return []header.Value{header.Value(r.Unit + "=" + r.Start + "-" + r.End)}
}

// DecodeRange parses a raw Range value list. Exactly one value is required.
func DecodeRange(vs []header.Value) (Range, error) {
	if len(vs) != 1 {
		return Range{}, errtrace.Wrap(invalid("Range requires exactly one value, got %d", len(vs)))
	}
	unit, spec, ok := strings.Cut(string(vs[0]), "=")
	if !ok {
		return Range{}, errtrace.Wrap(invalid("Range: missing '=': %q", vs[0]))
	}
	unit = grammar.TrimOWS(unit)
	if unit == "" {
		return Range{}, errtrace.Wrap(invalid("Range: missing unit: %q", vs[0]))
	}
	start, end, ok := strings.Cut(spec, "-")
	if !ok {
		return Range{}, errtrace.Wrap(invalid("Range: missing '-': %q", vs[0]))
	}
	return Range{Unit: unit, Start: grammar.TrimOWS(start), End: grammar.TrimOWS(end)}, nil
}
