package message

import (
	"braces.dev/errtrace"

	"github.com/ghettovoice/rtsp/header"
	"github.com/ghettovoice/rtsp/header/typed"
)

// Headers wraps a [header.Map] with typed convenience accessors for the
// header fields this module understands natively. Headers with no typed
// accessor remain reachable through the embedded Map.
type Headers struct {
	*header.Map
}

// NewHeaders returns an empty Headers.
func NewHeaders() Headers { return Headers{header.NewMap()} }

// safe returns h, or a freshly allocated empty Headers if h wraps no Map.
// Every accessor below routes through it so a zero Headers{} behaves like
// an empty one instead of panicking on the nil embedded *header.Map.
func (h Headers) safe() Headers {
	if h.Map == nil {
		return NewHeaders()
	}
	return h
}

// Clone returns a deep copy of h.
func (h Headers) Clone() Headers { return Headers{h.Map.Clone()} }

// Equal reports whether h and other hold equal headers.
func (h Headers) Equal(other Headers) bool { return h.Map.Equal(other.Map) }

// CSeq returns the decoded CSeq header.
func (h Headers) CSeq() (typed.CSeq, error) {
	h = h.safe()
	c, err := typed.DecodeCSeq(h.Get(header.CSeq))
	return c, errtrace.Wrap(err)
}

// SetCSeq encodes and sets the CSeq header.
func (h Headers) SetCSeq(c typed.CSeq) { h.Set(header.CSeq, c.Encode()...) }

// ContentLength returns the decoded Content-Length header. Absence decodes
// to zero, matching [typed.DecodeContentLength]'s documented default.
func (h Headers) ContentLength() (typed.ContentLength, error) {
	h = h.safe()
	cl, err := typed.DecodeContentLength(h.Get(header.ContentLength))
	return cl, errtrace.Wrap(err)
}

// SetContentLength encodes and sets the Content-Length header.
func (h Headers) SetContentLength(cl typed.ContentLength) { h.Set(header.ContentLength, cl.Encode()...) }

// Session returns the decoded Session header and whether it was present.
func (h Headers) Session() (typed.Session, bool, error) {
	h = h.safe()
	if !h.Has(header.Session) {
		return typed.Session{}, false, nil
	}
	s, err := typed.DecodeSession(h.Get(header.Session))
	return s, true, errtrace.Wrap(err)
}

// SetSession encodes and sets the Session header.
func (h Headers) SetSession(s typed.Session) { h.Set(header.Session, s.Encode()...) }

// Public returns the decoded Public header and whether it was present.
func (h Headers) Public() (typed.Public, bool, error) {
	h = h.safe()
	if !h.Has(header.Public) {
		return typed.Public{}, false, nil
	}
	p, err := typed.DecodePublic(h.Get(header.Public))
	return p, true, errtrace.Wrap(err)
}

// SetPublic encodes and sets the Public header.
func (h Headers) SetPublic(p typed.Public) { h.Set(header.Public, p.Encode()...) }

// Allow returns the decoded Allow header and whether it was present.
func (h Headers) Allow() (typed.Allow, bool, error) {
	h = h.safe()
	if !h.Has(header.Allow) {
		return typed.Allow{}, false, nil
	}
	a, err := typed.DecodeAllow(h.Get(header.Allow))
	return a, true, errtrace.Wrap(err)
}

// SetAllow encodes and sets the Allow header.
func (h Headers) SetAllow(a typed.Allow) { h.Set(header.Allow, a.Encode()...) }

// Transport returns the decoded Transport header and whether it was present.
func (h Headers) Transport() (typed.Transport, bool, error) {
	h = h.safe()
	if !h.Has(header.Transport) {
		return typed.Transport{}, false, nil
	}
	t, err := typed.DecodeTransport(h.Get(header.Transport))
	return t, true, errtrace.Wrap(err)
}

// SetTransport encodes and sets the Transport header.
func (h Headers) SetTransport(t typed.Transport) { h.Set(header.Transport, t.Encode()...) }

// Range returns the decoded Range header and whether it was present.
func (h Headers) Range() (typed.Range, bool, error) {
	h = h.safe()
	if !h.Has(header.Range) {
		return typed.Range{}, false, nil
	}
	r, err := typed.DecodeRange(h.Get(header.Range))
	return r, true, errtrace.Wrap(err)
}

// SetRange encodes and sets the Range header.
func (h Headers) SetRange(r typed.Range) { h.Set(header.Range, r.Encode()...) }

// RTPInfo returns the decoded RTP-Info header and whether it was present.
func (h Headers) RTPInfo() (typed.RTPInfo, bool, error) {
	h = h.safe()
	if !h.Has(header.RTPInfo) {
		return typed.RTPInfo{}, false, nil
	}
	ri, err := typed.DecodeRTPInfo(h.Get(header.RTPInfo))
	return ri, true, errtrace.Wrap(err)
}

// SetRTPInfo encodes and sets the RTP-Info header.
func (h Headers) SetRTPInfo(ri typed.RTPInfo) { h.Set(header.RTPInfo, ri.Encode()...) }
