package codec

import (
	"fmt"
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/rtsp/message"
)

// Encoder writes [message.Request] and [message.Response] values to a
// transport in RTSP wire format. It holds no state between calls and is
// safe to share across goroutines, unlike [Decoder].
type Encoder struct {
	opts *message.RenderOptions
}

// NewEncoder returns an Encoder that renders messages with the default
// [message.RenderOptions].
func NewEncoder() *Encoder { return &Encoder{} }

// WithRenderOptions returns a copy of e that applies opts to every message
// it encodes.
func (e *Encoder) WithRenderOptions(opts *message.RenderOptions) *Encoder {
	e2 := *e
	e2.opts = opts
	return &e2
}

// Encode writes msg, which must be a *[message.Request] or a
// *[message.Response], to w.
func (e *Encoder) Encode(w io.Writer, msg any) error {
	switch m := msg.(type) {
	case *message.Request:
		_, err := m.RenderTo(w, e.opts)
		return errtrace.Wrap(err)
	case *message.Response:
		_, err := m.RenderTo(w, e.opts)
		return errtrace.Wrap(err)
	default:
		return errtrace.Wrap(fmt.Errorf("codec: cannot encode %T", msg))
	}
}
