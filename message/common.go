package message

import (
	"io"
	"log/slog"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/rtsp/header"
	"github.com/ghettovoice/rtsp/internal/ioutil"
)

// RenderOptions controls how a request or response is rendered to wire
// format. The zero value renders in full form.
type RenderOptions struct {
	// Compact renders headers using compact names where the grammar defines
	// one, instead of their canonical form. Reserved for future use; no
	// header in this module currently defines a compact alias.
	Compact bool
}

var zeroSlogValue slog.Value

const (
	sNilTag = "<nil>"
)

var bNilTag = []byte(sNilTag)

// renderHeaders writes hdrs in wire format. If hdrs already carries a
// Content-Length header, its value is forced to bodyLen regardless of
// whatever value it holds: the encoder, not the caller, is authoritative
// over this header. A message with no Content-Length header renders one
// only when the body is non-empty; the decoder treats absence as a body
// length of zero.
func renderHeaders(w io.Writer, hdrs Headers, bodyLen int, _ *RenderOptions) (num int, err error) {
	if (hdrs.Map == nil || hdrs.Len() == 0) && bodyLen == 0 {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)

	clVal := strconv.FormatUint(uint64(bodyLen), 10)
	wroteCL := false

	if hdrs.Map != nil {
		for name, vals := range hdrs.All() {
			if name.Equal(header.ContentLength) {
				cw.Fprint(name.String(), ": ", clVal, "\r\n")
				wroteCL = true
				continue
			}
			for _, v := range vals {
				cw.Fprint(name.String(), ": ", v.String(), "\r\n")
			}
		}
	}
	if !wroteCL && bodyLen > 0 {
		cw.Fprint(header.ContentLength.String(), ": ", clVal, "\r\n")
	}
	return errtrace.Wrap2(cw.Result())
}
