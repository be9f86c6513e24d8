package codec

import (
	"bytes"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/rtsp/header"
	"github.com/ghettovoice/rtsp/header/typed"
	"github.com/ghettovoice/rtsp/internal/grammar"
	"github.com/ghettovoice/rtsp/internal/util"
	"github.com/ghettovoice/rtsp/message"

	"github.com/qmuntal/stateless"
)

var crlf = []byte("\r\n")

// Decoder incrementally decodes a stream of bytes into [message.Request]
// and [message.Response] values. It is not safe for concurrent use; a
// connection's reader goroutine owns it exclusively.
//
// A Decoder drives itself through a [stateless.StateMachine] with one phase
// per piece of a message (start line, headers, body); see state.go. If the
// buffer doesn't yet hold enough to complete the current phase, Decode
// returns [ErrNeedMore] without firing the transition, and the next call
// resumes at that phase from the fields the completed phases' entry actions
// stored rather than re-parsing from the top. An incomplete phase keeps
// nothing: a partial header block is scanned again from its start.
type Decoder struct {
	buf *bytes.Buffer
	sm  *stateless.StateMachine

	// Fields populated by the state machine's entry actions as each phase
	// completes; see newDecoderStateMachine.
	startLine string
	hdrs      *header.Map
	bodyLen   int
	off       int
}

// NewDecoder returns a Decoder with an empty internal buffer.
func NewDecoder() *Decoder {
	d := &Decoder{buf: util.GetBytesBuffer()}
	d.sm = newDecoderStateMachine(d)
	return d
}

// Write feeds more bytes read from the transport into the decoder.
func (d *Decoder) Write(p []byte) (int, error) { return d.buf.Write(p) } //nolint:unparam

// Reset discards any buffered input and frees the underlying buffer.
func (d *Decoder) Reset() {
	util.FreeBytesBuffer(d.buf)
	d.buf = util.GetBytesBuffer()
}

// Decode attempts to decode one complete message from the buffered bytes.
// It returns [ErrNeedMore] if the buffer does not yet hold a full message;
// the caller should Write more data and retry. On success the consumed
// bytes are dropped from the internal buffer so the next call starts on
// the following message.
func (d *Decoder) Decode() (any, error) {
	for {
		data := d.buf.Bytes()

		switch d.phase() {
		case statePhaseStartLine:
			// Interleaved binary frames ($-prefixed, RFC 7826 §14) are out of
			// scope on this control channel; refuse them outright rather than
			// misreading the frame header as a request line.
			if len(data) > 0 && data[0] == '$' {
				return nil, errtrace.Wrap(badStartLine("interleaved data frame"))
			}
			startLine, off, ok := cutLine(data, 0, MaxStartLineSize)
			if !ok {
				if len(data) > MaxStartLineSize {
					return nil, errtrace.Wrap(ErrLineTooLong)
				}
				return nil, errtrace.Wrap(ErrNeedMore)
			}
			if err := d.sm.Fire(triggerStartLineRead, startLine, off); err != nil {
				return nil, errtrace.Wrap(err)
			}

		case statePhaseHeaders:
			hdrs, off, ok, err := parseHeaders(data, d.off)
			if err != nil {
				return nil, errtrace.Wrap(err)
			}
			if !ok {
				return nil, errtrace.Wrap(ErrNeedMore)
			}

			cl, err := typed.DecodeContentLength(hdrs.Get(header.ContentLength))
			if err != nil {
				return nil, errtrace.Wrap(badContentLength(err))
			}
			if uint64(cl) > MaxBodySize {
				return nil, errtrace.Wrap(ErrBodyTooLarge)
			}

			if err := d.sm.Fire(triggerHeadersRead, hdrs, off, int(cl)); err != nil {
				return nil, errtrace.Wrap(err)
			}

		case statePhaseBody:
			if len(data)-d.off < d.bodyLen {
				return nil, errtrace.Wrap(ErrNeedMore)
			}
			body := append([]byte(nil), data[d.off:d.off+d.bodyLen]...)
			consumed := d.off + d.bodyLen

			if err := d.sm.Fire(triggerBodyRead, consumed); err != nil {
				return nil, errtrace.Wrap(err)
			}

			msg, err := buildMessage(d.startLine, d.hdrs, body)

			if rerr := d.sm.Fire(triggerReset); rerr != nil {
				return nil, errtrace.Wrap(rerr)
			}
			d.buf.Next(consumed)

			if err != nil {
				return nil, errtrace.Wrap(err)
			}
			return msg, nil

		case statePhaseDone:
			// Only reachable if a prior Decode call failed between the body and
			// reset transitions above; resetting here keeps the machine live.
			if err := d.sm.Fire(triggerReset); err != nil {
				return nil, errtrace.Wrap(err)
			}
		}
	}
}

// cutLine finds the CRLF-terminated line starting at off in data, returning
// the line (without the CRLF) and the offset just past it. ok is false if
// no CRLF is present yet in the searched window.
func cutLine(data []byte, off, maxLen int) (line string, next int, ok bool) {
	window := data[off:]
	if len(window) > maxLen {
		window = window[:maxLen]
	}
	i := bytes.Index(window, crlf)
	if i < 0 {
		return "", off, false
	}
	return string(data[off : off+i]), off + i + len(crlf), true
}

// parseHeaders parses header lines (with folding) starting at off, up to
// and including the blank line that terminates the header block.
func parseHeaders(data []byte, off int) (hdrs *header.Map, next int, ok bool, err error) {
	hdrs = header.NewMap()
	for {
		line, lineEnd, found := cutLine(data, off, MaxHeaderNameSize+MaxHeaderValueSize+2)
		if !found {
			if len(data)-off > MaxHeaderNameSize+MaxHeaderValueSize+2 {
				return nil, off, false, errtrace.Wrap(ErrLineTooLong)
			}
			return nil, off, false, nil
		}
		if line == "" {
			return hdrs, lineEnd, true, nil
		}

		// Fold continuation lines (starting with SP or HTAB) into the value.
		for lineEnd < len(data) && (data[lineEnd] == ' ' || data[lineEnd] == '\t') {
			cont, contEnd, foundCont := cutLine(data, lineEnd, MaxHeaderValueSize)
			if !foundCont {
				if len(data)-lineEnd > MaxHeaderValueSize {
					return nil, off, false, errtrace.Wrap(ErrLineTooLong)
				}
				return nil, off, false, nil
			}
			line += " " + grammar.TrimOWS(cont)
			lineEnd = contEnd
		}

		name, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, off, false, errtrace.Wrap(badHeader("missing ':' in %q", line))
		}
		if len(name) > MaxHeaderNameSize {
			return nil, off, false, errtrace.Wrap(ErrLineTooLong)
		}
		if len(value) > MaxHeaderValueSize {
			return nil, off, false, errtrace.Wrap(ErrLineTooLong)
		}

		hn, err := header.ParseName(name)
		if err != nil {
			return nil, off, false, errtrace.Wrap(badHeader(err))
		}
		hv, err := header.ParseValue(grammar.TrimOWS(value))
		if err != nil {
			return nil, off, false, errtrace.Wrap(badHeader(err))
		}
		hdrs.Append(hn, hv)

		off = lineEnd
	}
}

// buildMessage dispatches on the start line to decode either a request or a
// response. A response start line begins with the protocol token; anything
// else is treated as a request line.
func buildMessage(startLine string, hdrs *header.Map, body []byte) (any, error) {
	if strings.HasPrefix(startLine, "RTSP/") {
		return parseResponseLine(startLine, hdrs, body)
	}
	return parseRequestLine(startLine, hdrs, body)
}

func parseRequestLine(startLine string, hdrs *header.Map, body []byte) (*message.Request, error) {
	fields := strings.SplitN(startLine, " ", 3)
	if len(fields) != 3 {
		return nil, errtrace.Wrap(badStartLine("malformed request line: %q", startLine))
	}
	ver, err := parseVersion(fields[2])
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return &message.Request{
		Method:  message.Method(fields[0]),
		URI:     fields[1],
		Version: ver,
		Headers: message.Headers{Map: hdrs},
		Body:    body,
	}, nil
}

func parseResponseLine(startLine string, hdrs *header.Map, body []byte) (*message.Response, error) {
	fields := strings.SplitN(startLine, " ", 3)
	if len(fields) < 2 {
		return nil, errtrace.Wrap(badStartLine("malformed status line: %q", startLine))
	}
	ver, err := parseVersion(fields[0])
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	code, err := strconv.ParseUint(fields[1], 10, 16)
	if err != nil {
		return nil, errtrace.Wrap(badStartLine("invalid status code: %q", fields[1]))
	}
	reason := ""
	if len(fields) == 3 {
		reason = fields[2]
	}
	return &message.Response{
		Version: ver,
		Status:  message.StatusCode(code),
		Reason:  reason,
		Headers: message.Headers{Map: hdrs},
		Body:    body,
	}, nil
}

func parseVersion(s string) (message.Version, error) {
	name, num, ok := strings.Cut(s, "/")
	if !ok {
		return message.Version{}, errtrace.Wrap(badStartLine("invalid protocol version: %q", s))
	}
	v := message.Version{Name: name, Number: num}
	if !v.Equal(message.RTSP20) {
		return message.Version{}, errtrace.Wrap(badStartLine("unsupported protocol version: %q", s))
	}
	return v, nil
}
