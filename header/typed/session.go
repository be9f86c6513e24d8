package typed

import (
	"strconv"
	"strings"
	"time"

	"braces.dev/errtrace"

	"github.com/ghettovoice/rtsp/header"
	"github.com/ghettovoice/rtsp/internal/grammar"
)

// Session is the Session header field: a session identifier token plus an
// optional client-requested timeout.
//
//	Session = session-id [";" "timeout" "=" delta-seconds]
type Session struct {
	ID      string
	Timeout time.Duration // zero means absent
}

// Name returns the header name Session is carried under.
func (Session) Name() header.Name { return header.Session }

// Encode renders the Session as a single raw value.
func (s Session) Encode() []header.Value {
	v := s.ID
	if s.Timeout > 0 {
		v += ";timeout=" + strconv.FormatInt(int64(s.Timeout/time.Second), 10)
	}
	return []header.Value{header.Value(v)}
}

// DecodeSession parses a raw Session value list. Exactly one value is required.
func DecodeSession(vs []header.Value) (Session, error) {
	if len(vs) != 1 {
		return Session{}, errtrace.Wrap(invalid("Session requires exactly one value, got %d", len(vs)))
	}
	parts := strings.SplitN(string(vs[0]), ";", 2)
	id := grammar.TrimOWS(parts[0])
	if !grammar.IsToken(id) {
		return Session{}, errtrace.Wrap(invalid("Session: invalid session-id: %q", vs[0]))
	}

	s := Session{ID: id}
	if len(parts) == 2 {
		param := grammar.TrimOWS(parts[1])
		const prefix = "timeout="
		if !strings.HasPrefix(strings.ToLower(param), prefix) {
			return Session{}, errtrace.Wrap(invalid("Session: unrecognized parameter: %q", parts[1]))
		}
		secs, err := strconv.ParseUint(param[len(prefix):], 10, 32)
		if err != nil {
			return Session{}, errtrace.Wrap(invalid("Session: invalid timeout: %q", param))
		}
		s.Timeout = time.Duration(secs) * time.Second
	}
	return s, nil
}
