package typed

import (
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/rtsp/header"
	"github.com/ghettovoice/rtsp/internal/grammar"
)

// RTPStreamInfo is one stream entry of an RTP-Info header value.
type RTPStreamInfo struct {
	URL     string
	Seq     string // empty if absent
	RTPTime string // empty if absent
}

// RTPInfo is the RTP-Info header field: an ordered list of per-stream
// synchronization info, comma-joined across multiple streams.
type RTPInfo struct {
	Streams []RTPStreamInfo
}

// Name returns the header name RTP-Info is carried under.
func (RTPInfo) Name() header.Name { return header.RTPInfo }

// Encode renders the RTP-Info streams as raw values.
func (r RTPInfo) Encode() []header.Value {
	streams := make([]string, len(r.Streams))
	for i, s := range r.Streams {
		var sb strings.Builder
		sb.WriteString("url=")
		sb.WriteString(s.URL)
		if s.Seq != "" {
			sb.WriteString(";seq=")
			sb.WriteString(s.Seq)
		}
		if s.RTPTime != "" {
			sb.WriteString(";rtptime=")
			sb.WriteString(s.RTPTime)
		}
		streams[i] = sb.String()
	}
	return []header.Value{header.Value(strings.Join(streams, ","))}
}

// DecodeRTPInfo parses a raw RTP-Info value list.
func DecodeRTPInfo(vs []header.Value) (RTPInfo, error) {
	if len(vs) == 0 {
		return RTPInfo{}, errtrace.Wrap(invalid("RTP-Info requires at least one value"))
	}
	var info RTPInfo
	for _, v := range vs {
		for _, chunk := range strings.Split(string(v), ",") {
			chunk = grammar.TrimOWS(chunk)
			if chunk == "" {
				continue
			}
			stream, err := decodeRTPStreamInfo(chunk)
			if err != nil {
				return RTPInfo{}, errtrace.Wrap(err)
			}
			info.Streams = append(info.Streams, stream)
		}
	}
	if len(info.Streams) == 0 {
		return RTPInfo{}, errtrace.Wrap(invalid("RTP-Info: no stream entries found"))
	}
	return info, nil
}

func decodeRTPStreamInfo(s string) (RTPStreamInfo, error) {
	var info RTPStreamInfo
	for _, f := range strings.Split(s, ";") {
		f = grammar.TrimOWS(f)
		name, value, ok := strings.Cut(f, "=")
		if !ok {
			return RTPStreamInfo{}, errtrace.Wrap(invalid("RTP-Info: malformed parameter: %q", f))
		}
		switch strings.ToLower(grammar.TrimOWS(name)) {
		case "url":
			info.URL = value
		case "seq":
			info.Seq = value
		case "rtptime":
			info.RTPTime = value
		}
	}
	if info.URL == "" {
		return RTPStreamInfo{}, errtrace.Wrap(invalid("RTP-Info: missing url in %q", s))
	}
	return info, nil
}
