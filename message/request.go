package message

import (
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/rtsp/header"
	"github.com/ghettovoice/rtsp/internal/errorutil"
	"github.com/ghettovoice/rtsp/internal/ioutil"
	"github.com/ghettovoice/rtsp/internal/util"
)

// Request represents an RTSP request message: a method, a request URI, the
// protocol version, headers, and an optional body.
type Request struct {
	Method  Method
	URI     string
	Version Version
	Headers Headers
	Body    []byte
}

// RenderTo renders the request to w in wire format.
func (req *Request) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if req == nil {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.Fprint(string(req.Method), " ", req.URI, " ", req.Version.String())
	cw.Fprint("\r\n")
	cw.Call(func(w io.Writer) (int, error) {
		return errtrace.Wrap2(renderHeaders(w, req.Headers, len(req.Body), opts))
	})
	cw.Fprint("\r\n")
	cw.Write(req.Body)
	return errtrace.Wrap2(cw.Result())
}

// Render renders the request to a string.
func (req *Request) Render(opts *RenderOptions) string {
	if req == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	req.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

// String returns the start line of the request.
func (req *Request) String() string {
	if req == nil {
		return sNilTag
	}
	return fmt.Sprintf("%s %s %s", req.Method, req.URI, req.Version)
}

// Format implements [fmt.Formatter] for custom formatting.
func (req *Request) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		if f.Flag('+') {
			req.RenderTo(f, nil) //nolint:errcheck
			return
		}
		f.Write([]byte(req.String()))
		return
	case 'q':
		if f.Flag('+') {
			fmt.Fprint(f, strconv.Quote(req.Render(nil)))
			return
		}
		f.Write([]byte(strconv.Quote(req.String())))
		return
	default:
		type hideMethods Request
		type Request hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Request)(req))
		return
	}
}

// LogValue implements [slog.LogValuer] for structured logging.
func (req *Request) LogValue() slog.Value {
	if req == nil {
		return zeroSlogValue
	}

	attrs := make([]slog.Attr, 0, 3)
	attrs = append(attrs, slog.String("method", string(req.Method)), slog.String("uri", req.URI))
	if cseq, err := req.Headers.CSeq(); err == nil {
		attrs = append(attrs, slog.Any("cseq", cseq))
	}
	if s, ok, err := req.Headers.Session(); err == nil && ok {
		attrs = append(attrs, slog.String("session", s.ID))
	}
	return slog.GroupValue(attrs...)
}

// Clone returns a deep copy of the request.
func (req *Request) Clone() *Request {
	if req == nil {
		return nil
	}
	req2 := *req
	req2.Headers = req.Headers.Clone()
	req2.Body = slices.Clone(req.Body)
	return &req2
}

// Equal reports whether req is equal to val.
func (req *Request) Equal(val any) bool {
	var other *Request
	switch v := val.(type) {
	case Request:
		other = &v
	case *Request:
		other = v
	default:
		return false
	}

	if req == other {
		return true
	} else if req == nil || other == nil {
		return false
	}

	return req.Method == other.Method &&
		req.URI == other.URI &&
		req.Version.Equal(other.Version) &&
		req.Headers.Equal(other.Headers) &&
		slices.Equal(req.Body, other.Body)
}

// IsValid reports whether the request passes Validate.
func (req *Request) IsValid() bool { return req.Validate() == nil }

// asteriskMethods is the set of methods allowed to carry "*" as the request
// URI: requests that address the server itself rather than a resource on
// it. OPTIONS is the only one RFC 7826 defines this way (§13.1), mirroring
// HTTP's "OPTIONS *".
var asteriskMethods = map[Method]bool{
	MethodOptions: true,
}

// Validate checks the request for the invariants RFC 7826 requires of every
// request: a known-syntax method, a non-empty request URI that is either an
// absolute RTSP URI or "*" on a method that permits it, a supported
// protocol version, a CSeq header, and a body length matching Content-Length
// (an absent Content-Length counts as zero).
func (req *Request) Validate() error {
	if req == nil {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("invalid request"))
	}

	errs := make([]error, 0, 4)

	if !req.Method.IsValid() {
		errs = append(errs, errorutil.Errorf("invalid method %q", req.Method))
	}
	if req.URI == "" {
		errs = append(errs, errorutil.Errorf("missing request URI"))
	} else if req.URI == "*" {
		if !asteriskMethods[req.Method] {
			errs = append(errs, errorutil.Errorf("method %q may not target \"*\"", req.Method))
		}
	} else if u, err := url.Parse(req.URI); err != nil || !u.IsAbs() ||
		!slices.Contains([]string{"rtsp", "rtsps", "rtspu"}, strings.ToLower(u.Scheme)) {
		errs = append(errs, errorutil.Errorf("request URI %q is not an absolute RTSP URI", req.URI))
	}
	if !req.Version.Equal(RTSP20) {
		errs = append(errs, errorutil.Errorf("unsupported version %q", req.Version))
	}
	if req.Headers.Map == nil || !req.Headers.Has(header.CSeq) {
		errs = append(errs, newMissingHeaderErr(header.CSeq.String()))
	} else if _, err := req.Headers.CSeq(); err != nil {
		errs = append(errs, err)
	}
	if cl, err := req.Headers.ContentLength(); err == nil && uint64(cl) != uint64(len(req.Body)) {
		errs = append(errs, errorutil.Errorf("content length mismatch: got %d, want %d", uint64(cl), len(req.Body)))
	}

	if len(errs) > 0 {
		return errtrace.Wrap(newInvalidMessageErr(errorutil.Join(errs...)))
	}
	return nil
}
