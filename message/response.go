package message

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/rtsp/header"
	"github.com/ghettovoice/rtsp/internal/errorutil"
	"github.com/ghettovoice/rtsp/internal/ioutil"
	"github.com/ghettovoice/rtsp/internal/util"
)

// Response represents an RTSP response message: the protocol version, a
// status code and reason phrase, headers, and an optional body.
type Response struct {
	Version Version
	Status  StatusCode
	Reason  string
	Headers Headers
	Body    []byte
}

// RenderTo renders the response to w in wire format.
func (res *Response) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if res == nil {
		return 0, nil
	}

	reason := res.Reason
	if reason == "" {
		reason = res.Status.Reason()
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.Fprint(res.Version.String(), " ", strconv.Itoa(int(res.Status)), " ", reason)
	cw.Fprint("\r\n")
	cw.Call(func(w io.Writer) (int, error) {
		return errtrace.Wrap2(renderHeaders(w, res.Headers, len(res.Body), opts))
	})
	cw.Fprint("\r\n")
	cw.Write(res.Body)
	return errtrace.Wrap2(cw.Result())
}

// Render renders the response to a string.
func (res *Response) Render(opts *RenderOptions) string {
	if res == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	res.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

// String returns the status line of the response.
func (res *Response) String() string {
	if res == nil {
		return sNilTag
	}
	reason := res.Reason
	if reason == "" {
		reason = res.Status.Reason()
	}
	return fmt.Sprintf("%s %d %s", res.Version, uint16(res.Status), reason)
}

// Format implements [fmt.Formatter] for custom formatting.
func (res *Response) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		if f.Flag('+') {
			res.RenderTo(f, nil) //nolint:errcheck
			return
		}
		f.Write([]byte(res.String()))
		return
	case 'q':
		if f.Flag('+') {
			fmt.Fprint(f, strconv.Quote(res.Render(nil)))
			return
		}
		f.Write([]byte(strconv.Quote(res.String())))
		return
	default:
		type hideMethods Response
		type Response hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Response)(res))
		return
	}
}

// LogValue implements [slog.LogValuer] for structured logging.
func (res *Response) LogValue() slog.Value {
	if res == nil {
		return zeroSlogValue
	}

	attrs := make([]slog.Attr, 0, 3)
	attrs = append(attrs, slog.Any("status", res.Status))
	if cseq, err := res.Headers.CSeq(); err == nil {
		attrs = append(attrs, slog.Any("cseq", cseq))
	}
	if s, ok, err := res.Headers.Session(); err == nil && ok {
		attrs = append(attrs, slog.String("session", s.ID))
	}
	return slog.GroupValue(attrs...)
}

// Clone returns a deep copy of the response.
func (res *Response) Clone() *Response {
	if res == nil {
		return nil
	}
	res2 := *res
	res2.Headers = res.Headers.Clone()
	res2.Body = slices.Clone(res.Body)
	return &res2
}

// Equal reports whether res is equal to val.
func (res *Response) Equal(val any) bool {
	var other *Response
	switch v := val.(type) {
	case Response:
		other = &v
	case *Response:
		other = v
	default:
		return false
	}

	if res == other {
		return true
	} else if res == nil || other == nil {
		return false
	}

	return res.Status.Equal(other.Status) &&
		res.Reason == other.Reason &&
		res.Version.Equal(other.Version) &&
		res.Headers.Equal(other.Headers) &&
		slices.Equal(res.Body, other.Body)
}

// IsValid reports whether the response passes Validate.
func (res *Response) IsValid() bool { return res.Validate() == nil }

// Validate checks the response for the invariants every response must
// satisfy: a valid status code, a supported protocol version, a present and
// decodable CSeq header, and a body length matching Content-Length (an
// absent Content-Length counts as zero). Whether the CSeq matches a request
// is not checked here.
func (res *Response) Validate() error {
	if res == nil {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("invalid response"))
	}

	errs := make([]error, 0, 4)

	if !res.Status.IsValid() {
		errs = append(errs, errorutil.Errorf("invalid status code %d", uint16(res.Status)))
	}
	if !res.Version.Equal(RTSP20) {
		errs = append(errs, errorutil.Errorf("unsupported version %q", res.Version))
	}
	if res.Headers.Map == nil || !res.Headers.Has(header.CSeq) {
		errs = append(errs, newMissingHeaderErr(header.CSeq.String()))
	} else if _, err := res.Headers.CSeq(); err != nil {
		errs = append(errs, err)
	}
	if cl, err := res.Headers.ContentLength(); err == nil && uint64(cl) != uint64(len(res.Body)) {
		errs = append(errs, errorutil.Errorf("content length mismatch: got %d, want %d", uint64(cl), len(res.Body)))
	}

	if len(errs) > 0 {
		return errtrace.Wrap(newInvalidMessageErr(errorutil.Join(errs...)))
	}
	return nil
}
