package message

import (
	"github.com/ghettovoice/rtsp/header"
	"github.com/ghettovoice/rtsp/header/typed"
	"github.com/ghettovoice/rtsp/internal/errorutil"
)

// ErrMissingMethod is the error [RequestBuilder.Build] reports when no
// valid method was ever set on the builder.
const ErrMissingMethod errorutil.Error = "missing request method"

// ErrMissingRequestURI is the error [RequestBuilder.Build] reports when no
// request URI was ever set on the builder.
const ErrMissingRequestURI errorutil.Error = "missing request URI"

// ErrMissingReasonPhrase is the error [ResponseBuilder.Build] reports when
// the status is an extension code and no reason phrase was supplied; only
// the standard codes enumerated in [StatusCode] have a built-in default.
const ErrMissingReasonPhrase errorutil.Error = "missing reason phrase"

// ErrUnsupportedVersion is the error both builders report when a version
// other than the zero value or [RTSP20] was set.
const ErrUnsupportedVersion errorutil.Error = "unsupported protocol version"

// BuilderError wraps one of the Err* sentinels above with the value that
// failed validation.
type BuilderError struct {
	Err error
}

func (e *BuilderError) Error() string { return "message: builder: " + e.Err.Error() }
func (e *BuilderError) Unwrap() error { return e.Err }

func newBuilderError(sentinel error, args ...any) error { //errtrace:skip
	return &BuilderError{Err: errorutil.NewWrapperError(sentinel, args...)}
}

// RequestBuilder accumulates a request's fields and the first error any
// mutator encountered. Every mutator returns the builder itself to support
// fluent chaining; the stored error, if any, is only surfaced by Build.
//
// The zero value is not usable; obtain one from [NewRequestBuilder] or one
// of the per-method convenience constructors ([NewDescribe], [NewSetup], ...).
type RequestBuilder struct {
	method  Method
	uri     string
	version Version
	headers Headers
	err     error
}

// NewRequestBuilder returns an empty RequestBuilder. Method and URI must be
// set before Build succeeds.
func NewRequestBuilder() *RequestBuilder {
	return &RequestBuilder{headers: NewHeaders()}
}

// Method sets the request method.
func (b *RequestBuilder) Method(m Method) *RequestBuilder {
	if b.err != nil {
		return b
	}
	if !m.IsValid() {
		b.err = newBuilderError(ErrMissingMethod, "invalid method %q", string(m))
		return b
	}
	b.method = m
	return b
}

// URI sets the request URI.
func (b *RequestBuilder) URI(uri string) *RequestBuilder {
	if b.err != nil {
		return b
	}
	if uri == "" {
		b.err = newBuilderError(ErrMissingRequestURI)
		return b
	}
	b.uri = uri
	return b
}

// Version sets the protocol version. Only the zero value (deferring to the
// default) and [RTSP20] are accepted; anything else fails the builder with
// [ErrUnsupportedVersion].
func (b *RequestBuilder) Version(v Version) *RequestBuilder {
	if b.err != nil {
		return b
	}
	if !v.IsZero() && !v.Equal(RTSP20) {
		b.err = newBuilderError(ErrUnsupportedVersion, "version %q", v.String())
		return b
	}
	b.version = v
	return b
}

// CSeq sets the CSeq header.
func (b *RequestBuilder) CSeq(cseq uint32) *RequestBuilder {
	if b.err != nil {
		return b
	}
	b.headers.SetCSeq(typed.CSeq(cseq))
	return b
}

// Session sets the Session header's session-id, with no requested timeout.
func (b *RequestBuilder) Session(id string) *RequestBuilder {
	if b.err != nil {
		return b
	}
	b.headers.SetSession(typed.Session{ID: id})
	return b
}

// Header appends one or more raw values under name, in addition to any
// already set.
func (b *RequestBuilder) Header(name header.Name, values ...header.Value) *RequestBuilder {
	if b.err != nil {
		return b
	}
	b.headers.Append(name, values...)
	return b
}

// Headers merges every header in h into the builder, in addition to any
// already set.
func (b *RequestBuilder) Headers(h Headers) *RequestBuilder {
	if b.err != nil {
		return b
	}
	for n, vs := range h.safe().All() {
		b.headers.Append(n, vs...)
	}
	return b
}

// Build finalizes the request with the given body. It returns the first
// error recorded by a prior mutator, or [ErrMissingMethod] /
// [ErrMissingRequestURI] if Method or URI was never called. CSeq defaults
// to 1 if never set.
func (b *RequestBuilder) Build(body []byte) (*Request, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.method == "" {
		return nil, newBuilderError(ErrMissingMethod)
	}
	if b.uri == "" {
		return nil, newBuilderError(ErrMissingRequestURI)
	}

	version := b.version
	if version.IsZero() {
		version = RTSP20
	}

	hdrs := b.headers
	if !hdrs.Has(header.CSeq) {
		hdrs.SetCSeq(1)
	}
	// Requests with no body conventionally omit Content-Length rather than
	// sending an explicit zero. A non-empty body, or a caller who already
	// set the header, always gets the actual length forced onto it so the
	// wire framing stays correct.
	if len(body) > 0 || hdrs.Has(header.ContentLength) {
		hdrs.SetContentLength(typed.ContentLength(len(body)))
	}

	return &Request{
		Method:  b.method,
		URI:     b.uri,
		Version: version,
		Headers: hdrs,
		Body:    body,
	}, nil
}

// ResponseBuilder accumulates a response's fields and the first error any
// mutator encountered, mirroring [RequestBuilder].
type ResponseBuilder struct {
	version Version
	status  StatusCode
	reason  string
	headers Headers
	err     error
}

// NewResponseBuilder returns a ResponseBuilder for status, optionally
// copying the CSeq and Session of req (if non-nil) per RFC 7826
// Section 8.1.2.
func NewResponseBuilder(req *Request, status StatusCode) *ResponseBuilder {
	b := &ResponseBuilder{status: status, headers: NewHeaders()}
	if req != nil {
		if cseq, err := req.Headers.CSeq(); err == nil {
			b.headers.SetCSeq(cseq)
		}
		if s, ok, err := req.Headers.Session(); err == nil && ok {
			b.headers.SetSession(s)
		}
	}
	if !b.headers.Has(header.CSeq) {
		b.headers.SetCSeq(1)
	}
	return b
}

// Status overrides the response's status code.
func (b *ResponseBuilder) Status(status StatusCode) *ResponseBuilder {
	if b.err != nil {
		return b
	}
	b.status = status
	return b
}

// Reason sets a custom reason phrase, required for extension status codes.
func (b *ResponseBuilder) Reason(reason string) *ResponseBuilder {
	if b.err != nil {
		return b
	}
	b.reason = reason
	return b
}

// Version sets the protocol version; see [RequestBuilder.Version].
func (b *ResponseBuilder) Version(v Version) *ResponseBuilder {
	if b.err != nil {
		return b
	}
	if !v.IsZero() && !v.Equal(RTSP20) {
		b.err = newBuilderError(ErrUnsupportedVersion, "version %q", v.String())
		return b
	}
	b.version = v
	return b
}

// CSeq overrides the CSeq header.
func (b *ResponseBuilder) CSeq(cseq uint32) *ResponseBuilder {
	if b.err != nil {
		return b
	}
	b.headers.SetCSeq(typed.CSeq(cseq))
	return b
}

// Header appends one or more raw values under name, in addition to any
// already set.
func (b *ResponseBuilder) Header(name header.Name, values ...header.Value) *ResponseBuilder {
	if b.err != nil {
		return b
	}
	b.headers.Append(name, values...)
	return b
}

// Headers merges every header in h into the builder, in addition to any
// already set.
func (b *ResponseBuilder) Headers(h Headers) *ResponseBuilder {
	if b.err != nil {
		return b
	}
	for n, vs := range h.safe().All() {
		b.headers.Append(n, vs...)
	}
	return b
}

// Build finalizes the response with the given body, forcing Content-Length
// to len(body). It returns the first error recorded by a prior mutator, or
// [ErrMissingReasonPhrase] if status is an extension code and no reason was
// ever set.
func (b *ResponseBuilder) Build(body []byte) (*Response, error) {
	if b.err != nil {
		return nil, b.err
	}

	reason := b.reason
	if reason == "" {
		reason = b.status.Reason()
		if reason == "" {
			return nil, newBuilderError(ErrMissingReasonPhrase, "status %d", uint16(b.status))
		}
	}

	version := b.version
	if version.IsZero() {
		version = RTSP20
	}

	hdrs := b.headers
	hdrs.SetContentLength(typed.ContentLength(len(body)))

	return &Response{
		Version: version,
		Status:  b.status,
		Reason:  reason,
		Headers: hdrs,
		Body:    body,
	}, nil
}

// RequestOptions configures [NewRequest]. All fields are optional; zero
// values fall back to the defaults documented per field.
type RequestOptions struct {
	// CSeq is the sequence number to use. Default is 1.
	CSeq uint32
	// Session is the session identifier to attach, if any.
	Session string
	// Headers are additional headers to add to the request. CSeq and
	// Session set here are overridden by the CSeq/Session fields above.
	Headers Headers
	// Body is the request body.
	Body []byte
}

func (o *RequestOptions) apply(b *RequestBuilder) *RequestBuilder {
	cseq := uint32(1)
	if o != nil {
		b = b.Headers(o.Headers)
		if o.CSeq != 0 {
			cseq = o.CSeq
		}
		if o.Session != "" {
			b = b.Session(o.Session)
		}
	}
	return b.CSeq(cseq)
}

func (o *RequestOptions) body() []byte {
	if o == nil {
		return nil
	}
	return o.Body
}

// NewRequest builds a minimally valid request for method against uri. It is
// sugar over [NewRequestBuilder] for callers that don't need the fluent
// form.
func NewRequest(method Method, uri string, opts *RequestOptions) (*Request, error) {
	b := opts.apply(NewRequestBuilder().Method(method).URI(uri))
	return b.Build(opts.body())
}

// ResponseOptions configures [NewResponseTo]. All fields are optional.
type ResponseOptions struct {
	// Reason overrides the status code's default reason phrase.
	Reason string
	// Headers are additional headers to add to the response.
	Headers Headers
	// Body is the response body.
	Body []byte
}

func (o *ResponseOptions) reason() string {
	if o == nil {
		return ""
	}
	return o.Reason
}

func (o *ResponseOptions) headers() Headers {
	if o == nil {
		return NewHeaders()
	}
	return o.Headers
}

func (o *ResponseOptions) body() []byte {
	if o == nil {
		return nil
	}
	return o.Body
}

// NewResponseTo builds a response to req with the given status, copying
// req's CSeq and Session (if present). Unlike [ResponseBuilder.Build], it
// never fails: an extension status code with no reason renders with an
// empty reason phrase rather than reporting [ErrMissingReasonPhrase].
// Callers that need that validation should use [NewResponseBuilder]
// directly.
func NewResponseTo(req *Request, status StatusCode, opts *ResponseOptions) *Response {
	res := &Response{
		Version: RTSP20,
		Status:  status,
		Reason:  opts.reason(),
		Headers: NewResponseBuilder(req, status).headers,
		Body:    opts.body(),
	}
	if res.Reason == "" {
		res.Reason = status.Reason()
	}
	for n, vs := range opts.headers().safe().All() {
		res.Headers.Append(n, vs...)
	}
	res.Headers.SetContentLength(typed.ContentLength(len(res.Body)))
	return res
}

// NewResponse builds a minimally valid response to req with the given
// status, copying req's CSeq and Session (if present) per RFC 7826
// Section 8.1.2. Equivalent to NewResponseTo(req, status, nil).
func NewResponse(req *Request, status StatusCode) *Response {
	return NewResponseTo(req, status, nil)
}
