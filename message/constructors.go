package message

// NewDescribe returns a RequestBuilder pre-seeded for a DESCRIBE request
// against uri.
func NewDescribe(uri string) *RequestBuilder {
	return NewRequestBuilder().Method(MethodDescribe).URI(uri)
}

// NewGetParameter returns a RequestBuilder pre-seeded for a GET_PARAMETER
// request against uri.
func NewGetParameter(uri string) *RequestBuilder {
	return NewRequestBuilder().Method(MethodGetParameter).URI(uri)
}

// NewOptions returns a RequestBuilder pre-seeded for an OPTIONS request
// against uri.
func NewOptions(uri string) *RequestBuilder {
	return NewRequestBuilder().Method(MethodOptions).URI(uri)
}

// NewPause returns a RequestBuilder pre-seeded for a PAUSE request against
// uri.
func NewPause(uri string) *RequestBuilder {
	return NewRequestBuilder().Method(MethodPause).URI(uri)
}

// NewPlay returns a RequestBuilder pre-seeded for a PLAY request against
// uri.
func NewPlay(uri string) *RequestBuilder {
	return NewRequestBuilder().Method(MethodPlay).URI(uri)
}

// NewPlayNotify returns a RequestBuilder pre-seeded for a PLAY_NOTIFY
// request against uri.
func NewPlayNotify(uri string) *RequestBuilder {
	return NewRequestBuilder().Method(MethodPlayNotify).URI(uri)
}

// NewRedirect returns a RequestBuilder pre-seeded for a REDIRECT request
// against uri.
func NewRedirect(uri string) *RequestBuilder {
	return NewRequestBuilder().Method(MethodRedirect).URI(uri)
}

// NewSetParameter returns a RequestBuilder pre-seeded for a SET_PARAMETER
// request against uri.
func NewSetParameter(uri string) *RequestBuilder {
	return NewRequestBuilder().Method(MethodSetParameter).URI(uri)
}

// NewSetup returns a RequestBuilder pre-seeded for a SETUP request against
// uri.
func NewSetup(uri string) *RequestBuilder {
	return NewRequestBuilder().Method(MethodSetup).URI(uri)
}

// NewTeardown returns a RequestBuilder pre-seeded for a TEARDOWN request
// against uri.
func NewTeardown(uri string) *RequestBuilder {
	return NewRequestBuilder().Method(MethodTeardown).URI(uri)
}
