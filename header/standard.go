package header

// The 58 standard header names defined by RFC 7826 §16, declared once so
// callers (and this package's own typed-header registrations) can refer to
// them without re-parsing a string literal on every use.
var (
	Accept                  = MustParseName("Accept")
	AcceptCredentials       = MustParseName("Accept-Credentials")
	AcceptEncoding          = MustParseName("Accept-Encoding")
	AcceptLanguage          = MustParseName("Accept-Language")
	AcceptRanges            = MustParseName("Accept-Ranges")
	Allow                   = MustParseName("Allow")
	AuthenticationInfo      = MustParseName("Authentication-Info")
	Authorization           = MustParseName("Authorization")
	Bandwidth               = MustParseName("Bandwidth")
	Blocksize               = MustParseName("Blocksize")
	CacheControl            = MustParseName("Cache-Control")
	Connection              = MustParseName("Connection")
	ConnectionCredentials   = MustParseName("Connection-Credentials")
	ContentBase             = MustParseName("Content-Base")
	ContentEncoding         = MustParseName("Content-Encoding")
	ContentLanguage         = MustParseName("Content-Language")
	ContentLength           = MustParseName("Content-Length")
	ContentLocation         = MustParseName("Content-Location")
	ContentType             = MustParseName("Content-Type")
	CSeq                    = MustParseName("CSeq")
	Date                    = MustParseName("Date")
	Expires                 = MustParseName("Expires")
	From                    = MustParseName("From")
	IfMatch                 = MustParseName("If-Match")
	IfModifiedSince         = MustParseName("If-Modified-Since")
	IfNoneMatch             = MustParseName("If-None-Match")
	LastModified            = MustParseName("Last-Modified")
	Location                = MustParseName("Location")
	MediaProperties         = MustParseName("Media-Properties")
	MediaRange              = MustParseName("Media-Range")
	MTag                    = MustParseName("MTag")
	NotifyReason            = MustParseName("Notify-Reason")
	PipelinedRequests       = MustParseName("Pipelined-Requests")
	ProxyAuthenticate       = MustParseName("Proxy-Authenticate")
	ProxyAuthenticationInfo = MustParseName("Proxy-Authentication-Info")
	ProxyAuthorization      = MustParseName("Proxy-Authorization")
	ProxyRequire            = MustParseName("Proxy-Require")
	ProxySupported          = MustParseName("Proxy-Supported")
	Public                  = MustParseName("Public")
	Range                   = MustParseName("Range")
	Referrer                = MustParseName("Referrer")
	Require                 = MustParseName("Require")
	RequestStatus           = MustParseName("Request-Status")
	RetryAfter              = MustParseName("Retry-After")
	RTPInfo                 = MustParseName("RTP-Info")
	Scale                   = MustParseName("Scale")
	SeekStyle               = MustParseName("Seek-Style")
	Server                  = MustParseName("Server")
	Session                 = MustParseName("Session")
	Speed                   = MustParseName("Speed")
	Supported               = MustParseName("Supported")
	TerminateReason         = MustParseName("Terminate-Reason")
	Timestamp               = MustParseName("Timestamp")
	Transport               = MustParseName("Transport")
	Unsupported             = MustParseName("Unsupported")
	UserAgent               = MustParseName("User-Agent")
	Via                     = MustParseName("Via")
	WWWAuthenticate         = MustParseName("WWW-Authenticate")
)

// standardNames indexes the standard names above by lowercase form for
// [IsStandard]. ParseName does not consult it: every name, standard or not,
// goes through the generic textproto canonicalization plus
// canonicExceptions.
var standardNames = func() map[string]Name {
	names := []Name{
		Accept, AcceptCredentials, AcceptEncoding, AcceptLanguage, AcceptRanges, Allow,
		AuthenticationInfo, Authorization, Bandwidth, Blocksize, CacheControl, Connection,
		ConnectionCredentials, ContentBase, ContentEncoding, ContentLanguage, ContentLength,
		ContentLocation, ContentType, CSeq, Date, Expires, From, IfMatch, IfModifiedSince,
		IfNoneMatch, LastModified, Location, MediaProperties, MediaRange, MTag, NotifyReason,
		PipelinedRequests, ProxyAuthenticate, ProxyAuthenticationInfo, ProxyAuthorization,
		ProxyRequire, ProxySupported, Public, Range, Referrer, Require, RequestStatus, RetryAfter,
		RTPInfo, Scale, SeekStyle, Server, Session, Speed, Supported, TerminateReason,
		Timestamp, Transport, Unsupported, UserAgent, Via, WWWAuthenticate,
	}
	m := make(map[string]Name, len(names))
	for _, n := range names {
		m[n.Lower()] = n
	}
	return m
}()

// IsStandard reports whether n is one of the 58 names RFC 7826 §16 enumerates,
// as opposed to an extension header name.
func IsStandard(n Name) bool {
	_, ok := standardNames[n.Lower()]
	return ok
}
