package codec

// Wire limits enforced by [Decoder], per RFC 7826 Section 20 guidance for
// implementations that hand-roll their own parser.
const (
	// MaxStartLineSize bounds the request/response start line.
	MaxStartLineSize = 8192
	// MaxHeaderNameSize bounds a single header name.
	MaxHeaderNameSize = 128
	// MaxHeaderValueSize bounds a single header value after unfolding.
	MaxHeaderValueSize = 4096
	// MaxBodySize bounds a message body as declared by Content-Length.
	MaxBodySize = 64 << 20 // 64 MiB
)
