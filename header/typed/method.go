package typed

import "github.com/ghettovoice/rtsp/internal/grammar"

// Method is an RTSP request method token. The known verbs are declared as
// constants; any other valid token is an extension method carried opaquely.
type Method string

const (
	MethodDescribe      Method = "DESCRIBE"
	MethodGetParameter  Method = "GET_PARAMETER"
	MethodOptions       Method = "OPTIONS"
	MethodPause         Method = "PAUSE"
	MethodPlay          Method = "PLAY"
	MethodPlayNotify    Method = "PLAY_NOTIFY"
	MethodRedirect      Method = "REDIRECT"
	MethodSetup         Method = "SETUP"
	MethodSetParameter  Method = "SET_PARAMETER"
	MethodTeardown      Method = "TEARDOWN"
)

// IsValid reports whether m is a syntactically valid token. Both the known
// verbs and extension methods must satisfy this.
func (m Method) IsValid() bool { return grammar.IsToken(m) }

// IsExtension reports whether m is outside the enumerated standard verbs.
func (m Method) IsExtension() bool {
	switch m {
	case MethodDescribe, MethodGetParameter, MethodOptions, MethodPause, MethodPlay,
		MethodPlayNotify, MethodRedirect, MethodSetup, MethodSetParameter, MethodTeardown:
		return false
	default:
		return true
	}
}

func (m Method) String() string { return string(m) }
