package message

import "github.com/ghettovoice/rtsp/header/typed"

// Method re-exports [typed.Method] so callers building requests need only
// import this package.
type Method = typed.Method

// Method constants. See [typed.Method].
const (
	MethodDescribe      = typed.MethodDescribe
	MethodGetParameter  = typed.MethodGetParameter
	MethodOptions       = typed.MethodOptions
	MethodPause         = typed.MethodPause
	MethodPlay          = typed.MethodPlay
	MethodPlayNotify    = typed.MethodPlayNotify
	MethodRedirect      = typed.MethodRedirect
	MethodSetup         = typed.MethodSetup
	MethodSetParameter  = typed.MethodSetParameter
	MethodTeardown      = typed.MethodTeardown
)
