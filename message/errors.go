// Package message implements the RTSP request and response structures,
// their builders, and the typed-header convenience accessors layered over
// [header.Map].
package message

import (
	"github.com/ghettovoice/rtsp/internal/errorutil"
)

// ErrInvalidMessage is returned when a request or response fails Validate.
const ErrInvalidMessage errorutil.Error = "invalid message"

func newInvalidMessageErr(args ...any) error {
	return errorutil.NewWrapperError(ErrInvalidMessage, args...) //errtrace:skip
}

// ErrMissingHeader is wrapped into the error returned when a mandatory
// header is absent from a message being validated.
const ErrMissingHeader errorutil.Error = "missing header"

func newMissingHeaderErr(name string) error {
	return errorutil.NewWrapperError(ErrMissingHeader, name) //errtrace:skip
}
