// Package typed implements bidirectional conversions between raw
// [header.Value] lists and the strongly-typed RTSP header values: CSeq,
// Content-Length, Public, Session, Allow, Transport, Range, and RTP-Info.
package typed

import "github.com/ghettovoice/rtsp/internal/errorutil"

// ErrInvalid is the sentinel wrapped by every typed-header decode failure;
// use errors.Is(err, typed.ErrInvalid) to detect any of them generically.
const ErrInvalid errorutil.Error = "invalid typed header"

func invalid(args ...any) error { return errorutil.NewWrapperError(ErrInvalid, args...) } //errtrace:skip
