// Package engine implements the connection-level state machine that pairs
// outbound requests with their responses by CSeq and dispatches inbound
// requests to a [Service], over one bidirectional transport.
package engine

import "github.com/ghettovoice/rtsp/internal/errorutil"

// ErrUnsolicitedResponse is wrapped into a [ProtocolError] when a decoded
// response's CSeq does not match any pending request.
const ErrUnsolicitedResponse errorutil.Error = "unsolicited response"

// ErrMissingCSeq is wrapped into a [ProtocolError] when an inbound request
// carries no CSeq header.
const ErrMissingCSeq errorutil.Error = "missing CSeq header"

// ErrDuplicateCSeq is wrapped into a [ProtocolError] when the writer is
// asked to install a pending entry for a CSeq already in flight.
const ErrDuplicateCSeq errorutil.Error = "duplicate CSeq"

// ErrServicePanicked is wrapped into a [ProtocolError] when a [Service]'s
// Serve method panics; the engine recovers the panic and treats it as
// fatal to the connection.
const ErrServicePanicked errorutil.Error = "service panicked"

// ErrTimeout is wrapped into an [OperationError] when the connection's
// default timeout ([Options].DefaultTimeout) elapses before a response
// arrives. A deadline or cancellation carried by the caller's ctx is
// reported as ctx's own error instead.
const ErrTimeout errorutil.Error = "request timed out"

// ErrConnectionClosed is wrapped into an [OperationError] when a request is
// sent on, or a response awaited from, a connection that is shutting down
// or has shut down.
const ErrConnectionClosed errorutil.Error = "connection closed"

// ProtocolError reports a violation of the wire protocol's correlation or
// dispatch rules (as opposed to a malformed message, which is a decode
// error from the codec package). Most are fatal to the connection; the
// exceptions are a missing CSeq on an inbound request, which is logged and
// answered with 400, and a duplicate or exhausted CSeq, which fails only the
// one outbound request it occurred on.
type ProtocolError struct {
	Err error
}

func (e *ProtocolError) Error() string { return "engine: protocol error: " + e.Err.Error() }
func (e *ProtocolError) Unwrap() error { return e.Err }

func newProtocolError(err error) *ProtocolError { return &ProtocolError{Err: err} } //errtrace:skip

// TransportError wraps an error returned by the underlying transport's Read
// or Write. It is always fatal to the connection.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "engine: transport error: " + e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

func newTransportError(err error) *TransportError { return &TransportError{Err: err} } //errtrace:skip

// OperationError reports the failure of one request as seen by its caller:
// a timeout, a send attempted on a closed connection, or, when the
// connection fails, the fatal [ProtocolError] or [TransportError] that
// every pending call receives wrapped in it. A timeout or closed-connection
// OperationError never affects other in-flight requests.
type OperationError struct {
	Err error
}

func (e *OperationError) Error() string { return "engine: operation error: " + e.Err.Error() }
func (e *OperationError) Unwrap() error { return e.Err }

func newOperationError(err error) *OperationError { return &OperationError{Err: err} } //errtrace:skip
