package engine

import (
	"context"
	"time"

	"github.com/ghettovoice/rtsp/message"
)

// ConnectionHandle is the caller-facing view of a [Connection]: cheap to
// copy, safe for concurrent use from any goroutine, and never holds a lock
// across a blocking operation.
type ConnectionHandle struct {
	c *Connection
}

// SendRequest enqueues req for sending, assigns it the connection's next
// CSeq, and blocks until the matching response arrives, ctx is cancelled,
// or the connection closes. The caller must not set req's CSeq; it is
// overwritten.
//
// If ctx carries no deadline of its own, the connection's configured
// default timeout (if any) is applied. Expiry of that default timeout is
// reported as an [OperationError] wrapping [ErrTimeout]; expiry or
// cancellation of a deadline the caller set on ctx is reported as ctx's own
// error.
func (h *ConnectionHandle) SendRequest(ctx context.Context, req *message.Request) (*message.Response, error) {
	defaultApplied := false
	if timeout := h.c.svcTimeout(); timeout > 0 {
		if _, ok := ctx.Deadline(); !ok {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
			defaultApplied = true
		}
	}
	return h.c.sendRequest(ctx, req, defaultApplied)
}

// Close performs a graceful shutdown: no further sends are accepted,
// already-queued writer items drain, then the transport closes. It is safe
// to call more than once; only the first call's error is returned by later
// calls as well.
func (h *ConnectionHandle) Close() error { return h.c.close() }

func (c *Connection) svcTimeout() time.Duration { return c.defaultTimeout }
