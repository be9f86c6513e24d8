// Package client provides a trivial convenience wrapper around [engine.Connection]
// for callers that only want to dial a server and send requests.
package client

import (
	"context"
	"net"
	"time"

	"github.com/ghettovoice/rtsp/engine"
	"github.com/ghettovoice/rtsp/message"
)

// Client dials a single RTSP connection and exposes it as a request/response
// handle. It registers no [engine.Service] of its own, so inbound requests
// (e.g. PLAY_NOTIFY) are answered with 501 Not Implemented unless Options.Service
// is set.
type Client struct {
	handle *engine.ConnectionHandle
}

// Options configures [Connect]. The zero value is valid and selects all of
// [engine.Options]'s defaults.
type Options struct {
	// Service handles inbound requests on this connection. [engine.EmptyService]
	// is used if nil.
	Service engine.Service
	// WriterQueueSize, MaxConcurrentInbound, and DefaultTimeout are forwarded to
	// [engine.Options] unchanged; see its docs for defaults.
	WriterQueueSize      int
	MaxConcurrentInbound int
	DefaultTimeout       time.Duration
}

// Connect dials address over TCP and starts the connection's reader and
// writer goroutines. The returned Client is ready to send requests; callers
// that need a different transport (TLS, a pre-established net.Conn) should
// use [engine.NewConnection] directly.
func Connect(ctx context.Context, address string, opts *Options) (*Client, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, err
	}
	return NewFromConn(conn, opts), nil
}

// NewFromConn wraps an already-established transport with a Client, starting
// the connection's reader and writer goroutines.
func NewFromConn(conn engine.Transport, opts *Options) *Client {
	c := engine.NewConnection(conn, opts.engineOptions())
	return &Client{handle: c.Handle()}
}

func (o *Options) engineOptions() *engine.Options {
	if o == nil {
		return nil
	}
	return &engine.Options{
		Service:              o.Service,
		WriterQueueSize:      o.WriterQueueSize,
		MaxConcurrentInbound: o.MaxConcurrentInbound,
		DefaultTimeout:       o.DefaultTimeout,
	}
}

// SendRequest sends req and blocks until the matching response arrives, ctx
// is cancelled, or the connection closes.
func (c *Client) SendRequest(ctx context.Context, req *message.Request) (*message.Response, error) {
	return c.handle.SendRequest(ctx, req)
}

// Close performs a graceful shutdown of the underlying connection.
func (c *Client) Close() error {
	return c.handle.Close()
}
