package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ghettovoice/rtsp/codec"
	"github.com/ghettovoice/rtsp/header"
	"github.com/ghettovoice/rtsp/header/typed"
	"github.com/ghettovoice/rtsp/message"
)

// Transport is what a [Connection] reads and writes. A [net.Conn] satisfies
// it directly.
type Transport interface {
	io.Reader
	io.Writer
	io.Closer
}

// outboundItem is one unit of writer work: either a caller's request
// (reply is delivered to the caller) or an already-built response to an
// inbound request (reply is nil).
type outboundItem struct {
	req   *message.Request
	res   *message.Response
	cseq  chan uint32 // buffered 1; written once the writer installs the entry
	reply chan pendingResult
}

// Connection owns one bidirectional transport and drives it with a reader
// goroutine and a writer goroutine. Use [NewConnection] to obtain one and
// [Connection.Handle] to get the caller-facing [ConnectionHandle].
type Connection struct {
	transport Transport
	svc       Service
	dec       *codec.Decoder
	enc       *codec.Encoder
	pending   *pendingTable
	logger    *slog.Logger

	outbound    chan *outboundItem
	responseOut chan *outboundItem
	inboundSem  chan struct{}

	cseq uint32 // touched only by the writer goroutine

	defaultTimeout time.Duration

	closing     chan struct{}
	done        chan struct{}
	closingOnce sync.Once
	closeOnce   sync.Once
	closeErr    atomic.Pointer[error]

	writerDone chan struct{}
}

// NewConnection starts a reader and a writer goroutine over transport and
// returns the Connection driving them. Call [Connection.Handle] to obtain a
// [ConnectionHandle] for sending requests and shutting down.
func NewConnection(transport Transport, opts *Options) *Connection {
	c := &Connection{
		transport:      transport,
		svc:            opts.service(),
		dec:            codec.NewDecoder(),
		enc:            codec.NewEncoder(),
		pending:        newPendingTable(),
		logger:         opts.logger(),
		outbound:       make(chan *outboundItem, opts.writerQueueSize()),
		responseOut:    make(chan *outboundItem, opts.writerQueueSize()),
		inboundSem:     make(chan struct{}, opts.maxConcurrentInbound()),
		defaultTimeout: opts.defaultTimeout(),
		closing:        make(chan struct{}),
		done:           make(chan struct{}),
		writerDone:     make(chan struct{}),
	}

	go c.writeLoop()
	go c.readLoop()

	return c
}

// Handle returns a [ConnectionHandle] for c.
func (c *Connection) Handle() *ConnectionHandle { return &ConnectionHandle{c: c} }

// fail terminates the connection due to a fatal transport or protocol
// error: it closes the transport, wakes both goroutines via done, and
// completes every pending call with an [OperationError] wrapping err.
func (c *Connection) fail(err error) {
	c.closeOnce.Do(func() {
		c.closeErr.Store(&err)
		close(c.done)
		c.transport.Close() //nolint:errcheck
		c.pending.drainAll(pendingResult{err: newOperationError(err)})
		c.logger.Error("connection failed", "error", err)
	})
}

// close performs a graceful shutdown: no more sends are accepted, items
// already queued drain, then the transport closes. The outbound channel is
// never closed, only signalled via closing: callers may still be blocked
// sending on it, and a send on a closed channel would panic.
func (c *Connection) close() error {
	c.closingOnce.Do(func() { close(c.closing) })
	// Wait for the writer outside closeOnce: a write error during the drain
	// calls fail, which needs closeOnce itself.
	<-c.writerDone
	c.closeOnce.Do(func() {
		c.transport.Close() //nolint:errcheck
		err := error(newOperationError(ErrConnectionClosed))
		c.closeErr.Store(&err)
		close(c.done)
		c.pending.drainAll(pendingResult{err: newOperationError(ErrConnectionClosed)})
	})
	if p := c.closeErr.Load(); p != nil {
		if errors.Is(*p, ErrConnectionClosed) {
			return nil
		}
		return *p
	}
	return nil
}

// sendRequest enqueues req and waits for its response. defaultApplied tells
// it whether ctx's deadline (if any) came from the connection's own default
// timeout rather than the caller, so expiry can be reported as
// [ErrTimeout] instead of surfacing the bare context error; see
// [ConnectionHandle.SendRequest].
func (c *Connection) sendRequest(ctx context.Context, req *message.Request, defaultApplied bool) (*message.Response, error) {
	if req.Headers.Map == nil {
		req.Headers = message.NewHeaders()
	}

	item := &outboundItem{
		req:   req,
		cseq:  make(chan uint32, 1),
		reply: make(chan pendingResult, 1),
	}

	// Checked first so that a closed or closing connection is never raced
	// against free space in the outbound queue.
	select {
	case <-c.closing:
		return nil, newOperationError(ErrConnectionClosed)
	case <-c.done:
		return nil, newOperationError(ErrConnectionClosed)
	default:
	}

	select {
	case c.outbound <- item:
	case <-c.closing:
		return nil, newOperationError(ErrConnectionClosed)
	case <-c.done:
		return nil, newOperationError(ErrConnectionClosed)
	case <-ctx.Done():
		return nil, c.ctxErr(ctx, defaultApplied)
	}

	select {
	case res := <-item.reply:
		if res.err != nil {
			return nil, res.err
		}
		return res.res, nil
	case <-ctx.Done():
		// The writer may not have assigned a CSeq yet; wait for it off the
		// caller's goroutine, then abandon the slot so a late response is
		// discarded instead of reported as unsolicited.
		go func() {
			select {
			case cseq, ok := <-item.cseq:
				if ok {
					c.pending.abandon(cseq)
				}
			case <-c.done:
			}
		}()
		return nil, c.ctxErr(ctx, defaultApplied)
	case <-c.done:
		return nil, newOperationError(ErrConnectionClosed)
	}
}

// ctxErr reports ctx's cancellation as an [OperationError] wrapping
// [ErrTimeout] if it was the connection's own default timeout that expired,
// or ctx's own error otherwise.
func (c *Connection) ctxErr(ctx context.Context, defaultApplied bool) error {
	if defaultApplied && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return newOperationError(ErrTimeout)
	}
	return ctx.Err()
}

// writeLoop is the sole writer of the transport. It assigns CSeqs to
// outbound requests in the order it receives them and serializes every
// write, so bytes for different requests never interleave on the wire.
func (c *Connection) writeLoop() {
	defer close(c.writerDone)

	for {
		select {
		case item := <-c.outbound:
			c.writeRequest(item)
		case item := <-c.responseOut:
			c.writeResponse(item)
		case <-c.closing:
			c.drainQueues()
			return
		case <-c.done:
			return
		}
	}
}

// drainQueues flushes items already accepted onto either queue during a
// graceful shutdown, then lets the writer exit.
func (c *Connection) drainQueues() {
	for {
		select {
		case item := <-c.outbound:
			c.writeRequest(item)
		case item := <-c.responseOut:
			c.writeResponse(item)
		default:
			return
		}
	}
}

func (c *Connection) writeRequest(item *outboundItem) {
	c.cseq++
	if c.cseq == 0 || c.cseq > typed.MaxCSeq {
		close(item.cseq)
		item.reply <- pendingResult{err: newProtocolError(errors.New("CSeq space exhausted"))}
		return
	}
	cseq := c.cseq
	item.req.Headers.SetCSeq(typed.CSeq(cseq))

	if err := c.pending.install(cseq, &pendingEntry{reply: item.reply}); err != nil {
		close(item.cseq)
		item.reply <- pendingResult{err: err}
		return
	}
	item.cseq <- cseq
	close(item.cseq)

	if err := c.enc.Encode(c.transport, item.req); err != nil {
		c.pending.abandon(cseq)
		terr := newTransportError(err)
		item.reply <- pendingResult{err: terr}
		c.fail(terr)
	}
}

func (c *Connection) writeResponse(item *outboundItem) {
	if err := c.enc.Encode(c.transport, item.res); err != nil {
		c.fail(newTransportError(err))
	}
}

// readLoop is the connection's sole reader. It decodes one message at a
// time, reading more bytes from the transport whenever the decoder reports
// [codec.ErrNeedMore].
func (c *Connection) readLoop() {
	buf := make([]byte, 4096)
	for {
		msg, err := c.dec.Decode()
		if err != nil {
			if errors.Is(err, codec.ErrNeedMore) {
				n, rerr := c.transport.Read(buf)
				if rerr != nil {
					c.fail(newTransportError(rerr))
					return
				}
				c.dec.Write(buf[:n]) //nolint:errcheck
				continue
			}
			c.fail(newProtocolError(err))
			return
		}

		switch m := msg.(type) {
		case *message.Response:
			c.handleResponse(m)
		case *message.Request:
			if !c.handleRequest(m) {
				return
			}
		}
	}
}

func (c *Connection) handleResponse(res *message.Response) {
	cseq, err := res.Headers.CSeq()
	if err != nil {
		c.fail(newProtocolError(err))
		return
	}

	entry, ok, discard := c.pending.take(uint32(cseq))
	if discard {
		c.logger.Debug("discarding late response for a cancelled request", "cseq", uint32(cseq))
		return
	}
	if !ok {
		c.fail(newProtocolError(fmt.Errorf("%w: cseq %d", ErrUnsolicitedResponse, cseq)))
		return
	}
	entry.reply <- pendingResult{res: res}
}

// handleRequest dispatches an inbound request to the configured Service in
// its own goroutine, bounded by the inbound semaphore. It returns false if
// the connection has closed while waiting for a semaphore slot.
func (c *Connection) handleRequest(req *message.Request) bool {
	cseq, err := req.Headers.CSeq()
	if err != nil {
		c.logger.Warn("inbound request rejected", "error", newProtocolError(errors.Join(ErrMissingCSeq, err)))
		res := message.NewResponseTo(req, message.StatusBadRequest, nil)
		// No CSeq to echo; a fabricated one could falsely correlate with a
		// request the peer actually has in flight.
		res.Headers.Del(header.CSeq)
		c.enqueueResponse(res)
		return true
	}

	select {
	case c.inboundSem <- struct{}{}:
	case <-c.done:
		return false
	}

	go func() {
		defer func() { <-c.inboundSem }()
		defer func() {
			if r := recover(); r != nil {
				c.fail(newProtocolError(fmt.Errorf("%w: %v", ErrServicePanicked, r)))
			}
		}()

		res := c.svc.Serve(context.Background(), req)
		if res == nil {
			res = message.NewResponseTo(req, message.StatusInternalServerError, nil)
		}
		res.Headers.SetCSeq(cseq)
		c.enqueueResponse(res)
	}()

	return true
}

func (c *Connection) enqueueResponse(res *message.Response) {
	item := &outboundItem{res: res}
	select {
	case c.responseOut <- item:
	case <-c.done:
	}
}
