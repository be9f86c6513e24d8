package engine

import (
	"fmt"
	"sync"

	"github.com/ghettovoice/rtsp/internal/errorutil"
	"github.com/ghettovoice/rtsp/message"
)

// pendingResult is delivered to a blocked SendRequest call exactly once.
type pendingResult struct {
	res *message.Response
	err error
}

// pendingEntry is installed by the writer goroutine and consumed by the
// reader goroutine when a matching response arrives (or by either goroutine
// on connection failure).
type pendingEntry struct {
	reply chan pendingResult
}

// pendingTable tracks in-flight requests by CSeq. It is guarded by a mutex,
// the same structure [net/rpc.Client] uses for its own pending-call table:
// the reader consumes entries on response arrival, the writer removes one
// on encode failure, and a cancelled SendRequest abandons its entry from a
// separate goroutine.
type pendingTable struct {
	mu        sync.Mutex
	entries   map[uint32]*pendingEntry
	abandoned map[uint32]struct{}
}

func newPendingTable() *pendingTable {
	return &pendingTable{
		entries:   make(map[uint32]*pendingEntry),
		abandoned: make(map[uint32]struct{}),
	}
}

func (t *pendingTable) install(cseq uint32, e *pendingEntry) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.entries[cseq]; exists {
		return newProtocolError(errorutil.NewWrapperError(ErrDuplicateCSeq, fmt.Sprintf("%d", cseq)))
	}
	t.entries[cseq] = e
	return nil
}

// take removes and returns cseq's entry. discard is true when the slot was
// abandoned by a cancelled caller: the response must be dropped silently,
// not reported as unsolicited.
func (t *pendingTable) take(cseq uint32) (e *pendingEntry, ok, discard bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, gone := t.abandoned[cseq]; gone {
		delete(t.abandoned, cseq)
		return nil, false, true
	}
	e, ok = t.entries[cseq]
	if ok {
		delete(t.entries, cseq)
	}
	return e, ok, false
}

// abandon removes cseq's entry without delivering to it; used when a
// caller's context is cancelled before a response arrives, and on encode
// failure. The CSeq stays allocated but marked, so a response that later
// arrives for it is silently discarded rather than reported as unsolicited.
func (t *pendingTable) abandon(cseq uint32) {
	t.mu.Lock()
	delete(t.entries, cseq)
	t.abandoned[cseq] = struct{}{}
	t.mu.Unlock()
}

// drainAll removes every pending entry and delivers result to each of them.
// Used on connection failure and on Close.
func (t *pendingTable) drainAll(result pendingResult) {
	t.mu.Lock()
	entries := t.entries
	t.entries = make(map[uint32]*pendingEntry)
	t.mu.Unlock()

	for _, e := range entries {
		e.reply <- result
	}
}
