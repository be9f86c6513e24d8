package codec

import (
	"context"

	"github.com/ghettovoice/rtsp/header"

	"github.com/qmuntal/stateless"
)

// Decoder phases, in the order a single message passes through them.
const (
	statePhaseStartLine = "start-line"
	statePhaseHeaders   = "headers"
	statePhaseBody      = "body"
	statePhaseDone      = "done"
)

// Triggers fired as each phase of a message is fully buffered. Each one
// carries the parsed artifacts of the phase just completed as Fire
// arguments, consumed by the destination state's entry action.
const (
	triggerStartLineRead = "start-line-read"
	triggerHeadersRead   = "headers-read"
	triggerBodyRead      = "body-read"
	triggerReset         = "reset"
)

// newDecoderStateMachine builds the phase graph for d. Each state's entry
// action stores the result of the parse step that produced the transition
// into it, so a Decode call that resumes after an [ErrNeedMore] picks up
// exactly where the last one left off instead of re-parsing bytes already
// consumed.
func newDecoderStateMachine(d *Decoder) *stateless.StateMachine {
	sm := stateless.NewStateMachine(statePhaseStartLine)

	sm.Configure(statePhaseStartLine).
		OnEntry(func(_ context.Context, _ ...any) error {
			d.startLine = ""
			d.hdrs = nil
			d.bodyLen = 0
			d.off = 0
			return nil
		}).
		Permit(triggerStartLineRead, statePhaseHeaders)

	sm.Configure(statePhaseHeaders).
		OnEntryFrom(triggerStartLineRead, func(_ context.Context, args ...any) error {
			d.startLine = args[0].(string) //nolint:forcetypeassert
			d.off = args[1].(int)          //nolint:forcetypeassert
			return nil
		}).
		Permit(triggerHeadersRead, statePhaseBody)

	sm.Configure(statePhaseBody).
		OnEntryFrom(triggerHeadersRead, func(_ context.Context, args ...any) error {
			d.hdrs = args[0].(*header.Map) //nolint:forcetypeassert
			d.off = args[1].(int)          //nolint:forcetypeassert
			d.bodyLen = args[2].(int)      //nolint:forcetypeassert
			return nil
		}).
		Permit(triggerBodyRead, statePhaseDone)

	sm.Configure(statePhaseDone).
		OnEntryFrom(triggerBodyRead, func(_ context.Context, args ...any) error {
			d.off = args[0].(int) //nolint:forcetypeassert
			return nil
		}).
		Permit(triggerReset, statePhaseStartLine)

	return sm
}

func (d *Decoder) phase() string {
	state, err := d.sm.State(context.Background())
	if err != nil {
		panic(err)
	}
	return state.(string) //nolint:forcetypeassert
}
