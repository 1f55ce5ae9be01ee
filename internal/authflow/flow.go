package authflow

import (
	"context"
	"sync"

	"github.com/diewo77/techfix/internal/events"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// State of a single auth screen submission.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateEstablished
	StateFailed
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateEstablished:
		return "established"
	case StateFailed:
		return "failed"
	default:
		return "closed"
	}
}

var ErrFlowClosed = errors.New("authflow: flow closed")

// Flow follows one submission of the auth screen. It moves to
// StateEstablished on the first session-established event carrying its id
// and ignores any later one.
type Flow struct {
	id     string
	mode   Mode
	broker *Broker

	mu    sync.Mutex
	state State
	event *events.SessionEvent
}

func (f *Flow) ID() string { return f.id }
func (f *Flow) Mode() Mode { return f.mode }

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Bind tags ctx so that sessions established with it are routed to f.
func (f *Flow) Bind(ctx context.Context) context.Context {
	return events.WithFlowID(ctx, f.id)
}

// Begin marks the start of a submission. A failed flow may begin again.
func (f *Flow) Begin() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch f.state {
	case StateIdle, StateFailed:
		f.state = StateSubmitting
		return nil
	case StateClosed:
		return ErrFlowClosed
	}
	return errors.Errorf("authflow: cannot begin from %s", f.state)
}

// Fail returns a submitting flow to a retryable state.
func (f *Flow) Fail() {
	f.mu.Lock()
	if f.state == StateSubmitting {
		f.state = StateFailed
	}
	f.mu.Unlock()
}

// Established consumes the session-established event. It reports false
// when no event arrived or when it was already consumed.
func (f *Flow) Established() (events.SessionEvent, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.event == nil {
		return events.SessionEvent{}, false
	}
	ev := *f.event
	f.event = nil
	return ev, true
}

// Close unregisters the flow. It is safe to call more than once.
func (f *Flow) Close() {
	f.mu.Lock()
	f.state = StateClosed
	f.event = nil
	f.mu.Unlock()
	f.broker.remove(f.id)
}

func (f *Flow) deliver(ev events.SessionEvent) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateSubmitting {
		return false
	}
	f.state = StateEstablished
	f.event = &ev
	return true
}

// Broker owns the single bus subscription and routes events to open flows.
type Broker struct {
	mu    sync.Mutex
	flows map[string]*Flow
}

// NewBroker subscribes to session-established events on bus.
func NewBroker(bus *events.Bus) (*Broker, error) {
	b := &Broker{flows: make(map[string]*Flow)}
	if err := bus.Subscribe(events.TopicSessionEstablished, b.route); err != nil {
		return nil, err
	}
	return b, nil
}

// Open registers a new idle flow in mode.
func (b *Broker) Open(mode Mode) *Flow {
	f := &Flow{id: uuid.NewString(), mode: mode, broker: b}
	b.mu.Lock()
	b.flows[f.id] = f
	b.mu.Unlock()
	return f
}

// Len reports how many flows are registered.
func (b *Broker) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.flows)
}

func (b *Broker) route(ev events.SessionEvent) {
	if ev.FlowID == "" {
		return
	}
	b.mu.Lock()
	f, ok := b.flows[ev.FlowID]
	b.mu.Unlock()
	if ok {
		f.deliver(ev)
	}
}

func (b *Broker) remove(id string) {
	b.mu.Lock()
	delete(b.flows, id)
	b.mu.Unlock()
}
