package events

import (
	"context"
	"time"

	EventBus "github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
)

const (
	TopicSessionEstablished = "session:established"
	TopicSessionEnded       = "session:ended"
)

// SessionEvent describes a change of the visitor's session.
// FlowID is set when the change was produced inside an auth flow.
type SessionEvent struct {
	FlowID  string
	Subject string
	At      time.Time
}

// Bus is the in-process session event stream. Handlers run synchronously
// on the publishing goroutine.
type Bus struct {
	bus EventBus.Bus
}

func New() *Bus {
	return &Bus{bus: EventBus.New()}
}

// Publish emits ev on topic.
func (b *Bus) Publish(topic string, ev SessionEvent) {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	b.bus.Publish(topic, ev)
}

// Subscribe registers fn for topic for the lifetime of the bus.
func (b *Bus) Subscribe(topic string, fn func(SessionEvent)) error {
	if err := b.bus.Subscribe(topic, fn); err != nil {
		return errors.Wrapf(err, "subscribe %s", topic)
	}
	return nil
}

// HasSubscribers reports whether anything listens on topic.
func (b *Bus) HasSubscribers(topic string) bool {
	return b.bus.HasCallback(topic)
}

type flowKey struct{}

// WithFlowID tags ctx with the auth flow that is acting on the session.
func WithFlowID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, flowKey{}, id)
}

// FlowIDFromContext returns the flow id stored by WithFlowID.
func FlowIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(flowKey{}).(string)
	return id, ok && id != ""
}
