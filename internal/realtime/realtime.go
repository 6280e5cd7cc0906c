// Package realtime carries the best-effort broadcast channel: handlers
// publish events ("bid.placed", "bid.countered", "message.sent") and
// whatever is subscribed on the other side fans them out to connected
// sessions. Delivery is fire-and-forget; a failed publish is logged and
// never fails the request that produced it.
package realtime

import (
	"context"
	"encoding/json"
	"sync"
)

// Publisher is the broadcast capability handlers depend on.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}

// Event is a captured broadcast, used by the in-memory broker.
type Event struct {
	Topic   string
	Payload json.RawMessage
}

// MemoryBroker is an in-process Publisher for tests and single-node runs
// without Redis. It records events and notifies subscribers.
type MemoryBroker struct {
	mu     sync.Mutex
	events []Event
	subs   []chan Event
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{}
}

func (b *MemoryBroker) Publish(ctx context.Context, topic string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	ev := Event{Topic: topic, Payload: body}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, ev)
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			// slow subscriber, drop: broadcast is best-effort
		}
	}
	return nil
}

// Subscribe returns a buffered channel receiving future events.
func (b *MemoryBroker) Subscribe() <-chan Event {
	ch := make(chan Event, 16)
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, ch)
	return ch
}

// Events returns a copy of everything published so far.
func (b *MemoryBroker) Events() []Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Event, len(b.events))
	copy(out, b.events)
	return out
}
