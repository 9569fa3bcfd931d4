// Package events announces changes to the user's entries so that views
// showing derived data (dashboard, credit, summaries) can refresh.
package events

import (
	"context"
	"errors"
	"sync"
	"time"
)

type Kind string

const EntriesChanged Kind = "entries-changed"

type Event struct {
	Kind     Kind      `json:"kind"`
	Source   string    `json:"source"`
	EntityID string    `json:"entityId,omitempty"`
	Month    string    `json:"month,omitempty"`
	At       time.Time `json:"at"`
}

// NewEntriesChanged stamps an entries-changed event with the current time.
func NewEntriesChanged(source, entityID string) Event {
	return Event{Kind: EntriesChanged, Source: source, EntityID: entityID, At: time.Now().UTC()}
}

type Notifier interface {
	Notify(ctx context.Context, e Event) error
}

type NotifierFunc func(ctx context.Context, e Event) error

func (f NotifierFunc) Notify(ctx context.Context, e Event) error { return f(ctx, e) }

// Nop drops every event.
var Nop Notifier = NotifierFunc(func(context.Context, Event) error { return nil })

// Multi notifies every notifier and joins their errors.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, e Event) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Broadcaster fans events out to in-process subscribers. Notify never
// blocks: a subscriber whose buffer is full misses the event.
type Broadcaster struct {
	mu     sync.RWMutex
	subs   map[int]chan Event
	nextID int
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int]chan Event)}
}

// Subscribe returns a channel of events and a function that unsubscribes and
// closes it.
func (b *Broadcaster) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Event, buffer)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(ch)
		})
	}
}

func (b *Broadcaster) Notify(_ context.Context, e Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
	return nil
}
