package game

import "sync"

// EventKind names a lifecycle transition.
type EventKind string

const (
	EventStarted           EventKind = "started"
	EventRestarted         EventKind = "restarted"
	EventDifficultyChanged EventKind = "difficulty_changed"
	EventMoved             EventKind = "moved"
	EventFlippedBack       EventKind = "flipped_back"
	EventWon               EventKind = "won"
)

// Event is published after the transition it describes has been applied.
type Event struct {
	Kind       EventKind  `json:"type"`
	Difficulty Difficulty `json:"difficulty"`
	Moves      int        `json:"moves"`
	Matches    int        `json:"matches"`
	Outcome    Outcome    `json:"outcome,omitempty"`
}

// Listener receives events.
type Listener func(Event)

// Bus is an ordered observer list. Listeners run in subscription order.
type Bus struct {
	mu        sync.Mutex
	next      int
	listeners []subscription
}

type subscription struct {
	id int
	fn Listener
}

// Subscribe adds fn and returns a func that removes it.
func (b *Bus) Subscribe(fn Listener) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	id := b.next
	b.listeners = append(b.listeners, subscription{id: id, fn: fn})
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.listeners {
			if s.id == id {
				b.listeners = append(b.listeners[:i:i], b.listeners[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers e to a snapshot of the current listeners.
func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	subs := append([]subscription(nil), b.listeners...)
	b.mu.Unlock()
	for _, s := range subs {
		s.fn(e)
	}
}
