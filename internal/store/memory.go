// internal/store/memory.go
//
// In-memory registry of live memory-game sessions.
// Each entry bundles a game controller with the score/timer extension
// attached to it.
//
// Characteristics:
//   - Entries are keyed by a UUID session id.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Sweep drops entries idle longer than a TTL and stops their timers.
//   - State is lost when the process restarts; best scores are not kept here.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/devfolio/internal/game"
	"github.com/robalobadob/devfolio/internal/scores"
)

// ErrNotFound is returned for unknown or expired session ids.
var ErrNotFound = errors.New("store: session not found")

// Entry is one live game session.
type Entry struct {
	ID     string
	Game   *game.Controller
	Scores *scores.Extension

	mu      sync.Mutex
	touched time.Time
}

func (e *Entry) touch(now time.Time) {
	e.mu.Lock()
	e.touched = now
	e.mu.Unlock()
}

func (e *Entry) idleSince() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.touched
}

// Store defines the persistence interface for game sessions.
type Store interface {
	// Create builds and registers a new idle session.
	Create(ctx context.Context) (*Entry, error)

	// Get retrieves a session by id and marks it as used.
	Get(ctx context.Context, id string) (*Entry, error)

	// Delete removes a session and stops its timer.
	Delete(ctx context.Context, id string) error

	// Sweep removes sessions idle for longer than ttl; returns how many.
	Sweep(ctx context.Context, ttl time.Duration) int
}

// Factory wires a controller and extension for a new session.
type Factory func() (*game.Controller, *scores.Extension)

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu      sync.RWMutex      // guards entries map
	entries map[string]*Entry // keyed by Entry.ID
	factory Factory
	now     func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore(f Factory) Store {
	return &memory{entries: make(map[string]*Entry), factory: f, now: time.Now}
}

func (m *memory) Create(ctx context.Context) (*Entry, error) {
	c, ext := m.factory()
	e := &Entry{ID: uuid.NewString(), Game: c, Scores: ext, touched: m.now()}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[e.ID] = e
	return e, nil
}

func (m *memory) Get(ctx context.Context, id string) (*Entry, error) {
	m.mu.RLock()
	e, ok := m.entries[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	e.touch(m.now())
	return e, nil
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	e, ok := m.entries[id]
	delete(m.entries, id)
	m.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	e.Scores.Close()
	return nil
}

func (m *memory) Sweep(ctx context.Context, ttl time.Duration) int {
	cutoff := m.now().Add(-ttl)
	var stale []*Entry
	m.mu.Lock()
	for id, e := range m.entries {
		if e.idleSince().Before(cutoff) {
			stale = append(stale, e)
			delete(m.entries, id)
		}
	}
	m.mu.Unlock()
	for _, e := range stale {
		e.Scores.Close()
	}
	return len(stale)
}
