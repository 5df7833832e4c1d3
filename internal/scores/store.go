// internal/scores/store.go
//
// Best-score records for the memory game.
// One integer per difficulty: the fewest moves needed to win. A record is
// replaced only by a strictly lower move count.

package scores

import (
	"context"
	"sync"
)

// KeyPrefix is prepended to the difficulty to form the storage key.
const KeyPrefix = "mg_best_"

// Key returns the storage key for difficulty d.
func Key(d string) string { return KeyPrefix + d }

// Store persists best move counts.
type Store interface {
	// Best returns the stored record; ok is false when none exists.
	Best(ctx context.Context, difficulty string) (moves int, ok bool, err error)

	// Offer records moves if no record exists or moves is strictly lower.
	// It returns the record after the call and whether it changed.
	Offer(ctx context.Context, difficulty string, moves int) (best int, improved bool, err error)
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu   sync.Mutex
	best map[string]int
}

// NewMemoryStore constructs a Store that forgets everything on restart.
func NewMemoryStore() Store {
	return &memory{best: make(map[string]int)}
}

func (m *memory) Best(ctx context.Context, difficulty string) (int, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.best[Key(difficulty)]
	return v, ok, nil
}

func (m *memory) Offer(ctx context.Context, difficulty string, moves int) (int, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := Key(difficulty)
	if cur, ok := m.best[k]; ok && moves >= cur {
		return cur, false, nil
	}
	m.best[k] = moves
	return moves, true, nil
}

// Bests reads the records for each difficulty; unset entries are nil.
func Bests(ctx context.Context, st Store, difficulties []string) (map[string]*int, error) {
	out := make(map[string]*int, len(difficulties))
	for _, d := range difficulties {
		v, ok, err := st.Best(ctx, d)
		if err != nil {
			return nil, err
		}
		if ok {
			out[d] = &v
		} else {
			out[d] = nil
		}
	}
	return out, nil
}
