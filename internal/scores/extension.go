package scores

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/devfolio/internal/game"
)

// Subscriber is the part of game.Controller the extension observes.
type Subscriber interface {
	Subscribe(fn game.Listener) (unsubscribe func())
}

// Result is the outcome of offering a finished game to the store.
type Result struct {
	Difficulty string `json:"difficulty"`
	Moves      int    `json:"moves"`
	Elapsed    string `json:"elapsed"`
	Best       int    `json:"best"`
	Improved   bool   `json:"improved"`
}

// Extension runs the game timer and keeps best scores, driven only by the
// controller's events.
type Extension struct {
	store   Store
	watch   *Stopwatch
	timeout time.Duration

	mu   sync.Mutex
	last *Result

	unsubscribe func()
}

// Attach subscribes a new Extension to c.
//
//   - started / restarted / difficulty_changed: reset then start the stopwatch.
//   - won: stop the stopwatch and offer the move count to st.
func Attach(c Subscriber, st Store, w *Stopwatch) *Extension {
	e := &Extension{store: st, watch: w, timeout: 5 * time.Second}
	e.unsubscribe = c.Subscribe(e.handle)
	return e
}

func (e *Extension) handle(ev game.Event) {
	switch ev.Kind {
	case game.EventStarted, game.EventRestarted, game.EventDifficultyChanged:
		e.watch.Reset()
		e.watch.Start()
	case game.EventWon:
		e.watch.Stop()
		e.record(ev)
	}
}

func (e *Extension) record(ev game.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()

	d := string(ev.Difficulty)
	best, improved, err := e.store.Offer(ctx, d, ev.Moves)
	if err != nil {
		log.Error().Err(err).Str("difficulty", d).Int("moves", ev.Moves).Msg("offer best score")
		return
	}
	r := &Result{
		Difficulty: d,
		Moves:      ev.Moves,
		Elapsed:    e.watch.Display(),
		Best:       best,
		Improved:   improved,
	}
	if improved {
		log.Info().Str("difficulty", d).Int("moves", ev.Moves).Msg("new best score")
	}
	e.mu.Lock()
	e.last = r
	e.mu.Unlock()
}

// Last returns the most recent finished-game result, or nil.
func (e *Extension) Last() *Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.last == nil {
		return nil
	}
	r := *e.last
	return &r
}

// Stopwatch exposes the running timer.
func (e *Extension) Stopwatch() *Stopwatch { return e.watch }

// Close detaches from the controller and stops the timer.
func (e *Extension) Close() {
	e.unsubscribe()
	e.watch.Stop()
}
