package scores

import (
	"fmt"
	"sync"
	"time"
)

// Ticker is the subset of *time.Ticker the stopwatch needs.
type Ticker interface {
	Chan() <-chan time.Time
	Stop()
}

type realTicker struct{ *time.Ticker }

func (t realTicker) Chan() <-chan time.Time { return t.C }

// NewTicker wraps time.NewTicker.
func NewTicker(d time.Duration) Ticker { return realTicker{time.NewTicker(d)} }

// Stopwatch counts whole seconds from a 1s ticker.
type Stopwatch struct {
	mu        sync.Mutex
	seconds   int
	stop      chan struct{} // nil while stopped
	newTicker func(time.Duration) Ticker
	nextID    int
	onTick    []tickListener
}

type tickListener struct {
	id int
	fn func(int)
}

// NewStopwatch returns a stopped stopwatch at 00:00.
// A nil newTicker uses NewTicker.
func NewStopwatch(newTicker func(time.Duration) Ticker) *Stopwatch {
	if newTicker == nil {
		newTicker = NewTicker
	}
	return &Stopwatch{newTicker: newTicker}
}

// OnTick registers fn to receive the elapsed seconds after every tick.
// The returned func removes it.
func (w *Stopwatch) OnTick(fn func(int)) (cancel func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nextID++
	id := w.nextID
	w.onTick = append(w.onTick, tickListener{id: id, fn: fn})
	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		for i, l := range w.onTick {
			if l.id == id {
				w.onTick = append(w.onTick[:i:i], w.onTick[i+1:]...)
				return
			}
		}
	}
}

// Start begins counting. Calling Start on a running stopwatch is a no-op.
func (w *Stopwatch) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stop != nil {
		return
	}
	stop := make(chan struct{})
	w.stop = stop
	tk := w.newTicker(time.Second)
	go w.run(tk, stop)
}

func (w *Stopwatch) run(tk Ticker, stop chan struct{}) {
	defer tk.Stop()
	for {
		select {
		case <-stop:
			return
		case <-tk.Chan():
			w.mu.Lock()
			if w.stop != stop {
				// Stopped or restarted while this tick was in flight.
				w.mu.Unlock()
				return
			}
			w.seconds++
			n := w.seconds
			ls := append([]tickListener(nil), w.onTick...)
			w.mu.Unlock()
			for _, l := range ls {
				l.fn(n)
			}
		}
	}
}

// Stop freezes the count.
func (w *Stopwatch) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopLocked()
}

func (w *Stopwatch) stopLocked() {
	if w.stop != nil {
		close(w.stop)
		w.stop = nil
	}
}

// Reset stops the stopwatch and zeroes it.
func (w *Stopwatch) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopLocked()
	w.seconds = 0
}

// Running reports whether the stopwatch is counting.
func (w *Stopwatch) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stop != nil
}

// Elapsed returns the counted seconds.
func (w *Stopwatch) Elapsed() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.seconds
}

// Display renders Elapsed as MM:SS.
func (w *Stopwatch) Display() string { return FormatClock(w.Elapsed()) }

// FormatClock renders seconds as zero-padded MM:SS. Minutes are not capped.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
