package scores

import (
	"testing"
	"time"
)

type fakeTicker struct {
	c       chan time.Time
	stopped chan struct{}
}

func (f *fakeTicker) Chan() <-chan time.Time { return f.c }
func (f *fakeTicker) Stop() {
	select {
	case <-f.stopped:
	default:
		close(f.stopped)
	}
}

// fakeClock hands out tickers the test can drive.
type fakeClock struct {
	tickers chan *fakeTicker
}

func newFakeClock() *fakeClock { return &fakeClock{tickers: make(chan *fakeTicker, 8)} }

func (c *fakeClock) newTicker(time.Duration) Ticker {
	tk := &fakeTicker{c: make(chan time.Time), stopped: make(chan struct{})}
	c.tickers <- tk
	return tk
}

func (c *fakeClock) next(t *testing.T) *fakeTicker {
	t.Helper()
	select {
	case tk := <-c.tickers:
		return tk
	case <-time.After(time.Second):
		t.Fatalf("no ticker created")
		return nil
	}
}

// tickN delivers n ticks and waits for each to be counted.
func tickN(t *testing.T, tk *fakeTicker, counted <-chan int, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		tk.c <- time.Now()
		select {
		case <-counted:
		case <-time.After(time.Second):
			t.Fatalf("tick %d not counted", i+1)
		}
	}
}

func TestStopwatchCounts(t *testing.T) {
	clock := newFakeClock()
	w := NewStopwatch(clock.newTicker)
	counted := make(chan int, 1)
	w.OnTick(func(n int) { counted <- n })

	if w.Display() != "00:00" || w.Running() {
		t.Fatalf("new stopwatch should be stopped at 00:00")
	}
	w.Start()
	w.Start()
	tk := clock.next(t)
	tickN(t, tk, counted, 3)
	if w.Elapsed() != 3 || w.Display() != "00:03" {
		t.Fatalf("after 3 ticks: %d %s", w.Elapsed(), w.Display())
	}
	select {
	case <-clock.tickers:
		t.Fatalf("second Start must not create another ticker")
	default:
	}

	w.Stop()
	select {
	case <-tk.stopped:
	case <-time.After(time.Second):
		t.Fatalf("ticker not stopped")
	}
	if w.Running() || w.Elapsed() != 3 {
		t.Fatalf("Stop should freeze the count")
	}

	w.Reset()
	w.Start()
	tk = clock.next(t)
	tickN(t, tk, counted, 1)
	if w.Elapsed() != 1 {
		t.Fatalf("after reset and one tick: %d", w.Elapsed())
	}
	w.Reset()
	if w.Elapsed() != 0 || w.Running() {
		t.Fatalf("Reset should stop and zero")
	}
}

func TestFormatClock(t *testing.T) {
	tests := map[int]string{
		0:    "00:00",
		9:    "00:09",
		61:   "01:01",
		3599: "59:59",
		6000: "100:00",
		-5:   "00:00",
	}
	for in, want := range tests {
		if got := FormatClock(in); got != want {
			t.Fatalf("FormatClock(%d) = %q, want %q", in, got, want)
		}
	}
}
