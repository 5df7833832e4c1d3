package game

import (
	"sync"
	"time"
)

// FlipBackDelay is how long a mismatched pair stays face up.
const FlipBackDelay = 1000 * time.Millisecond

// Scheduler runs fn once after d. The returned stop func cancels a pending run.
type Scheduler func(d time.Duration, fn func()) (stop func() bool)

// AfterFunc schedules on the runtime timer.
func AfterFunc(d time.Duration, fn func()) func() bool {
	return time.AfterFunc(d, fn).Stop
}

// Controller drives one Session: it serialises clicks, owns the flip-back
// timer and publishes lifecycle events.
//
// Listeners run after the transition, in the order transitions happened.
// They must not call back into the Controller.
type Controller struct {
	mu       sync.Mutex
	pubMu    sync.Mutex
	sess     *Session
	builder  *Builder
	selected Difficulty
	bus      Bus

	delay   time.Duration
	after   Scheduler
	cancel  func() bool
	dealGen int
}

// Option configures a Controller.
type Option func(*Controller)

// WithScheduler replaces the flip-back timer (tests use a manual scheduler).
func WithScheduler(s Scheduler) Option { return func(c *Controller) { c.after = s } }

// WithFlipBackDelay overrides FlipBackDelay.
func WithFlipBackDelay(d time.Duration) Option { return func(c *Controller) { c.delay = d } }

// NewController returns a controller with an idle session.
func NewController(b *Builder, opts ...Option) *Controller {
	c := &Controller{
		sess:     NewSession(),
		builder:  b,
		selected: Easy,
		delay:    FlipBackDelay,
		after:    AfterFunc,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Subscribe registers fn for every subsequent event.
func (c *Controller) Subscribe(fn Listener) (unsubscribe func()) {
	return c.bus.Subscribe(fn)
}

// Start deals a deck for d if no game is in play.
func (c *Controller) Start(d Difficulty) (bool, error) {
	c.mu.Lock()
	started, err := c.sess.Start(c.builder, d)
	if err != nil || !started {
		c.mu.Unlock()
		return started, err
	}
	c.selected = c.sess.Difficulty
	c.resetTimerLocked()
	c.publishAndUnlock(c.eventLocked(EventStarted, ""))
	return true, nil
}

// Restart deals a fresh deck for the selected difficulty.
func (c *Controller) Restart() error {
	c.mu.Lock()
	return c.redealAndUnlock(EventRestarted)
}

// ChangeDifficulty selects d and deals a fresh deck for it.
func (c *Controller) ChangeDifficulty(d Difficulty) error {
	c.mu.Lock()
	c.selected = d
	return c.redealAndUnlock(EventDifficultyChanged)
}

func (c *Controller) redealAndUnlock(kind EventKind) error {
	if err := c.sess.Restart(c.builder, c.selected); err != nil {
		c.mu.Unlock()
		return err
	}
	c.selected = c.sess.Difficulty
	c.resetTimerLocked()
	c.publishAndUnlock(c.eventLocked(kind, ""))
	return nil
}

// Click flips card i and resolves the turn.
func (c *Controller) Click(i int) (Outcome, error) {
	c.mu.Lock()
	out, err := c.sess.Click(i)
	if err != nil || out == OutcomeIgnored || out == OutcomeFlipped {
		c.mu.Unlock()
		return out, err
	}

	events := []Event{c.eventLocked(EventMoved, out)}
	switch out {
	case OutcomeMismatched:
		gen := c.dealGen
		c.cancel = c.after(c.delay, func() { c.flipBack(gen) })
	case OutcomeWon:
		events = append(events, c.eventLocked(EventWon, out))
	}
	c.publishAndUnlock(events...)
	return out, nil
}

// flipBack runs from the scheduler. A deal since scheduling makes it stale.
func (c *Controller) flipBack(gen int) {
	c.mu.Lock()
	if gen != c.dealGen || !c.sess.FlipBack() {
		c.mu.Unlock()
		return
	}
	c.cancel = nil
	c.publishAndUnlock(c.eventLocked(EventFlippedBack, ""))
}

// resetTimerLocked drops any pending flip-back from the previous deck.
func (c *Controller) resetTimerLocked() {
	c.dealGen++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Controller) eventLocked(kind EventKind, out Outcome) Event {
	return Event{
		Kind:       kind,
		Difficulty: c.sess.Difficulty,
		Moves:      c.sess.Moves,
		Matches:    c.sess.Matches,
		Outcome:    out,
	}
}

// publishAndUnlock hands the events to listeners in transition order.
// Must be called with c.mu held; releases it.
func (c *Controller) publishAndUnlock(events ...Event) {
	c.pubMu.Lock()
	c.mu.Unlock()
	defer c.pubMu.Unlock()
	for _, e := range events {
		c.bus.Publish(e)
	}
}

// CardView is a card as the page may see it: symbols stay hidden until the
// card is face up or matched.
type CardView struct {
	Index   int    `json:"index"`
	Symbol  string `json:"symbol,omitempty"`
	Flipped bool   `json:"flipped"`
	Matched bool   `json:"matched"`
}

// View is a read-only snapshot of the board.
type View struct {
	State      State      `json:"state"`
	Difficulty Difficulty `json:"difficulty"`
	Grid       Grid       `json:"grid"`
	Moves      int        `json:"moves"`
	Matches    int        `json:"matches"`
	Pairs      int        `json:"pairs"`
	Locked     bool       `json:"locked"`
	Won        bool       `json:"won"`
	Cards      []CardView `json:"cards"`
}

// View snapshots the current board.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.sess
	v := View{
		State:      s.State,
		Difficulty: s.Difficulty,
		Grid:       s.Grid,
		Moves:      s.Moves,
		Matches:    s.Matches,
		Pairs:      s.Grid.Pairs(),
		Locked:     s.Locked,
		Won:        s.State == StateWon,
		Cards:      make([]CardView, len(s.Cards)),
	}
	if v.Difficulty == "" {
		v.Difficulty = c.selected
	}
	for i, card := range s.Cards {
		cv := CardView{Index: card.Index, Flipped: card.Flipped, Matched: card.Matched}
		if card.Flipped || card.Matched {
			cv.Symbol = card.Symbol
		}
		v.Cards[i] = cv
	}
	return v
}
