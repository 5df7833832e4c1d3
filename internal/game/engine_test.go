package game

import (
	"errors"
	"testing"
)

func newTestBuilder(t *testing.T) *Builder {
	t.Helper()
	return &Builder{Grids: testGrids(t), Alphabet: testAlphabet(), IntN: seeded(7)}
}

// partner returns the other index holding the same symbol as card i.
func partner(t *testing.T, d Deck, i int) int {
	t.Helper()
	for j, c := range d {
		if j != i && c.Symbol == d[i].Symbol {
			return j
		}
	}
	t.Fatalf("card %d has no partner", i)
	return -1
}

// stranger returns an index whose symbol differs from card i.
func stranger(t *testing.T, d Deck, i int) int {
	t.Helper()
	for j, c := range d {
		if c.Symbol != d[i].Symbol {
			return j
		}
	}
	t.Fatalf("no card differs from %d", i)
	return -1
}

func startedSession(t *testing.T, d Difficulty) (*Session, *Builder) {
	t.Helper()
	b := newTestBuilder(t)
	s := NewSession()
	if ok, err := s.Start(b, d); err != nil || !ok {
		t.Fatalf("Start = %v, %v", ok, err)
	}
	return s, b
}

func TestStartOnlyFromIdleOrWon(t *testing.T) {
	s, b := startedSession(t, Easy)
	if s.State != StatePlaying || !s.Started || len(s.Cards) != 12 {
		t.Fatalf("after Start: %+v", s)
	}
	first := append(Deck(nil), s.Cards...)
	s.Click(0)

	ok, err := s.Start(b, Hard)
	if err != nil || ok {
		t.Fatalf("second Start = %v, %v; want no-op", ok, err)
	}
	if s.Difficulty != Easy || len(s.Cards) != 12 || !s.Cards[0].Flipped || s.Cards[0].Symbol != first[0].Symbol {
		t.Fatalf("no-op Start changed the session")
	}
}

func TestMismatchLocksUntilFlipBack(t *testing.T) {
	s, _ := startedSession(t, Easy)
	other := stranger(t, s.Cards, 0)

	if out, err := s.Click(0); err != nil || out != OutcomeFlipped {
		t.Fatalf("first click = %v, %v", out, err)
	}
	if s.Moves != 0 {
		t.Fatalf("a single flip must not count a move")
	}
	if out, _ := s.Click(0); out != OutcomeIgnored {
		t.Fatalf("re-clicking a face-up card = %v, want ignored", out)
	}
	if out, _ := s.Click(other); out != OutcomeMismatched {
		t.Fatalf("second click = %v, want mismatched", out)
	}
	if s.Moves != 1 || s.Matches != 0 || !s.Locked || !s.PendingFlipBack() {
		t.Fatalf("after mismatch: moves=%d matches=%d locked=%v", s.Moves, s.Matches, s.Locked)
	}

	third := partner(t, s.Cards, 0)
	if out, _ := s.Click(third); out != OutcomeIgnored || s.Cards[third].Flipped {
		t.Fatalf("click while locked must be dropped")
	}

	if !s.FlipBack() {
		t.Fatalf("FlipBack should apply")
	}
	if s.Locked || len(s.Flipped) != 0 || s.Cards[0].Flipped || s.Cards[other].Flipped {
		t.Fatalf("after FlipBack: %+v", s)
	}
	if s.FlipBack() {
		t.Fatalf("second FlipBack should be a no-op")
	}
}

func TestMatchAndWin(t *testing.T) {
	s, _ := startedSession(t, Easy)
	done := map[int]bool{}
	pairs := 0
	for i := range s.Cards {
		if done[i] {
			continue
		}
		j := partner(t, s.Cards, i)
		done[i], done[j] = true, true
		if out, _ := s.Click(i); out != OutcomeFlipped {
			t.Fatalf("click %d = %v", i, out)
		}
		out, _ := s.Click(j)
		pairs++
		want := OutcomeMatched
		if pairs == 6 {
			want = OutcomeWon
		}
		if out != want {
			t.Fatalf("pair %d outcome = %v, want %v", pairs, out, want)
		}
	}
	if s.State != StateWon || !s.Locked || s.Matches != 6 || s.Moves != 6 {
		t.Fatalf("after win: state=%s locked=%v matches=%d moves=%d", s.State, s.Locked, s.Matches, s.Moves)
	}
	if s.FlipBack() {
		t.Fatalf("FlipBack must not unlock a won board")
	}
	if out, _ := s.Click(0); out != OutcomeIgnored {
		t.Fatalf("click after win = %v", out)
	}
}

func TestStartAfterWinDealsAgain(t *testing.T) {
	s, b := startedSession(t, Easy)
	s.State, s.Locked = StateWon, true
	if ok, err := s.Start(b, Hard); err != nil || !ok {
		t.Fatalf("Start after win = %v, %v", ok, err)
	}
	if s.State != StatePlaying || s.Locked || len(s.Cards) != 24 || s.Moves != 0 {
		t.Fatalf("after restart from won: %+v", s)
	}
}

func TestRestartResets(t *testing.T) {
	s, b := startedSession(t, Easy)
	s.Click(0)
	s.Click(stranger(t, s.Cards, 0))
	if err := s.Restart(b, Hard); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if s.Moves != 0 || s.Matches != 0 || s.Locked || len(s.Flipped) != 0 || s.Difficulty != Hard || len(s.Cards) != 24 {
		t.Fatalf("after Restart: %+v", s)
	}
	if s.FlipBack() {
		t.Fatalf("nothing should be pending after Restart")
	}
}

func TestRestartFromIdle(t *testing.T) {
	s := NewSession()
	if err := s.Restart(newTestBuilder(t), Easy); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if s.State != StatePlaying {
		t.Fatalf("state = %s, want playing", s.State)
	}
}

func TestClickOutOfRange(t *testing.T) {
	s := NewSession()
	if _, err := s.Click(0); !errors.Is(err, ErrNoSuchCard) {
		t.Fatalf("idle click err = %v", err)
	}
	s, _ = startedSession(t, Easy)
	for _, i := range []int{-1, 12} {
		if _, err := s.Click(i); !errors.Is(err, ErrNoSuchCard) {
			t.Fatalf("Click(%d) err = %v", i, err)
		}
	}
}
