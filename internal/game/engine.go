// internal/game/engine.go
//
// Transition functions for a single memory game session.
// Responsibilities:
//   - Deal a new deck on start/restart/difficulty change and reset counters.
//   - Flip cards, count moves, detect matches and the win.
//   - Lock the board on a mismatch until FlipBack is applied.
//
// Notes:
//   - Session carries no timers; the Controller decides when FlipBack runs.
//   - A comparison only happens once exactly two cards are face up.
package game

// NewSession returns an idle session.
func NewSession() *Session {
	return &Session{State: StateIdle}
}

// Start deals a deck for d unless a game is already in play.
// Returns false when the call was a no-op.
func (s *Session) Start(b *Builder, d Difficulty) (bool, error) {
	if s.State == StatePlaying {
		return false, nil
	}
	return true, s.deal(b, d)
}

// Restart deals a fresh deck for d from any state.
func (s *Session) Restart(b *Builder, d Difficulty) error {
	return s.deal(b, d)
}

func (s *Session) deal(b *Builder, d Difficulty) error {
	d, g, deck, err := b.Build(d)
	if err != nil {
		return err
	}
	s.Difficulty = d
	s.Grid = g
	s.Cards = deck
	s.Moves = 0
	s.Matches = 0
	s.Locked = false
	s.Flipped = nil
	s.Started = true
	s.State = StatePlaying
	return nil
}

// Click flips card i.
//
// Clicks are ignored while the board is locked (pending flip-back or won)
// and on cards that are already face up or matched. The second flip of a
// turn counts a move and either records a match or locks the board.
func (s *Session) Click(i int) (Outcome, error) {
	if i < 0 || i >= len(s.Cards) {
		return OutcomeIgnored, ErrNoSuchCard
	}
	if s.Locked {
		return OutcomeIgnored, nil
	}
	c := &s.Cards[i]
	if c.Flipped || c.Matched {
		return OutcomeIgnored, nil
	}
	c.Flipped = true
	s.Flipped = append(s.Flipped, i)

	if len(s.Flipped) != 2 {
		return OutcomeFlipped, nil
	}
	s.Moves++
	return s.compare(), nil
}

// compare resolves a two-card turn.
func (s *Session) compare() Outcome {
	if len(s.Flipped) < 2 {
		return OutcomeFlipped
	}
	a, b := &s.Cards[s.Flipped[0]], &s.Cards[s.Flipped[1]]
	if a.Symbol != b.Symbol {
		s.Locked = true
		return OutcomeMismatched
	}
	a.Matched, b.Matched = true, true
	s.Matches++
	s.Flipped = nil
	if s.Matches == s.Grid.Pairs() {
		s.State = StateWon
		s.Locked = true
		return OutcomeWon
	}
	return OutcomeMatched
}

// FlipBack turns the mismatched pair face down and unlocks the board.
// Returns false if there was nothing pending.
func (s *Session) FlipBack() bool {
	if s.State != StatePlaying || !s.Locked || len(s.Flipped) == 0 {
		return false
	}
	for _, i := range s.Flipped {
		s.Cards[i].Flipped = false
	}
	s.Flipped = nil
	s.Locked = false
	return true
}

// PendingFlipBack reports whether a mismatched pair is waiting to turn over.
func (s *Session) PendingFlipBack() bool {
	return s.State == StatePlaying && s.Locked && len(s.Flipped) == 2
}
