// internal/game/types.go
//
// Core type definitions for the memory game.
// Defines:
//   - Difficulty / Grid: board presets and their shapes.
//   - Card / Deck: the shuffled pairs on the board.
//   - State / Outcome: lifecycle of a session and result of a click.
//   - Session: state for a single board, mutated only through its transitions.

package game

import "errors"

var (
	// ErrNoSuchCard is returned for a click outside the dealt deck.
	ErrNoSuchCard = errors.New("game: no such card")
	// ErrEmptyAlphabet is returned when a deck is built without symbols.
	ErrEmptyAlphabet = errors.New("game: no symbols to deal")
)

// Difficulty names a grid preset ("easy", "hard").
type Difficulty string

const (
	Easy Difficulty = "easy"
	Hard Difficulty = "hard"
)

// Grid is the board shape for a difficulty.
type Grid struct {
	Cols int `yaml:"cols" json:"cols"`
	Rows int `yaml:"rows" json:"rows"`
}

// Cells is the number of cards dealt.
func (g Grid) Cells() int { return g.Cols * g.Rows }

// Pairs is the number of matches needed to win.
func (g Grid) Pairs() int { return g.Cells() / 2 }

// Card is one tile. Symbol never changes after dealing.
type Card struct {
	Symbol  string `json:"symbol"`
	Index   int    `json:"index"`
	Flipped bool   `json:"flipped"`
	Matched bool   `json:"matched"`
}

// Deck is the ordered board, len = cols*rows.
type Deck []Card

// State is the coarse lifecycle of a session.
//   - "idle":    nothing dealt yet.
//   - "playing": a deck is on the board.
//   - "won":     every pair matched; board locked until start/restart.
type State string

const (
	StateIdle    State = "idle"
	StatePlaying State = "playing"
	StateWon     State = "won"
)

// Outcome reports what a click did.
type Outcome string

const (
	OutcomeIgnored    Outcome = "ignored"
	OutcomeFlipped    Outcome = "flipped"
	OutcomeMatched    Outcome = "matched"
	OutcomeMismatched Outcome = "mismatched"
	OutcomeWon        Outcome = "won"
)

// Session holds the state of one memory game board.
type Session struct {
	Difficulty Difficulty // Preset used for the current deck.
	Grid       Grid       // Shape of the current deck.
	Cards      Deck       // Dealt cards, empty while idle.
	Moves      int        // Completed two-card turns.
	Matches    int        // Pairs found.
	Locked     bool       // Clicks are dropped while set.
	Started    bool       // True once a deck has been dealt.
	Flipped    []int      // Indices of face-up unmatched cards (0–2).
	State      State
}
