package game

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/robalobadob/devfolio/assets"
)

// Grids maps each difficulty to its board shape.
type Grids map[Difficulty]Grid

// ParseGrids decodes a YAML grid table and checks every shape.
func ParseGrids(data []byte) (Grids, error) {
	var gs Grids
	if err := yaml.Unmarshal(data, &gs); err != nil {
		return nil, fmt.Errorf("parse grids: %w", err)
	}
	if _, ok := gs[Easy]; !ok {
		return nil, fmt.Errorf("parse grids: %q preset missing", Easy)
	}
	for d, g := range gs {
		if g.Cols <= 0 || g.Rows <= 0 || g.Cells()%2 != 0 {
			return nil, fmt.Errorf("parse grids: %s %dx%d must have an even number of cells", d, g.Cols, g.Rows)
		}
	}
	return gs, nil
}

// DefaultGrids returns the embedded grid table (easy 4x3, hard 6x4).
func DefaultGrids() (Grids, error) {
	data, err := assets.Difficulties()
	if err != nil {
		return nil, err
	}
	return ParseGrids(data)
}

// Resolve returns the preset for d, falling back to easy for unknown names.
func (gs Grids) Resolve(d Difficulty) (Difficulty, Grid) {
	d = Difficulty(strings.ToLower(strings.TrimSpace(string(d))))
	if g, ok := gs[d]; ok {
		return d, g
	}
	return Easy, gs[Easy]
}

// Builder deals shuffled decks.
type Builder struct {
	Grids    Grids
	Alphabet []string      // Ordered symbols; the first N are used.
	IntN     func(int) int // Uniform in [0, n); defaults to rand.IntN.
}

// Build deals a shuffled deck for d.
//
// The first cells/2 symbols are each dealt twice. If the alphabet is shorter
// than that, symbols repeat cyclically and a warning is logged; the deck is
// still cells long.
func (b *Builder) Build(d Difficulty) (Difficulty, Grid, Deck, error) {
	if len(b.Alphabet) == 0 {
		return "", Grid{}, nil, ErrEmptyAlphabet
	}
	d, g := b.Grids.Resolve(d)
	pairs := g.Pairs()
	if pairs > len(b.Alphabet) {
		log.Warn().
			Str("difficulty", string(d)).
			Int("pairs", pairs).
			Int("symbols", len(b.Alphabet)).
			Msg("not enough unique symbols; duplicating available symbols")
	}

	symbols := make([]string, 0, pairs*2)
	for i := 0; i < pairs; i++ {
		s := b.Alphabet[i%len(b.Alphabet)]
		symbols = append(symbols, s, s)
	}
	b.shuffle(symbols)

	deck := make(Deck, len(symbols))
	for i, s := range symbols {
		deck[i] = Card{Symbol: s, Index: i}
	}
	return d, g, deck, nil
}

// shuffle is Fisher–Yates: walk down from the last index, swapping each
// position with a uniform pick from [0, i].
func (b *Builder) shuffle(s []string) {
	intN := b.IntN
	if intN == nil {
		intN = rand.IntN
	}
	for i := len(s) - 1; i > 0; i-- {
		j := intN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
