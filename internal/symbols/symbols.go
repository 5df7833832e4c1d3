// internal/symbols/symbols.go
//
// Provides the memory game alphabet.
//
// Responsibilities:
//   - Load the ordered symbol list from an environment-provided file or fall back to the embedded default.
//   - Keep pick order stable: the deck builder always takes the first N symbols.
//   - Drop duplicate entries so every listed symbol is unique.
//
// Initialization behavior (Init):
//   1. If SYMBOLS_FILE is set, load one symbol per line from that file.
//   2. Otherwise load the embedded assets/symbols.txt (12 emoji).
//
// Environment variables:
//   SYMBOLS_FILE=/path/to/symbols.txt
//
// Constraints:
//   • Blank lines and lines starting with '#' are ignored.
//   • Initialization is run once (sync.Once).

package symbols

import (
	"errors"
	"os"
	"sync"

	"github.com/robalobadob/devfolio/assets"
)

// ErrEmpty is returned when no symbols could be loaded.
var ErrEmpty = errors.New("symbols: alphabet is empty")

var (
	initOnce   sync.Once
	alphabet   []string
	initialErr error
)

// Init loads the alphabet exactly once.
// Returns ErrEmpty if the resulting list has no symbols.
func Init() error {
	initOnce.Do(func() {
		var list []string
		var err error
		if path := os.Getenv("SYMBOLS_FILE"); path != "" {
			list, err = readSymbolFile(path)
		} else {
			list, err = assets.SymbolList()
		}
		if err != nil {
			initialErr = err
			return
		}
		alphabet = unique(list)
		if len(alphabet) == 0 {
			initialErr = ErrEmpty
		}
	})
	return initialErr
}

// readSymbolFile loads one symbol per line from a file.
func readSymbolFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return assets.ParseLines(f)
}

// unique drops repeated symbols, keeping first occurrences in order.
func unique(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, s := range list {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Alphabet returns a copy of the loaded symbols in pick order.
// Init is run on first use if the caller skipped it.
func Alphabet() []string {
	_ = Init()
	return append([]string(nil), alphabet...)
}

// Stats returns the number of loaded symbols.
func Stats() int {
	_ = Init()
	return len(alphabet)
}
