package assets

import (
	"strings"
	"testing"
)

func TestParseLines(t *testing.T) {
	got, err := ParseLines(strings.NewReader("# header\n🦊\n\n  🌵  \n#🚀\n🍩"))
	if err != nil {
		t.Fatalf("ParseLines: %v", err)
	}
	want := []string{"🦊", "🌵", "🍩"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("ParseLines = %v, want %v", got, want)
	}
}

func TestEmbeddedSymbols(t *testing.T) {
	list, err := SymbolList()
	if err != nil || len(list) != 12 {
		t.Fatalf("SymbolList = %d symbols, %v", len(list), err)
	}
}
