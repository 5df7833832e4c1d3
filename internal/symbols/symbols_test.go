package symbols

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefaultAlphabet(t *testing.T) {
	got := Alphabet()
	if len(got) != 12 {
		t.Fatalf("len(Alphabet()) = %d, want 12", len(got))
	}
	if got[0] != "🦊" || got[11] != "🔔" {
		t.Fatalf("unexpected pick order: first=%q last=%q", got[0], got[11])
	}
	if Stats() != 12 {
		t.Fatalf("Stats() = %d, want 12", Stats())
	}

	got[0] = "x"
	if Alphabet()[0] != "🦊" {
		t.Fatalf("Alphabet must return a copy")
	}
}

func TestUnique(t *testing.T) {
	got := unique([]string{"a", "b", "a", "c", "b"})
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unique() = %v, want %v", got, want)
	}
}

func TestReadSymbolFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "symbols.txt")
	if err := os.WriteFile(path, []byte("# header\nA\n\n  B  \n#skip\nC\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := readSymbolFile(path)
	if err != nil {
		t.Fatalf("readSymbolFile: %v", err)
	}
	want := []string{"A", "B", "C"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("readSymbolFile() = %v, want %v", got, want)
	}

	if _, err := readSymbolFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
