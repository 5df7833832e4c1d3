package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/robalobadob/devfolio/assets"
	"github.com/robalobadob/devfolio/internal/scores"
)

func TestMigrateIsIdempotent(t *testing.T) {
	db, err := openDB(filepath.Join(t.TempDir(), "nested", "devfolio.db"))
	if err != nil {
		t.Fatalf("openDB: %v", err)
	}
	defer db.Close()

	for i := 0; i < 2; i++ {
		if err := migrate(db, assets.Migrations()); err != nil {
			t.Fatalf("migrate run %d: %v", i+1, err)
		}
	}
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM _migrations`).Scan(&n); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if n != 1 {
		t.Fatalf("recorded migrations = %d, want 1", n)
	}

	st := scores.NewSQLiteStore(db)
	ctx := context.Background()
	if _, _, err := st.Offer(ctx, "easy", 9); err != nil {
		t.Fatalf("Offer after migrate: %v", err)
	}
	if best, ok, err := st.Best(ctx, "easy"); err != nil || !ok || best != 9 {
		t.Fatalf("Best = %d, %v, %v", best, ok, err)
	}
}

func TestLoadGridsFromFile(t *testing.T) {
	t.Setenv("DIFFICULTY_FILE", "")
	gs, err := loadGrids()
	if err != nil || gs["easy"].Cells() != 12 || gs["hard"].Cells() != 24 {
		t.Fatalf("default grids = %+v, %v", gs, err)
	}

	t.Setenv("DIFFICULTY_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := loadGrids(); err == nil {
		t.Fatalf("missing DIFFICULTY_FILE should fail")
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("SESSION_TTL_MIN", "abc")
	if got := getEnvInt("SESSION_TTL_MIN", 30); got != 30 {
		t.Fatalf("non-numeric = %d", got)
	}
	t.Setenv("SESSION_TTL_MIN", "5")
	if got := getEnvInt("SESSION_TTL_MIN", 30); got != 5 {
		t.Fatalf("numeric = %d", got)
	}
}
