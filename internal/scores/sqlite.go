package scores

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQLiteStore keeps best scores in the kv table.
type SQLiteStore struct{ db *sql.DB }

func NewSQLiteStore(db *sql.DB) *SQLiteStore { return &SQLiteStore{db: db} }

func (s *SQLiteStore) Best(ctx context.Context, difficulty string) (int, bool, error) {
	var v int
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key=?`, Key(difficulty)).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read best %s: %w", difficulty, err)
	}
	return v, true, nil
}

// Offer compares and writes inside one transaction.
func (s *SQLiteStore) Offer(ctx context.Context, difficulty string, moves int) (int, bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, false, err
	}
	defer func() { _ = tx.Rollback() }()

	key := Key(difficulty)
	var cur int
	err = tx.QueryRowContext(ctx, `SELECT value FROM kv WHERE key=?`, key).Scan(&cur)
	switch {
	case err == nil && moves >= cur:
		return cur, false, nil
	case err != nil && !errors.Is(err, sql.ErrNoRows):
		return 0, false, fmt.Errorf("read best %s: %w", difficulty, err)
	}

	if _, err := tx.ExecContext(ctx, `
        INSERT INTO kv (key, value, updated_at)
        VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
        ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at`,
		key, moves,
	); err != nil {
		return 0, false, fmt.Errorf("write best %s: %w", difficulty, err)
	}
	if err := tx.Commit(); err != nil {
		return 0, false, fmt.Errorf("commit best %s: %w", difficulty, err)
	}
	return moves, true, nil
}
