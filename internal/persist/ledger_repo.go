package persist

import (
	"context"
	"fmt"

	"github.com/antitower/server/internal/world"
)

type LedgerRepo struct {
	db *DB
}

func NewLedgerRepo(db *DB) *LedgerRepo {
	return &LedgerRepo{db: db}
}

// Write stores a batch of mana ledger entries for one match in a single
// transaction. Either every entry lands or none does.
func (r *LedgerRepo) Write(ctx context.Context, matchID int64, entries []world.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ledger begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, e := range entries {
		if _, err := tx.Exec(ctx,
			`INSERT INTO mana_ledger (match_id, tick, reason, delta, balance)
			 VALUES ($1, $2, $3, $4, $5)`,
			matchID, int64(e.Tick), e.Reason, e.Delta, e.Balance,
		); err != nil {
			return fmt.Errorf("ledger insert: %w", err)
		}
	}
	return tx.Commit(ctx)
}

// Balance returns the most recent balance recorded for a match.
func (r *LedgerRepo) Balance(ctx context.Context, matchID int64) (float64, error) {
	var balance float64
	err := r.db.Pool.QueryRow(ctx,
		`SELECT COALESCE((SELECT balance FROM mana_ledger
		                  WHERE match_id = $1 ORDER BY id DESC LIMIT 1), 0)`,
		matchID,
	).Scan(&balance)
	return balance, err
}
