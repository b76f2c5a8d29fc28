package persist

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

// MatchSummary is written once when a run ends.
type MatchSummary struct {
	Ticks     uint64
	Elapsed   time.Duration
	FinalMana float64
	Spawned   int
	Died      int
	Expired   int
}

type MatchRow struct {
	ID         int64
	ServerName string
	StartedAt  time.Time
	FinishedAt *time.Time
	MatchSummary
}

type MatchRepo struct {
	db *DB
}

func NewMatchRepo(db *DB) *MatchRepo {
	return &MatchRepo{db: db}
}

// Start opens a match row and returns its id.
func (r *MatchRepo) Start(ctx context.Context, serverName string) (int64, error) {
	var id int64
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO matches (server_name) VALUES ($1) RETURNING id`,
		serverName,
	).Scan(&id)
	return id, err
}

// Record closes a match with its final counters.
func (r *MatchRepo) Record(ctx context.Context, id int64, s MatchSummary) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE matches
		 SET finished_at = now(), ticks = $2, elapsed_ms = $3, final_mana = $4,
		     spawned = $5, died = $6, expired = $7
		 WHERE id = $1`,
		id, int64(s.Ticks), s.Elapsed.Milliseconds(), s.FinalMana,
		s.Spawned, s.Died, s.Expired,
	)
	return err
}

// Load returns a match by id, or nil if it does not exist.
func (r *MatchRepo) Load(ctx context.Context, id int64) (*MatchRow, error) {
	row := &MatchRow{}
	var ticks, elapsedMS int64
	err := r.db.Pool.QueryRow(ctx,
		`SELECT id, server_name, started_at, finished_at, ticks, elapsed_ms,
		        final_mana, spawned, died, expired
		 FROM matches WHERE id = $1`, id,
	).Scan(
		&row.ID, &row.ServerName, &row.StartedAt, &row.FinishedAt, &ticks, &elapsedMS,
		&row.FinalMana, &row.Spawned, &row.Died, &row.Expired,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	row.Ticks = uint64(ticks)
	row.Elapsed = time.Duration(elapsedMS) * time.Millisecond
	return row, nil
}
