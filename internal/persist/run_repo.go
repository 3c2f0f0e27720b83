package persist

import (
	"context"
	"fmt"
	"time"

	"github.com/deepdrill/drillsim/internal/core/event"
	"github.com/google/uuid"
)

// RunRow is one finished descent.
type RunRow struct {
	RunID       uuid.UUID
	Seed        int64
	StartedAt   float64 // simulation seconds
	Duration    float64
	MaxDepth    float64
	MoneyEarned int64
	Collected   int
	Bounces     int
	RecordedAt  time.Time
}

// RunRowFromSummary converts a phase-end summary.
func RunRowFromSummary(seed int64, s event.RunSummary) RunRow {
	return RunRow{
		RunID:       s.RunID,
		Seed:        seed,
		StartedAt:   s.StartedAt,
		Duration:    s.Duration,
		MaxDepth:    s.MaxDepth,
		MoneyEarned: s.MoneyEarned,
		Collected:   s.Collected,
		Bounces:     s.Bounces,
	}
}

type RunRepo struct {
	db *DB
}

func NewRunRepo(db *DB) *RunRepo {
	return &RunRepo{db: db}
}

// Record writes a batch of runs in a single transaction. Re-recording a run
// ID is a no-op.
func (r *RunRepo) Record(ctx context.Context, rows []RunRow) error {
	if len(rows) == 0 {
		return nil
	}
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("runs begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, row := range rows {
		if _, err := tx.Exec(ctx,
			`INSERT INTO drill_runs (run_id, seed, started_at, duration, max_depth, money_earned, collected, bounces)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 ON CONFLICT (run_id) DO NOTHING`,
			row.RunID, row.Seed, row.StartedAt, row.Duration, row.MaxDepth,
			row.MoneyEarned, row.Collected, row.Bounces,
		); err != nil {
			return fmt.Errorf("runs insert: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// Deepest returns the limit deepest runs, deepest first.
func (r *RunRepo) Deepest(ctx context.Context, limit int) ([]RunRow, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT run_id, seed, started_at, duration, max_depth, money_earned, collected, bounces, recorded_at
		 FROM drill_runs ORDER BY max_depth DESC, id ASC LIMIT $1`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var row RunRow
		if err := rows.Scan(
			&row.RunID, &row.Seed, &row.StartedAt, &row.Duration, &row.MaxDepth,
			&row.MoneyEarned, &row.Collected, &row.Bounces, &row.RecordedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Count returns the number of recorded runs.
func (r *RunRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM drill_runs`).Scan(&n)
	return n, err
}
