package history

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/divwatch/divwatch/internal/model"
)

// InsertAttempt appends one evaluated attempt. Writes are synchronous;
// a demo run produces at most a few dozen rows.
func (s *Store) InsertAttempt(a *model.Attempt) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.QueryTimeout)
	defer cancel()

	result := sql.NullFloat64{}
	if a.OK {
		result = sql.NullFloat64{Float64: a.Result, Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO attempts (ts, dividend, divisor, ok, result, error_kind, source)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.Timestamp, a.Dividend, a.Divisor, a.OK, result, a.ErrorKind, a.Source)
	if err != nil {
		return fmt.Errorf("history: insert attempt: %w", err)
	}
	return nil
}

// Counts returns the recorded attempt totals as a metrics snapshot.
func (s *Store) Counts() (model.Snapshot, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.QueryTimeout)
	defer cancel()

	var snap model.Snapshot
	err := s.db.QueryRowContext(ctx,
		`SELECT count(*),
		        count(*) FILTER (WHERE ok),
		        count(*) FILTER (WHERE NOT ok)
		 FROM attempts`).Scan(&snap.Total, &snap.Success, &snap.Failure)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("history: counts: %w", err)
	}
	if snap.Total > 0 {
		snap.SuccessRate = float64(snap.Success) * 100.0 / float64(snap.Total)
	}
	return snap, nil
}

// Recent returns the latest attempts, newest first.
func (s *Store) Recent(limit int) ([]model.Attempt, error) {
	if limit <= 0 {
		limit = 20
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.QueryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		`SELECT ts, dividend, divisor, ok, result, error_kind, source
		 FROM attempts ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: recent: %w", err)
	}
	defer rows.Close()

	var out []model.Attempt
	for rows.Next() {
		var a model.Attempt
		var result sql.NullFloat64
		if err := rows.Scan(&a.Timestamp, &a.Dividend, &a.Divisor, &a.OK, &result, &a.ErrorKind, &a.Source); err != nil {
			return nil, fmt.Errorf("history: scan attempt: %w", err)
		}
		if result.Valid {
			a.Result = result.Float64
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: iterate attempts: %w", err)
	}
	return out, nil
}
