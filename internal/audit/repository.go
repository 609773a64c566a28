package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/inputguard/internal/dbx"
)

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Repository is the storage contract of the journal.
type Repository interface {
	InsertRun(ctx context.Context, id string, startedAt time.Time) error
	FinishRun(ctx context.Context, id string, finishedAt time.Time, outcome string) error
	InsertEvent(ctx context.Context, e Event) error
	ListEvents(ctx context.Context, runID string) ([]Event, error)
}

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) InsertRun(ctx context.Context, id string, startedAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at) VALUES (?, ?)`,
		id, formatTime(startedAt))
	if err != nil {
		return fmt.Errorf("failed to insert run[%s]: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) FinishRun(ctx context.Context, id string, finishedAt time.Time, outcome string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, outcome = ? WHERE id = ?`,
		formatTime(finishedAt), outcome, id)
	if err != nil {
		return fmt.Errorf("failed to finish run[%s]: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) InsertEvent(ctx context.Context, e Event) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO events (id, run_id, occurred_at, kind, detail) VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.RunID, formatTime(e.OccurredAt), string(e.Kind), e.Detail)
	if err != nil {
		return fmt.Errorf("failed to insert event[%s]: %w", e.Kind, err)
	}
	return nil
}

func (r *SQLiteRepository) ListEvents(ctx context.Context, runID string) ([]Event, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, run_id, occurred_at, kind, detail FROM events WHERE run_id = ? ORDER BY occurred_at, rowid`,
		runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var result []Event
	for rows.Next() {
		var (
			e    Event
			ts   string
			kind string
		)
		if err := rows.Scan(&e.ID, &e.RunID, &ts, &kind, &e.Detail); err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		if e.OccurredAt, err = time.Parse(timeLayout, ts); err != nil {
			return nil, fmt.Errorf("failed to parse event time %q: %w", ts, err)
		}
		e.Kind = Kind(kind)
		result = append(result, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate event rows: %w", err)
	}

	return result, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
