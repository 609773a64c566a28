package audit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/inputguard/internal/audit/migrations"
	"github.com/dmitrijs2005/inputguard/internal/dbx"
	"github.com/google/uuid"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// ErrNoRun is returned when events are recorded before StartRun.
var ErrNoRun = errors.New("audit run not started")

// RunMigrations applies the embedded migrations. It is idempotent.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// Open opens (or creates) the journal database at dsn and migrates it.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// one connection keeps ":memory:" databases and transactions on the same handle
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate audit db: %w", err)
	}
	return db, nil
}

// Journal records events for one run. It implements Recorder.
type Journal struct {
	db    *sql.DB
	repo  Repository
	runID string
	now   func() time.Time
}

func NewJournal(db *sql.DB) *Journal {
	return &Journal{db: db, repo: NewSQLiteRepository(db), now: time.Now}
}

// RunID returns the identifier assigned by StartRun.
func (j *Journal) RunID() string {
	return j.runID
}

// StartRun creates a new run row and makes it current.
func (j *Journal) StartRun(ctx context.Context) (string, error) {
	id := uuid.NewString()
	if err := j.repo.InsertRun(ctx, id, j.now()); err != nil {
		return "", err
	}
	j.runID = id
	return id, nil
}

func (j *Journal) Record(ctx context.Context, kind Kind, detail string) error {
	if j.runID == "" {
		return ErrNoRun
	}
	return j.repo.InsertEvent(ctx, j.newEvent(kind, detail))
}

// FinishRun stores the outcome and a closing event in one transaction.
func (j *Journal) FinishRun(ctx context.Context, outcome string) error {
	if j.runID == "" {
		return ErrNoRun
	}
	return dbx.WithTx(ctx, j.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)
		if err := repo.FinishRun(ctx, j.runID, j.now(), outcome); err != nil {
			return err
		}
		return repo.InsertEvent(ctx, j.newEvent(KindRunFinished, outcome))
	})
}

// Events lists the events of runID in insertion order.
func (j *Journal) Events(ctx context.Context, runID string) ([]Event, error) {
	return j.repo.ListEvents(ctx, runID)
}

func (j *Journal) newEvent(kind Kind, detail string) Event {
	return Event{
		ID:         uuid.NewString(),
		RunID:      j.runID,
		OccurredAt: j.now(),
		Kind:       kind,
		Detail:     detail,
	}
}
