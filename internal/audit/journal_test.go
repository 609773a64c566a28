package audit

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func TestOpen_CreatesTables(t *testing.T) {
	db := openTestDB(t)

	for _, name := range []string{"runs", "events", "goose_db_version"} {
		assert.True(t, tableExists(t, db, name), name)
	}
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, RunMigrations(context.Background(), db))
}

func TestOpen_InMemory(t *testing.T) {
	db, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	defer db.Close()

	j := NewJournal(db)
	_, err = j.StartRun(context.Background())
	require.NoError(t, err)
	require.NoError(t, j.FinishRun(context.Background(), OutcomeCompleted))
}

func TestJournal_RecordBeforeStart(t *testing.T) {
	j := NewJournal(openTestDB(t))
	ctx := context.Background()

	assert.ErrorIs(t, j.Record(ctx, KindMismatch, ""), ErrNoRun)
	assert.ErrorIs(t, j.FinishRun(ctx, OutcomeAborted), ErrNoRun)
}

func TestJournal_RecordsRunLifecycle(t *testing.T) {
	db := openTestDB(t)
	j := NewJournal(db)
	ctx := context.Background()

	base := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	tick := 0
	j.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	runID, err := j.StartRun(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, runID)
	assert.Equal(t, runID, j.RunID())

	require.NoError(t, j.Record(ctx, KindPolicyViolation, "length"))
	require.NoError(t, j.Record(ctx, KindMismatch, ""))
	require.NoError(t, j.FinishRun(ctx, OutcomeCompleted))

	events, err := j.Events(ctx, runID)
	require.NoError(t, err)
	require.Len(t, events, 3)

	assert.Equal(t, KindPolicyViolation, events[0].Kind)
	assert.Equal(t, "length", events[0].Detail)
	assert.Equal(t, base.Add(2*time.Second), events[0].OccurredAt)
	assert.Equal(t, KindMismatch, events[1].Kind)
	assert.Equal(t, KindRunFinished, events[2].Kind)
	assert.Equal(t, OutcomeCompleted, events[2].Detail)
	for _, e := range events {
		assert.Equal(t, runID, e.RunID)
		assert.NotEmpty(t, e.ID)
	}

	var outcome string
	require.NoError(t, db.QueryRow(`SELECT outcome FROM runs WHERE id = ?`, runID).Scan(&outcome))
	assert.Equal(t, OutcomeCompleted, outcome)
}

func TestJournal_EventsAreScopedToRun(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	j1 := NewJournal(db)
	run1, err := j1.StartRun(ctx)
	require.NoError(t, err)
	require.NoError(t, j1.Record(ctx, KindInvalidInput, "first name"))

	j2 := NewJournal(db)
	run2, err := j2.StartRun(ctx)
	require.NoError(t, err)

	events, err := j2.Events(ctx, run2)
	require.NoError(t, err)
	assert.Empty(t, events)

	events, err = j1.Events(ctx, run1)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestNop_Record(t *testing.T) {
	var r Recorder = Nop{}
	assert.NoError(t, r.Record(context.Background(), KindVerified, ""))
}
