package audit

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*SQLiteRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewSQLiteRepository(db), mock, db
}

func TestInsertRun_DBErrorWrapped(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+runs`).
		WithArgs("r1", sqlmock.AnyArg()).
		WillReturnError(errors.New("disk full"))

	err := repo.InsertRun(context.Background(), "r1", time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert run[r1]")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertEvent_PassesColumns(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	at := time.Date(2024, 2, 3, 4, 5, 6, 7, time.UTC)
	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+events`).
		WithArgs("e1", "r1", "2024-02-03T04:05:06.000000007Z", "policy_violation", "length").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.InsertEvent(context.Background(), Event{
		ID: "e1", RunID: "r1", OccurredAt: at, Kind: KindPolicyViolation, Detail: "length",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertEvent_DBErrorWrapped(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+events`).WillReturnError(errors.New("locked"))

	err := repo.InsertEvent(context.Background(), Event{Kind: KindMismatch})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert event[verification_mismatch]")
}

func TestFinishRun_DBErrorWrapped(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^UPDATE\s+runs`).WillReturnError(errors.New("locked"))

	err := repo.FinishRun(context.Background(), "r1", time.Now(), OutcomeFailed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to finish run[r1]")
}

func TestListEvents_QueryError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT .* FROM events`).WillReturnError(errors.New("boom"))

	_, err := repo.ListEvents(context.Background(), "r1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list events")
}

func TestListEvents_BadTimestamp(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "run_id", "occurred_at", "kind", "detail"}).
		AddRow("e1", "r1", "yesterday", "verification_mismatch", "")
	mock.ExpectQuery(`(?s)^SELECT .* FROM events`).WithArgs("r1").WillReturnRows(rows)

	_, err := repo.ListEvents(context.Background(), "r1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse event time")
}
