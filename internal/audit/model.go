package audit

import (
	"context"
	"time"
)

// Kind classifies a journal event.
type Kind string

const (
	KindInvalidInput       Kind = "invalid_input"
	KindPolicyViolation    Kind = "policy_violation"
	KindEstablished        Kind = "credential_established"
	KindPersistenceFailure Kind = "persistence_failure"
	KindRecordUnavailable  Kind = "record_unavailable"
	KindCorruptRecord      Kind = "corrupt_record"
	KindMismatch           Kind = "verification_mismatch"
	KindVerified           Kind = "verification_success"
	KindReportWritten      Kind = "report_written"
	KindReportFailed       Kind = "report_failed"
	KindRunFinished        Kind = "run_finished"
)

// Run outcomes stored by FinishRun.
const (
	OutcomeCompleted = "completed"
	OutcomeAborted   = "aborted"
	OutcomeFailed    = "failed"
)

// Event is one journal row.
type Event struct {
	ID         string
	RunID      string
	OccurredAt time.Time
	Kind       Kind
	Detail     string
}

// Recorder accepts journal events for the current run.
type Recorder interface {
	Record(ctx context.Context, kind Kind, detail string) error
}

// Nop is a Recorder that drops every event.
type Nop struct{}

func (Nop) Record(context.Context, Kind, string) error { return nil }
