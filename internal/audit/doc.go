// Package audit keeps a local SQLite journal of what happened during a run:
// rejected input, rejected passwords, persistence failures, verification
// mismatches and the final outcome.
//
// The journal never stores passwords, salts or hashes; details are short
// reason strings such as "missing digit".
//
// Typical use:
//
//	db, err := audit.Open(ctx, "audit.db")
//	j := audit.NewJournal(db)
//	runID, err := j.StartRun(ctx)
//	_ = j.Record(ctx, audit.KindPolicyViolation, "length")
//	_ = j.FinishRun(ctx, audit.OutcomeCompleted)
package audit
