// Package common defines sentinel errors and small helpers shared by the
// inputguard packages. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Input collection errors.
	ErrInvalidInput = errors.New("invalid input")

	// Password policy errors.
	ErrPolicyViolation = errors.New("password policy violation")

	// Credential record errors.
	ErrPersistence       = errors.New("credential record could not be persisted")
	ErrCorruptRecord     = errors.New("corrupt credential record")
	ErrRecordUnavailable = errors.New("credential record unavailable")

	// Verification errors.
	ErrTooManyAttempts = errors.New("too many verification attempts")

	// ErrMissingAlgorithm is fatal: nothing can be hashed without the digest.
	ErrMissingAlgorithm = errors.New("digest algorithm not available")
)
