package credentials

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/inputguard/internal/audit"
	"github.com/dmitrijs2005/inputguard/internal/common"
	"github.com/dmitrijs2005/inputguard/internal/cryptox"
	"github.com/dmitrijs2005/inputguard/internal/logging"
	"github.com/dmitrijs2005/inputguard/internal/policy"
)

// Config controls where the record lives and how verification behaves.
type Config struct {
	// StorePath is the file holding the "<salt>:<hash>" record.
	StorePath string

	// MaxVerifyAttempts bounds the verify phase. Zero means unlimited.
	MaxVerifyAttempts int

	// RequirePersistence turns a failed save into an error instead of
	// continuing with an in-memory credential.
	RequirePersistence bool
}

// Prompter is the terminal side of the interactive phases.
type Prompter interface {
	// Prompt shows message and blocks until one line (or password) is read.
	Prompt(ctx context.Context, message string) (string, error)
	// Notify shows a message to the user.
	Notify(ctx context.Context, message string)
}

// Credential is the outcome of the establish phase.
type Credential struct {
	Record
	// Persisted is false when the record only exists in memory.
	Persisted bool
}

// Store runs the establish and verify phases.
type Store struct {
	cfg      Config
	repo     Repository
	prompter Prompter
	log      logging.Logger
	recorder audit.Recorder
}

// New returns a Store persisting to cfg.StorePath. A nil recorder disables
// journaling.
func New(cfg Config, p Prompter, log logging.Logger, recorder audit.Recorder) *Store {
	return NewWithRepository(cfg, NewFileRepository(cfg.StorePath), p, log, recorder)
}

// NewWithRepository is New with an explicit storage backend.
func NewWithRepository(cfg Config, repo Repository, p Prompter, log logging.Logger, recorder audit.Recorder) *Store {
	if recorder == nil {
		recorder = audit.Nop{}
	}
	return &Store{
		cfg:      cfg,
		repo:     repo,
		prompter: p,
		log:      log.With("component", "credentials"),
		recorder: recorder,
	}
}

type phase int

const (
	phaseEstablish phase = iota
	phaseVerify
)

// Run establishes a credential and verifies it, returning the hash hex.
//
// An unreadable or corrupt record during verification sends the caller back
// to the establish phase. Policy rejections and mismatches are retried
// in-loop; every other error is returned.
func (s *Store) Run(ctx context.Context) (string, error) {
	var cred Credential
	state := phaseEstablish

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		switch state {
		case phaseEstablish:
			c, err := s.Establish(ctx)
			if err != nil {
				return "", err
			}
			cred = c
			state = phaseVerify

		case phaseVerify:
			err := s.Verify(ctx, cred)
			if err == nil {
				return cred.Hash, nil
			}
			if errors.Is(err, common.ErrRecordUnavailable) || errors.Is(err, common.ErrCorruptRecord) {
				s.prompter.Notify(ctx, "Error: Could not verify password. See error log for details.")
				s.prompter.Notify(ctx, "The stored password could not be read, please create it again.")
				state = phaseEstablish
				continue
			}
			return "", err
		}
	}
}

// Establish reads candidates until one is accepted, then salts, hashes and
// persists it.
func (s *Store) Establish(ctx context.Context) (Credential, error) {
	s.prompter.Notify(ctx, "\n----- PASSWORD ENTRY -----")
	s.prompter.Notify(ctx, policy.Requirements())

	for {
		password, err := s.prompter.Prompt(ctx, "\nEnter your password: ")
		if err != nil {
			return Credential{}, fmt.Errorf("read password: %w", err)
		}

		if err := policy.Validate(password); err != nil {
			var v *policy.Violation
			if !errors.As(err, &v) {
				return Credential{}, err
			}
			s.prompter.Notify(ctx, "Error: "+v.Reason.Message()+" Please try again.")
			s.log.Warn(ctx, "password validation error", "reason", v.Reason.String())
			s.record(ctx, audit.KindPolicyViolation, v.Reason.String())
			continue
		}

		return s.commit(ctx, password)
	}
}

func (s *Store) commit(ctx context.Context, password string) (Credential, error) {
	salt, err := cryptox.GenerateSalt()
	if err != nil {
		s.log.Error(ctx, "salt generation failed", "error", err)
		return Credential{}, err
	}

	hash, err := cryptox.HashPassword(password, salt)
	if err != nil {
		s.log.Error(ctx, "hashing failed", "error", err)
		s.prompter.Notify(ctx, "Error: Hashing algorithm not available.")
		return Credential{}, err
	}

	cred := Credential{Record: Record{Salt: salt, Hash: hash}, Persisted: true}

	if err := s.repo.Save(ctx, cred.Record); err != nil {
		s.log.Error(ctx, "could not save password hash", "path", s.cfg.StorePath, "error", err)
		s.record(ctx, audit.KindPersistenceFailure, err.Error())
		if s.cfg.RequirePersistence {
			s.prompter.Notify(ctx, "Error: Could not save password hash to file. See error log for details.")
			return Credential{}, err
		}
		s.prompter.Notify(ctx, "Warning: Could not save password hash to file. See error log for details.")
		s.prompter.Notify(ctx, "The password is kept in memory only and will not survive a restart.")
		cred.Persisted = false
	} else {
		s.prompter.Notify(ctx, "Password hash saved successfully.")
	}

	s.log.Info(ctx, "credential established", "persisted", cred.Persisted)
	s.record(ctx, audit.KindEstablished, strconv.FormatBool(cred.Persisted))
	return cred, nil
}

// Verify reads the password again until it matches the stored record.
//
// The salt and expected hash are re-read from storage on every attempt.
// Storage errors are returned as is (wrapping common.ErrRecordUnavailable or
// common.ErrCorruptRecord) and never count as a mismatch.
func (s *Store) Verify(ctx context.Context, cred Credential) error {
	repo := s.repo
	if !cred.Persisted {
		repo = &memoryRepository{r: cred.Record}
	}

	for attempt := 1; ; attempt++ {
		password, err := s.prompter.Prompt(ctx, "\nPlease re-enter your password for verification: ")
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}

		stored, err := repo.Load(ctx)
		if err != nil {
			s.log.Error(ctx, "could not retrieve password hash", "path", s.cfg.StorePath, "error", err)
			kind := audit.KindRecordUnavailable
			if errors.Is(err, common.ErrCorruptRecord) {
				kind = audit.KindCorruptRecord
			}
			s.record(ctx, kind, err.Error())
			return err
		}

		candidate, err := cryptox.HashPassword(password, stored.Salt)
		if err != nil {
			if errors.Is(err, cryptox.ErrInvalidSalt) {
				err = fmt.Errorf("%w: %v", common.ErrCorruptRecord, err)
			}
			s.log.Error(ctx, "hashing failed", "error", err)
			return err
		}

		if cryptox.Equal(stored.Hash, candidate) {
			s.prompter.Notify(ctx, "Password verification successful!")
			s.log.Info(ctx, "password verified", "attempts", attempt)
			s.record(ctx, audit.KindVerified, strconv.Itoa(attempt))
			return nil
		}

		s.log.Warn(ctx, "password verification failed", "attempt", attempt)
		s.record(ctx, audit.KindMismatch, strconv.Itoa(attempt))

		if s.cfg.MaxVerifyAttempts > 0 && attempt >= s.cfg.MaxVerifyAttempts {
			s.prompter.Notify(ctx, "Error: Passwords do not match. No attempts left.")
			return fmt.Errorf("%w: %d", common.ErrTooManyAttempts, attempt)
		}
		s.prompter.Notify(ctx, "Error: Passwords do not match. Please try again.")
	}
}

func (s *Store) record(ctx context.Context, kind audit.Kind, detail string) {
	if err := s.recorder.Record(ctx, kind, detail); err != nil {
		s.log.Warn(ctx, "audit record failed", "kind", string(kind), "error", err)
	}
}
