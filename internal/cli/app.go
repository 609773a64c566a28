package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dmitrijs2005/inputguard/internal/audit"
	"github.com/dmitrijs2005/inputguard/internal/config"
	"github.com/dmitrijs2005/inputguard/internal/credentials"
	"github.com/dmitrijs2005/inputguard/internal/filex"
	"github.com/dmitrijs2005/inputguard/internal/logging"
	"github.com/dmitrijs2005/inputguard/internal/report"
	"github.com/google/uuid"
)

type App struct {
	config   *config.Config
	log      logging.Logger
	errorLog *logging.ErrorLog
	db       *sql.DB
	journal  *audit.Journal
	recorder audit.Recorder
	reader   *bufio.Reader
	out      io.Writer
	workDir  string
}

// NewApp opens the error log and the audit journal and binds the App to the
// process terminal.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getwd: %w", err)
	}
	return newApp(ctx, c, os.Stdin, os.Stdout, os.Stderr, wd)
}

func newApp(ctx context.Context, c *config.Config, in io.Reader, out, errOut io.Writer, workDir string) (*App, error) {
	if err := filex.EnsureParentDir(c.ErrorLogPath); err != nil {
		return nil, err
	}
	errorLog, err := logging.NewErrorLog(c.ErrorLogPath, time.Now())
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(out, "Created new error log file: %s\n", errorLog.Path())

	a := &App{
		config:   c,
		errorLog: errorLog,
		recorder: audit.Nop{},
		reader:   bufio.NewReader(in),
		out:      out,
		workDir:  workDir,
	}

	runID := uuid.NewString()
	if c.AuditDBPath != "" {
		if err := a.openJournal(ctx); err != nil {
			_ = errorLog.Close()
			return nil, err
		}
		runID = a.journal.RunID()
	}

	console := logging.NewTextLogger(errOut, slog.LevelError)
	a.log = logging.Tee(errorLog, console).With("run_id", runID)
	return a, nil
}

func (a *App) openJournal(ctx context.Context) error {
	if err := filex.EnsureParentDir(a.config.AuditDBPath); err != nil {
		return err
	}
	db, err := audit.Open(ctx, a.config.AuditDBPath)
	if err != nil {
		return fmt.Errorf("open audit journal: %w", err)
	}
	j := audit.NewJournal(db)
	if _, err := j.StartRun(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("start audit run: %w", err)
	}
	a.db, a.journal, a.recorder = db, j, j
	return nil
}

// Close releases the journal database and the error log.
func (a *App) Close() error {
	var errs []error
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	errs = append(errs, a.errorLog.Close())
	return errors.Join(errs...)
}

// Run collects every value, establishes the password and writes the report.
// It returns io.EOF (wrapped) when input ends early.
func (a *App) Run(ctx context.Context) (err error) {
	defer func() { a.finish(ctx, err) }()

	fmt.Fprintln(a.out, "Welcome to the user input program!")

	d, err := a.collect(ctx)
	if err != nil {
		return err
	}

	store := credentials.New(a.config.Credentials(), &terminalPrompter{reader: a.reader, out: a.out}, a.log, a.recorder)
	hash, err := store.Run(ctx)
	if err != nil {
		return fmt.Errorf("password: %w", err)
	}
	d.PasswordHash = hash

	stats, err := report.Write(ctx, d, a.out)
	if err != nil {
		a.record(ctx, audit.KindReportFailed, err.Error())
		return fmt.Errorf("process files %s -> %s: %w", d.InputPath, d.OutputPath, err)
	}
	a.log.Info(ctx, "report written", "output", d.OutputPath, "lines", stats.Lines, "truncated", stats.Truncated)
	a.record(ctx, audit.KindReportWritten, d.OutputPath)

	fmt.Fprintln(a.out, "\nProgram completed successfully!")
	return nil
}

func (a *App) finish(ctx context.Context, err error) {
	outcome := audit.OutcomeCompleted
	switch {
	case err == nil:
	case errors.Is(err, io.EOF), errors.Is(err, context.Canceled):
		outcome = audit.OutcomeAborted
		a.log.Warn(ctx, "input ended before the program finished", "error", err)
		fmt.Fprintln(a.out, "\nInput ended, exiting.")
	default:
		outcome = audit.OutcomeFailed
		a.log.Error(ctx, "program error", "error", err)
		fmt.Fprintln(a.out, "An error occurred. See error log for details.")
	}

	if a.journal == nil {
		return
	}
	// the run context may already be canceled
	if ferr := a.journal.FinishRun(context.WithoutCancel(ctx), outcome); ferr != nil {
		a.log.Warn(ctx, "audit finish failed", "error", ferr)
	}
}

func (a *App) record(ctx context.Context, kind audit.Kind, detail string) {
	if err := a.recorder.Record(ctx, kind, detail); err != nil {
		a.log.Warn(ctx, "audit record failed", "kind", string(kind), "error", err)
	}
}
