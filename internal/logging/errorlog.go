package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"
)

// HeaderTimeLayout is the timestamp format used in the error log header.
const HeaderTimeLayout = "2006-01-02 15:04:05"

// ErrorLog is an append-only diagnostic log file. It is recreated on every
// program start so it only holds the current run.
type ErrorLog struct {
	*SlogLogger
	f *os.File
}

// NewErrorLog truncates (or creates) the file at path, writes a creation
// header and returns a logger that appends timestamped records to it.
func NewErrorLog(path string, now time.Time) (*ErrorLog, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("create error log %s: %w", path, err)
	}

	if err := writeHeader(f, now); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write error log header: %w", err)
	}

	h := slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelInfo})
	return &ErrorLog{SlogLogger: NewSlogLogger(slog.New(h)), f: f}, nil
}

func writeHeader(w io.Writer, now time.Time) error {
	_, err := fmt.Fprintf(w,
		"=== ERROR LOG CREATED AT %s ===\n=== All program errors will be logged here ===\n\n",
		now.Format(HeaderTimeLayout))
	return err
}

// Path returns the file the log writes to.
func (e *ErrorLog) Path() string {
	return e.f.Name()
}

// Close flushes and closes the underlying file.
func (e *ErrorLog) Close() error {
	return e.f.Close()
}
