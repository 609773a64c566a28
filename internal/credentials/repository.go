package credentials

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/dmitrijs2005/inputguard/internal/common"
)

// Repository stores the single current Record.
type Repository interface {
	Save(ctx context.Context, r Record) error
	Load(ctx context.Context) (Record, error)
}

// FileRepository keeps the record in a text file.
type FileRepository struct {
	path string
}

func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

func (f *FileRepository) Path() string {
	return f.path
}

// Save truncates the file and writes r as a single line without newline.
// Failures wrap common.ErrPersistence.
func (f *FileRepository) Save(ctx context.Context, r Record) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	file, err := os.OpenFile(f.path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("%w: close %s: %v", common.ErrPersistence, f.path, cerr))
		}
	}()

	if _, err := io.WriteString(file, r.String()); err != nil {
		return fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}
	return nil
}

// Load reads the record file, which must hold exactly one line. A missing or
// unreadable file wraps common.ErrRecordUnavailable, anything else that is
// malformed common.ErrCorruptRecord.
func (f *FileRepository) Load(ctx context.Context) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Record{}, fmt.Errorf("%w: %s does not exist", common.ErrRecordUnavailable, f.path)
		}
		return Record{}, fmt.Errorf("%w: %v", common.ErrRecordUnavailable, err)
	}

	line := strings.TrimSuffix(strings.TrimSuffix(string(data), "\n"), "\r")
	if strings.ContainsAny(line, "\r\n") {
		return Record{}, fmt.Errorf("%w: %s holds more than one line", common.ErrCorruptRecord, f.path)
	}

	return ParseRecord(line)
}

// memoryRepository holds a record that could not be written to disk.
type memoryRepository struct {
	r Record
}

func (m *memoryRepository) Save(_ context.Context, r Record) error {
	m.r = r
	return nil
}

func (m *memoryRepository) Load(context.Context) (Record, error) {
	return m.r, nil
}
