// Package inputs validates the free-form values collected before the
// password: names, 32-bit integers and file names.
//
// Every failure wraps common.ErrInvalidInput; the error text is meant to be
// shown to the user as is.
package inputs

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/inputguard/internal/common"
)

const (
	MaxNameLength     = 50
	MaxFileNameLength = 255

	// DefaultMaxInputFileSize is the largest accepted input file.
	DefaultMaxInputFileSize int64 = 10 * 1024 * 1024

	// FallbackDir is searched when an input file is not in the working directory.
	FallbackDir = "src"
)

var (
	namePattern     = regexp.MustCompile(`^[a-zA-Z\-'\s]+$`)
	fileNamePattern = regexp.MustCompile(`^[a-zA-Z0-9._\-]+$`)
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", common.ErrInvalidInput, fmt.Sprintf(format, args...))
}

// ValidateName trims s and checks it is a non-empty name of letters,
// hyphens, apostrophes and spaces.
func ValidateName(s string) (string, error) {
	name := strings.TrimSpace(s)
	switch {
	case name == "":
		return "", invalid("name cannot be empty")
	case utf8.RuneCountInString(name) > MaxNameLength:
		return "", invalid("name exceeds maximum length of %d characters", MaxNameLength)
	case !namePattern.MatchString(name):
		return "", invalid("name contains invalid characters, only letters, hyphens, apostrophes and spaces are allowed")
	}
	return name, nil
}

// ParseInt32 parses a whole number within the 4-byte signed range.
func ParseInt32(s string) (int32, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, invalid("%q is outside the range %d..%d", s, math.MinInt32, math.MaxInt32)
		}
		return 0, invalid("%q is not a valid integer", s)
	}
	return int32(n), nil
}

// ValidateFileName checks a bare file name (no directories).
func ValidateFileName(s string) (string, error) {
	name := strings.TrimSpace(s)
	switch {
	case name == "":
		return "", invalid("file name cannot be empty")
	case len(name) > MaxFileNameLength:
		return "", invalid("file name exceeds maximum length of %d characters", MaxFileNameLength)
	case !fileNamePattern.MatchString(name):
		return "", invalid("file name contains invalid characters, only letters, digits, periods, underscores and hyphens are allowed")
	}
	return name, nil
}

// ResolveInputFile looks for name in dir and then in dir/FallbackDir and
// returns the path of the first regular file found. Files larger than
// maxSize are rejected.
func ResolveInputFile(dir, name string, maxSize int64) (string, error) {
	for _, candidate := range []string{
		filepath.Join(dir, name),
		filepath.Join(dir, FallbackDir, name),
	} {
		info, err := os.Stat(candidate)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return "", invalid("cannot access %s: %v", candidate, err)
		}
		if !info.Mode().IsRegular() {
			continue
		}
		if maxSize > 0 && info.Size() > maxSize {
			return "", invalid("file %s is too large (%d bytes, limit %d)", candidate, info.Size(), maxSize)
		}
		return candidate, nil
	}
	return "", invalid("input file %q not found in %s or %s", name, dir, filepath.Join(dir, FallbackDir))
}

// CheckOutputWritable verifies that path can be written: an existing file
// must be writable, a new one must be creatable. Probe files are removed.
func CheckOutputWritable(path string) error {
	dir := filepath.Dir(path)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return invalid("output directory %s does not exist", dir)
	}

	if info, err := os.Stat(path); err == nil {
		if !info.Mode().IsRegular() {
			return invalid("output path %s is not a regular file", path)
		}
		f, err := os.OpenFile(path, os.O_WRONLY, 0)
		if err != nil {
			return invalid("cannot write to %s: permission denied", path)
		}
		return f.Close()
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return invalid("cannot create output file %s: %v", path, err)
	}
	_ = f.Close()
	return os.Remove(path)
}

// SameFile reports whether a and b resolve to the same existing file.
func SameFile(a, b string) bool {
	ia, err := os.Stat(a)
	if err != nil {
		return false
	}
	ib, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ia, ib)
}
