// Package report writes the annotated output file: the collected values, the
// sum and product of the two integers, the password hash and a copy of the
// input file.
package report

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

const (
	// MaxLineLength is the longest input line copied verbatim.
	MaxLineLength = 1000
	// MaxEchoLines is how many input lines are echoed to the terminal.
	MaxEchoLines = 1000
	// MaxEchoLength truncates echoed lines.
	MaxEchoLength = 100
)

// Data is everything the report is built from.
type Data struct {
	FirstName    string
	LastName     string
	First        int32
	Second       int32
	InputPath    string
	OutputPath   string
	PasswordHash string
}

// Sum never overflows: both operands are 32-bit.
func (d Data) Sum() int64 {
	return int64(d.First) + int64(d.Second)
}

// Product never overflows: both operands are 32-bit.
func (d Data) Product() int64 {
	return int64(d.First) * int64(d.Second)
}

// Stats describes a finished report.
type Stats struct {
	Lines     int
	Truncated int
}

// Write creates (or truncates) d.OutputPath and fills it. Each copied input
// line is also echoed to echo; pass io.Discard to silence it.
func Write(ctx context.Context, d Data, echo io.Writer) (stats Stats, err error) {
	in, err := os.Open(d.InputPath)
	if err != nil {
		return Stats{}, fmt.Errorf("open input file: %w", err)
	}
	defer func() {
		if cerr := in.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close input file: %w", cerr))
		}
	}()

	out, err := os.Create(d.OutputPath)
	if err != nil {
		return Stats{}, fmt.Errorf("create output file: %w", err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close output file: %w", cerr))
		}
	}()

	w := bufio.NewWriter(out)
	if err := writeHeader(w, d); err != nil {
		return Stats{}, fmt.Errorf("write output file: %w", err)
	}

	stats, err = copyLines(ctx, in, w, echo)
	if err != nil {
		return stats, err
	}

	if err := w.Flush(); err != nil {
		return stats, fmt.Errorf("write output file: %w", err)
	}

	fmt.Fprintf(echo, "\nWritten to output file: %s\n", d.OutputPath)
	return stats, nil
}

func writeHeader(w io.Writer, d Data) error {
	_, err := fmt.Fprintf(w,
		"First name: %s\nLast name: %s\n\n"+
			"First Integer: %d\nSecond Integer: %d\nSum: %s\nProduct: %s\n\n"+
			"Input File Name: %s\n\nPassword hash: %s\n\n"+
			"Input file contents:\n------------------\n",
		d.FirstName, d.LastName,
		d.First, d.Second, strconv.FormatInt(d.Sum(), 10), strconv.FormatInt(d.Product(), 10),
		d.InputPath, d.PasswordHash)
	return err
}

func copyLines(ctx context.Context, in io.Reader, w io.Writer, echo io.Writer) (Stats, error) {
	var stats Stats

	r := bufio.NewReader(in)
	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		line, readErr := r.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return stats, fmt.Errorf("read input file: %w", readErr)
		}
		if line == "" && readErr != nil {
			return stats, nil
		}

		line = trimEOL(line)
		stats.Lines++

		text := line
		if runes := []rune(line); len(runes) > MaxLineLength {
			text = string(runes[:MaxLineLength]) + "... [line truncated, too long]"
			stats.Truncated++
		}
		if _, err := io.WriteString(w, text+"\n"); err != nil {
			return stats, fmt.Errorf("write output file: %w", err)
		}

		switch {
		case stats.Lines <= MaxEchoLines:
			fmt.Fprintln(echo, "Read from input file: "+shorten(line, MaxEchoLength))
		case stats.Lines == MaxEchoLines+1:
			fmt.Fprintln(echo, "... [additional lines not displayed]")
		}

		if readErr != nil {
			return stats, nil
		}
	}
}

func trimEOL(s string) string {
	if n := len(s); n > 0 && s[n-1] == '\n' {
		s = s[:n-1]
		if n := len(s); n > 0 && s[n-1] == '\r' {
			s = s[:n-1]
		}
	}
	return s
}

func shorten(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "... [truncated]"
}
