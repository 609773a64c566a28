package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/inputguard/internal/audit"
	"github.com/dmitrijs2005/inputguard/internal/common"
	"github.com/dmitrijs2005/inputguard/internal/inputs"
	"github.com/dmitrijs2005/inputguard/internal/report"
)

// ask repeats prompt until parse accepts the line. Rejections are shown,
// logged and journaled under field.
func ask[T any](ctx context.Context, a *App, field, prompt string, parse func(string) (T, error)) (T, error) {
	var zero T
	for {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		line, err := GetSimpleText(a.reader, prompt, a.out)
		if err != nil {
			return zero, fmt.Errorf("read %s: %w", field, err)
		}

		v, err := parse(line)
		if err == nil {
			return v, nil
		}

		fmt.Fprintf(a.out, "Error: %s. Please try again.\n", userMessage(err))
		a.log.Warn(ctx, field+" validation error", "error", err)
		a.record(ctx, audit.KindInvalidInput, field)
	}
}

func userMessage(err error) string {
	return strings.TrimPrefix(err.Error(), common.ErrInvalidInput.Error()+": ")
}

func (a *App) section(title string, rules ...string) {
	fmt.Fprintf(a.out, "\n----- %s -----\n", strings.ToUpper(title))
	for i, r := range rules {
		fmt.Fprintf(a.out, "%d. %s\n", i+1, r)
	}
}

func (a *App) askName(ctx context.Context, which string) (string, error) {
	a.section(which+" name input",
		fmt.Sprintf("Maximum %d characters", inputs.MaxNameLength),
		"Only letters (A-Z, a-z), hyphens (-), apostrophes (') and spaces are allowed",
		"Cannot be empty")
	return ask(ctx, a, which+" name", "\nEnter your "+which+" name: ", inputs.ValidateName)
}

func (a *App) askInt(ctx context.Context, which string) (int32, error) {
	a.section(which+" integer input",
		"Must be a valid integer (whole number)",
		"Must be within the range of a 4-byte int: -2,147,483,648 to 2,147,483,647")
	return ask(ctx, a, which+" integer", "\nEnter the "+which+" integer: ", inputs.ParseInt32)
}

func (a *App) askInputFile(ctx context.Context) (string, error) {
	a.section("input file name",
		fmt.Sprintf("Maximum %d characters", inputs.MaxFileNameLength),
		"Only letters, digits, periods (.), underscores (_) and hyphens (-) are allowed",
		fmt.Sprintf("File must exist in the current directory or in %s/ and be at most %d bytes", inputs.FallbackDir, a.config.MaxInputFileSize),
		"Don't forget the file extension (e.g. .txt)")

	return ask(ctx, a, "input file", "\nEnter the input file name: ", func(s string) (string, error) {
		name, err := inputs.ValidateFileName(s)
		if err != nil {
			return "", err
		}
		return inputs.ResolveInputFile(a.workDir, name, a.config.MaxInputFileSize)
	})
}

func (a *App) askOutputFile(ctx context.Context, inputPath string) (string, error) {
	a.section("output file name",
		fmt.Sprintf("Maximum %d characters", inputs.MaxFileNameLength),
		"Only letters, digits, periods (.), underscores (_) and hyphens (-) are allowed",
		"The file will be created or overwritten")

	return ask(ctx, a, "output file", "\nEnter the output file name: ", func(s string) (string, error) {
		name, err := inputs.ValidateFileName(s)
		if err != nil {
			return "", err
		}
		path := filepath.Join(a.workDir, name)
		if inputs.SameFile(path, inputPath) {
			return "", fmt.Errorf("%w: output file must differ from the input file", common.ErrInvalidInput)
		}
		if err := inputs.CheckOutputWritable(path); err != nil {
			return "", err
		}
		return path, nil
	})
}

// collect gathers every value the report needs except the password hash.
func (a *App) collect(ctx context.Context) (report.Data, error) {
	var (
		d   report.Data
		err error
	)

	if d.FirstName, err = a.askName(ctx, "first"); err != nil {
		return d, err
	}
	if d.LastName, err = a.askName(ctx, "last"); err != nil {
		return d, err
	}
	if d.First, err = a.askInt(ctx, "first"); err != nil {
		return d, err
	}
	if d.Second, err = a.askInt(ctx, "second"); err != nil {
		return d, err
	}
	if d.InputPath, err = a.askInputFile(ctx); err != nil {
		return d, err
	}
	if d.OutputPath, err = a.askOutputFile(ctx, d.InputPath); err != nil {
		return d, err
	}
	return d, nil
}
