package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/inputguard/internal/common"
)

// terminalPrompter feeds the credential store from the terminal.
type terminalPrompter struct {
	reader *bufio.Reader
	out    io.Writer
}

func (p *terminalPrompter) Prompt(ctx context.Context, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	pw, err := GetPassword(p.reader, message, p.out)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)
	return string(pw), nil
}

func (p *terminalPrompter) Notify(_ context.Context, message string) {
	fmt.Fprintln(p.out, message)
}
