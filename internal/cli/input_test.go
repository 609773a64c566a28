package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

// fakeTerminal swaps the terminal seams for the duration of the test.
func fakeTerminal(t *testing.T, tty bool, read func(int) ([]byte, error)) {
	t.Helper()
	oldRead, oldIs, oldFd := readPassword, isTerminal, stdinFd
	t.Cleanup(func() { readPassword, isTerminal, stdinFd = oldRead, oldIs, oldFd })

	stdinFd = func() int { return 0 }
	isTerminal = func(int) bool { return tty }
	if read != nil {
		readPassword = read
	}
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("  hello world \r\n"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(rdr(""), "Name?", &out)
	assert.ErrorIs(t, err, io.EOF)
}

func TestGetPassword_PipedKeepsWhitespace(t *testing.T) {
	fakeTerminal(t, false, func(int) ([]byte, error) {
		t.Fatal("readPassword must not be used without a terminal")
		return nil, nil
	})

	var out bytes.Buffer
	got, err := GetPassword(rdr(" Pass word1!\r\n"), "Password: ", &out)
	require.NoError(t, err)
	assert.Equal(t, " Pass word1!", string(got))
	assert.Equal(t, "Password: ", out.String())
}

func TestGetPassword_Terminal(t *testing.T) {
	fakeTerminal(t, true, func(int) ([]byte, error) {
		return []byte("Secret1!x"), nil
	})

	var out bytes.Buffer
	got, err := GetPassword(rdr("ignored\n"), "Password: ", &out)
	require.NoError(t, err)
	assert.Equal(t, "Secret1!x", string(got))
	assert.Equal(t, "Password: \n", out.String())
}

func TestGetPassword_Error(t *testing.T) {
	fakeTerminal(t, true, func(int) ([]byte, error) {
		return nil, errors.New("boom")
	})

	var out bytes.Buffer
	_, err := GetPassword(rdr(""), "Password: ", &out)
	require.Error(t, err)
}
