package config

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	// Test cases
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "Test1 OK", args: []string{"cmd", "-p", "/tmp/pw.hash", "-m", "5", "-d", "", "-r=true"}, expectPanic: false,
			expected: &Config{StorePath: "/tmp/pw.hash", MaxVerifyAttempts: 5, RequirePersistence: true}},
		{name: "Test2 foreign flags ignored", args: []string{"cmd", "-x", "1", "-l", "log.txt", "-s", "100"}, expectPanic: false,
			expected: &Config{ErrorLogPath: "log.txt", MaxInputFileSize: 100}},
		{name: "Test3 incorrect attempts", args: []string{"cmd", "-m", "abc"}, expectPanic: true, expected: &Config{}},
		{name: "Test4 negative attempts", args: []string{"cmd", "-m=-1"}, expectPanic: true, expected: &Config{}},
		{name: "Test5 negative attempts separate value", args: []string{"cmd", "-m", "-1"}, expectPanic: true, expected: &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}

func TestParseFlags_NegativeSeparateValue(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	for _, args := range [][]string{
		{"cmd", "-m", "-1"},
		{"cmd", "-s", "-5"},
	} {
		os.Args = args
		require.PanicsWithValue(t, errNegative, func() { parseFlags(&Config{}) }, "%v", args)
	}
}
