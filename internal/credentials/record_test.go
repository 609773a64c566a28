package credentials

import (
	"strings"
	"testing"

	"github.com/dmitrijs2005/inputguard/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testSalt = strings.Repeat("ab", 16)
	testHash = strings.Repeat("0f", 32)
)

func TestRecord_String(t *testing.T) {
	r := Record{Salt: testSalt, Hash: testHash}
	assert.Equal(t, testSalt+":"+testHash, r.String())
}

func TestParseRecord(t *testing.T) {
	valid := testSalt + ":" + testHash

	tests := []struct {
		name    string
		line    string
		corrupt bool
	}{
		{name: "plain", line: valid},
		{name: "trailing LF", line: valid + "\n"},
		{name: "trailing CRLF", line: valid + "\r\n"},
		{name: "one field", line: "onlyonefield", corrupt: true},
		{name: "three fields", line: valid + ":extra", corrupt: true},
		{name: "empty", line: "", corrupt: true},
		{name: "short salt", line: "abcd:" + testHash, corrupt: true},
		{name: "non-hex hash", line: testSalt + ":" + strings.Repeat("zz", 32), corrupt: true},
		{name: "empty hash", line: testSalt + ":", corrupt: true},
		{name: "uppercase hash", line: testSalt + ":" + strings.ToUpper(testHash), corrupt: true},
		{name: "uppercase salt", line: strings.ToUpper(testSalt) + ":" + testHash, corrupt: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseRecord(tt.line)
			if tt.corrupt {
				require.ErrorIs(t, err, common.ErrCorruptRecord)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, Record{Salt: testSalt, Hash: testHash}, r)
		})
	}
}
