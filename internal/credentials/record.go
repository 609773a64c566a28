package credentials

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/inputguard/internal/common"
	"github.com/dmitrijs2005/inputguard/internal/cryptox"
)

const (
	separator  = ":"
	hashHexLen = 64
)

// Record is a persisted salt/hash pair.
type Record struct {
	Salt string
	Hash string
}

// String renders the on-disk form "<salt>:<hash>".
func (r Record) String() string {
	return r.Salt + separator + r.Hash
}

// ParseRecord parses a persisted line. A single trailing line break is
// tolerated. Anything but exactly two well-formed hex fields is reported as
// common.ErrCorruptRecord.
func ParseRecord(line string) (Record, error) {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")

	parts := strings.Split(line, separator)
	if len(parts) != 2 {
		return Record{}, fmt.Errorf("%w: expected 2 fields, got %d", common.ErrCorruptRecord, len(parts))
	}

	r := Record{Salt: parts[0], Hash: parts[1]}
	if err := checkHex(r.Salt, 2*cryptox.SaltSize); err != nil {
		return Record{}, fmt.Errorf("%w: salt: %v", common.ErrCorruptRecord, err)
	}
	if err := checkHex(r.Hash, hashHexLen); err != nil {
		return Record{}, fmt.Errorf("%w: hash: %v", common.ErrCorruptRecord, err)
	}
	return r, nil
}

func checkHex(s string, n int) error {
	if len(s) != n {
		return fmt.Errorf("expected %d hex chars, got %d", n, len(s))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return err
	}
	if hex.EncodeToString(b) != s {
		return fmt.Errorf("hex must be lowercase")
	}
	return nil
}
