// Package cryptox contains the salt and digest primitives behind stored
// credentials.
//
// A credential hash is SHA-256 over the raw salt bytes followed by the UTF-8
// bytes of the password. Both salt and hash travel as lowercase hex.
package cryptox

import (
	"crypto"
	_ "crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/inputguard/internal/common"
)

// SaltSize is the number of random bytes in a salt.
const SaltSize = 16

// ErrInvalidSalt is returned when a salt is not valid hex.
var ErrInvalidSalt = errors.New("invalid salt")

// digest is a variable so tests can simulate an unavailable algorithm.
var digest = crypto.SHA256

// GenerateSalt returns SaltSize bytes from crypto/rand encoded as hex.
func GenerateSalt() (string, error) {
	s, err := common.MakeRandHexString(SaltSize)
	if err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return s, nil
}

// HashPassword derives the hex digest of saltHex (decoded) followed by password.
//
// The salt must be the hex string produced by GenerateSalt or read back from a
// stored record. If the digest is not linked into the binary the call fails
// with common.ErrMissingAlgorithm.
//
// Example:
//
//	salt, _ := GenerateSalt()
//	hash, err := HashPassword("Str0ng!Pass", salt)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(len(hash)) // 64
func HashPassword(password, saltHex string) (string, error) {
	if !digest.Available() {
		return "", fmt.Errorf("%w: %s", common.ErrMissingAlgorithm, digest)
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSalt, err)
	}

	pw := []byte(password)
	defer common.WipeByteArray(pw)

	h := digest.New()
	h.Write(salt)
	h.Write(pw)

	return hex.EncodeToString(h.Sum(nil)), nil
}

// Equal reports whether two hex digests are identical, in constant time.
func Equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
