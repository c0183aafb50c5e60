// Package hashpkg provides hashing functionality for account passwords.
package hashpkg

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
)

// ErrMismatchedHash indicates that the password does not match the stored digest.
var ErrMismatchedHash = errors.New("password does not match the stored digest")

// Hash returns the hex encoded SHA-256 digest of the password. Hashing is
// deterministic: a stored digest is verified by recomputing it, never by
// decoding it.
func Hash(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Check compares the password against the stored digest.
func Check(password, digest string) error {
	if subtle.ConstantTimeCompare([]byte(Hash(password)), []byte(digest)) != 1 {
		return ErrMismatchedHash
	}

	return nil
}
