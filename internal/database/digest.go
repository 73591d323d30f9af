package database

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Digest returns the hex BLAKE2b-256 digest of names in order, each name
// terminated by a newline. Two tables with equal digests hold the same
// names in the same row order.
func Digest(names []string) string {
	h, _ := blake2b.New256(nil) //nolint:errcheck // Only fails for keys longer than 64 bytes
	for _, name := range names {
		_, _ = h.Write([]byte(name))
		_, _ = h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
