package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// ContentHash returns the SHA-256 of lines joined by '\n', hex encoded.
// Two line slices hash equal exactly when their joined text is equal.
func ContentHash(lines []string) string {
	h := sha256.New()
	for i, line := range lines {
		if i > 0 {
			h.Write([]byte{'\n'})
		}
		h.Write([]byte(line))
	}
	return hex.EncodeToString(h.Sum(nil))
}

