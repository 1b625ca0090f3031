package token

import (
	"crypto/rand"
	"encoding/hex"
)

// NewSecureToken mints an opaque random token used as the sole credential for
// unauthenticated report downloads.
func NewSecureToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
