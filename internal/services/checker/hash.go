package checker

import (
	"crypto/sha256"
	"fmt"
)

// Fingerprint calculates the SHA256 digest of normalized page text.
func Fingerprint(text string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(text)))
}

// HasChanged reports whether a page moved away from its previous digest.
// A missing previous digest is a baseline observation, never a change.
func HasChanged(previous *string, current string) bool {
	return previous != nil && *previous != current
}
