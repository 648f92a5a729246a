// Package identity derives content-addressed identifiers for documents.
package identity

import (
	"crypto/sha1" // #nosec G505 -- naming scheme, not a security boundary
	"encoding/hex"
)

// FromURL returns the SHA-1 hex digest of the URL string. The digest names
// the file on disk and keys the download-skip check. It hashes the locator,
// not the payload: two URLs serving identical bytes are two documents.
func FromURL(raw string) string {
	sum := sha1.Sum([]byte(raw)) // #nosec G401
	return hex.EncodeToString(sum[:])
}
