package diagram

import (
	"crypto/sha1" // #nosec G505 -- content addressing, not security
	"encoding/hex"
	"io"
)

// hashLength is the number of hex digits kept in file names.
const hashLength = 10

// Hash returns the short content hash of salt followed by parts. Parts are
// concatenated without separators so names stay compatible with existing
// asset caches.
func Hash(salt string, parts ...string) string {
	h := sha1.New() // #nosec G401 -- content addressing, not security
	_, _ = io.WriteString(h, salt)
	for _, p := range parts {
		_, _ = io.WriteString(h, p)
	}
	return hex.EncodeToString(h.Sum(nil))[:hashLength]
}

// FileName joins prefix, hash and extension as prefix-hash.ext.
func FileName(prefix, hash, ext string) string {
	return prefix + "-" + hash + "." + ext
}
