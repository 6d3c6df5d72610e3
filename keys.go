package rendercache

import (
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
)

// SHA256Hex is the default KeyFunc: the lowercase hex SHA-256 digest of the
// exact content bytes (64 characters).
func SHA256Hex(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// SHA1Hex derives keys with SHA-1 (40 hex characters). Only useful to stay
// compatible with a namespace populated by an older SHA-1 based cache;
// prefer SHA256Hex for new namespaces.
func SHA1Hex(content []byte) string {
	sum := sha1.Sum(content)
	return hex.EncodeToString(sum[:])
}
