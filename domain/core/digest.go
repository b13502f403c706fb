package core

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest identifies the exact source bytes of a parse attempt. Two attempts
// over byte-identical sources carry the same digest, which keeps metadata
// deterministic across re-runs.
type Digest string

// NewDigest creates a digest from raw source bytes.
func NewDigest(data []byte) Digest {
	sum := sha256.Sum256(data)
	return Digest(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (d Digest) String() string {
	return string(d)
}

// IsEmpty checks if the digest is empty
func (d Digest) IsEmpty() bool {
	return d == ""
}

// Equals checks if two digests are equal
func (d Digest) Equals(other Digest) bool {
	return d == other
}
