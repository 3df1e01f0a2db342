package core

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash represents a hex-encoded SHA-256 digest
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// Short returns the leading eight hex digits, enough to tell two hashes
// apart in logs.
func (h Hash) Short() string {
	if len(h) < 8 {
		return string(h)
	}
	return string(h[:8])
}

// DatasetHash fingerprints one loaded reference dataset. Two advisors
// reporting the same fingerprint serve identical advice for identical
// requests.
type DatasetHash Hash

// NewDatasetHash creates a dataset fingerprint from canonical dataset bytes
func NewDatasetHash(data []byte) DatasetHash {
	return DatasetHash(NewHash(data))
}

// String conversions
func (h DatasetHash) String() string { return Hash(h).String() }
func (h DatasetHash) Short() string  { return Hash(h).Short() }
func (h DatasetHash) IsEmpty() bool  { return Hash(h).IsEmpty() }
