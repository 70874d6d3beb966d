package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey builds a cache key of the form stage:hash(parts...). The parts
// are JSON-encoded so option structs hash stably field by field.
func hashKey(stage string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return stage + ":" + hex.EncodeToString(sum[:])
}

// Hash returns the full sha256 hex digest of data. It is what the
// pipeline uses to fingerprint datasets and layouts between stages.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
