package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching assembled records
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from document text. Identical documents hash to
// the same key, so repeated inputs skip the AI call.
func Key(text string) string {
	hash := sha256.Sum256([]byte(text))
	return "mandex:v1:" + hex.EncodeToString(hash[:])
}
