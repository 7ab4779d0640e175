package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for document-byte caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from a document URL
func Key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "govsift:v1:" + hex.EncodeToString(hash[:])
}

// Nop is a disabled cache that stores nothing
type Nop struct{}

func (Nop) Get(string) ([]byte, bool)                  { return nil, false }
func (Nop) Set(string, []byte, time.Duration) error    { return nil }
func (Nop) Delete(string) error                        { return nil }
func (Nop) Clear() error                               { return nil }
