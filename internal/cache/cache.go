package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching. A ttl of 0 on Set means the entry
// never expires; the persistent evaluation cache relies on this, since
// evaluation entries are only ever replaced, never aged out.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from a URL. The hash is a pure function of the
// exact input string: two URLs that differ only in case or query order get
// distinct entries, by contract.
func Key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "oerlens:v1:" + hex.EncodeToString(hash[:])
}
