package crypto

import (
	"sync/atomic"

	"github.com/eth2030/ethutil/core/types"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultRecoveryCacheSize is the default number of entries in a RecoveryCache.
const DefaultRecoveryCacheSize = 4096

// RecoveryCache is a concurrent-safe LRU of recovered signer addresses.
// Entries are keyed by RecoveryCacheKey, so the same signed hash seen twice
// is recovered only once.
type RecoveryCache struct {
	entries *lru.Cache[types.Hash, types.Address]

	hits   atomic.Int64
	misses atomic.Int64
}

// NewRecoveryCache creates a cache holding up to size entries. If size <= 0,
// DefaultRecoveryCacheSize is used.
func NewRecoveryCache(size int) *RecoveryCache {
	if size <= 0 {
		size = DefaultRecoveryCacheSize
	}
	entries, _ := lru.New[types.Hash, types.Address](size)
	return &RecoveryCache{entries: entries}
}

// RecoveryCacheKey identifies a (hash, signature) pair as
// Keccak256(hash || r || s || recid). The chain-specific V encoding is
// folded into the raw recovery ID, so equal signatures share a key.
func RecoveryCacheKey(hash []byte, recid byte, r, s [32]byte) types.Hash {
	return Keccak256Hash(hash, r[:], s[:], []byte{recid})
}

// Get returns the cached signer for key and promotes it.
func (c *RecoveryCache) Get(key types.Hash) (types.Address, bool) {
	addr, ok := c.entries.Get(key)
	if !ok {
		c.misses.Add(1)
		return types.Address{}, false
	}
	c.hits.Add(1)
	return addr, true
}

// Add stores the signer for key, evicting the least recently used entry when full.
func (c *RecoveryCache) Add(key types.Hash, signer types.Address) {
	c.entries.Add(key, signer)
}

// Contains reports whether key is cached without touching the LRU order.
func (c *RecoveryCache) Contains(key types.Hash) bool {
	return c.entries.Contains(key)
}

// Len returns the number of cached entries.
func (c *RecoveryCache) Len() int {
	return c.entries.Len()
}

// Hits returns the number of successful lookups since creation or the last Purge.
func (c *RecoveryCache) Hits() int64 { return c.hits.Load() }

// Misses returns the number of failed lookups since creation or the last Purge.
func (c *RecoveryCache) Misses() int64 { return c.misses.Load() }

// HitRate returns hits / (hits + misses), or 0 before the first lookup.
func (c *RecoveryCache) HitRate() float64 {
	h, m := c.hits.Load(), c.misses.Load()
	if h+m == 0 {
		return 0
	}
	return float64(h) / float64(h+m)
}

// Purge removes every entry and resets the counters.
func (c *RecoveryCache) Purge() {
	c.entries.Purge()
	c.hits.Store(0)
	c.misses.Store(0)
}
