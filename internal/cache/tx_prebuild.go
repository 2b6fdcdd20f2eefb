package cache

import (
	"sync"
	"time"
)

// CachedTransaction is a pre-signed transaction plus the data needed to
// judge whether it is still usable. Grounded on
// original_source/src/utils/transaction_cache.rs's CachedTransaction.
type CachedTransaction struct {
	TransactionB64 string
	MinTokensOut   uint64
	FeeRecipient   string
	CachedAt       time.Time
}

const (
	freshMintExpiry = 30 * time.Second
	generalExpiry   = 60 * time.Second
)

// TxPreBuildCache is the "Transaction Pre-Build Cache" from spec §4.4's last
// sentence, fully specified in SPEC_FULL.md as C4b: a fresh-mint cache
// (30s expiry) and a general cache (60s expiry), each checked lazily on
// read and swept periodically.
type TxPreBuildCache struct {
	mu          sync.Mutex
	freshMints  map[string]CachedTransaction // keyed by mint
	general     map[string]CachedTransaction // keyed by an opaque cache key (e.g. "wallet:mint:side")
	now         func() time.Time
}

func NewTxPreBuildCache() *TxPreBuildCache {
	return &TxPreBuildCache{
		freshMints: make(map[string]CachedTransaction),
		general:    make(map[string]CachedTransaction),
		now:        time.Now,
	}
}

func (c *TxPreBuildCache) CacheFreshMintTx(mint string, tx CachedTransaction) {
	c.mu.Lock()
	defer c.mu.Unlock()
	tx.CachedAt = c.now()
	c.freshMints[mint] = tx
}

// GetFreshMintTransaction returns the cached transaction if present and not
// yet expired (30s).
func (c *TxPreBuildCache) GetFreshMintTransaction(mint string) (CachedTransaction, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	tx, ok := c.freshMints[mint]
	if !ok {
		return CachedTransaction{}, false
	}
	if c.now().Sub(tx.CachedAt) > freshMintExpiry {
		delete(c.freshMints, mint)
		return CachedTransaction{}, false
	}
	return tx, true
}

func (c *TxPreBuildCache) CacheGeneralTransaction(key string, tx CachedTransaction) {
	c.mu.Lock()
	defer c.mu.Unlock()
	tx.CachedAt = c.now()
	c.general[key] = tx
}

// GetGeneralTransaction returns the cached transaction if present and not
// yet expired (60s).
func (c *TxPreBuildCache) GetGeneralTransaction(key string) (CachedTransaction, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	tx, ok := c.general[key]
	if !ok {
		return CachedTransaction{}, false
	}
	if c.now().Sub(tx.CachedAt) > generalExpiry {
		delete(c.general, key)
		return CachedTransaction{}, false
	}
	return tx, true
}

// CleanupExpired sweeps both maps, dropping anything past its expiry. It is
// intended to be driven by a periodic ticker, analogous to the original's
// cleanup_expired.
func (c *TxPreBuildCache) CleanupExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for k, tx := range c.freshMints {
		if now.Sub(tx.CachedAt) > freshMintExpiry {
			delete(c.freshMints, k)
		}
	}
	for k, tx := range c.general {
		if now.Sub(tx.CachedAt) > generalExpiry {
			delete(c.general, k)
		}
	}
}

// Stats reports current occupancy of each cache, mirroring the original's
// get_stats diagnostic.
func (c *TxPreBuildCache) Stats() (freshMints, general int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.freshMints), len(c.general)
}
