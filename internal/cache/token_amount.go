// Package cache holds the process-lifetime in-memory state the hot path
// consults instead of RPC lookups: owned token amounts, per-mint venue
// metadata, and a short-lived pre-signed-transaction cache.
//
// Grounded on original_source/src/utils/token_tracker.rs and
// original_source/src/utils/transaction_cache.rs.
package cache

import (
	"math"
	"sync"
)

type walletMint struct {
	wallet string
	mint   string
}

// SelfWallet is the TokenAmounts key for our own trading signer. The engine
// runs a single keypair (spec §1/§6: the core is handed one signer), so the
// cache only ever needs to distinguish by mint, mirroring the original's
// `me = settings.keypair.pubkey()` usage of token_tracker.
const SelfWallet = "self"

// TokenAmounts is the authoritative record of exact token units received
// from our last mirror buy on a (wallet, mint), used for sell sizing (C4).
type TokenAmounts struct {
	mu     sync.RWMutex
	amounts map[walletMint]uint64
}

func NewTokenAmounts() *TokenAmounts {
	return &TokenAmounts{amounts: make(map[walletMint]uint64)}
}

func (t *TokenAmounts) Store(wallet, mint string, amount uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.amounts[walletMint{wallet, mint}] = amount
}

func (t *TokenAmounts) Get(wallet, mint string) (uint64, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	amt, ok := t.amounts[walletMint{wallet, mint}]
	return amt, ok
}

func (t *TokenAmounts) Update(wallet, mint string, amount uint64) {
	t.Store(wallet, mint, amount)
}

func (t *TokenAmounts) Clear(wallet, mint string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.amounts, walletMint{wallet, mint})
}

// CalculateSellAmount returns floor(get(wallet,mint) * pct), per spec §4.4's
// explicit formula (this overrides the original Rust implementation's
// `.round()`, since the spec states floor unambiguously — see DESIGN.md).
func (t *TokenAmounts) CalculateSellAmount(wallet, mint string, pct float64) uint64 {
	amt, ok := t.Get(wallet, mint)
	if !ok {
		return 0
	}
	return uint64(math.Floor(float64(amt) * pct))
}
