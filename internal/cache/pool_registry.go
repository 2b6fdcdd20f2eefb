package cache

import (
	"sync"

	"github.com/gagliardetto/solana-go"
)

// PoolMeta is the per-mint derived-account snapshot sufficient to build a
// venue's swap instruction without further network calls (spec §3).
type PoolMeta struct {
	PoolID        solana.PublicKey
	BaseVaultATA  solana.PublicKey
	QuoteVaultATA solana.PublicKey
	Authority     solana.PublicKey
	Observation   solana.PublicKey
	LPMint        solana.PublicKey
	FeeRecipient  solana.PublicKey
	CoinCreator   solana.PublicKey
	HasCoinCreator bool

	// Bonding-curve virtual reserves, observed from the curve account on the
	// stream (spec §4.3's stepwise-integration pricing needs these; the
	// deriver in internal/pda never fetches them).
	VirtualSolReserves   uint64
	VirtualTokenReserves uint64

	// CPMM/DynamicAmm real vault balances, observed from vault token
	// accounts on the stream, used for constant-product quoting.
	BaseVaultAmount  uint64
	QuoteVaultAmount uint64
}

// PoolRegistry is the concurrent, map-backed per-mint venue metadata cache
// populated by the stream classifier (C10) as it observes fresh mints.
type PoolRegistry struct {
	mu    sync.RWMutex
	pools map[string]PoolMeta // keyed by mint
}

func NewPoolRegistry() *PoolRegistry {
	return &PoolRegistry{pools: make(map[string]PoolMeta)}
}

func (r *PoolRegistry) Get(mint string) (PoolMeta, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.pools[mint]
	return m, ok
}

func (r *PoolRegistry) Store(mint string, meta PoolMeta) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pools[mint] = meta
}

// StoreCoinCreator records (or updates) just the coin_creator datum for a
// mint, as observed from the classifier; like the fee recipient and the
// reserves, it is a datum the deriver (internal/pda) cannot compute on its
// own (spec §4.1/§9 Open Questions).
func (r *PoolRegistry) StoreCoinCreator(mint string, coinCreator solana.PublicKey) {
	r.mu.Lock()
	defer r.mu.Unlock()
	meta := r.pools[mint]
	meta.CoinCreator = coinCreator
	meta.HasCoinCreator = true
	r.pools[mint] = meta
}

func (r *PoolRegistry) Clear(mint string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pools, mint)
}
