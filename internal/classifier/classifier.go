// Package classifier turns a decoded chain-feed message into an
// ObservedFill for the strategy engine (C7) and writes the per-mint venue
// hints only the stream can supply (coin_creator, virtual/vault reserves)
// into the pool cache (C4). Grounded directly on spec §4.10's field-by-field
// derivation list; the gRPC/websocket decode layer that produces the raw
// balance deltas this package consumes lives in the harness transport (spec
// §1 scopes transport out of the core), modeled here after
// aman-zulfiqar-solana-swap-indexer's internal/stream/helius.go
// transactionSubscribe message shape.
package classifier

import (
	"math"

	"github.com/copytrader/engine/internal/cache"
	"github.com/copytrader/engine/internal/router"
	"github.com/copytrader/engine/internal/venue"
	"github.com/gagliardetto/solana-go"
)

// RawFill is the balance-delta view of one tracked wallet's trade, already
// extracted from a transaction-update message by the harness transport.
// TokenDelta's sign gives the side: positive means the wallet received
// tokens (a buy), negative means it sent them (a sell).
type RawFill struct {
	WalletLabel       string
	Mint              string
	TokenDelta        int64
	PreTokenBalance   uint64
	LamportsDelta     int64
	InvokedProgramIDs []solana.PublicKey
}

// Classify derives an ObservedFill from raw, per spec §4.10. ok is false
// when raw carries no token movement at all (a no-op message the harness
// should simply drop).
func Classify(raw RawFill) (venue.ObservedFill, bool) {
	if raw.TokenDelta == 0 {
		return venue.ObservedFill{}, false
	}

	side := venue.Buy
	if raw.TokenDelta < 0 {
		side = venue.Sell
	}

	dex, _ := router.IdentifyDexByProgramIDs(raw.InvokedProgramIDs)

	var pct float64
	if raw.PreTokenBalance > 0 {
		pct = math.Abs(float64(raw.TokenDelta)) / float64(raw.PreTokenBalance)
		if pct > 1 {
			pct = 1
		} else if pct < 0 {
			pct = 0
		}
	}

	cost := raw.LamportsDelta
	if cost < 0 {
		cost = -cost
	}

	return venue.ObservedFill{
		Mint:         raw.Mint,
		Side:         side,
		CostLamports: uint64(cost),
		PctOfBalance: pct,
		Dex:          dex,
		WalletLabel:  raw.WalletLabel,
	}, true
}

// PoolHint carries the per-mint venue metadata the stream observes on a
// pool/curve account-update message — the fields internal/pda's pure
// derivation can never produce on its own (spec §4.1/§9's coin_creator Open
// Question) plus the live reserve/vault balances spec §4.3's pricing needs.
// Zero-value fields are treated as "not observed in this message" and leave
// the cached value untouched.
type PoolHint struct {
	Mint                 string
	CoinCreator          solana.PublicKey
	FeeRecipient         solana.PublicKey
	PoolID               solana.PublicKey
	VirtualSolReserves   uint64
	VirtualTokenReserves uint64
	BaseVaultAmount      uint64
	QuoteVaultAmount     uint64
}

// ApplyPoolHint merges hint into pools' entry for hint.Mint. The classifier
// is the sole writer of these fields (spec §4.10: "the authoritative source
// for coin_creator and other per-mint venue hints").
func ApplyPoolHint(pools *cache.PoolRegistry, hint PoolHint) {
	if !hint.CoinCreator.IsZero() {
		pools.StoreCoinCreator(hint.Mint, hint.CoinCreator)
	}

	meta, _ := pools.Get(hint.Mint)
	if !hint.FeeRecipient.IsZero() {
		meta.FeeRecipient = hint.FeeRecipient
	}
	if !hint.PoolID.IsZero() {
		meta.PoolID = hint.PoolID
	}
	if hint.VirtualSolReserves > 0 {
		meta.VirtualSolReserves = hint.VirtualSolReserves
	}
	if hint.VirtualTokenReserves > 0 {
		meta.VirtualTokenReserves = hint.VirtualTokenReserves
	}
	if hint.BaseVaultAmount > 0 {
		meta.BaseVaultAmount = hint.BaseVaultAmount
	}
	if hint.QuoteVaultAmount > 0 {
		meta.QuoteVaultAmount = hint.QuoteVaultAmount
	}
	pools.Store(hint.Mint, meta)
}
