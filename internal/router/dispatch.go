package router

import (
	"context"
	"fmt"

	"github.com/copytrader/engine/internal/builder"
	"github.com/copytrader/engine/internal/cache"
	"github.com/copytrader/engine/internal/venue"
	"github.com/gagliardetto/solana-go"
)

// AssumedDex is the venue the router builds against when program-id
// detection comes up empty. Spec §4.8: "assumes bonding-curve A (the most
// common venue for fresh mints)".
const AssumedDex = venue.BondingCurveA

// Router owns one Builder per venue; Resolve holds the assume-then-dispatch
// decision for fills whose venue was not detected. Nothing in this module
// re-probes the chain or rebuilds under another venue after a
// submission-time failure.
type Router struct {
	builders map[venue.DexKind]builder.Builder
}

// NewRouter wires one concrete Builder per DexKind, sharing the same
// signer/pool-registry/token-amount collaborators across all of them.
func NewRouter(signer builder.Signer, pools *cache.PoolRegistry, amounts *cache.TokenAmounts) *Router {
	return &Router{builders: map[venue.DexKind]builder.Builder{
		venue.BondingCurveA:         builder.NewBondingCurveBuilder(venue.BondingCurveA, signer, pools, amounts),
		venue.BondingCurveB:         builder.NewBondingCurveBuilder(venue.BondingCurveB, signer, pools, amounts),
		venue.LaunchpadBondingCurve: builder.NewBondingCurveBuilder(venue.LaunchpadBondingCurve, signer, pools, amounts),
		venue.MigratedAmm:           builder.NewMigratedAmmBuilder(signer, pools, amounts),
		venue.ConstantProductCpmm:   builder.NewCPMMBuilder(signer, pools, amounts),
		venue.DynamicAmm:            builder.NewDynamicAmmBuilder(signer, pools, amounts),
	}}
}

// BuilderFor returns the venue builder for dex, if known.
func (r *Router) BuilderFor(dex venue.DexKind) (builder.Builder, bool) {
	b, ok := r.builders[dex]
	return b, ok
}

// Resolve picks the venue to build against: detected if program-id
// detection found one, AssumedDex otherwise. The bool return reports
// whether the choice was an assumption; no rebuild-on-failure path in this
// module consumes it.
func Resolve(detected venue.DexKind, ok bool) (venue.DexKind, bool) {
	if ok {
		return detected, false
	}
	return AssumedDex, true
}

// BuildBuy dispatches to dex's builder, returning an error when no builder
// is registered for dex.
func (r *Router) BuildBuy(ctx context.Context, dex venue.DexKind, payer solana.PrivateKey, mint solana.PublicKey, inLamports uint64, settings builder.Settings) (*solana.Transaction, uint64, error) {
	b, ok := r.BuilderFor(dex)
	if !ok {
		return nil, 0, fmt.Errorf("no builder registered for dex %q", dex)
	}
	return b.BuildBuy(ctx, payer, mint, inLamports, settings)
}

// BuildSell dispatches to the resolved venue's builder, symmetric with
// BuildBuy.
func (r *Router) BuildSell(ctx context.Context, dex venue.DexKind, payer solana.PrivateKey, mint solana.PublicKey, tokenAmount uint64, settings builder.Settings) (*solana.Transaction, error) {
	b, ok := r.BuilderFor(dex)
	if !ok {
		return nil, fmt.Errorf("no builder registered for dex %q", dex)
	}
	return b.BuildSell(ctx, payer, mint, tokenAmount, settings)
}
