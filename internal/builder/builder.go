// Package builder assembles the ordered instruction list for a buy or sell
// on a given venue and returns a signed transaction (C3). Grounded on the
// teacher's pkg/pool/{pump,raydium}/*.go BuildSwapInstructions methods for
// account layout and instruction data encoding, and pkg/sol/{sign,
// wsol_account,token_account}.go for ATA/WSOL/signing plumbing.
package builder

import (
	"context"
	"fmt"

	"github.com/copytrader/engine/internal/cache"
	"github.com/copytrader/engine/internal/errs"
	"github.com/copytrader/engine/internal/fees"
	"github.com/gagliardetto/solana-go"
)

// Settings is the per-build configuration a venue builder needs, sourced
// from spec §6's configuration keys.
type Settings struct {
	BuySlippageBps  uint64
	SellSlippageBps uint64
	BribeSol        float64
	PriorityFeeSol  float64
	SellMinSolOut   uint64 // lamports floor for min_native_out on sells
	JitoEnabled     bool
}

// Signer fetches a blockhash and signs — the subset of pkg/sol.Client's
// contract a builder needs. Kept as an interface so this package neither
// imports pkg/sol nor requires a live RPC client in tests.
type Signer interface {
	SignTransaction(ctx context.Context, signers []solana.PrivateKey, instrs ...solana.Instruction) (*solana.Transaction, error)
}

// Builder is the per-venue capability spec §9 calls for: "a plain interface
// abstraction ('venue builder' capability with two methods)".
type Builder interface {
	// BuildBuy returns the signed transaction and the conservative
	// min_token_out used both as the instruction's slippage floor and as
	// the value cached into C4 for subsequent sell sizing.
	BuildBuy(ctx context.Context, payer solana.PrivateKey, mint solana.PublicKey, inLamports uint64, settings Settings) (*solana.Transaction, uint64, error)
	BuildSell(ctx context.Context, payer solana.PrivateKey, mint solana.PublicKey, tokenAmount uint64, settings Settings) (*solana.Transaction, error)
}

// common bundles the collaborators every venue builder needs: the signer,
// the pool/coin-creator registry (C4's PoolRegistry sibling), and the token
// amount cache it writes min_token_out/decrements into.
type common struct {
	signer   Signer
	pools    *cache.PoolRegistry
	amounts  *cache.TokenAmounts
}

// ancillaryInstructions returns [tip_transfer, compute_limit, compute_price]
// in that order, per spec §4.2's ordering contract ("Tip goes first so that
// if the swap fails the tip still lands").
func ancillaryInstructions(payer solana.PublicKey, settings Settings, bribeLamports uint64) []solana.Instruction {
	var instrs []solana.Instruction

	tipAmount := fees.TipAmountLamports(bribeLamports)
	if tipAmount > 0 {
		recipient := fees.SelectTipRecipient(settings.JitoEnabled, nowFn())
		if tip := fees.TipInstruction(payer, recipient, tipAmount); tip != nil {
			instrs = append(instrs, tip)
		}
	}

	price := fees.PriceMicroLamportsPerCU(settings.PriorityFeeSol)
	instrs = append(instrs, fees.ComputeBudgetInstructions(price)...)
	return instrs
}

// bribeLamportsFromSol sums the configured bribe and priority-fee amounts
// into a single native-unit tip request, per spec §4.9's
// max(1000, native(bribe + priority_fee)) (the 1000-lamport floor itself is
// applied downstream by fees.TipAmountLamports).
func bribeLamportsFromSol(settings Settings) uint64 {
	total := settings.BribeSol + settings.PriorityFeeSol
	if total <= 0 {
		return 0
	}
	return uint64(total * 1_000_000_000)
}

var (
	errMissingFeeRecipient = fmt.Errorf("global fee recipient not cached for mint")
	errMissingCreator      = fmt.Errorf("creator not cached for mint")
)

// requireBondingCurveReserves fetches cached virtual reserves for bonding
// curve pricing, failing fast rather than fetching on the hot path.
func requireBondingCurveReserves(pools *cache.PoolRegistry, mint solana.PublicKey) (sol, token uint64, err error) {
	meta, ok := pools.Get(mint.String())
	if !ok || meta.VirtualSolReserves == 0 || meta.VirtualTokenReserves == 0 {
		return 0, 0, errs.New(errs.KindPoolData, mint.String(), "", "bonding_curve",
			fmt.Errorf("virtual reserves not cached for mint"))
	}
	return meta.VirtualSolReserves, meta.VirtualTokenReserves, nil
}

// requireVaultReserves fetches cached constant-product vault balances for
// CPMM/DynamicAmm pricing, failing fast rather than fetching on the hot
// path.
func requireVaultReserves(pools *cache.PoolRegistry, mint solana.PublicKey) (base, quote uint64, err error) {
	meta, ok := pools.Get(mint.String())
	if !ok || meta.BaseVaultAmount == 0 {
		return 0, 0, errs.New(errs.KindPoolData, mint.String(), "", "constant_product_cpmm",
			fmt.Errorf("vault reserves not cached for mint"))
	}
	return meta.BaseVaultAmount, meta.QuoteVaultAmount, nil
}
