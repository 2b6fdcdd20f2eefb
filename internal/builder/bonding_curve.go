package builder

import (
	"context"

	"github.com/copytrader/engine/internal/cache"
	"github.com/copytrader/engine/internal/errs"
	"github.com/copytrader/engine/internal/pda"
	"github.com/copytrader/engine/internal/venue"
	"github.com/gagliardetto/solana-go"
)

// BondingCurveBuilder builds buy/sell transactions for any of the three
// bonding-curve-shaped venues (BondingCurveA, BondingCurveB,
// LaunchpadBondingCurve), parameterized only by program id — their account
// layout and pricing shape are identical (spec §4.1: "venue-specific seed
// schemes analogous to above"). Grounded on
// original_source/src/dex/pumpfun_math.rs's min_tokens_out for pricing and
// the other_examples PumpFun account-layout reference for instruction
// assembly.
type BondingCurveBuilder struct {
	common
	programID solana.PublicKey
}

func NewBondingCurveBuilder(dex venue.DexKind, signer Signer, pools *cache.PoolRegistry, amounts *cache.TokenAmounts) *BondingCurveBuilder {
	return &BondingCurveBuilder{
		common:    common{signer: signer, pools: pools, amounts: amounts},
		programID: pda.ProgramIDFor(string(dex)),
	}
}

func (b *BondingCurveBuilder) BuildBuy(ctx context.Context, payer solana.PrivateKey, mint solana.PublicKey, inLamports uint64, settings Settings) (*solana.Transaction, uint64, error) {
	accs, err := pda.DeriveBondingCurve(b.programID, mint)
	if err != nil {
		return nil, 0, err
	}
	vsr, vtr, err := requireBondingCurveReserves(b.pools, mint)
	if err != nil {
		return nil, 0, err
	}
	expected := QuoteBondingCurve(vsr, vtr, inLamports)
	minOut := ApplySlippageBps(expected, settings.BuySlippageBps)

	meta, ok := b.pools.Get(mint.String())
	if !ok || meta.FeeRecipient.IsZero() {
		return nil, 0, errs.New(errs.KindPoolData, mint.String(), string(venue.Buy), string(venue.BondingCurveA),
			errMissingFeeRecipient)
	}
	creator, hasCreator := meta.CoinCreator, meta.HasCoinCreator
	if !hasCreator {
		return nil, 0, errs.New(errs.KindPoolData, mint.String(), string(venue.Buy), string(venue.BondingCurveA), errMissingCreator)
	}
	creatorVault, err := pda.DeriveCreatorVault(b.programID, creator)
	if err != nil {
		return nil, 0, err
	}
	globalAccount, err := pda.DeriveGlobalAccount(b.programID)
	if err != nil {
		return nil, 0, err
	}
	eventAuthority, err := pda.DeriveEventAuthority(b.programID)
	if err != nil {
		return nil, 0, err
	}

	user := payer.PublicKey()
	userATA, _, err := solana.FindAssociatedTokenAddress(user, mint)
	if err != nil {
		return nil, 0, err
	}

	instrs := ancillaryInstructions(user, settings, bribeLamportsFromSol(settings))
	createInst, err := idempotentCreateATA(user, user, mint)
	if err != nil {
		return nil, 0, err
	}
	instrs = append(instrs, createInst)
	instrs = append(instrs, newBondingCurveSwapInstruction(bondingCurveSwapParams{
		programID: b.programID, isBuy: true,
		feeRecipient: meta.FeeRecipient, globalAccount: globalAccount,
		mint: mint, bondingCurve: accs.BondingCurve, bondingVault: accs.BondingCurveVault,
		userATA: userATA, user: user,
		creatorVault: creatorVault, eventAuthority: eventAuthority,
		amount: minOut, threshold: inLamports,
	}))

	tx, err := b.signer.SignTransaction(ctx, []solana.PrivateKey{payer}, instrs...)
	if err != nil {
		return nil, 0, err
	}
	b.amounts.Store(cache.SelfWallet, mint.String(), minOut)
	return tx, minOut, nil
}

func (b *BondingCurveBuilder) BuildSell(ctx context.Context, payer solana.PrivateKey, mint solana.PublicKey, tokenAmount uint64, settings Settings) (*solana.Transaction, error) {
	accs, err := pda.DeriveBondingCurve(b.programID, mint)
	if err != nil {
		return nil, err
	}
	// spec §4.3: the sell minimum is the configured floor scaled by
	// slippage, never a reserve-based quote (original_source/src/dex/
	// raydium.rs never reads pool reserves for the sell minimum).
	minOut := ApplySlippageBps(settings.SellMinSolOut, settings.SellSlippageBps)

	meta, ok := b.pools.Get(mint.String())
	if !ok || meta.FeeRecipient.IsZero() {
		return nil, errs.New(errs.KindPoolData, mint.String(), string(venue.Sell), string(venue.BondingCurveA), errMissingFeeRecipient)
	}
	if !meta.HasCoinCreator {
		return nil, errs.New(errs.KindPoolData, mint.String(), string(venue.Sell), string(venue.BondingCurveA), errMissingCreator)
	}
	creatorVault, err := pda.DeriveCreatorVault(b.programID, meta.CoinCreator)
	if err != nil {
		return nil, err
	}
	globalAccount, err := pda.DeriveGlobalAccount(b.programID)
	if err != nil {
		return nil, err
	}
	eventAuthority, err := pda.DeriveEventAuthority(b.programID)
	if err != nil {
		return nil, err
	}

	user := payer.PublicKey()
	userATA, _, err := solana.FindAssociatedTokenAddress(user, mint)
	if err != nil {
		return nil, err
	}

	instrs := ancillaryInstructions(user, settings, bribeLamportsFromSol(settings))
	instrs = append(instrs, newBondingCurveSwapInstruction(bondingCurveSwapParams{
		programID: b.programID, isBuy: false,
		feeRecipient: meta.FeeRecipient, globalAccount: globalAccount,
		mint: mint, bondingCurve: accs.BondingCurve, bondingVault: accs.BondingCurveVault,
		userATA: userATA, user: user,
		creatorVault: creatorVault, eventAuthority: eventAuthority,
		amount: tokenAmount, threshold: minOut,
	}))

	tx, err := b.signer.SignTransaction(ctx, []solana.PrivateKey{payer}, instrs...)
	if err != nil {
		return nil, err
	}

	if tokenAmount >= mustSelfAmount(b.amounts, mint) {
		b.amounts.Clear(cache.SelfWallet, mint.String())
	} else {
		b.amounts.Store(cache.SelfWallet, mint.String(), mustSelfAmount(b.amounts, mint)-tokenAmount)
	}
	return tx, nil
}
