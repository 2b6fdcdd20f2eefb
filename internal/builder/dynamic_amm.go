package builder

import (
	"bytes"
	"context"

	"github.com/copytrader/engine/internal/cache"
	"github.com/copytrader/engine/internal/pda"
	"github.com/gagliardetto/solana-go"
)

// DynamicAmmBuilder builds buy/sell transactions for the DynamicAmm (Meteora
// DLMM) venue. Pricing is a documented simplification: the teacher's
// pkg/pool/meteora/swap.go quotes by walking bin arrays, which this hot path
// cannot do without an RPC read of the pool account, so this builder quotes
// the constant-product curve against the pool's cached vault balances
// instead, same as the CPMM builder. Accurate only while the swap stays
// within the pool's currently active bin.
type DynamicAmmBuilder struct {
	common
}

func NewDynamicAmmBuilder(signer Signer, pools *cache.PoolRegistry, amounts *cache.TokenAmounts) *DynamicAmmBuilder {
	return &DynamicAmmBuilder{common{signer: signer, pools: pools, amounts: amounts}}
}

func mintIsXSide(mint solana.PublicKey) bool {
	return bytes.Compare(mint.Bytes(), pda.WSOL.Bytes()) < 0
}

func (b *DynamicAmmBuilder) BuildBuy(ctx context.Context, payer solana.PrivateKey, mint solana.PublicKey, inLamports uint64, settings Settings) (*solana.Transaction, uint64, error) {
	accs, err := pda.DeriveDynamicAmm(mint, pda.WSOL)
	if err != nil {
		return nil, 0, err
	}
	baseReserve, quoteReserve, err := requireVaultReserves(b.pools, mint)
	if err != nil {
		return nil, 0, err
	}
	mintIsX := mintIsXSide(mint)

	expected := QuoteConstantProduct(inLamports, quoteReserve, baseReserve)
	minOut := ApplySlippageBps(expected, settings.BuySlippageBps)

	user := payer.PublicKey()
	eventAuthority, err := pda.DeriveEventAuthority(pda.DynamicAmmProgramID)
	if err != nil {
		return nil, 0, err
	}
	mintATA, _, err := solana.FindAssociatedTokenAddress(user, mint)
	if err != nil {
		return nil, 0, err
	}

	instrs := ancillaryInstructions(user, settings, bribeLamportsFromSol(settings))
	wsolInstrs, wsolATA, err := wsolCoverInstructions(user, inLamports)
	if err != nil {
		return nil, 0, err
	}
	instrs = append(instrs, wsolInstrs...)
	createInst, err := idempotentCreateATA(user, user, mint)
	if err != nil {
		return nil, 0, err
	}
	instrs = append(instrs, createInst)

	mintX, mintY := mint, pda.WSOL
	if !mintIsX {
		mintX, mintY = pda.WSOL, mint
	}
	instrs = append(instrs, newDynamicAmmSwapInstruction(dynamicAmmSwapParams{
		pool: accs.Pool, reserveX: accs.VaultA, reserveY: accs.VaultB,
		userIn: wsolATA, userOut: mintATA,
		mintX: mintX, mintY: mintY,
		oracle: accs.Oracle, user: user, eventAuthority: eventAuthority,
		amountIn: inLamports, minAmountOut: minOut,
	}))

	tx, err := b.signer.SignTransaction(ctx, []solana.PrivateKey{payer}, instrs...)
	if err != nil {
		return nil, 0, err
	}
	b.amounts.Store(cache.SelfWallet, mint.String(), minOut)
	return tx, minOut, nil
}

func (b *DynamicAmmBuilder) BuildSell(ctx context.Context, payer solana.PrivateKey, mint solana.PublicKey, tokenAmount uint64, settings Settings) (*solana.Transaction, error) {
	accs, err := pda.DeriveDynamicAmm(mint, pda.WSOL)
	if err != nil {
		return nil, err
	}
	mintIsX := mintIsXSide(mint)

	// spec §4.3: the sell minimum is the configured floor scaled by
	// slippage, never a reserve-based quote (original_source/src/dex/
	// raydium.rs never reads pool reserves for the sell minimum).
	minOut := ApplySlippageBps(settings.SellMinSolOut, settings.SellSlippageBps)

	user := payer.PublicKey()
	eventAuthority, err := pda.DeriveEventAuthority(pda.DynamicAmmProgramID)
	if err != nil {
		return nil, err
	}
	mintATA, _, err := solana.FindAssociatedTokenAddress(user, mint)
	if err != nil {
		return nil, err
	}
	wsolATA, _, err := solana.FindAssociatedTokenAddress(user, pda.WSOL)
	if err != nil {
		return nil, err
	}

	instrs := ancillaryInstructions(user, settings, bribeLamportsFromSol(settings))
	createInst, err := idempotentCreateATA(user, user, pda.WSOL)
	if err != nil {
		return nil, err
	}
	instrs = append(instrs, createInst)

	mintX, mintY := mint, pda.WSOL
	if !mintIsX {
		mintX, mintY = pda.WSOL, mint
	}
	instrs = append(instrs, newDynamicAmmSwapInstruction(dynamicAmmSwapParams{
		pool: accs.Pool, reserveX: accs.VaultA, reserveY: accs.VaultB,
		userIn: mintATA, userOut: wsolATA,
		mintX: mintX, mintY: mintY,
		oracle: accs.Oracle, user: user, eventAuthority: eventAuthority,
		amountIn: tokenAmount, minAmountOut: minOut,
	}))

	closeInst, err := wsolCloseInstruction(user)
	if err != nil {
		return nil, err
	}
	instrs = append(instrs, closeInst)

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
