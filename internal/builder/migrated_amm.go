package builder

import (
	"context"

	"github.com/copytrader/engine/internal/cache"
	"github.com/copytrader/engine/internal/pda"
	"github.com/gagliardetto/solana-go"
)

// MigratedAmmBuilder builds buy/sell transactions for the PumpSwap venue.
// Grounded on the teacher's pkg/pool/pump/amm.go buyInAMMPool/sellInAMMPool.
type MigratedAmmBuilder struct {
	common
}

func NewMigratedAmmBuilder(signer Signer, pools *cache.PoolRegistry, amounts *cache.TokenAmounts) *MigratedAmmBuilder {
	return &MigratedAmmBuilder{common{signer: signer, pools: pools, amounts: amounts}}
}

func (b *MigratedAmmBuilder) BuildBuy(ctx context.Context, payer solana.PrivateKey, mint solana.PublicKey, inLamports uint64, settings Settings) (*solana.Transaction, uint64, error) {
	accs, err := pda.DeriveMigratedAmm(mint)
	if err != nil {
		return nil, 0, err
	}
	baseReserve, quoteReserve, err := requireVaultReserves(b.pools, mint)
	if err != nil {
		return nil, 0, err
	}
	expected := QuoteConstantProduct(inLamports, quoteReserve, baseReserve)
	minOut := ApplySlippageBps(expected, settings.BuySlippageBps)

	user := payer.PublicKey()
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

	coinCreator, hasCoinCreator, coinCreatorATA, coinCreatorAuthority := b.coinCreatorAccounts(mint)

	instrs = append(instrs, newMigratedAmmSwapInstruction(migratedAmmSwapParams{
		isBuy: true, poolID: accs.PoolID, user: user,
		baseMint: mint, quoteMint: pda.WSOL,
		userBaseAccount: mintATA, userQuoteAccount: wsolATA,
		poolBaseVault: accs.BaseVaultATA, poolQuoteVault: accs.QuoteVaultATA,
		amountA: minOut, amountB: inLamports,
		hasCoinCreator: hasCoinCreator, coinCreatorVaultATA: coinCreatorATA, coinCreatorVaultAuthority: coinCreatorAuthority,
	}))
	_ = coinCreator

	tx, err := b.signer.SignTransaction(ctx, []solana.PrivateKey{payer}, instrs...)
	if err != nil {
		return nil, 0, err
	}
	b.amounts.Store(cache.SelfWallet, mint.String(), minOut)
	return tx, minOut, nil
}

func (b *MigratedAmmBuilder) BuildSell(ctx context.Context, payer solana.PrivateKey, mint solana.PublicKey, tokenAmount uint64, settings Settings) (*solana.Transaction, error) {
	accs, err := pda.DeriveMigratedAmm(mint)
	if err != nil {
		return nil, err
	}
	// spec §4.3: the sell minimum is the configured floor scaled by
	// slippage, never a reserve-based quote (original_source/src/dex/
	// raydium.rs never reads pool reserves for the sell minimum).
	minOut := ApplySlippageBps(settings.SellMinSolOut, settings.SellSlippageBps)

	user := payer.PublicKey()
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

	_, hasCoinCreator, coinCreatorATA, coinCreatorAuthority := b.coinCreatorAccounts(mint)

	instrs = append(instrs, newMigratedAmmSwapInstruction(migratedAmmSwapParams{
		isBuy: false, poolID: accs.PoolID, user: user,
		baseMint: mint, quoteMint: pda.WSOL,
		userBaseAccount: mintATA, userQuoteAccount: wsolATA,
		poolBaseVault: accs.BaseVaultATA, poolQuoteVault: accs.QuoteVaultATA,
		amountA: tokenAmount, amountB: minOut,
		hasCoinCreator: hasCoinCreator, coinCreatorVaultATA: coinCreatorATA, coinCreatorVaultAuthority: coinCreatorAuthority,
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

// coinCreatorAccounts resolves the cached coin_creator (absent is not fatal
// here: PumpSwap accepts the 17-account layout for pools without one) and,
// when present, its derived vault ATA/authority.
func (b *MigratedAmmBuilder) coinCreatorAccounts(mint solana.PublicKey) (coinCreator solana.PublicKey, has bool, vaultATA, vaultAuthority solana.PublicKey) {
	meta, ok := b.pools.Get(mint.String())
	if !ok || !meta.HasCoinCreator {
		return solana.PublicKey{}, false, solana.PublicKey{}, solana.PublicKey{}
	}
	ata, err := pda.CoinCreatorVaultATA(meta.CoinCreator)
	if err != nil {
		return solana.PublicKey{}, false, solana.PublicKey{}, solana.PublicKey{}
	}
	authority, err := pda.CoinCreatorVaultAuthority(meta.CoinCreator)
	if err != nil {
		return solana.PublicKey{}, false, solana.PublicKey{}, solana.PublicKey{}
	}
	return meta.CoinCreator, true, ata, authority
}
