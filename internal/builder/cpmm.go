package builder

import (
	"context"

	"github.com/copytrader/engine/internal/cache"
	"github.com/copytrader/engine/internal/pda"
	"github.com/gagliardetto/solana-go"
)

type cpmmAccounts = pda.CPMMAccounts

var (
	cpmmProgramID  = pda.ConstantProductCpmmProgramID
	tokenProgramID = pda.TokenProgramID
)

// CPMMBuilder builds buy/sell transactions for Raydium's constant-product
// CPMM venue. Grounded on the teacher's pkg/pool/raydium/cpmmPool.go
// BuildSwapInstructions, adapted from a fetch-then-quote RPC model to the
// spec's pure-derivation + cached-reserves model.
type CPMMBuilder struct {
	common
}

func NewCPMMBuilder(signer Signer, pools *cache.PoolRegistry, amounts *cache.TokenAmounts) *CPMMBuilder {
	return &CPMMBuilder{common{signer: signer, pools: pools, amounts: amounts}}
}

func (b *CPMMBuilder) BuildBuy(ctx context.Context, payer solana.PrivateKey, mint solana.PublicKey, inLamports uint64, settings Settings) (*solana.Transaction, uint64, error) {
	accs, err := pda.DeriveCPMM(mint)
	if err != nil {
		return nil, 0, err
	}
	baseReserve, quoteReserve, err := requireVaultReserves(b.pools, mint)
	if err != nil {
		return nil, 0, err
	}

	user := payer.PublicKey()
	mintIsA := accs.MintA.Equals(mint)

	// WSOL is always the quote side of a mint/WSOL pair unless the mint
	// itself happens to be WSOL, which never occurs on this hot path.
	reserveIn, reserveOut := quoteReserve, baseReserve
	expected := QuoteConstantProduct(inLamports, reserveIn, reserveOut)
	minOut := ApplySlippageBps(expected, settings.BuySlippageBps)

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

	var accountA, accountB solana.PublicKey
	if mintIsA {
		accountA, accountB = mintATA, wsolATA
	} else {
		accountA, accountB = wsolATA, mintATA
	}
	instrs = append(instrs, newCPMMSwapInstruction(user, accs, !mintIsA, accountA, accountB, inLamports, minOut))

	tx, err := b.signer.SignTransaction(ctx, []solana.PrivateKey{payer}, instrs...)
	if err != nil {
		return nil, 0, err
	}

	b.amounts.Store(cache.SelfWallet, mint.String(), minOut)
	return tx, minOut, nil
}

func (b *CPMMBuilder) BuildSell(ctx context.Context, payer solana.PrivateKey, mint solana.PublicKey, tokenAmount uint64, settings Settings) (*solana.Transaction, error) {
	accs, err := pda.DeriveCPMM(mint)
	if err != nil {
		return nil, err
	}

	user := payer.PublicKey()
	mintIsA := accs.MintA.Equals(mint)

	// spec §4.3: the sell minimum is the configured floor scaled by
	// slippage, never a reserve-based quote (original_source/src/dex/
	// raydium.rs never reads pool reserves for the sell minimum).
	minOut := ApplySlippageBps(settings.SellMinSolOut, settings.SellSlippageBps)

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

	var accountA, accountB solana.PublicKey
	if mintIsA {
		accountA, accountB = mintATA, wsolATA
	} else {
		accountA, accountB = wsolATA, mintATA
	}
	instrs = append(instrs, newCPMMSwapInstruction(user, accs, mintIsA, accountA, accountB, tokenAmount, minOut))

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
		remaining := mustSelfAmount(b.amounts, mint) - tokenAmount
		b.amounts.Store(cache.SelfWallet, mint.String(), remaining)
	}
	return tx, nil
}

func mustSelfAmount(amounts *cache.TokenAmounts, mint solana.PublicKey) uint64 {
	amt, _ := amounts.Get(cache.SelfWallet, mint.String())
	return amt
}
