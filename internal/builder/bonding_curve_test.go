package builder

import (
	"context"
	"testing"

	"github.com/copytrader/engine/internal/cache"
	"github.com/copytrader/engine/internal/venue"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

func TestBondingCurveBuilderBuyRequiresFeeRecipientAndCreator(t *testing.T) {
	payer, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	mint := solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")

	pools := cache.NewPoolRegistry()
	pools.Store(mint.String(), cache.PoolMeta{
		VirtualSolReserves:   10_000,
		VirtualTokenReserves: 5_000,
	})
	amounts := cache.NewTokenAmounts()
	signer := &fakeSigner{}

	b := NewBondingCurveBuilder(venue.BondingCurveA, signer, pools, amounts)
	_, _, err = b.BuildBuy(context.Background(), payer, mint, 100, Settings{BuySlippageBps: 100})
	require.Error(t, err, "missing fee recipient and coin_creator must fail fast, not panic or fetch")
}

func TestBondingCurveBuilderBuyInstructionOrdering(t *testing.T) {
	payer, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	mint := solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
	creator := solana.MustPublicKeyFromBase58("DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263")

	pools := cache.NewPoolRegistry()
	pools.Store(mint.String(), cache.PoolMeta{
		VirtualSolReserves:   10_000,
		VirtualTokenReserves: 5_000,
		FeeRecipient:         creator,
		CoinCreator:          creator,
		HasCoinCreator:       true,
	})
	amounts := cache.NewTokenAmounts()
	signer := &fakeSigner{}

	b := NewBondingCurveBuilder(venue.BondingCurveA, signer, pools, amounts)
	_, minOut, err := b.BuildBuy(context.Background(), payer, mint, 100, Settings{BuySlippageBps: 100})
	require.NoError(t, err)

	instrs := signer.lastInstrs
	require.NotEmpty(t, instrs)
	require.Equal(t, b.programID, instrs[len(instrs)-1].ProgramID())

	stored, ok := amounts.Get(cache.SelfWallet, mint.String())
	require.True(t, ok)
	require.Equal(t, minOut, stored)
}
