package builder

import (
	"context"
	"testing"

	"github.com/copytrader/engine/internal/cache"
	"github.com/copytrader/engine/internal/pda"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

func TestMigratedAmmBuilderBuyWithoutCoinCreator(t *testing.T) {
	payer, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	mint := solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")

	pools := cache.NewPoolRegistry()
	pools.Store(mint.String(), cache.PoolMeta{
		BaseVaultAmount:  1_000_000_000,
		QuoteVaultAmount: 1_000_000_000,
	})
	amounts := cache.NewTokenAmounts()
	signer := &fakeSigner{}

	b := NewMigratedAmmBuilder(signer, pools, amounts)
	_, minOut, err := b.BuildBuy(context.Background(), payer, mint, 1_000_000, Settings{BuySlippageBps: 100})
	require.NoError(t, err)
	require.Greater(t, minOut, uint64(0))

	instrs := signer.lastInstrs
	require.NotEmpty(t, instrs)
	require.Equal(t, pda.MigratedAmmProgramID, instrs[len(instrs)-1].ProgramID())
}

func TestMigratedAmmBuilderBuyWithCoinCreatorExtendsAccounts(t *testing.T) {
	payer, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	mint := solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
	creator := solana.MustPublicKeyFromBase58("DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263")

	pools := cache.NewPoolRegistry()
	pools.Store(mint.String(), cache.PoolMeta{
		BaseVaultAmount:  1_000_000_000,
		QuoteVaultAmount: 1_000_000_000,
		CoinCreator:      creator,
		HasCoinCreator:   true,
	})
	amounts := cache.NewTokenAmounts()
	signer := &fakeSigner{}

	b := NewMigratedAmmBuilder(signer, pools, amounts)
	_, _, err = b.BuildBuy(context.Background(), payer, mint, 1_000_000, Settings{BuySlippageBps: 100})
	require.NoError(t, err)

	swap := signer.lastInstrs[len(signer.lastInstrs)-1]
	require.Len(t, swap.Accounts(), 19)
}
