package classifier

import (
	"testing"

	"github.com/copytrader/engine/internal/cache"
	"github.com/copytrader/engine/internal/venue"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

func TestClassifyBuyFromQualifyingFill(t *testing.T) {
	raw := RawFill{
		WalletLabel:       "W",
		Mint:              "M",
		TokenDelta:        3_000_000,
		PreTokenBalance:   0,
		LamportsDelta:     -2_000_000,
		InvokedProgramIDs: []solana.PublicKey{solana.MustPublicKeyFromBase58("6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P")},
	}
	fill, ok := Classify(raw)
	require.True(t, ok)
	require.Equal(t, venue.Buy, fill.Side)
	require.Equal(t, uint64(2_000_000), fill.CostLamports)
	require.Equal(t, venue.BondingCurveA, fill.Dex)
	require.Equal(t, "W", fill.WalletLabel)
}

func TestClassifyNoTokenMovementIsDropped(t *testing.T) {
	_, ok := Classify(RawFill{Mint: "M", TokenDelta: 0})
	require.False(t, ok)
}

func TestClassifySellDirectionAndPct(t *testing.T) {
	raw := RawFill{
		Mint:            "M",
		TokenDelta:      -950_000,
		PreTokenBalance: 1_000_000,
		LamportsDelta:   1_500_000,
	}
	fill, ok := Classify(raw)
	require.True(t, ok)
	require.Equal(t, venue.Sell, fill.Side)
	require.InDelta(t, 0.95, fill.PctOfBalance, 1e-9)
	require.Equal(t, uint64(1_500_000), fill.CostLamports)
}

func TestClassifyPctClampedToOne(t *testing.T) {
	raw := RawFill{
		Mint:            "M",
		TokenDelta:      -2_000_000,
		PreTokenBalance: 1_000_000,
	}
	fill, ok := Classify(raw)
	require.True(t, ok)
	require.Equal(t, 1.0, fill.PctOfBalance)
}

func TestClassifyUnknownDexLeavesDexEmpty(t *testing.T) {
	raw := RawFill{
		Mint:              "M",
		TokenDelta:        1,
		InvokedProgramIDs: []solana.PublicKey{solana.SystemProgramID},
	}
	fill, ok := Classify(raw)
	require.True(t, ok)
	require.Equal(t, venue.DexKind(""), fill.Dex)
}

func TestApplyPoolHintWritesCoinCreator(t *testing.T) {
	pools := cache.NewPoolRegistry()
	creator := solana.MustPublicKeyFromBase58("DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263")

	ApplyPoolHint(pools, PoolHint{Mint: "M", CoinCreator: creator, VirtualSolReserves: 10_000, VirtualTokenReserves: 5_000})

	meta, ok := pools.Get("M")
	require.True(t, ok)
	require.True(t, meta.HasCoinCreator)
	require.True(t, creator.Equals(meta.CoinCreator))
	require.Equal(t, uint64(10_000), meta.VirtualSolReserves)
	require.Equal(t, uint64(5_000), meta.VirtualTokenReserves)
}

func TestApplyPoolHintPreservesUntouchedFields(t *testing.T) {
	pools := cache.NewPoolRegistry()
	pools.Store("M", cache.PoolMeta{VirtualSolReserves: 10_000, VirtualTokenReserves: 5_000})

	ApplyPoolHint(pools, PoolHint{Mint: "M", BaseVaultAmount: 7_000})

	meta, ok := pools.Get("M")
	require.True(t, ok)
	require.Equal(t, uint64(10_000), meta.VirtualSolReserves, "a zero-value hint field must not clobber a previously observed value")
	require.Equal(t, uint64(7_000), meta.BaseVaultAmount)
}
