package router

import (
	"context"
	"testing"

	"github.com/copytrader/engine/internal/builder"
	"github.com/copytrader/engine/internal/cache"
	"github.com/copytrader/engine/internal/venue"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

func TestIdentifyDexByProgramID(t *testing.T) {
	cases := []struct {
		name      string
		programID string
		want      venue.DexKind
		wantOK    bool
	}{
		{"bonding curve a", "6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P", venue.BondingCurveA, true},
		{"migrated amm", "pAMMBay6oceH9fJKBRHGP5D4bD4sWpmSwMn52FMfXEA", venue.MigratedAmm, true},
		{"bonding curve b", "MoonCVVNZFSYkqNXP6bxHLPL6QQJiMagDL3qcqUQTrG", venue.BondingCurveB, true},
		{"cpmm", "CPMMoo8L3F4NbTegBCKVNunggL7H1ZpdTHKxQB5qKP1C", venue.ConstantProductCpmm, true},
		{"launchpad", "LanMV9sAd7wArD4vJFi2qDdfnVhFxYSUg6eADduJ3uj", venue.LaunchpadBondingCurve, true},
		{"dynamic amm (dlmm)", "LBUZKhRxPF3XUpBCjp4YzTKgLccjZhTSDM9YuVaPwxo", venue.DynamicAmm, true},
		{"dynamic amm (mercurial alias)", "Eo7WjKq67rjJQSZxS6z3YkapzY3eMj6Xy8X5EQVn5UaB", venue.DynamicAmm, true},
		{"unknown", "11111111111111111111111111111111", "", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			dex, ok := IdentifyDexByProgramID(c.programID)
			require.Equal(t, c.wantOK, ok)
			require.Equal(t, c.want, dex)
			require.Equal(t, c.wantOK, IsKnownDexProgramID(c.programID))
		})
	}
}

func TestIdentifyDexByProgramIDsFirstMatch(t *testing.T) {
	ids := []solana.PublicKey{
		solana.SystemProgramID,
		solana.MustPublicKeyFromBase58("CPMMoo8L3F4NbTegBCKVNunggL7H1ZpdTHKxQB5qKP1C"),
		solana.MustPublicKeyFromBase58("6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P"),
	}
	dex, ok := IdentifyDexByProgramIDs(ids)
	require.True(t, ok)
	require.Equal(t, venue.ConstantProductCpmm, dex, "first matching id in the list wins")
}

func TestIdentifyDexByProgramIDsNoMatch(t *testing.T) {
	ids := []solana.PublicKey{solana.SystemProgramID, solana.TokenProgramID}
	_, ok := IdentifyDexByProgramIDs(ids)
	require.False(t, ok)
}

func TestAllProgramIDsCoversEveryDexKind(t *testing.T) {
	all := AllProgramIDs()
	for _, dex := range []venue.DexKind{
		venue.BondingCurveA, venue.BondingCurveB, venue.LaunchpadBondingCurve,
		venue.MigratedAmm, venue.ConstantProductCpmm, venue.DynamicAmm,
	} {
		_, ok := all[dex]
		require.True(t, ok, "missing program id for %s", dex)
	}
}

func TestDexNameKnownAndUnknown(t *testing.T) {
	require.Equal(t, "cpmm", DexName(venue.ConstantProductCpmm))
	require.Equal(t, "unknown", DexName(venue.DexKind("nonsense")))
}

func TestResolveUsesDetectionWhenPresent(t *testing.T) {
	dex, assumed := Resolve(venue.ConstantProductCpmm, true)
	require.Equal(t, venue.ConstantProductCpmm, dex)
	require.False(t, assumed)
}

func TestResolveFallsBackToAssumedDex(t *testing.T) {
	dex, assumed := Resolve("", false)
	require.Equal(t, AssumedDex, dex)
	require.Equal(t, venue.BondingCurveA, dex, "spec's optimistic default is bonding-curve A")
	require.True(t, assumed)
}

type stubSigner struct{}

func (stubSigner) SignTransaction(ctx context.Context, signers []solana.PrivateKey, instrs ...solana.Instruction) (*solana.Transaction, error) {
	return solana.NewTransaction(instrs, solana.Hash{}, solana.TransactionPayer(signers[0].PublicKey()))
}

func TestNewRouterRegistersEveryDexKind(t *testing.T) {
	r := NewRouter(stubSigner{}, cache.NewPoolRegistry(), cache.NewTokenAmounts())
	for _, dex := range []venue.DexKind{
		venue.BondingCurveA, venue.BondingCurveB, venue.LaunchpadBondingCurve,
		venue.MigratedAmm, venue.ConstantProductCpmm, venue.DynamicAmm,
	} {
		_, ok := r.BuilderFor(dex)
		require.True(t, ok, "no builder registered for %s", dex)
	}
}

func TestRouterBuildBuyUnknownDexErrors(t *testing.T) {
	r := NewRouter(stubSigner{}, cache.NewPoolRegistry(), cache.NewTokenAmounts())
	payer, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	mint := solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")

	_, _, err = r.BuildBuy(context.Background(), venue.DexKind("nonsense"), payer, mint, 1_000_000, builder.Settings{})
	require.Error(t, err)
}

func TestRouterBuildBuyAssumedVenueReachesBuilder(t *testing.T) {
	mint := solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
	pools := cache.NewPoolRegistry()
	pools.Store(mint.String(), cache.PoolMeta{
		VirtualSolReserves:   10_000,
		VirtualTokenReserves: 5_000,
		FeeRecipient:         solana.MustPublicKeyFromBase58("DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263"),
		CoinCreator:          solana.MustPublicKeyFromBase58("DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263"),
		HasCoinCreator:       true,
	})
	r := NewRouter(stubSigner{}, pools, cache.NewTokenAmounts())

	dex, assumed := Resolve("", false)
	require.True(t, assumed)

	payer, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	_, _, err = r.BuildBuy(context.Background(), dex, payer, mint, 1_000_000, builder.Settings{BuySlippageBps: 100})
	require.NoError(t, err, "the assumed venue (bonding-curve A) must be a fully wired builder")
}
