package strategy

import (
	"path/filepath"
	"testing"

	"github.com/copytrader/engine/internal/cache"
	"github.com/copytrader/engine/internal/position"
	"github.com/copytrader/engine/internal/venue"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) (*Engine, *cache.TokenAmounts, *position.Manager) {
	t.Helper()
	pm, err := position.Load(filepath.Join(t.TempDir(), "positions.json"))
	require.NoError(t, err)
	ta := cache.NewTokenAmounts()
	return NewEngine(pm, ta), ta, pm
}

func TestFollowQualifyingBuy(t *testing.T) {
	engine, ta, _ := newTestEngine(t)
	settings := Settings{
		Wallets: map[string]venue.WalletConfig{
			"W": {Label: "W", SolGate: 0.001, BuyAmountSol: 0.003},
		},
	}
	fill := venue.ObservedFill{
		Mint: "M", Side: venue.Buy, CostLamports: 2_000_000,
		Dex: venue.BondingCurveA, WalletLabel: "W",
	}

	plans := engine.OnFill(fill, settings)
	require.Len(t, plans, 1)
	require.Equal(t, venue.Buy, plans[0].Side)
	require.Equal(t, uint64(3_000_000), plans[0].BuyLamports)
	require.NoError(t, plans[0].Validate())

	// simulate the builder caching the resulting min_token_out
	ta.Store(cache.SelfWallet, "M", 42)
	amt, ok := ta.Get(cache.SelfWallet, "M")
	require.True(t, ok)
	require.Equal(t, uint64(42), amt)
}

func TestDropUnderGateBuy(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	settings := Settings{
		Wallets: map[string]venue.WalletConfig{
			"W": {Label: "W", SolGate: 0.001, BuyAmountSol: 0.003},
		},
	}
	fill := venue.ObservedFill{
		Mint: "M", Side: venue.Buy, CostLamports: 500_000,
		Dex: venue.BondingCurveA, WalletLabel: "W",
	}
	require.Empty(t, engine.OnFill(fill, settings))
}

func TestGateBoundary_EqualPasses(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	settings := Settings{
		Wallets: map[string]venue.WalletConfig{
			"W": {Label: "W", SolGate: 0.001, BuyAmountSol: 0.003},
		},
	}
	fill := venue.ObservedFill{
		Mint: "M", Side: venue.Buy, CostLamports: 1_000_000, // exactly the gate
		Dex: venue.BondingCurveA, WalletLabel: "W",
	}
	require.Len(t, engine.OnFill(fill, settings), 1)
}

func TestSaturatingFollowSell(t *testing.T) {
	engine, ta, _ := newTestEngine(t)
	ta.Store(cache.SelfWallet, "M", 1_000_000)

	fill := venue.ObservedFill{
		Mint: "M", Side: venue.Sell, PctOfBalance: 0.95, Dex: venue.MigratedAmm,
	}
	plans := engine.OnFill(fill, Settings{})
	require.NotEmpty(t, plans)
	sell := plans[0]
	require.Equal(t, venue.Sell, sell.Side)
	require.Equal(t, 1.0, sell.SellPct)
	require.NotNil(t, sell.KnownTokenAmount)
	require.Equal(t, uint64(1_000_000), *sell.KnownTokenAmount)
}

func TestPartialFollowSell(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	fill := venue.ObservedFill{Mint: "M", Side: venue.Sell, PctOfBalance: 0.25, Dex: venue.ConstantProductCpmm}
	plans := engine.OnFill(fill, Settings{})
	require.NotEmpty(t, plans)
	require.Equal(t, 0.25, plans[0].SellPct)
}

func TestTakeProfit_FiresOnlyOnHeldMintAboveThreshold(t *testing.T) {
	pm, err := position.Load(filepath.Join(t.TempDir(), "positions.json"))
	require.NoError(t, err)
	require.NoError(t, pm.RecordBuy("M", 1_000_000, 1_000_000_000)) // avg_cost = 1000
	price := 2000.0
	require.NoError(t, pm.UpdatePrice("M", price))

	tp := TakeProfit{Positions: pm}
	settings := Settings{TakeProfitPercent: 50, TakeProfitSellFraction: 0.5}

	fill := venue.ObservedFill{Mint: "M", Side: venue.Sell, Dex: venue.ConstantProductCpmm}
	plans := tp.OnFill(fill, settings)
	require.Len(t, plans, 1)
	require.Equal(t, 0.5, plans[0].SellPct)

	// does not fire on Buy-side fills (avoids self-triggering)
	require.Empty(t, tp.OnFill(venue.ObservedFill{Mint: "M", Side: venue.Buy}, settings))

	// does not fire on mints we don't hold
	require.Empty(t, tp.OnFill(venue.ObservedFill{Mint: "Other", Side: venue.Sell}, settings))
}
