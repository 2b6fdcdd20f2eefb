package strategy

import "github.com/copytrader/engine/internal/venue"

// FollowBuy mirrors a tracked wallet's buy once its native-currency cost
// clears that wallet's configured gate. Grounded on
// original_source/src/strategy/follow_buy.rs.
type FollowBuy struct{}

func (FollowBuy) OnFill(fill venue.ObservedFill, settings Settings) []venue.TradePlan {
	if fill.Side != venue.Buy {
		return nil
	}

	wallet, ok := settings.Wallets[fill.WalletLabel]
	if !ok {
		return nil
	}

	gateLamports := solToLamports(wallet.SolGate)
	if fill.CostLamports < gateLamports {
		// strict '<' is the gate: equal to the gate still passes (spec §8 boundary)
		return nil
	}

	return []venue.TradePlan{
		venue.BuyPlan(fill.Dex, fill.Mint, solToLamports(wallet.BuyAmountSol)),
	}
}
