package strategy

import (
	"github.com/copytrader/engine/internal/position"
	"github.com/copytrader/engine/internal/venue"
)

// TakeProfit fires only on Sell-side observations (not our own buys) on
// mints we hold, to avoid self-triggering immediately after a mirror buy.
// Grounded on original_source/src/strategy/take_profit.rs — fixed a bug
// present there where the launchpad-bonding-curve branch sized its sell by
// take_profit_percent instead of take_profit_sell_fraction, contradicting
// the field's own purpose.
type TakeProfit struct {
	Positions *position.Manager
}

func (t TakeProfit) OnFill(fill venue.ObservedFill, settings Settings) []venue.TradePlan {
	if fill.Side != venue.Sell {
		return nil
	}
	if t.Positions == nil {
		return nil
	}
	if t.Positions.Balance(fill.Mint) == 0 {
		return nil
	}
	if t.Positions.UnrealizedPct(fill.Mint) < settings.TakeProfitPercent {
		return nil
	}

	return []venue.TradePlan{
		venue.SellPlan(fill.Dex, fill.Mint, settings.TakeProfitSellFraction, nil),
	}
}
