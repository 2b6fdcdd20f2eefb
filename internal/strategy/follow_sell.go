package strategy

import (
	"github.com/copytrader/engine/internal/cache"
	"github.com/copytrader/engine/internal/venue"
)

// FollowSell mirrors a tracked wallet's sell. A fill moving >=90% of the
// wallet's balance is treated as a full exit and mirrored at 100%, to avoid
// leaving dust from a slightly-stale balance snapshot. Grounded on
// original_source/src/strategy/follow_sell.rs.
type FollowSell struct {
	TokenAmounts *cache.TokenAmounts
}

func (s FollowSell) OnFill(fill venue.ObservedFill, settings Settings) []venue.TradePlan {
	if fill.Side != venue.Sell {
		return nil
	}

	pct := fill.PctOfBalance
	if pct >= 0.90 {
		pct = 1.0
	}

	// Sell intents MUST be dispatched with the cached token amount (C4) to
	// bypass chain-balance lookup (spec §4.7).
	var known *uint64
	if s.TokenAmounts != nil {
		if amt, ok := s.TokenAmounts.Get(cache.SelfWallet, fill.Mint); ok {
			known = &amt
		}
	}

	return []venue.TradePlan{
		venue.SellPlan(fill.Dex, fill.Mint, pct, known),
	}
}
