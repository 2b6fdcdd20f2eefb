// Package strategy runs the registered strategies (Follow-Buy, Follow-Sell,
// Take-Profit) over each observed fill (C7), grounded on
// original_source/src/strategy/{follow_buy,follow_sell,take_profit,engine}.rs.
//
// Per spec §9's redesign note, the position manager is an injected
// collaborator passed to the Engine's constructor, not a process-wide
// set-once global.
package strategy

import (
	"math"

	"github.com/copytrader/engine/internal/cache"
	"github.com/copytrader/engine/internal/position"
	"github.com/copytrader/engine/internal/venue"
)

const lamportsPerSol = 1_000_000_000.0

func solToLamports(sol float64) uint64 {
	if sol < 0 {
		return 0
	}
	return uint64(math.Round(sol * lamportsPerSol))
}

// Settings is the subset of the typed configuration (spec §6) the
// strategies consult.
type Settings struct {
	Wallets               map[string]venue.WalletConfig // keyed by label
	TakeProfitPercent     float64
	TakeProfitSellFraction float64
}

// Strategy produces zero or more trade plans from a single observed fill.
type Strategy interface {
	OnFill(fill venue.ObservedFill, settings Settings) []venue.TradePlan
}

// Engine runs every registered strategy, in order, over each fill and
// concatenates their plans.
type Engine struct {
	strategies []Strategy
	positions  *position.Manager
}

// NewEngine registers [FollowBuy, FollowSell, TakeProfit] in that order,
// matching the original's engine.rs registration order, with positions
// injected rather than reached through a global.
func NewEngine(positions *position.Manager, tokenAmounts *cache.TokenAmounts) *Engine {
	return &Engine{
		strategies: []Strategy{
			FollowBuy{},
			FollowSell{TokenAmounts: tokenAmounts},
			TakeProfit{Positions: positions},
		},
		positions: positions,
	}
}

// OnFill runs every strategy sequentially and returns all emitted plans in
// the order produced (spec §5: "strategies run sequentially and their plans
// are submitted in the order produced").
func (e *Engine) OnFill(fill venue.ObservedFill, settings Settings) []venue.TradePlan {
	var plans []venue.TradePlan
	for _, s := range e.strategies {
		plans = append(plans, s.OnFill(fill, settings)...)
	}
	return plans
}
