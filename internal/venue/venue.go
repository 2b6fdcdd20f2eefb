// Package venue holds the core data model: the trade-side/venue tags and
// the plain structs that flow between the strategy engine, router, and
// venue builders.
package venue

import "fmt"

// Side is the direction of a trade.
type Side string

const (
	Buy  Side = "buy"
	Sell Side = "sell"
)

// DexKind tags one of the six supported venue families. Each has its own
// program id and PDA seed scheme (see internal/pda).
type DexKind string

const (
	BondingCurveA       DexKind = "bonding_curve_a"       // PumpFun-family
	MigratedAmm         DexKind = "migrated_amm"          // PumpSwap
	BondingCurveB       DexKind = "bonding_curve_b"        // Moonshot-family
	ConstantProductCpmm DexKind = "constant_product_cpmm" // Raydium CPMM
	DynamicAmm          DexKind = "dynamic_amm"           // Meteora DLMM
	LaunchpadBondingCurve DexKind = "launchpad_bonding_curve"
)

// TradePlan is an intent to mirror a trade. Exactly one of BuyLamports or
// SellPct is populated, per Side.
type TradePlan struct {
	Dex                     DexKind
	Side                    Side
	Mint                    string
	BuyLamports             uint64 // buy only, >0
	SellPct                 float64 // sell only, (0,1]
	KnownTokenAmount        *uint64 // optional, bypasses a balance lookup
	CalculatedTokenAmount   *uint64 // optional, min-out for buys
}

// Validate enforces the TradePlan invariant from spec §3/§8.
func (p TradePlan) Validate() error {
	switch p.Side {
	case Buy:
		if p.BuyLamports == 0 {
			return fmt.Errorf("buy plan must have buy_lamports > 0")
		}
		if p.SellPct != 0 {
			return fmt.Errorf("buy plan must not set sell_pct")
		}
	case Sell:
		if p.SellPct <= 0 || p.SellPct > 1 {
			return fmt.Errorf("sell plan sell_pct must be in (0,1], got %v", p.SellPct)
		}
	default:
		return fmt.Errorf("unknown side %q", p.Side)
	}
	return nil
}

func BuyPlan(dex DexKind, mint string, lamports uint64) TradePlan {
	return TradePlan{Dex: dex, Side: Buy, Mint: mint, BuyLamports: lamports}
}

func SellPlan(dex DexKind, mint string, pct float64, known *uint64) TradePlan {
	return TradePlan{Dex: dex, Side: Sell, Mint: mint, SellPct: pct, KnownTokenAmount: known}
}

// ObservedFill is what the stream classifier (C10) hands to the strategy
// engine (C7) for each tracked-wallet trade it sees.
type ObservedFill struct {
	Mint         string
	Side         Side
	CostLamports uint64
	PctOfBalance float64 // fraction of tracked wallet's token balance moved, [0,1]
	Dex          DexKind
	WalletLabel  string
}

// Validate enforces the ObservedFill invariants from spec §3.
func (f ObservedFill) Validate() error {
	if f.PctOfBalance < 0 || f.PctOfBalance > 1 {
		return fmt.Errorf("pct_of_balance out of range: %v", f.PctOfBalance)
	}
	return nil
}

// Position is per-mint holding state. Balance and CostLamports are kept in
// sync by record_buy/record_sell in internal/position.
type Position struct {
	Mint         string
	Balance      uint64 // base units; spec models this as u128 but on-chain token
	               // supplies fit comfortably in uint64 for every venue this engine trades
	CostLamports uint64
	LastPrice    *float64
	UpdatedAt    int64 // unix millis
}

// AvgCost returns cost_lamports/balance, or 0 if balance is 0.
func (p Position) AvgCost() float64 {
	if p.Balance == 0 {
		return 0
	}
	return float64(p.CostLamports) / float64(p.Balance)
}

// UnrealizedPct returns (last_price/avg_cost - 1) * 100, or 0 if either is
// unavailable.
func (p Position) UnrealizedPct() float64 {
	avg := p.AvgCost()
	if avg == 0 || p.LastPrice == nil {
		return 0
	}
	return (*p.LastPrice/avg - 1) * 100
}

// WalletConfig is a tracked wallet's copy-trading configuration.
type WalletConfig struct {
	Label        string
	Address      string
	Enabled      bool
	SolGate      float64
	BuyAmountSol float64
}
