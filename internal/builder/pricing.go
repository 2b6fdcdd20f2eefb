package builder

import (
	"cosmossdk.io/math"
	"lukechampine.com/uint128"
)

// Pricing math for the two quote shapes the venues reduce to: constant
// product (CPMM, MigratedAmm, DynamicAmm) and bonding-curve stepwise
// integration (BondingCurveA/B, LaunchpadBondingCurve). Grounded on the
// teacher's pkg/pool/raydium/cpmmPool.go Quote (constant-product) and
// original_source/src/dex/pumpfun_math.rs's min_tokens_out (bonding curve).
//
// The multiply-then-divide steps use cosmossdk.io/math.Int and
// lukechampine.com/uint128 rather than raw uint64 arithmetic, the same
// overflow-safety choice the teacher makes in main.go's own slippage
// calculation (amountOut.Mul(math.NewInt(10000-slippageBps)).Quo(...)) and
// in pkg/pool/raydium/ammPool.go's uint128 swap-amount fields.

const (
	// cpmmFeeNumerator/cpmmFeeDenominator are Raydium CPMM's swap fee,
	// 0.25%, as spec §4.3 states explicitly: DENOM=1e6, fee=2500.
	cpmmFeeNumerator   = 2500
	cpmmFeeDenominator = 1_000_000

	// bondingCurveMaxIterations bounds the stepwise integration loop per
	// spec §4.3's "safety bound on iterations (~10,000)".
	bondingCurveMaxIterations = 10_000
)

// QuoteConstantProduct computes the constant-product-with-fee output amount
// for an input of amountIn lamports against (reserveIn, reserveOut),
// following spec §4.3's formula:
// out = (in*(DENOM-fee)*reserve_out) / (reserve_in*DENOM + in*(DENOM-fee))
func QuoteConstantProduct(amountIn, reserveIn, reserveOut uint64) uint64 {
	if amountIn == 0 || reserveIn == 0 || reserveOut == 0 {
		return 0
	}
	in := math.NewIntFromUint64(amountIn)
	inWithFee := in.Mul(math.NewInt(cpmmFeeDenominator - cpmmFeeNumerator))
	numerator := inWithFee.Mul(math.NewIntFromUint64(reserveOut))
	denominator := math.NewIntFromUint64(reserveIn).MulRaw(cpmmFeeDenominator).Add(inWithFee)
	if denominator.IsZero() {
		return 0
	}
	return numerator.Quo(denominator).Uint64()
}

// QuoteBondingCurve estimates min tokens out for a lamports input against a
// bonding curve's virtual reserves, by single-unit stepwise integration:
// repeatedly buy the next whole token unit at its marginal price until the
// input is exhausted or the iteration safety bound is hit. Grounded on
// original_source/src/dex/pumpfun_math.rs's min_tokens_out, which carries
// the running reserves in u128 precisely because the vsr*1_000_000
// intermediate can overflow a 64-bit price scale — translated here with
// uint128 rather than dropping back to plain uint64.
func QuoteBondingCurve(virtualSolReserves, virtualTokenReserves, lamportsIn uint64) uint64 {
	vsr := virtualSolReserves
	vtr := virtualTokenReserves
	sol := lamportsIn
	var out uint64

	for sol > 0 && vtr > 0 {
		price := uint128.From64(vsr).Mul64(1_000_000).Div64(vtr)
		cost := price.Div64(1_000_000).Big().Uint64()
		if cost == 0 || cost > sol {
			break
		}
		sol -= cost
		vsr += cost
		vtr--
		out++

		if out > bondingCurveMaxIterations {
			break
		}
	}
	return out
}

// ApplySlippageBps lowers expected by slippageBps basis points, per spec
// §4.3: min_out = expected * (10_000 - slippage_bps) / 10_000. Higher
// slippageBps never raises the result; the integer division can leave two
// nearby slippage values with the same result (expected=1 gives 0 for both
// 100 and 200 bps).
// Grounded verbatim on the teacher's main.go:
// amountOut.Mul(math.NewInt(10000-slippageBps)).Quo(math.NewInt(10000)).
func ApplySlippageBps(expected uint64, slippageBps uint64) uint64 {
	if slippageBps >= 10_000 {
		return 0
	}
	out := math.NewIntFromUint64(expected).MulRaw(int64(10_000 - slippageBps)).QuoRaw(10_000)
	return out.Uint64()
}
