// Package fees composes the ancillary instructions attached to every mirror
// transaction: compute-budget limit/price and the tip transfer (spec §4.2).
// Grounded on original_source/src/utils/fees.rs's tip_to_cu_price formula
// and the teacher's pkg/sol/jito.go createTipTransaction pattern.
package fees

import (
	"math"

	"github.com/gagliardetto/solana-go"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"
	"github.com/gagliardetto/solana-go/programs/system"
)

// ComputeUnitLimit is the fixed per-build compute-budget limit (spec §4.2,
// §9: "a configuration constant, not a contract").
const ComputeUnitLimit = uint32(250_000)

// MinTipLamports is the floor applied whenever a tip is composed at all.
const MinTipLamports = uint64(1000)

const lamportsPerSol = 1_000_000_000.0

// PriceMicroLamportsPerCU converts a requested priority-fee, in native
// units (SOL), into a micro-lamports-per-CU price:
// price = round(fee_native * 1e9 / CU_LIMIT). A fee of 0 yields 0, which the
// caller must interpret as "no price instruction".
func PriceMicroLamportsPerCU(feeSol float64) uint64 {
	if feeSol <= 0 {
		return 0
	}
	return uint64(math.Round(feeSol * lamportsPerSol / float64(ComputeUnitLimit)))
}

// ComputeBudgetInstructions returns the compute-limit instruction, and the
// compute-price instruction only if priceMicroLamports > 0.
func ComputeBudgetInstructions(priceMicroLamports uint64) []solana.Instruction {
	instrs := []solana.Instruction{
		computebudget.NewSetComputeUnitLimitInstruction(ComputeUnitLimit).Build(),
	}
	if priceMicroLamports > 0 {
		instrs = append(instrs, computebudget.NewSetComputeUnitPriceInstruction(priceMicroLamports).Build())
	}
	return instrs
}

// TipAmountLamports applies the spec §4.2/§8 minimum-tip rule: a requested
// tip of 0 means "no tip" (handled by the caller, which skips emitting the
// instruction entirely); any nonzero tip below 1000 lamports is raised to
// 1000.
func TipAmountLamports(requested uint64) uint64 {
	if requested == 0 {
		return 0
	}
	if requested < MinTipLamports {
		return MinTipLamports
	}
	return requested
}

// TipInstruction builds the plain value-transfer tip instruction from payer
// to recipient. Returns nil if amount is 0 (spec §8: "tip = 0 -> no tip
// transfer emitted").
func TipInstruction(payer, recipient solana.PublicKey, amountLamports uint64) solana.Instruction {
	if amountLamports == 0 {
		return nil
	}
	return system.NewTransferInstruction(amountLamports, payer, recipient).Build()
}
