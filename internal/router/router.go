// Package router maps detected DEX family x side to a venue builder and
// picks the assumed venue when detection comes up empty (C8). It does not
// re-detect the venue or rebuild after a failed submission.
// Grounded on original_source/src/dex/router.rs's program_ids table and
// route_transaction dispatch, and on the teacher's pkg/router/simple_router.go
// for the venue-registry-by-map style.
package router

import (
	"github.com/copytrader/engine/internal/venue"
	"github.com/gagliardetto/solana-go"
)

// programIDTable maps a venue's program id (base58) to its DexKind. This is
// the "static table" spec §4.8 calls for preferred, O(1) detection.
var programIDTable = map[string]venue.DexKind{
	"6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P": venue.BondingCurveA,
	"pAMMBay6oceH9fJKBRHGP5D4bD4sWpmSwMn52FMfXEA": venue.MigratedAmm,
	"MoonCVVNZFSYkqNXP6bxHLPL6QQJiMagDL3qcqUQTrG": venue.BondingCurveB,
	"CPMMoo8L3F4NbTegBCKVNunggL7H1ZpdTHKxQB5qKP1C": venue.ConstantProductCpmm,
	"LanMV9sAd7wArD4vJFi2qDdfnVhFxYSUg6eADduJ3uj": venue.LaunchpadBondingCurve,
	"LBUZKhRxPF3XUpBCjp4YzTKgLccjZhTSDM9YuVaPwxo": venue.DynamicAmm,
	// Mercurial's older dynamic-AMM program id routes through the same DLMM
	// venue as the newer one; the original keeps both ids pointed at a
	// single DexKind::Meteora and we mirror that here.
	"Eo7WjKq67rjJQSZxS6z3YkapzY3eMj6Xy8X5EQVn5UaB": venue.DynamicAmm,
}

// IdentifyDexByProgramID looks up a single invoked program id.
func IdentifyDexByProgramID(programID string) (venue.DexKind, bool) {
	dex, ok := programIDTable[programID]
	return dex, ok
}

// IdentifyDexByProgramIDs scans a transaction's invoked program ids in
// order and returns the first one that matches a known venue. This mirrors
// the original's DexRouter::identify_dex_by_program_ids first-match
// iteration.
func IdentifyDexByProgramIDs(programIDs []solana.PublicKey) (venue.DexKind, bool) {
	for _, id := range programIDs {
		if dex, ok := programIDTable[id.String()]; ok {
			return dex, ok
		}
	}
	return "", false
}

// AllProgramIDs returns one known program id per DexKind, for diagnostics.
// DynamicAmm has two ids in the table; which of them is returned is not
// defined.
func AllProgramIDs() map[venue.DexKind]string {
	out := make(map[venue.DexKind]string, len(programIDTable))
	for id, dex := range programIDTable {
		out[dex] = id
	}
	return out
}

// IsKnownDexProgramID reports whether id belongs to any venue this router
// recognizes. Mirrors the original's is_known_dex_program_id diagnostic.
func IsKnownDexProgramID(programID string) bool {
	_, ok := programIDTable[programID]
	return ok
}

// DexName returns a short human-readable venue name for logging, mirroring
// the original's get_dex_name_by_program_id/dex_kind_to_string helpers.
func DexName(dex venue.DexKind) string {
	switch dex {
	case venue.BondingCurveA:
		return "bonding-curve-a"
	case venue.BondingCurveB:
		return "bonding-curve-b"
	case venue.LaunchpadBondingCurve:
		return "launchpad-bonding-curve"
	case venue.MigratedAmm:
		return "migrated-amm"
	case venue.ConstantProductCpmm:
		return "cpmm"
	case venue.DynamicAmm:
		return "dynamic-amm"
	default:
		return "unknown"
	}
}
