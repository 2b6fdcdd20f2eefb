package pda

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Bonding-curve seed scheme, grounded on other_examples' PumpFun PDA
// reference (GetBondingCurvePumpSwapPDA: ["bonding-curve", mint]) and the
// teacher's creator-vault pattern, generalized across the three
// bonding-curve-shaped venues (BondingCurveA/B, LaunchpadBondingCurve) per
// spec §4.1's "venue-specific seed schemes analogous to above."
const (
	bondingCurveSeed   = "bonding-curve"
	globalAccountSeed  = "global"
	eventAuthoritySeed = "__event_authority"
)

// DeriveGlobalAccount derives the per-program "global" settings PDA, whose
// fee_recipient field the classifier caches after first observation (spec
// §4.1: "a global fee recipient discovered from a 'global' account").
func DeriveGlobalAccount(programID solana.PublicKey) (solana.PublicKey, error) {
	pda, _, err := solana.FindProgramAddress([][]byte{[]byte(globalAccountSeed)}, programID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("derive global account: %w", err)
	}
	return pda, nil
}

// DeriveEventAuthority derives the per-program Anchor event-authority PDA
// every bonding-curve-family instruction's account list references.
func DeriveEventAuthority(programID solana.PublicKey) (solana.PublicKey, error) {
	pda, _, err := solana.FindProgramAddress([][]byte{[]byte(eventAuthoritySeed)}, programID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("derive event authority: %w", err)
	}
	return pda, nil
}

// BondingCurveAccounts is the fixed-shape output for any bonding-curve-style
// venue (BondingCurveA, BondingCurveB, LaunchpadBondingCurve).
type BondingCurveAccounts struct {
	BondingCurve     solana.PublicKey
	BondingCurveVault solana.PublicKey // ATA of BondingCurve for the mint
	CreatorVault     solana.PublicKey // not set by DeriveBondingCurve; builders call DeriveCreatorVault
}

// DeriveBondingCurve derives the per-mint bonding-curve PDA and its
// associated token vault under the given program id. The global fee
// recipient is not derivable and must come from a cached "global" account
// observation (spec §4.1) — callers read it from internal/cache's
// PoolRegistry, not from this package.
func DeriveBondingCurve(programID, mint solana.PublicKey) (BondingCurveAccounts, error) {
	bondingCurve, _, err := solana.FindProgramAddress(
		[][]byte{[]byte(bondingCurveSeed), mint.Bytes()}, programID)
	if err != nil {
		return BondingCurveAccounts{}, fmt.Errorf("derive bonding curve: %w", err)
	}
	vault, _, err := solana.FindAssociatedTokenAddress(bondingCurve, mint)
	if err != nil {
		return BondingCurveAccounts{}, fmt.Errorf("derive bonding curve vault: %w", err)
	}
	return BondingCurveAccounts{BondingCurve: bondingCurve, BondingCurveVault: vault}, nil
}

// DeriveCreatorVault derives the per-creator PDA analogous to MigratedAmm's
// coin_creator vault, scoped to the given program id.
func DeriveCreatorVault(programID, creator solana.PublicKey) (solana.PublicKey, error) {
	if creator.IsZero() {
		return solana.PublicKey{}, fmt.Errorf("invalid creator public key")
	}
	pda, _, err := solana.FindProgramAddress(
		[][]byte{[]byte(migratedAmmCreatorVaultSeed), creator.Bytes()}, programID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("derive creator vault: %w", err)
	}
	return pda, nil
}

// DynamicAmmAccounts is the fixed-shape output for the DynamicAmm (Meteora
// DLMM) venue: a per-pair pool PDA plus its token vaults and oracle, binned
// like every DLMM-family AMM. The hot path derives only the fixed accounts;
// it never enumerates the pool's active bin arrays (that requires reading
// the pool account from the chain, which the no-RPC-on-hot-path contract
// forbids), so the builder that consumes this quotes against cached vault
// balances instead of walking bins.
type DynamicAmmAccounts struct {
	Pool   solana.PublicKey
	VaultA solana.PublicKey
	VaultB solana.PublicKey
	Oracle solana.PublicKey
}

const (
	dynamicAmmPoolSeed   = "pool"
	dynamicAmmOracleSeed = "oracle"
)

// DeriveDynamicAmm derives the DLMM pool PDA for an ordered mint pair, its
// two vault ATAs, and its oracle PDA.
func DeriveDynamicAmm(mintA, mintB solana.PublicKey) (DynamicAmmAccounts, error) {
	a, b := orderMints(mintA, mintB)
	pool, _, err := solana.FindProgramAddress(
		[][]byte{[]byte(dynamicAmmPoolSeed), a.Bytes(), b.Bytes()}, DynamicAmmProgramID)
	if err != nil {
		return DynamicAmmAccounts{}, fmt.Errorf("derive dlmm pool: %w", err)
	}
	vaultA, _, err := solana.FindAssociatedTokenAddress(pool, a)
	if err != nil {
		return DynamicAmmAccounts{}, fmt.Errorf("derive dlmm vault a: %w", err)
	}
	vaultB, _, err := solana.FindAssociatedTokenAddress(pool, b)
	if err != nil {
		return DynamicAmmAccounts{}, fmt.Errorf("derive dlmm vault b: %w", err)
	}
	oracle, _, err := solana.FindProgramAddress(
		[][]byte{[]byte(dynamicAmmOracleSeed), pool.Bytes()}, DynamicAmmProgramID)
	if err != nil {
		return DynamicAmmAccounts{}, fmt.Errorf("derive dlmm oracle: %w", err)
	}
	return DynamicAmmAccounts{Pool: pool, VaultA: vaultA, VaultB: vaultB, Oracle: oracle}, nil
}

// ProgramIDFor returns the program id for a bonding-curve-shaped DexKind tag.
// Callers pass venue.BondingCurveA, venue.BondingCurveB, or
// venue.LaunchpadBondingCurve.
func ProgramIDFor(programID string) solana.PublicKey {
	switch programID {
	case "bonding_curve_a":
		return BondingCurveAProgramID
	case "bonding_curve_b":
		return BondingCurveBProgramID
	case "launchpad_bonding_curve":
		return LaunchpadBondingCurveProgramID
	default:
		return solana.PublicKey{}
	}
}
