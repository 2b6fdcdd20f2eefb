package pda

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// CPMM seeds, grounded on original_source/src/dex/raydium.rs and the
// teacher's pkg/pool/raydium/cpmmPool.go getAuthorityPDA.
const (
	cpmmAuthSeed        = "vault_and_lp_mint_auth_seed"
	cpmmAmmConfigSeed   = "amm_config"
	cpmmPoolSeed        = "pool"
	cpmmPoolLpMintSeed  = "pool_lp_mint"
	cpmmPoolVaultSeed   = "pool_vault"
	cpmmObservationSeed = "observation"
)

// CPMMAccounts is the fixed-shape output C3's CPMM builder consumes.
type CPMMAccounts struct {
	ConfigID     solana.PublicKey
	PoolID       solana.PublicKey
	Authority    solana.PublicKey
	VaultA       solana.PublicKey
	VaultB       solana.PublicKey
	LPMint       solana.PublicKey
	Observation  solana.PublicKey
	MintA, MintB solana.PublicKey // lexicographically ordered
}

// DeriveCPMM derives every CPMM account from the mint alone, trying
// config index 0 per spec §4.1/§9 ("the deriver tries config index = 0 for
// migrated tokens; higher indices are permitted but not required on the hot
// path").
func DeriveCPMM(mint solana.PublicKey) (CPMMAccounts, error) {
	return DeriveCPMMWithConfigIndex(mint, 0)
}

// DeriveCPMMWithConfigIndex derives CPMM accounts for a given amm_config
// index, for callers that want to probe beyond index 0.
func DeriveCPMMWithConfigIndex(mint solana.PublicKey, configIndex uint16) (CPMMAccounts, error) {
	mintA, mintB := orderMints(mint, WSOL)

	configID, err := deriveConfigID(configIndex)
	if err != nil {
		return CPMMAccounts{}, fmt.Errorf("derive config id: %w", err)
	}
	poolID, err := derivePoolID(configID, mintA, mintB)
	if err != nil {
		return CPMMAccounts{}, fmt.Errorf("derive pool id: %w", err)
	}
	authority, _, err := solana.FindProgramAddress([][]byte{[]byte(cpmmAuthSeed)}, ConstantProductCpmmProgramID)
	if err != nil {
		return CPMMAccounts{}, fmt.Errorf("derive authority: %w", err)
	}
	vaultA, err := deriveVault(poolID, mintA)
	if err != nil {
		return CPMMAccounts{}, fmt.Errorf("derive vault a: %w", err)
	}
	vaultB, err := deriveVault(poolID, mintB)
	if err != nil {
		return CPMMAccounts{}, fmt.Errorf("derive vault b: %w", err)
	}
	lpMint, _, err := solana.FindProgramAddress(
		[][]byte{[]byte(cpmmPoolLpMintSeed), poolID.Bytes()}, ConstantProductCpmmProgramID)
	if err != nil {
		return CPMMAccounts{}, fmt.Errorf("derive lp mint: %w", err)
	}
	observation, _, err := solana.FindProgramAddress(
		[][]byte{[]byte(cpmmObservationSeed), poolID.Bytes()}, ConstantProductCpmmProgramID)
	if err != nil {
		return CPMMAccounts{}, fmt.Errorf("derive observation: %w", err)
	}

	return CPMMAccounts{
		ConfigID:    configID,
		PoolID:      poolID,
		Authority:   authority,
		VaultA:      vaultA,
		VaultB:      vaultB,
		LPMint:      lpMint,
		Observation: observation,
		MintA:       mintA,
		MintB:       mintB,
	}, nil
}

// deriveConfigID uses seeds ["amm_config", index_BIG_ENDIAN_u16] — endianness
// is part of the contract per spec §4.1, and matches the original's
// index.to_be_bytes() exactly.
func deriveConfigID(index uint16) (solana.PublicKey, error) {
	var idxBytes [2]byte
	binary.BigEndian.PutUint16(idxBytes[:], index)
	configID, _, err := solana.FindProgramAddress(
		[][]byte{[]byte(cpmmAmmConfigSeed), idxBytes[:]}, ConstantProductCpmmProgramID)
	return configID, err
}

func derivePoolID(configID, mintA, mintB solana.PublicKey) (solana.PublicKey, error) {
	poolID, _, err := solana.FindProgramAddress(
		[][]byte{[]byte(cpmmPoolSeed), configID.Bytes(), mintA.Bytes(), mintB.Bytes()},
		ConstantProductCpmmProgramID)
	return poolID, err
}

func deriveVault(poolID, mint solana.PublicKey) (solana.PublicKey, error) {
	vault, _, err := solana.FindProgramAddress(
		[][]byte{[]byte(cpmmPoolVaultSeed), poolID.Bytes(), mint.Bytes()}, ConstantProductCpmmProgramID)
	return vault, err
}

// orderMints returns (a, b) such that a < b lexicographically, as Raydium
// CPMM requires mintA < mintB.
func orderMints(x, y solana.PublicKey) (solana.PublicKey, solana.PublicKey) {
	if bytes.Compare(x.Bytes(), y.Bytes()) < 0 {
		return x, y
	}
	return y, x
}
