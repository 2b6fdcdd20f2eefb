package pda

import (
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// MigratedAmm (PumpSwap) seeds. The pool/authority seeds follow the literal
// scheme spec §4.1 documents; the creator_vault seed is corroborated by the
// teacher's pkg/pool/pump/utils.go and the YuppieCC PDA reference file.
const (
	migratedAmmPoolSeed        = "pool"
	migratedAmmAuthSeed        = "pool-authority"
	migratedAmmCreatorVaultSeed = "creator_vault"
	// CanonicalPoolIndex is the index used for the canonical migrated pool,
	// per spec §4.1's "canonical_index_le".
	CanonicalPoolIndex uint16 = 0
)

// MigratedAmmAccounts is the fixed-shape output C3's MigratedAmm builder
// consumes. CoinCreator and its derived accounts must come from the
// classifier/cache (C4/C10); the deriver never fetches them (spec §4.1).
type MigratedAmmAccounts struct {
	PoolID        solana.PublicKey
	Authority     solana.PublicKey
	BaseVaultATA  solana.PublicKey
	QuoteVaultATA solana.PublicKey
}

// DeriveMigratedAmm derives the canonical pool PDA and authority PDA for a
// mint paired against WSOL, without any RPC call.
func DeriveMigratedAmm(mint solana.PublicKey) (MigratedAmmAccounts, error) {
	var idxBytes [2]byte
	binary.LittleEndian.PutUint16(idxBytes[:], CanonicalPoolIndex)

	poolID, _, err := solana.FindProgramAddress(
		[][]byte{[]byte(migratedAmmPoolSeed), idxBytes[:], mint.Bytes(), WSOL.Bytes()},
		MigratedAmmProgramID)
	if err != nil {
		return MigratedAmmAccounts{}, fmt.Errorf("derive pool: %w", err)
	}

	authority, _, err := solana.FindProgramAddress(
		[][]byte{[]byte(migratedAmmAuthSeed), mint.Bytes()}, MigratedAmmProgramID)
	if err != nil {
		return MigratedAmmAccounts{}, fmt.Errorf("derive authority: %w", err)
	}

	baseVault, _, err := solana.FindAssociatedTokenAddress(poolID, mint)
	if err != nil {
		return MigratedAmmAccounts{}, fmt.Errorf("derive base vault ata: %w", err)
	}
	quoteVault, _, err := solana.FindAssociatedTokenAddress(poolID, WSOL)
	if err != nil {
		return MigratedAmmAccounts{}, fmt.Errorf("derive quote vault ata: %w", err)
	}

	return MigratedAmmAccounts{
		PoolID:        poolID,
		Authority:     authority,
		BaseVaultATA:  baseVault,
		QuoteVaultATA: quoteVault,
	}, nil
}

// CoinCreatorVaultAuthority derives the vault authority PDA for a PumpSwap
// coin_creator. coin_creator itself must be supplied by the caller (cached
// from the stream classifier), never looked up here.
func CoinCreatorVaultAuthority(coinCreator solana.PublicKey) (solana.PublicKey, error) {
	if coinCreator.IsZero() {
		return solana.PublicKey{}, fmt.Errorf("invalid coin creator public key")
	}
	pda, _, err := solana.FindProgramAddress(
		[][]byte{[]byte(migratedAmmCreatorVaultSeed), coinCreator.Bytes()}, MigratedAmmProgramID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("find creator vault authority: %w", err)
	}
	return pda, nil
}

// CoinCreatorVaultATA derives the WSOL ATA of the coin_creator vault
// authority.
func CoinCreatorVaultATA(coinCreator solana.PublicKey) (solana.PublicKey, error) {
	authority, err := CoinCreatorVaultAuthority(coinCreator)
	if err != nil {
		return solana.PublicKey{}, err
	}
	ata, _, err := solana.FindAssociatedTokenAddress(authority, WSOL)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("find creator vault ata: %w", err)
	}
	return ata, nil
}
