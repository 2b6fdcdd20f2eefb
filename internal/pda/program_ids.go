// Package pda derives every account a venue builder needs, deterministically
// and without network access, from (mint, user_wallet, program_id, venue)
// per spec §4.1. Seed schemes are grounded on the teacher's
// pkg/pool/{pump,raydium}/*.go and on original_source/src/dex/*.rs.
package pda

import "github.com/gagliardetto/solana-go"

// Program ids for the six supported venue families, plus ambient token
// program ids. Values are the well-known mainnet addresses corroborated by
// original_source/src/dex/router.rs's program_ids module.
var (
	BondingCurveAProgramID       = solana.MustPublicKeyFromBase58("6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P")
	MigratedAmmProgramID         = solana.MustPublicKeyFromBase58("pAMMBay6oceH9fJKBRHGP5D4bD4sWpmSwMn52FMfXEA")
	BondingCurveBProgramID       = solana.MustPublicKeyFromBase58("MoonCVVNZFSYkqNXP6bxHLPL6QQJiMagDL3qcqUQTrG")
	ConstantProductCpmmProgramID = solana.MustPublicKeyFromBase58("CPMMoo8L3F4NbTegBCKVNunggL7H1ZpdTHKxQB5qKP1C")
	LaunchpadBondingCurveProgramID = solana.MustPublicKeyFromBase58("LanMV9sAd7wArD4vJFi2qDdfnVhFxYSUg6eADduJ3uj")
	DynamicAmmProgramID          = solana.MustPublicKeyFromBase58("LBUZKhRxPF3XUpBCjp4YzTKgLccjZhTSDM9YuVaPwxo")

	WSOL              = solana.MustPublicKeyFromBase58("So11111111111111111111111111111111111111112")
	TokenProgramID    = solana.MustPublicKeyFromBase58("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")
	AssociatedTokenProgramID = solana.MustPublicKeyFromBase58("ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL")

	// PumpSwap (MigratedAmm) fixed accounts, corroborated by the teacher's
	// pkg/pool/pump/amm.go call sites and the YuppieCC PDA reference file.
	PumpGlobalConfig                    = solana.MustPublicKeyFromBase58("ADyA8hdefvWN2dbGGWFotbzWxrAvLW83WG6QCVXvJKqw")
	PumpProtocolFeeRecipient             = solana.MustPublicKeyFromBase58("9rPYyANsfQZw3DnDmKE3YCQF5E8oD89UXoHn9JFEhJUz")
	PumpProtocolFeeRecipientTokenAccount = solana.MustPublicKeyFromBase58("GS4CU59F31iL7aR2Q8zVS8DRrcRnXX1yjQ66TqNVQnaR")

	// MemoProgramID is the SPL memo v2 program, part of the DynamicAmm
	// (Meteora DLMM) swap account layout per the teacher's
	// pkg/pool/meteora/swap.go.
	MemoProgramID = solana.MustPublicKeyFromBase58("MemoSq4gqABAXKb96qnH8TysNcWxMyWCqXgDLGmfcHr")
)
