package builder

import (
	"github.com/copytrader/engine/internal/pda"
	"github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
)

// idempotentCreateATA emits an idempotent create-ATA instruction: a second
// build against an already-created account is a no-op on-chain rather than
// a failed transaction. Grounded on the teacher's
// pkg/sol/token_account.go SelectOrCreateSPLTokenAccount, generalized to
// skip the existence-check RPC call entirely (hot path never probes chain
// state before building, per spec §4.3).
func idempotentCreateATA(payer, owner, mint solana.PublicKey) (solana.Instruction, error) {
	return associatedtokenaccount.NewCreateIdempotentInstruction(payer, owner, mint).ValidateAndBuild()
}

// wsolCoverInstructions returns the idempotent-create + system-transfer +
// sync-native sequence spec §4.3 requires for the native-wrapped mint
// ("instead gets an idempotent create + system-transfer + sync-native
// sequence"). Grounded on the teacher's pkg/sol/wsol_account.go CoverWsol.
func wsolCoverInstructions(payer solana.PublicKey, lamports uint64) ([]solana.Instruction, solana.PublicKey, error) {
	wsolATA, _, err := solana.FindAssociatedTokenAddress(payer, pda.WSOL)
	if err != nil {
		return nil, solana.PublicKey{}, err
	}

	transferInst, err := system.NewTransferInstruction(lamports, payer, wsolATA).ValidateAndBuild()
	if err != nil {
		return nil, solana.PublicKey{}, err
	}
	syncInst, err := token.NewSyncNativeInstruction(wsolATA).ValidateAndBuild()
	if err != nil {
		return nil, solana.PublicKey{}, err
	}

	createInst, err := idempotentCreateATA(payer, payer, pda.WSOL)
	if err != nil {
		return nil, solana.PublicKey{}, err
	}

	return []solana.Instruction{
		createInst,
		transferInst,
		syncInst,
	}, wsolATA, nil
}

// wsolCloseInstruction unwraps any residual WSOL after a sell whose output
// is the native-wrapped mint, per spec §4.3's swap cleanup step. Grounded on
// pkg/sol/wsol_account.go CloseWsol.
func wsolCloseInstruction(owner solana.PublicKey) (solana.Instruction, error) {
	wsolATA, _, err := solana.FindAssociatedTokenAddress(owner, pda.WSOL)
	if err != nil {
		return nil, err
	}
	return token.NewCloseAccountInstruction(wsolATA, owner, owner, nil).ValidateAndBuild()
}
