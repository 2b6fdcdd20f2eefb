package builder

import (
	"bytes"
	"encoding/binary"

	bin "github.com/gagliardetto/binary"
	"github.com/copytrader/engine/pkg/anchor"
	"github.com/gagliardetto/solana-go"
)

// cpmmSwapInstruction encodes Raydium CPMM's swap_base_input instruction.
// Grounded on the teacher's pkg/pool/raydium/cpmmPool.go CPMMSwapInstruction
// (account order and discriminator-then-two-u64 data layout kept verbatim).
type cpmmSwapInstruction struct {
	bin.BaseVariant
	InAmount         uint64
	MinimumOutAmount uint64
	solana.AccountMetaSlice `bin:"-" borsh_skip:"true"`
}

func (inst *cpmmSwapInstruction) ProgramID() solana.PublicKey { return cpmmProgramID }

func (inst *cpmmSwapInstruction) Accounts() []*solana.AccountMeta {
	return inst.AccountMetaSlice
}

func (inst *cpmmSwapInstruction) Data() ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(anchor.GetDiscriminator("global", "swap_base_input"))
	var amt [8]byte
	binary.LittleEndian.PutUint64(amt[:], inst.InAmount)
	buf.Write(amt[:])
	binary.LittleEndian.PutUint64(amt[:], inst.MinimumOutAmount)
	buf.Write(amt[:])
	return buf.Bytes(), nil
}

// newCPMMSwapInstruction lays out the 13-account CPMM swap instruction.
// inputIsMintA selects which side of the pool (mint A or mint B) is the
// source; userAccountA/userAccountB are the payer's token accounts for mint
// A and mint B, placed into the input/output slots for that direction.
func newCPMMSwapInstruction(
	payer solana.PublicKey,
	accs cpmmAccounts,
	inputIsMintA bool,
	userAccountA, userAccountB solana.PublicKey,
	amountIn, minOut uint64,
) solana.Instruction {
	inst := &cpmmSwapInstruction{
		InAmount:         amountIn,
		MinimumOutAmount: minOut,
		AccountMetaSlice: make(solana.AccountMetaSlice, 13),
	}
	inst.BaseVariant = bin.BaseVariant{Impl: inst}

	inst.AccountMetaSlice[0] = solana.NewAccountMeta(payer, true, true)
	inst.AccountMetaSlice[1] = solana.NewAccountMeta(accs.Authority, false, false)
	inst.AccountMetaSlice[2] = solana.NewAccountMeta(accs.ConfigID, false, false)
	inst.AccountMetaSlice[3] = solana.NewAccountMeta(accs.PoolID, true, false)
	if inputIsMintA {
		inst.AccountMetaSlice[4] = solana.NewAccountMeta(userAccountA, true, false)
		inst.AccountMetaSlice[5] = solana.NewAccountMeta(userAccountB, true, false)
		inst.AccountMetaSlice[6] = solana.NewAccountMeta(accs.VaultA, true, false)
		inst.AccountMetaSlice[7] = solana.NewAccountMeta(accs.VaultB, true, false)
		inst.AccountMetaSlice[10] = solana.NewAccountMeta(accs.MintA, false, false)
		inst.AccountMetaSlice[11] = solana.NewAccountMeta(accs.MintB, false, false)
	} else {
		inst.AccountMetaSlice[4] = solana.NewAccountMeta(userAccountB, true, false)
		inst.AccountMetaSlice[5] = solana.NewAccountMeta(userAccountA, true, false)
		inst.AccountMetaSlice[6] = solana.NewAccountMeta(accs.VaultB, true, false)
		inst.AccountMetaSlice[7] = solana.NewAccountMeta(accs.VaultA, true, false)
		inst.AccountMetaSlice[10] = solana.NewAccountMeta(accs.MintB, false, false)
		inst.AccountMetaSlice[11] = solana.NewAccountMeta(accs.MintA, false, false)
	}
	inst.AccountMetaSlice[8] = solana.NewAccountMeta(tokenProgramID, false, false)
	inst.AccountMetaSlice[9] = solana.NewAccountMeta(tokenProgramID, false, false)
	inst.AccountMetaSlice[12] = solana.NewAccountMeta(accs.Observation, true, false)

	return inst
}
