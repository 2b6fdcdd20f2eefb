package builder

import (
	"bytes"
	"encoding/binary"

	bin "github.com/gagliardetto/binary"
	"github.com/copytrader/engine/internal/pda"
	"github.com/copytrader/engine/pkg/anchor"
	"github.com/gagliardetto/solana-go"
)

// dynamicAmmSwapInstruction encodes a DynamicAmm (Meteora DLMM) swap.
// Account order for indices 0-15 is grounded verbatim on the teacher's
// pkg/pool/meteora/swap.go SwapInstruction; that instruction's true account
// list runs 16+N, with the tail holding one entry per bin array the swap
// crosses. Enumerating the active bin arrays requires reading the pool
// account off the chain, which the hot path's no-RPC-before-building
// contract forbids, so this builder omits the bin-array tail and the
// RemainingAccountsInfo header the teacher's instruction prepends for it.
// In practice this means the built instruction only prices and routes
// correctly when the swap stays within the pool's currently active bin, a
// documented simplification relative to the teacher's full traversal.
type dynamicAmmSwapInstruction struct {
	bin.BaseVariant
	AmountIn     uint64
	MinAmountOut uint64
	solana.AccountMetaSlice `bin:"-" borsh_skip:"true"`
}

func (inst *dynamicAmmSwapInstruction) ProgramID() solana.PublicKey { return pda.DynamicAmmProgramID }

func (inst *dynamicAmmSwapInstruction) Accounts() []*solana.AccountMeta {
	return inst.AccountMetaSlice
}

func (inst *dynamicAmmSwapInstruction) Data() ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(anchor.GetDiscriminator("global", "swap2"))
	var v [8]byte
	binary.LittleEndian.PutUint64(v[:], inst.AmountIn)
	buf.Write(v[:])
	binary.LittleEndian.PutUint64(v[:], inst.MinAmountOut)
	buf.Write(v[:])
	return buf.Bytes(), nil
}

type dynamicAmmSwapParams struct {
	pool, reserveX, reserveY   solana.PublicKey
	userIn, userOut            solana.PublicKey
	mintX, mintY               solana.PublicKey
	oracle                     solana.PublicKey
	user                       solana.PublicKey
	eventAuthority             solana.PublicKey
	amountIn, minAmountOut     uint64
}

// newDynamicAmmSwapInstruction lays out the 16 fixed accounts. bitmap
// extension and host fee accounts are pinned to the program id itself,
// matching the teacher's own fallback when a pool carries neither (see
// pkg/pool/meteora/swap.go's nil-checked defaults).
func newDynamicAmmSwapInstruction(p dynamicAmmSwapParams) solana.Instruction {
	inst := &dynamicAmmSwapInstruction{
		AmountIn:         p.amountIn,
		MinAmountOut:     p.minAmountOut,
		AccountMetaSlice: make(solana.AccountMetaSlice, 16),
	}
	inst.BaseVariant = bin.BaseVariant{Impl: inst}

	m := inst.AccountMetaSlice
	m[0] = solana.NewAccountMeta(p.pool, true, false)
	m[1] = solana.NewAccountMeta(pda.DynamicAmmProgramID, false, false)
	m[2] = solana.NewAccountMeta(p.reserveX, true, false)
	m[3] = solana.NewAccountMeta(p.reserveY, true, false)
	m[4] = solana.NewAccountMeta(p.userIn, true, false)
	m[5] = solana.NewAccountMeta(p.userOut, true, false)
	m[6] = solana.NewAccountMeta(p.mintX, false, false)
	m[7] = solana.NewAccountMeta(p.mintY, false, false)
	m[8] = solana.NewAccountMeta(p.oracle, true, false)
	m[9] = solana.NewAccountMeta(pda.DynamicAmmProgramID, false, false)
	m[10] = solana.NewAccountMeta(p.user, true, true)
	m[11] = solana.NewAccountMeta(pda.TokenProgramID, false, false)
	m[12] = solana.NewAccountMeta(pda.TokenProgramID, false, false)
	m[13] = solana.NewAccountMeta(pda.MemoProgramID, false, false)
	m[14] = solana.NewAccountMeta(p.eventAuthority, false, false)
	m[15] = solana.NewAccountMeta(pda.DynamicAmmProgramID, false, false)
	return inst
}
