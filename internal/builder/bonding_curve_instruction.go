package builder

import (
	"bytes"
	"encoding/binary"

	bin "github.com/gagliardetto/binary"
	"github.com/copytrader/engine/pkg/anchor"
	"github.com/gagliardetto/solana-go"
)

// bondingCurveSwapInstruction encodes a PumpFun-family bonding-curve
// buy/sell. Account order and the two-u64 argument shape are grounded on
// the well-known PumpFun Anchor IDL (corroborated by the
// other_examples RovshanMuradov prepareBuyTransaction/prepareSellTransaction
// call sites: global, fee_recipient, mint, bonding_curve,
// associated_bonding_curve, associated_user, user, system_program,
// token_program, creator_vault, event_authority, program), generalized
// across the three bonding-curve-shaped venues per spec §4.1.
type bondingCurveSwapInstruction struct {
	bin.BaseVariant
	programID solana.PublicKey
	isBuy     bool
	amount    uint64 // token amount (buy: tokens desired:contextually amount out; sell: tokens in)
	threshold uint64 // buy: max_sol_cost; sell: min_sol_output
	solana.AccountMetaSlice `bin:"-" borsh_skip:"true"`
}

func (inst *bondingCurveSwapInstruction) ProgramID() solana.PublicKey { return inst.programID }

func (inst *bondingCurveSwapInstruction) Accounts() []*solana.AccountMeta {
	return inst.AccountMetaSlice
}

func (inst *bondingCurveSwapInstruction) Data() ([]byte, error) {
	buf := new(bytes.Buffer)
	name := "sell"
	if inst.isBuy {
		name = "buy"
	}
	buf.Write(anchor.GetDiscriminator("global", name))
	var v [8]byte
	binary.LittleEndian.PutUint64(v[:], inst.amount)
	buf.Write(v[:])
	binary.LittleEndian.PutUint64(v[:], inst.threshold)
	buf.Write(v[:])
	return buf.Bytes(), nil
}

type bondingCurveSwapParams struct {
	programID                        solana.PublicKey
	isBuy                             bool
	feeRecipient, globalAccount       solana.PublicKey
	mint, bondingCurve, bondingVault  solana.PublicKey
	userATA, user                     solana.PublicKey
	creatorVault, eventAuthority      solana.PublicKey
	amount, threshold                 uint64
}

func newBondingCurveSwapInstruction(p bondingCurveSwapParams) solana.Instruction {
	inst := &bondingCurveSwapInstruction{
		programID:        p.programID,
		isBuy:            p.isBuy,
		amount:           p.amount,
		threshold:        p.threshold,
		AccountMetaSlice: make(solana.AccountMetaSlice, 12),
	}
	inst.BaseVariant = bin.BaseVariant{Impl: inst}

	m := inst.AccountMetaSlice
	m[0] = solana.NewAccountMeta(p.globalAccount, false, false)
	m[1] = solana.NewAccountMeta(p.feeRecipient, true, false)
	m[2] = solana.NewAccountMeta(p.mint, false, false)
	m[3] = solana.NewAccountMeta(p.bondingCurve, true, false)
	m[4] = solana.NewAccountMeta(p.bondingVault, true, false)
	m[5] = solana.NewAccountMeta(p.userATA, true, false)
	m[6] = solana.NewAccountMeta(p.user, true, true)
	m[7] = solana.NewAccountMeta(solana.SystemProgramID, false, false)
	m[8] = solana.NewAccountMeta(solana.TokenProgramID, false, false)
	m[9] = solana.NewAccountMeta(p.creatorVault, true, false)
	m[10] = solana.NewAccountMeta(p.eventAuthority, false, false)
	m[11] = solana.NewAccountMeta(p.programID, false, false)
	return inst
}
