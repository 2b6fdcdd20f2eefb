package builder

import (
	"bytes"
	"encoding/binary"

	bin "github.com/gagliardetto/binary"
	"github.com/copytrader/engine/internal/pda"
	"github.com/copytrader/engine/pkg/anchor"
	"github.com/gagliardetto/solana-go"
)

// migratedAmmSwapInstruction encodes PumpSwap's buy/sell instructions.
// Grounded verbatim on the teacher's pkg/pool/pump/amm.go
// BuySwapInstruction/SellSwapInstruction: a 17-account layout when the pool
// has no coin_creator, extended to 19 when it does.
type migratedAmmSwapInstruction struct {
	bin.BaseVariant
	isBuy    bool
	amountA  uint64 // BaseAmountOut (buy) / BaseAmountIn (sell)
	amountB  uint64 // MaxQuoteAmountIn (buy) / MinQuoteAmountOut (sell)
	solana.AccountMetaSlice `bin:"-" borsh_skip:"true"`
}

func (inst *migratedAmmSwapInstruction) ProgramID() solana.PublicKey { return pda.MigratedAmmProgramID }

func (inst *migratedAmmSwapInstruction) Accounts() []*solana.AccountMeta {
	return inst.AccountMetaSlice
}

func (inst *migratedAmmSwapInstruction) Data() ([]byte, error) {
	buf := new(bytes.Buffer)
	name := "sell"
	if inst.isBuy {
		name = "buy"
	}
	buf.Write(anchor.GetDiscriminator("global", name))
	var amt [8]byte
	binary.LittleEndian.PutUint64(amt[:], inst.amountA)
	buf.Write(amt[:])
	binary.LittleEndian.PutUint64(amt[:], inst.amountB)
	buf.Write(amt[:])
	return buf.Bytes(), nil
}

type migratedAmmSwapParams struct {
	isBuy                              bool
	poolID, user, baseMint, quoteMint  solana.PublicKey
	userBaseAccount, userQuoteAccount  solana.PublicKey
	poolBaseVault, poolQuoteVault      solana.PublicKey
	amountA, amountB                   uint64
	hasCoinCreator                     bool
	coinCreatorVaultATA                solana.PublicKey
	coinCreatorVaultAuthority          solana.PublicKey
}

// newMigratedAmmSwapInstruction lays out the fixed 0-16 accounts common to
// buy and sell, then appends the coin-creator vault pair at indices 17-18
// when known.
func newMigratedAmmSwapInstruction(p migratedAmmSwapParams) solana.Instruction {
	n := 17
	if p.hasCoinCreator {
		n = 19
	}
	inst := &migratedAmmSwapInstruction{
		isBuy:            p.isBuy,
		amountA:          p.amountA,
		amountB:          p.amountB,
		AccountMetaSlice: make(solana.AccountMetaSlice, n),
	}
	inst.BaseVariant = bin.BaseVariant{Impl: inst}

	m := inst.AccountMetaSlice
	m[0] = solana.NewAccountMeta(p.poolID, false, false)
	m[1] = solana.NewAccountMeta(p.user, true, true)
	m[2] = solana.NewAccountMeta(pda.PumpGlobalConfig, false, false)
	m[3] = solana.NewAccountMeta(p.baseMint, false, false)
	m[4] = solana.NewAccountMeta(p.quoteMint, false, false)
	m[5] = solana.NewAccountMeta(p.userBaseAccount, true, false)
	m[6] = solana.NewAccountMeta(p.userQuoteAccount, true, false)
	m[7] = solana.NewAccountMeta(p.poolBaseVault, true, false)
	m[8] = solana.NewAccountMeta(p.poolQuoteVault, true, false)
	m[9] = solana.NewAccountMeta(pda.PumpProtocolFeeRecipient, false, false)
	m[10] = solana.NewAccountMeta(pda.PumpProtocolFeeRecipientTokenAccount, true, false)
	m[11] = solana.NewAccountMeta(pda.TokenProgramID, false, false)
	m[12] = solana.NewAccountMeta(pda.TokenProgramID, false, false)
	m[13] = solana.NewAccountMeta(solana.SystemProgramID, false, false)
	m[14] = solana.NewAccountMeta(pda.AssociatedTokenProgramID, false, false)
	m[15] = solana.NewAccountMeta(pda.PumpProtocolFeeRecipientTokenAccount, false, false)
	m[16] = solana.NewAccountMeta(pda.MigratedAmmProgramID, false, false)
	if p.hasCoinCreator {
		m[17] = solana.NewAccountMeta(p.coinCreatorVaultATA, true, false)
		m[18] = solana.NewAccountMeta(p.coinCreatorVaultAuthority, false, false)
	}

	return inst
}
