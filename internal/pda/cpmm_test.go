package pda

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

func TestDeriveCPMM_PurityAndMintOrdering(t *testing.T) {
	mint := solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")

	a, err := DeriveCPMM(mint)
	require.NoError(t, err)
	b, err := DeriveCPMM(mint)
	require.NoError(t, err)

	require.Equal(t, a, b, "same inputs must yield identical derivation")
	require.NotEqual(t, a.MintA, a.MintB)
	// lexicographic ordering invariant
	if string(a.MintA.Bytes()) > string(a.MintB.Bytes()) {
		t.Fatalf("mints not in lex order: %v > %v", a.MintA, a.MintB)
	}
}

func TestDeriveCPMM_DifferentMintsDiffer(t *testing.T) {
	m1 := solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
	m2 := solana.MustPublicKeyFromBase58("DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263")

	a, err := DeriveCPMM(m1)
	require.NoError(t, err)
	b, err := DeriveCPMM(m2)
	require.NoError(t, err)
	require.NotEqual(t, a.PoolID, b.PoolID)
}
