package fees

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPriceMicroLamportsPerCU(t *testing.T) {
	require.Equal(t, uint64(0), PriceMicroLamportsPerCU(0))
	// 0.001 SOL over 250_000 CU = 1_000_000 / 250_000 = 4 micro-lamports/CU
	require.Equal(t, uint64(4), PriceMicroLamportsPerCU(0.001))
}

func TestTipAmountLamports(t *testing.T) {
	require.Equal(t, uint64(0), TipAmountLamports(0))
	require.Equal(t, uint64(1000), TipAmountLamports(1))
	require.Equal(t, uint64(1000), TipAmountLamports(999))
	require.Equal(t, uint64(1000), TipAmountLamports(1000))
	require.Equal(t, uint64(5000), TipAmountLamports(5000))
}
