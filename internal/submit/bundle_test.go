package submit

import (
	"context"
	"encoding/binary"
	"fmt"
	"testing"

	"github.com/copytrader/engine/internal/fees"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

func TestBuildTipOnlyTxFloorsMinimumTip(t *testing.T) {
	payer, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	recipient := solana.MustPublicKeyFromBase58("DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263")

	tx, err := buildTipOnlyTx(payer, recipient, 10, solana.Hash{})
	require.NoError(t, err)
	require.Len(t, tx.Message.Instructions, 1)
	require.Equal(t, solana.SystemProgramID, tx.Message.AccountKeys[tx.Message.Instructions[0].ProgramIDIndex])
	require.Equal(t, fees.MinTipLamports, binary.LittleEndian.Uint64(tx.Message.Instructions[0].Data[4:12]))
}

func TestBuildTipOnlyTxRespectsLargerAmount(t *testing.T) {
	payer, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	recipient := solana.MustPublicKeyFromBase58("DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263")

	tx, err := buildTipOnlyTx(payer, recipient, 50_000, solana.Hash{})
	require.NoError(t, err)
	require.NotNil(t, tx)
	require.Equal(t, uint64(50_000), binary.LittleEndian.Uint64(tx.Message.Instructions[0].Data[4:12]))
}

type fakeBlockhashSource struct {
	hash solana.Hash
	err  error
}

func (f fakeBlockhashSource) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	return f.hash, f.err
}

func TestBundleSubmitterSubmitPropagatesBlockhashError(t *testing.T) {
	payer, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	b := NewBundleSubmitter("https://example.invalid", payer, fakeBlockhashSource{err: fmt.Errorf("rpc down")})

	_, err = b.Submit(context.Background(), "payload", 5000, true)
	require.Error(t, err, "a blockhash fetch failure must short-circuit before any network call to the relay")
}
