package streamfeed

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testClient(wallets map[string]string) *Client {
	return New("wss://example.invalid", wallets, zap.NewNop())
}

func buildMessage(t *testing.T, accountKeys []string, programIDs []string, preTok, postTok []tokenBalance, preBal, postBal []uint64) []byte {
	t.Helper()

	instrs := make([]map[string]string, 0, len(programIDs))
	for _, id := range programIDs {
		instrs = append(instrs, map[string]string{"programId": id})
	}

	msg := map[string]any{
		"params": map[string]any{
			"result": map[string]any{
				"value": map[string]any{
					"signature": "sig1",
					"transaction": map[string]any{
						"transaction": map[string]any{
							"message": map[string]any{
								"accountKeys":  accountKeys,
								"instructions": instrs,
							},
						},
						"meta": map[string]any{
							"preBalances":       preBal,
							"postBalances":      postBal,
							"preTokenBalances":  preTok,
							"postTokenBalances": postTok,
						},
					},
				},
			},
		},
	}
	raw, err := json.Marshal(msg)
	require.NoError(t, err)
	return raw
}

func TestParseMessageDetectsBuyForTrackedWallet(t *testing.T) {
	wallet := "WalletAddr1"
	c := testClient(map[string]string{wallet: "whale"})

	pre := tokenBalance{Owner: wallet, Mint: "MintX"}
	pre.UiTokenAmount.Amount = "0"
	post := tokenBalance{Owner: wallet, Mint: "MintX"}
	post.UiTokenAmount.Amount = "1000"

	raw := buildMessage(t, []string{wallet, "6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P"},
		[]string{"6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P"},
		[]tokenBalance{pre}, []tokenBalance{post},
		[]uint64{5_000_000_000}, []uint64{4_998_000_000})

	fill, ok, err := c.parseMessage(raw)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "whale", fill.WalletLabel)
	require.Equal(t, "MintX", fill.Mint)
	require.Equal(t, int64(1000), fill.TokenDelta)
	require.Equal(t, int64(-2_000_000), fill.LamportsDelta)
	require.Len(t, fill.InvokedProgramIDs, 1)
}

func TestParseMessageIgnoresUntrackedWallet(t *testing.T) {
	c := testClient(map[string]string{"TrackedOnly": "whale"})

	raw := buildMessage(t, []string{"SomeoneElse"}, nil, nil, nil, nil, nil)

	_, ok, err := c.parseMessage(raw)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestParseMessageDropsZeroTokenDelta(t *testing.T) {
	wallet := "WalletAddr1"
	c := testClient(map[string]string{wallet: "whale"})

	bal := tokenBalance{Owner: wallet, Mint: "MintX"}
	bal.UiTokenAmount.Amount = "500"

	raw := buildMessage(t, []string{wallet}, nil, []tokenBalance{bal}, []tokenBalance{bal}, nil, nil)

	_, ok, err := c.parseMessage(raw)
	require.NoError(t, err)
	require.False(t, ok)
}
