package sol

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// SendTx submits an already-signed transaction as a standalone send, used by
// the client's standalone top-up/cleanup helpers (CoverWsol, CloseWsol,
// SelectOrCreateSPLTokenAccount). The hot-path swap/sell pipeline never calls
// this: it goes through internal/submit's FastSubmitter/BundleSubmitter
// instead, which carry the bundle and tip-routing logic this method does not.
func (c *Client) SendTx(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	sig, err := c.SendTransactionWithOpts(
		ctx, tx,
		rpc.TransactionOpts{
			SkipPreflight:       true,
			PreflightCommitment: rpc.CommitmentProcessed,
		},
	)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to send transaction: %w", err)
	}
	return sig, nil
}
