package submit

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/copytrader/engine/internal/fees"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	jitorpc "github.com/jito-labs/jito-go-rpc"
	"go.uber.org/zap"
)

// BundleSubmitter builds a standalone tip transaction, pairs it with the
// already-composed main transaction into a two-element bundle, and posts it
// via the Jito relay. Grounded on original_source/src/jito/bundle_builder.rs's
// build_jito_bundle (main tx first, standalone tip tx second, both base64)
// and the teacher's pkg/sol/jito.go/send.go SendBundle plumbing, reusing the
// already-wired github.com/jito-labs/jito-go-rpc client rather than a raw
// HTTP POST.
type BundleSubmitter struct {
	rpcClient   *jitorpc.JitoJsonRpcClient
	payer       solana.PrivateKey
	blockhashes BlockhashSource
	logger      *zap.Logger
}

// NewBundleSubmitter wires a bundle path against endpoint, signing its
// standalone tip transactions with payer and sourcing blockhashes from
// blockhashes (spec §7: one get_latest_blockhash call per build).
func NewBundleSubmitter(endpoint string, payer solana.PrivateKey, blockhashes BlockhashSource) *BundleSubmitter {
	return &BundleSubmitter{
		rpcClient:   jitorpc.NewJitoJsonRpcClient(endpoint, ""),
		payer:       payer,
		blockhashes: blockhashes,
	}
}

// WithLogger attaches logger, enabling a best-effort background poll of the
// bundle's confirmation status after each successful SendBundle. Without a
// logger, Submit returns as soon as the relay accepts the bundle, matching
// the original's fire-and-forget default.
func (b *BundleSubmitter) WithLogger(logger *zap.Logger) *BundleSubmitter {
	b.logger = logger
	return b
}

// Submit builds the standalone tip transaction, bundles it with mainPayloadB64,
// and posts the bundle. tipLamports is floored at fees.MinTipLamports per
// spec §4.9's "max(1000, native(bribe + priority_fee))". skipPreflight has
// no bundle-path analog (Jito bundles always simulate); it is accepted only
// to satisfy the Submitter interface.
func (b *BundleSubmitter) Submit(ctx context.Context, mainPayloadB64 string, tipLamports uint64, skipPreflight bool) (string, error) {
	bh, err := b.blockhashes.LatestBlockhash(ctx)
	if err != nil {
		return "", fmt.Errorf("bundle submit: latest blockhash: %w", err)
	}
	tipTx, err := buildTipOnlyTx(b.payer, fees.SelectTipRecipient(true, nowFn()), tipLamports, bh)
	if err != nil {
		return "", fmt.Errorf("bundle submit: build tip tx: %w", err)
	}

	tipBytes, err := tipTx.MarshalBinary()
	if err != nil {
		return "", fmt.Errorf("bundle submit: serialize tip tx: %w", err)
	}
	tipB64 := base64.StdEncoding.EncodeToString(tipBytes)

	bundleRequest := [][]string{{mainPayloadB64, tipB64}}
	raw, err := b.rpcClient.SendBundle(bundleRequest)
	if err != nil {
		return "", fmt.Errorf("bundle submit: send bundle: %w", err)
	}
	var bundleID string
	if err := json.Unmarshal(raw, &bundleID); err != nil {
		return "", fmt.Errorf("bundle submit: decode bundle id: %w", err)
	}

	if b.logger != nil {
		go b.pollBundleStatus(context.Background(), bundleID)
	}
	return bundleID, nil
}

// pollBundleStatus polls the relay for bundleID's confirmation status,
// logging its terminal outcome. It runs detached from the request that
// submitted the bundle (trade handling never blocks on confirmation), and
// gives up after five attempts, logging a warning, rather than looping
// forever. Adapted from the teacher's pkg/sol/jito.go CheckBundleStatus,
// trading its log.Printf/fmt.Println console narration and unconditional
// polling for structured logging gated behind WithLogger and a ctx-aware
// sleep. Submit starts it with context.Background(), so a poll always runs
// until a terminal status or the attempt limit (five 5 s sleeps).
func (b *BundleSubmitter) pollBundleStatus(ctx context.Context, bundleID string) {
	const maxAttempts = 5
	const pollInterval = 5 * time.Second

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return
		case <-time.After(pollInterval):
		}

		statusResponse, err := b.rpcClient.GetBundleStatuses([]string{bundleID})
		if err != nil {
			b.logger.Warn("bundle status poll failed", zap.String("bundle_id", bundleID), zap.Int("attempt", attempt), zap.Error(err))
			continue
		}
		if len(statusResponse.Value) == 0 {
			continue
		}

		status := statusResponse.Value[0]
		switch status.ConfirmationStatus {
		case "finalized":
			if status.Err.Ok == nil {
				b.logger.Info("bundle finalized", zap.String("bundle_id", bundleID), zap.Any("slot", status.Slot))
			} else {
				b.logger.Warn("bundle finalized with error", zap.String("bundle_id", bundleID), zap.Any("err", status.Err.Ok))
			}
			return
		case "processed", "confirmed":
			continue
		default:
			b.logger.Warn("unexpected bundle status", zap.String("bundle_id", bundleID), zap.String("status", status.ConfirmationStatus))
			return
		}
	}
	b.logger.Warn("bundle status unknown after max polling attempts", zap.String("bundle_id", bundleID))
}

// Ping is not supported for the bundle path, matching the original's
// downcast-based ping dispatch (mod.rs's ping_connection only recognizes
// HybridSubmitter and HeliusFast).
func (b *BundleSubmitter) Ping(ctx context.Context) error {
	return fmt.Errorf("ping not supported for the bundle path")
}

// buildTipOnlyTx builds and signs a standalone value-transfer transaction
// carrying the bundle's tip, floored at fees.MinTipLamports per spec §4.9's
// "max(1000, native(bribe + priority_fee))". Grounded on the teacher's
// pkg/sol/jito.go createTipTransaction.
func buildTipOnlyTx(payer solana.PrivateKey, recipient solana.PublicKey, lamports uint64, blockhash solana.Hash) (*solana.Transaction, error) {
	if lamports < fees.MinTipLamports {
		lamports = fees.MinTipLamports
	}
	tx, err := solana.NewTransaction(
		[]solana.Instruction{
			system.NewTransferInstruction(lamports, payer.PublicKey(), recipient).Build(),
		},
		blockhash,
		solana.TransactionPayer(payer.PublicKey()),
	)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if payer.PublicKey().Equals(key) {
			return &payer
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return tx, nil
}
