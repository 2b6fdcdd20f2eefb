// Package submit implements the Submitter abstraction (C9): a bundle-relay
// path and a fast single-transaction RPC path, composed by Hybrid under the
// jito_enabled policy switch. Grounded on
// original_source/src/submit/{iface,helius_fast}.rs for the interface shape
// and fast-path JSON-RPC body, original_source/src/jito/{bundle_builder,
// wrapper}.rs for the standalone-tip-transaction bundle shape, and the
// teacher's pkg/sol/jito.go/send.go for the Go-side tip-transaction and
// SendBundle idiom.
package submit

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"
)

// Submitter exposes submit(payload_b64, skip_preflight) -> signature and a
// ping used to keep TCP/TLS sessions warm (spec §4.9). Unlike the Rust
// trait, Submit also takes tipLamports: the bundle path needs a standalone
// tip-transaction built at submit time (original_source's hybrid.rs, the
// piece that would own this wiring, is empty in the retrieved source), and
// carrying the amount as a parameter is the natural Go way to give it that
// without smuggling per-trade state into the submitter's fields.
type Submitter interface {
	Submit(ctx context.Context, payloadB64 string, tipLamports uint64, skipPreflight bool) (string, error)
	Ping(ctx context.Context) error
}

// BlockhashSource supplies the one get_latest_blockhash call per build spec
// §7's suspension-point list allows. Grounded on the teacher's
// pkg/sol/rpc_wrapper.go GetLatestBlockhash (rate-limited RPC wrapper).
type BlockhashSource interface {
	LatestBlockhash(ctx context.Context) (solana.Hash, error)
}

// nowFn is the clock tip-recipient rotation reads, held in a package
// variable as in internal/builder/clock.go.
var nowFn = time.Now
