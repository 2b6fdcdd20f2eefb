package submit

import (
	"context"
	"fmt"
)

// Hybrid composes the bundle and fast paths under the jito_enabled policy
// (spec §4.9): bundle first when enabled, falling back to fast on any
// bundle-path error; fast-only when disabled. Grounded on
// original_source/src/submit/mod.rs's default() constructor (hybrid when
// jito_enabled, Helius-only otherwise) — hybrid.rs itself is an empty stub
// in the retrieved source, so the fallback sequence below is original to
// this port rather than a translation.
type Hybrid struct {
	bundle      Submitter
	fast        Submitter
	jitoEnabled bool
}

// NewHybrid wires a Hybrid submitter from any two Submitter implementations
// (accepting the interface, not *BundleSubmitter/*FastSubmitter directly,
// keeps this constructible against test doubles). bundle may be nil when
// jitoEnabled is false (no relay endpoint configured), in which case Submit
// always uses the fast path.
func NewHybrid(bundle Submitter, fast Submitter, jitoEnabled bool) *Hybrid {
	return &Hybrid{bundle: bundle, fast: fast, jitoEnabled: jitoEnabled}
}

// Submit tries the bundle path first when jito is enabled and wired; any
// bundle-path error (HTTP, timeout, or relay rejection) falls through to
// the fast path rather than failing the trade outright, matching spec
// §4.9's "Policy when jito_enabled=true: attempt bundle first; on error,
// fall back to fast path."
func (h *Hybrid) Submit(ctx context.Context, payloadB64 string, tipLamports uint64, skipPreflight bool) (string, error) {
	if h.jitoEnabled && h.bundle != nil {
		sig, err := h.bundle.Submit(ctx, payloadB64, tipLamports, skipPreflight)
		if err == nil {
			return sig, nil
		}
		fastSig, fastErr := h.fast.Submit(ctx, payloadB64, tipLamports, skipPreflight)
		if fastErr != nil {
			return "", fmt.Errorf("hybrid submit: bundle failed (%v), fast path also failed: %w", err, fastErr)
		}
		return fastSig, nil
	}
	return h.fast.Submit(ctx, payloadB64, tipLamports, skipPreflight)
}

// Ping keeps the fast path's connection warm; the bundle path has no
// warming endpoint (mirrors mod.rs's ping_connection only recognizing the
// fast leg of a HybridSubmitter).
func (h *Hybrid) Ping(ctx context.Context) error {
	return h.fast.Ping(ctx)
}
