// Package dedup implements the rapid-fire duplicate-buy guard (C5),
// grounded on original_source/src/tx/dedupe.rs. should_allow_buy only ever
// consults the pending map, never confirmed — confirmed entries exist so a
// caller can later clear() them after a 100% sell, not to block future buys.
package dedup

import (
	"sync"
	"time"
)

const PendingTimeout = 1000 * time.Millisecond

// Guard tracks pending and confirmed buys keyed by "{wallet}:{mint}".
type Guard struct {
	mu        sync.Mutex
	pending   map[string]time.Time
	confirmed map[string]struct{}
	now       func() time.Time
}

func NewGuard() *Guard {
	return &Guard{
		pending:   make(map[string]time.Time),
		confirmed: make(map[string]struct{}),
		now:       time.Now,
	}
}

func key(wallet, mint string) string { return wallet + ":" + mint }

// ShouldAllowBuy returns true unless a pending entry exists for (wallet,
// mint) whose age is <= 1000ms.
func (g *Guard) ShouldAllowBuy(wallet, mint string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	t, ok := g.pending[key(wallet, mint)]
	if !ok {
		return true
	}
	return g.now().Sub(t) > PendingTimeout
}

// MarkPendingBuy must be called immediately before submission.
func (g *Guard) MarkPendingBuy(wallet, mint string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pending[key(wallet, mint)] = g.now()
}

// ConfirmBuy moves a pending entry to confirmed on chain confirmation.
func (g *Guard) ConfirmBuy(wallet, mint string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	k := key(wallet, mint)
	delete(g.pending, k)
	g.confirmed[k] = struct{}{}
}

// RollbackPendingBuy removes a pending entry on submission failure, without
// touching confirmed.
func (g *Guard) RollbackPendingBuy(wallet, mint string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.pending, key(wallet, mint))
}

// Clear removes a key from both maps, called after a 100% sell.
func (g *Guard) Clear(wallet, mint string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	k := key(wallet, mint)
	delete(g.pending, k)
	delete(g.confirmed, k)
}

// CleanupOldPending drops pending entries older than the timeout.
func (g *Guard) CleanupOldPending() {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := g.now()
	for k, t := range g.pending {
		if now.Sub(t) > PendingTimeout {
			delete(g.pending, k)
		}
	}
}

// StartCleanupTask runs CleanupOldPending every 500ms until ctx-equivalent
// stop channel is closed.
func (g *Guard) StartCleanupTask(stop <-chan struct{}) {
	ticker := time.NewTicker(500 * time.Millisecond)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				g.CleanupOldPending()
			case <-stop:
				return
			}
		}
	}()
}
