// Package position implements the durable per-mint position ledger (C6),
// grounded on original_source/src/positions/mod.rs. Persistence diverges
// from the original deliberately: spec §9 calls for write-then-rename so a
// reader never observes a torn or empty intermediate file.
package position

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/copytrader/engine/internal/venue"
)

// Manager holds every open position, keyed by mint, backed by a JSON file
// rewritten atomically on every mutation.
type Manager struct {
	mu        sync.Mutex
	positions map[string]venue.Position
	path      string
	now       func() time.Time
}

// Load reads positions from path, defaulting to an empty set if the file
// does not exist (matches the original's load() behavior).
func Load(path string) (*Manager, error) {
	m := &Manager{positions: make(map[string]venue.Position), path: path, now: time.Now}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return m, nil
		}
		return nil, fmt.Errorf("read positions file: %w", err)
	}
	if len(data) == 0 {
		return m, nil
	}
	var positions map[string]venue.Position
	if err := json.Unmarshal(data, &positions); err != nil {
		return nil, fmt.Errorf("parse positions file: %w", err)
	}
	m.positions = positions
	return m, nil
}

// persist writes the whole position map to a temp file in the same
// directory as m.path, then renames it over the target — an atomic
// operation on any POSIX filesystem, so a reader never observes a partial
// write or an empty file mid-mutation.
func (m *Manager) persist() error {
	data, err := json.MarshalIndent(m.positions, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal positions: %w", err)
	}
	dir := filepath.Dir(m.path)
	tmp, err := os.CreateTemp(dir, ".positions-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp positions file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp positions file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp positions file: %w", err)
	}
	if err := os.Rename(tmpPath, m.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp positions file: %w", err)
	}
	return nil
}

// RecordBuy adds qty units at cost costNative, creating the position if
// absent.
func (m *Manager) RecordBuy(mint string, qty uint64, costNative uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.positions[mint]
	if !ok {
		p = venue.Position{Mint: mint}
	}
	p.Balance += qty
	p.CostLamports += costNative
	p.UpdatedAt = m.now().UnixMilli()
	m.positions[mint] = p
	return m.persist()
}

// RecordSell reduces a position by qty units. If qty >= balance, the
// position is removed entirely (round-trip cost law). Otherwise balance and
// cost_lamports are reduced proportionally:
// cost' = round(cost_lamports * (1 - qty/balance)).
func (m *Manager) RecordSell(mint string, qty uint64, receivedNative uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.positions[mint]
	if !ok {
		return fmt.Errorf("no open position for mint %s", mint)
	}

	if qty >= p.Balance {
		delete(m.positions, mint)
		return m.persist()
	}

	pct := float64(qty) / float64(p.Balance)
	reduceCost := uint64(math.Round(float64(p.CostLamports) * pct))
	p.Balance -= qty
	p.CostLamports -= reduceCost
	p.UpdatedAt = m.now().UnixMilli()
	m.positions[mint] = p
	return m.persist()
}

// UpdatePrice sets the last observed price for a mint, if a position exists.
func (m *Manager) UpdatePrice(mint string, price float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.positions[mint]
	if !ok {
		return nil // no position to mark against; not an error
	}
	p.LastPrice = &price
	p.UpdatedAt = m.now().UnixMilli()
	m.positions[mint] = p
	return m.persist()
}

// Balance returns the current held balance for a mint, 0 if none.
func (m *Manager) Balance(mint string) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.positions[mint].Balance
}

// UnrealizedPct returns the position's unrealized P&L percentage, 0 if no
// position or no last price is recorded.
func (m *Manager) UnrealizedPct(mint string) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.positions[mint].UnrealizedPct()
}

// Get returns a copy of the position for a mint and whether it exists.
func (m *Manager) Get(mint string) (venue.Position, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.positions[mint]
	return p, ok
}
