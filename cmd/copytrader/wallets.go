package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/copytrader/engine/internal/errs"
	"github.com/gagliardetto/solana-go"
)

// WalletKeypairEntry is one entry of spec §6's wallets file:
// [{name, address, private_key_base58}]. Grounded on
// original_source/src/config/settings.rs's WalletKeypair shape.
type WalletKeypairEntry struct {
	Name             string `json:"name"`
	Address          string `json:"address"`
	PrivateKeyBase58 string `json:"private_key_base58"`
}

// LoadWallets reads the wallets file at path.
func LoadWallets(path string) ([]WalletKeypairEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.New(errs.KindConfig, "", "", "", fmt.Errorf("read wallets file %s: %w", path, err))
	}
	var entries []WalletKeypairEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, errs.New(errs.KindConfig, "", "", "", fmt.Errorf("parse wallets file %s: %w", path, err))
	}
	return entries, nil
}

// ResolveActiveSigner finds the entry named active in entries and decodes
// its base58 private key. An unknown active_wallet is an errs.KindConfig
// error per spec §7's ConfigError taxonomy.
func ResolveActiveSigner(entries []WalletKeypairEntry, active string) (solana.PrivateKey, error) {
	for _, e := range entries {
		if e.Name == active {
			key, err := solana.PrivateKeyFromBase58(e.PrivateKeyBase58)
			if err != nil {
				return nil, errs.New(errs.KindConfig, "", "", "", fmt.Errorf("decode private key for wallet %q: %w", active, err))
			}
			return key, nil
		}
	}
	return nil, errs.New(errs.KindConfig, "", "", "", fmt.Errorf("active_wallet %q not found in wallets file", active))
}
