package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/copytrader/engine/internal/errs"
	"github.com/copytrader/engine/internal/venue"
)

// TrackedWalletConfig is the on-disk shape of one spec §6 tracked_wallets
// entry, decoded straight off JSON before being folded into venue.WalletConfig.
type TrackedWalletConfig struct {
	Label        string  `json:"label"`
	Address      string  `json:"address"`
	Enabled      bool    `json:"enabled"`
	SolGate      float64 `json:"sol_gate"`
	BuyAmountSol float64 `json:"buy_amount_sol"`
}

// FreshMintCacheConfig is the supplemental cache-sizing block spec §6 names
// but leaves unelaborated; LoadConfig fills in the defaults of
// original_source/src/config/settings.rs (max_blocks_buffer=150,
// cleanup_interval_seconds=30) when the file leaves them unset.
type FreshMintCacheConfig struct {
	Enabled                   bool `json:"enabled"`
	MaxBlocksBuffer           int  `json:"max_blocks_buffer"`
	MaxCacheSize              int  `json:"max_cache_size"`
	CleanupIntervalSeconds    int  `json:"cleanup_interval_seconds"`
	EmergencyPurgeThresholdMB int  `json:"emergency_purge_threshold_mb"`
}

// Config is the typed decode of spec §6's configuration file. The core
// packages (C1-C10) never read this file themselves; they are handed the
// narrower Settings types this harness derives from it.
type Config struct {
	RPCURL                 string                `json:"rpc_url"`
	FallbackRPCURL         string                `json:"fallback_rpc_url"`
	RelayerURL             string                `json:"relayer_url"`
	GeyserURL              string                `json:"geyser_url"`
	GeyserToken            string                `json:"geyser_token"`
	WalletsFile            string                `json:"wallets_file"`
	ActiveWallet           string                `json:"active_wallet"`
	Jito                   bool                  `json:"jito"`
	TrackedWallets         []TrackedWalletConfig `json:"tracked_wallets"`
	BuySlippagePercent     float64               `json:"buy_slippage_percent"`
	BuyBribeSol            float64               `json:"buy_bribe_sol"`
	BuyPriorityFeeSol      float64               `json:"buy_priority_fee_sol"`
	SellAmountPercent      float64               `json:"sell_amount_percent"`
	SellMinSolOut          float64               `json:"sell_min_sol_out"`
	SellSlippagePercent    float64               `json:"sell_slippage_percent"`
	SellBribeSol           float64               `json:"sell_bribe_sol"`
	SellPriorityFeeSol     float64               `json:"sell_priority_fee_sol"`
	TakeProfitPercent      float64               `json:"take_profit_percent"`
	TakeProfitSellFraction float64               `json:"take_profit_sell_fraction"`
	FreshMintCache         FreshMintCacheConfig  `json:"fresh_mint_cache"`
}

// LoadConfig reads and validates the configuration file at path. Every
// failure is an errs.KindConfig error, fatal at startup per spec §7.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.New(errs.KindConfig, "", "", "", fmt.Errorf("read config %s: %w", path, err))
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errs.New(errs.KindConfig, "", "", "", fmt.Errorf("parse config %s: %w", path, err))
	}

	if cfg.RPCURL == "" {
		return nil, errs.New(errs.KindConfig, "", "", "", fmt.Errorf("rpc_url is required"))
	}
	if cfg.WalletsFile == "" {
		return nil, errs.New(errs.KindConfig, "", "", "", fmt.Errorf("wallets_file is required"))
	}
	if cfg.ActiveWallet == "" {
		return nil, errs.New(errs.KindConfig, "", "", "", fmt.Errorf("active_wallet is required"))
	}
	if len(cfg.TrackedWallets) == 0 {
		return nil, errs.New(errs.KindConfig, "", "", "", fmt.Errorf("tracked_wallets must not be empty"))
	}

	if cfg.FreshMintCache.MaxBlocksBuffer == 0 {
		cfg.FreshMintCache.MaxBlocksBuffer = 150
	}
	if cfg.FreshMintCache.CleanupIntervalSeconds == 0 {
		cfg.FreshMintCache.CleanupIntervalSeconds = 30
	}

	return &cfg, nil
}

// WalletSettingsMap folds the config's tracked_wallets list into the
// map[label]venue.WalletConfig shape strategy.Settings expects.
func (c *Config) WalletSettingsMap() map[string]venue.WalletConfig {
	out := make(map[string]venue.WalletConfig, len(c.TrackedWallets))
	for _, w := range c.TrackedWallets {
		if !w.Enabled {
			continue
		}
		out[w.Label] = venue.WalletConfig{
			Label:        w.Label,
			Address:      w.Address,
			Enabled:      w.Enabled,
			SolGate:      w.SolGate,
			BuyAmountSol: w.BuyAmountSol,
		}
	}
	return out
}

// TrackedAddresses returns the chain addresses of every enabled tracked
// wallet, for wiring the stream subscription's account_include filter.
func (c *Config) TrackedAddresses() []string {
	out := make([]string, 0, len(c.TrackedWallets))
	for _, w := range c.TrackedWallets {
		if w.Enabled {
			out = append(out, w.Address)
		}
	}
	return out
}
