package main

import (
	"testing"

	"github.com/copytrader/engine/internal/errs"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

func sampleWallets(t *testing.T) []WalletKeypairEntry {
	t.Helper()
	key, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	return []WalletKeypairEntry{
		{Name: "main", Address: key.PublicKey().String(), PrivateKeyBase58: key.String()},
		{Name: "backup", Address: "Addr2", PrivateKeyBase58: "not-a-real-key"},
	}
}

func TestLoadWalletsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	entries := sampleWallets(t)
	body := `[{"name":"` + entries[0].Name + `","address":"` + entries[0].Address + `","private_key_base58":"` + entries[0].PrivateKeyBase58 + `"}]`
	path := writeFile(t, dir, "wallets.json", body)

	loaded, err := LoadWallets(path)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	require.Equal(t, entries[0].Name, loaded[0].Name)
}

func TestLoadWalletsMissingFile(t *testing.T) {
	_, err := LoadWallets("does-not-exist.json")
	require.Error(t, err)
	require.True(t, errs.Is(err, errs.KindConfig))
}

func TestResolveActiveSignerFound(t *testing.T) {
	entries := sampleWallets(t)
	key, err := ResolveActiveSigner(entries, "main")
	require.NoError(t, err)
	require.Equal(t, entries[0].Address, key.PublicKey().String())
}

func TestResolveActiveSignerUnknownWallet(t *testing.T) {
	entries := sampleWallets(t)
	_, err := ResolveActiveSigner(entries, "ghost")
	require.Error(t, err)
	require.True(t, errs.Is(err, errs.KindConfig))
}

func TestResolveActiveSignerBadKey(t *testing.T) {
	entries := sampleWallets(t)
	_, err := ResolveActiveSigner(entries, "backup")
	require.Error(t, err)
	require.True(t, errs.Is(err, errs.KindConfig))
}
