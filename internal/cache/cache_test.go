package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenAmounts_CalculateSellAmountFloors(t *testing.T) {
	ta := NewTokenAmounts()
	ta.Store("wallet1", "mintA", 1_000_000)

	// floor(1_000_000 * 0.95) = 950_000 exactly, no rounding ambiguity here
	require.Equal(t, uint64(950_000), ta.CalculateSellAmount("wallet1", "mintA", 0.95))

	// a fraction chosen so round() and floor() would disagree
	ta.Store("wallet1", "mintB", 3)
	require.Equal(t, uint64(1), ta.CalculateSellAmount("wallet1", "mintB", 0.6)) // floor(1.8)=1, round(1.8)=2
}

func TestTokenAmounts_UnknownReturnsZero(t *testing.T) {
	ta := NewTokenAmounts()
	require.Equal(t, uint64(0), ta.CalculateSellAmount("nobody", "nothing", 0.5))
}

func TestTxPreBuildCache_Expiry(t *testing.T) {
	c := NewTxPreBuildCache()
	fakeNow := time.Now()
	c.now = func() time.Time { return fakeNow }

	c.CacheFreshMintTx("mintA", CachedTransaction{TransactionB64: "abc"})
	tx, ok := c.GetFreshMintTransaction("mintA")
	require.True(t, ok)
	require.Equal(t, "abc", tx.TransactionB64)

	fakeNow = fakeNow.Add(31 * time.Second)
	_, ok = c.GetFreshMintTransaction("mintA")
	require.False(t, ok, "fresh mint entry must expire after 30s")
}

func TestTxPreBuildCache_GeneralExpiry(t *testing.T) {
	c := NewTxPreBuildCache()
	fakeNow := time.Now()
	c.now = func() time.Time { return fakeNow }

	c.CacheGeneralTransaction("k", CachedTransaction{TransactionB64: "xyz"})
	fakeNow = fakeNow.Add(59 * time.Second)
	_, ok := c.GetGeneralTransaction("k")
	require.True(t, ok)

	fakeNow = fakeNow.Add(2 * time.Second)
	_, ok = c.GetGeneralTransaction("k")
	require.False(t, ok, "general entry must expire after 60s")
}
