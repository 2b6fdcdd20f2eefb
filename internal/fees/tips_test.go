package fees

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPickRecipientDeterministic(t *testing.T) {
	now := time.Unix(1_700_000_000, 123456789)
	a := PickRecipient(BundleTipRecipients, now)
	b := PickRecipient(BundleTipRecipients, now)
	require.Equal(t, a, b, "same instant must pick the same recipient")
}

func TestPickRecipientWithinPool(t *testing.T) {
	now := time.Unix(1_700_000_001, 0)
	got := PickRecipient(FastTipRecipients, now)
	var found bool
	for _, r := range FastTipRecipients {
		if r.Equals(got) {
			found = true
			break
		}
	}
	require.True(t, found, "picked recipient must come from the supplied pool")
}

func TestSelectTipRecipientPoolChoice(t *testing.T) {
	now := time.Unix(1_700_000_002, 0)
	bundle := SelectTipRecipient(true, now)
	fast := SelectTipRecipient(false, now)

	var inBundle, inFast bool
	for _, r := range BundleTipRecipients {
		if r.Equals(bundle) {
			inBundle = true
		}
	}
	for _, r := range FastTipRecipients {
		if r.Equals(fast) {
			inFast = true
		}
	}
	require.True(t, inBundle)
	require.True(t, inFast)
}
