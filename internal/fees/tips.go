package fees

import (
	"hash/fnv"
	"time"

	"github.com/gagliardetto/solana-go"
)

// Tip recipient pools. Spec §4.9/§6: "two hard-coded lists (one for bundle,
// one for fast) of 8 and N recipients respectively; next-recipient selection
// is rotation via a hash of SystemTime::now()". These are the well-known
// mainnet Jito tip-payment accounts (the same pool the teacher's
// pkg/sol/jito.go fetches dynamically via GetRandomTipAccount — here
// hard-coded per the spec's explicit no-RPC-on-hot-path contract).
var BundleTipRecipients = []solana.PublicKey{
	solana.MustPublicKeyFromBase58("96gYZGLnJYVFmbjzQQMRpuwohXbJNzv9FZ9j2gJ7B9nQ"),
	solana.MustPublicKeyFromBase58("HFqU5x63VTqvQss8hp11i4wVV8bD44PvwucfZ2bU7gRe"),
	solana.MustPublicKeyFromBase58("Cw8CFyM9FkoMi7K7Crf6HNQqf4uEMzpKw6QNghXLvLkY"),
	solana.MustPublicKeyFromBase58("ADaUMid9yfUytqMBgopwjb2DTLSokTSzL1zt6iGPaS49"),
	solana.MustPublicKeyFromBase58("DfXygSm4jCyNCybVYYK6DwvWqjKee8pbDmJGcLWNDXjh"),
	solana.MustPublicKeyFromBase58("ADuUkR4vqLUMWXxW9gH6tLy8VBVXKNo5lUMrFT1y5y4S"),
	solana.MustPublicKeyFromBase58("DttWaMuVvTiduZRnguLF7jNxTgiMBZ1hyAumKUiL2KRL"),
	solana.MustPublicKeyFromBase58("3AVi9Tg9Uo68tJfuvoKvqKNWKkC5wPdSSdeBnizKZ6jT"),
}

// FastTipRecipients is the rotation pool used when bundle-relay submission
// is disabled and the tip rides along in the fast RPC path instead.
var FastTipRecipients = []solana.PublicKey{
	solana.MustPublicKeyFromBase58("96gYZGLnJYVFmbjzQQMRpuwohXbJNzv9FZ9j2gJ7B9nQ"),
	solana.MustPublicKeyFromBase58("HFqU5x63VTqvQss8hp11i4wVV8bD44PvwucfZ2bU7gRe"),
	solana.MustPublicKeyFromBase58("Cw8CFyM9FkoMi7K7Crf6HNQqf4uEMzpKw6QNghXLvLkY"),
	solana.MustPublicKeyFromBase58("ADaUMid9yfUytqMBgopwjb2DTLSokTSzL1zt6iGPaS49"),
}

// PickRecipient rotates through pool by hashing the current instant, so
// concurrent builds spread load across the pool instead of hammering one
// recipient (spec §4.9 "round-robin via a hash of SystemTime::now()").
func PickRecipient(pool []solana.PublicKey, now time.Time) solana.PublicKey {
	h := fnv.New64a()
	var buf [8]byte
	nanos := uint64(now.UnixNano())
	for i := 0; i < 8; i++ {
		buf[i] = byte(nanos >> (8 * i))
	}
	h.Write(buf[:])
	idx := int(h.Sum64() % uint64(len(pool)))
	return pool[idx]
}

// SelectTipRecipient picks from the bundle pool when bundle-relay submission
// is enabled, the fast pool otherwise (spec §4.2's "selected from one of two
// rotating pools depending on whether bundle-relay is enabled").
func SelectTipRecipient(jitoEnabled bool, now time.Time) solana.PublicKey {
	if jitoEnabled {
		return PickRecipient(BundleTipRecipients, now)
	}
	return PickRecipient(FastTipRecipients, now)
}
