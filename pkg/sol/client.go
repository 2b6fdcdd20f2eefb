package sol

import (
	"context"

	"github.com/gagliardetto/solana-go/rpc"
)

// Client represents a Solana client that makes rate-limited RPC calls
type Client struct {
	rpcClient   *rpc.Client
	rateLimiter *RateLimiter
}

// NewClient creates a new Solana client with custom rate limiting. Bundle
// submission no longer goes through this client (see internal/submit's
// BundleSubmitter, which owns its own jito-go-rpc client against the
// relay URL directly), so the constructor no longer takes a Jito endpoint.
func NewClient(ctx context.Context, endpoint string, reqLimitPerSecond int) (*Client, error) {
	return &Client{
		rpcClient:   rpc.New(endpoint),
		rateLimiter: NewRateLimiter(reqLimitPerSecond),
	}, nil
}
