// Package streamfeed is the harness's example chain-stream transport: a
// websocket subscription to a Geyser/Helius-style transactionSubscribe feed
// that decodes balance movements into classifier.RawFill values. Spec §1
// scopes "the chain streaming transport itself" out of the core engine, so
// this package lives under cmd/copytrader, not internal/. Grounded on
// aman-zulfiqar-solana-swap-indexer's internal/stream/helius.go for the
// dial/subscribe/read-loop shape; the transactionSubscribe params mirror
// spec §6's "accounts (by address), transactions (by account_include)"
// filter description.
package streamfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/copytrader/engine/internal/classifier"
	"github.com/gagliardetto/solana-go"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Client holds one websocket connection to a transactionSubscribe-capable
// RPC provider.
type Client struct {
	url     string
	log     *zap.Logger
	conn    *websocket.Conn
	wallets map[string]string // chain address -> wallet label
}

// New builds a streamfeed client against url (e.g. a Helius Atlas
// wss:// endpoint), labeling fills by the tracked-wallet address they come
// from. wallets maps address -> label, the inverse of Config.TrackedWallets.
func New(url string, wallets map[string]string, log *zap.Logger) *Client {
	return &Client{url: url, wallets: wallets, log: log}
}

// Connect dials the feed and subscribes with an account_include filter
// covering every tracked wallet address, omitting commitment so fills are
// observed at the earliest possible level (spec §6).
func (c *Client) Connect(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return fmt.Errorf("streamfeed: dial %s: %w", c.url, err)
	}
	c.conn = conn

	addrs := make([]string, 0, len(c.wallets))
	for addr := range c.wallets {
		addrs = append(addrs, addr)
	}

	subscribeMsg := map[string]any{
		"jsonrpc": "2.0",
		"id":      "copytrader",
		"method":  "transactionSubscribe",
		"params": []any{
			map[string]any{"accountInclude": addrs},
			map[string]any{
				"encoding":                       "jsonParsed",
				"transactionDetails":             "full",
				"showRewards":                    false,
				"maxSupportedTransactionVersion": 0,
			},
		},
	}
	if err := conn.WriteJSON(subscribeMsg); err != nil {
		return fmt.Errorf("streamfeed: subscribe: %w", err)
	}
	c.log.Info("streamfeed connected", zap.String("url", c.url), zap.Int("tracked_wallets", len(addrs)))
	return nil
}

// Run reads messages until ctx is cancelled, decoding each into a RawFill
// and sending it to out. A read error is logged and, after a short backoff,
// the feed is redialed and resubscribed rather than terminating the loop,
// matching the original's reconnect-and-continue posture for a long-running
// feed.
func (c *Client) Run(ctx context.Context, out chan<- classifier.RawFill) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		var raw json.RawMessage
		if err := c.conn.ReadJSON(&raw); err != nil {
			c.log.Warn("streamfeed read error", zap.Error(err))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(5 * time.Second):
			}
			_ = c.conn.Close()
			if err := c.Connect(ctx); err != nil {
				c.log.Warn("streamfeed reconnect failed", zap.Error(err))
			}
			continue
		}

		fill, ok, err := c.parseMessage(raw)
		if err != nil {
			c.log.Warn("streamfeed decode error", zap.Error(err))
			continue
		}
		if !ok {
			continue
		}

		select {
		case out <- fill:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

type txSubscribeMessage struct {
	Params struct {
		Result struct {
			Value struct {
				Signature   string `json:"signature"`
				Transaction struct {
					Transaction struct {
						Message struct {
							AccountKeys  []string `json:"accountKeys"`
							Instructions []struct {
								ProgramID string `json:"programId"`
							} `json:"instructions"`
						} `json:"message"`
					} `json:"transaction"`
					Meta struct {
						PreBalances       []uint64       `json:"preBalances"`
						PostBalances      []uint64       `json:"postBalances"`
						PreTokenBalances  []tokenBalance `json:"preTokenBalances"`
						PostTokenBalances []tokenBalance `json:"postTokenBalances"`
					} `json:"meta"`
				} `json:"transaction"`
			} `json:"value"`
		} `json:"result"`
	} `json:"params"`
}

type tokenBalance struct {
	AccountIndex  int    `json:"accountIndex"`
	Owner         string `json:"owner"`
	Mint          string `json:"mint"`
	UiTokenAmount struct {
		Amount string `json:"amount"`
	} `json:"uiTokenAmount"`
}

// parseMessage decodes one transactionSubscribe notification into a
// RawFill for the first tracked wallet whose token balance moved in this
// transaction. ok is false for subscription-confirmation messages and
// transactions that touch none of our tracked wallets.
func (c *Client) parseMessage(raw json.RawMessage) (classifier.RawFill, bool, error) {
	var msg txSubscribeMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return classifier.RawFill{}, false, err
	}

	val := msg.Params.Result.Value
	accountKeys := val.Transaction.Transaction.Message.AccountKeys
	meta := val.Transaction.Meta

	for addr, label := range c.wallets {
		walletIdx := indexOf(accountKeys, addr)
		if walletIdx < 0 {
			continue
		}

		pre, preOK := findTokenBalance(meta.PreTokenBalances, addr)
		post, postOK := findTokenBalance(meta.PostTokenBalances, addr)
		if !preOK && !postOK {
			continue
		}

		preAmt := parseAmount(pre.UiTokenAmount.Amount)
		postAmt := parseAmount(post.UiTokenAmount.Amount)
		tokenDelta := int64(postAmt) - int64(preAmt)
		if tokenDelta == 0 {
			continue
		}

		mint := post.Mint
		if mint == "" {
			mint = pre.Mint
		}

		var lamportsDelta int64
		if walletIdx < len(meta.PreBalances) && walletIdx < len(meta.PostBalances) {
			lamportsDelta = int64(meta.PostBalances[walletIdx]) - int64(meta.PreBalances[walletIdx])
		}

		programIDs := make([]solana.PublicKey, 0, len(val.Transaction.Transaction.Message.Instructions))
		for _, ix := range val.Transaction.Transaction.Message.Instructions {
			if pk, err := solana.PublicKeyFromBase58(ix.ProgramID); err == nil {
				programIDs = append(programIDs, pk)
			}
		}

		return classifier.RawFill{
			WalletLabel:       label,
			Mint:              mint,
			TokenDelta:        tokenDelta,
			PreTokenBalance:   preAmt,
			LamportsDelta:     lamportsDelta,
			InvokedProgramIDs: programIDs,
		}, true, nil
	}

	return classifier.RawFill{}, false, nil
}

func indexOf(keys []string, target string) int {
	for i, k := range keys {
		if k == target {
			return i
		}
	}
	return -1
}

func findTokenBalance(balances []tokenBalance, owner string) (tokenBalance, bool) {
	for _, b := range balances {
		if b.Owner == owner {
			return b, true
		}
	}
	return tokenBalance{}, false
}

func parseAmount(s string) uint64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}
