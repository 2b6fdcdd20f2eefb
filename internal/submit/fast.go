package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// FastSubmitter posts a single already-composed, already-tipped transaction
// straight to an RPC endpoint's sendTransaction method. Grounded verbatim on
// original_source/src/submit/helius_fast.rs's JSON body
// (skipPreflight=true, maxRetries=0, encoding=base64) and its 5s client
// timeout; there is no ecosystem HTTP-client library anywhere in the
// examples pack (the original itself reaches for reqwest, Rust's
// stdlib-adjacent default), so net/http is the direct equivalent rather
// than a stdlib fallback of convenience.
type FastSubmitter struct {
	url    string
	client *http.Client
}

// NewFastSubmitter builds a FastSubmitter against url, with the 5s total
// timeout spec §4.9/§7 require for Submitter::submit.
func NewFastSubmitter(url string) *FastSubmitter {
	return &FastSubmitter{
		url:    url,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

type sendTransactionRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      string        `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type sendTransactionOpts struct {
	Encoding      string `json:"encoding"`
	SkipPreflight bool   `json:"skipPreflight"`
	MaxRetries    int    `json:"maxRetries"`
}

type jsonRPCResponse struct {
	Result string `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Submit posts payloadB64 to the fast RPC endpoint. tipLamports is ignored:
// the fast path never builds its own transaction, so there is nothing for
// it to tip beyond what the caller already baked into payloadB64.
func (f *FastSubmitter) Submit(ctx context.Context, payloadB64 string, tipLamports uint64, skipPreflight bool) (string, error) {
	body := sendTransactionRequest{
		JSONRPC: "2.0",
		ID:      "copytrader",
		Method:  "sendTransaction",
		Params: []interface{}{
			payloadB64,
			sendTransactionOpts{Encoding: "base64", SkipPreflight: skipPreflight, MaxRetries: 0},
		},
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("fast submit: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url, bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("fast submit: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fast submit: %w", err)
	}
	defer res.Body.Close()

	respBytes, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("fast submit: read response: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", fmt.Errorf("fast submit: HTTP %d: %s", res.StatusCode, string(respBytes))
	}

	var parsed jsonRPCResponse
	if err := json.Unmarshal(respBytes, &parsed); err != nil {
		return "", fmt.Errorf("fast submit: decode response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("fast submit: rpc error %d: %s", parsed.Error.Code, parsed.Error.Message)
	}
	if parsed.Result == "" {
		return "", fmt.Errorf("fast submit: missing result in response: %s", string(respBytes))
	}
	return parsed.Result, nil
}

// Ping keeps the connection warm by issuing a GET to the submitter's URL,
// whatever endpoint that is. It reports only transport errors; the
// response status is ignored. (The original pings only Helius's dedicated
// warming endpoint.)
func (f *FastSubmitter) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return fmt.Errorf("ping: build request: %w", err)
	}
	res, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	defer res.Body.Close()
	return nil
}
