package submit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFastSubmitterSubmitSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body sendTransactionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "sendTransaction", body.Method)
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(jsonRPCResponse{Result: "SIG123"})
	}))
	defer srv.Close()

	f := NewFastSubmitter(srv.URL)
	sig, err := f.Submit(context.Background(), "base64payload", 0, true)
	require.NoError(t, err)
	require.Equal(t, "SIG123", sig)
}

func TestFastSubmitterSubmitHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer srv.Close()

	f := NewFastSubmitter(srv.URL)
	_, err := f.Submit(context.Background(), "base64payload", 0, true)
	require.Error(t, err)
}

func TestFastSubmitterSubmitMissingResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"jsonrpc": "2.0"})
	}))
	defer srv.Close()

	f := NewFastSubmitter(srv.URL)
	_, err := f.Submit(context.Background(), "base64payload", 0, true)
	require.Error(t, err)
}
