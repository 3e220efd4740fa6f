package chain

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVerifier(t *testing.T, handler http.HandlerFunc) *RPCVerifier {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewRPCVerifier(server.URL)
}

func TestTransactionReceiptConfirmed(t *testing.T) {
	verifier := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "eth_getTransactionReceipt", req["method"])

		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":{"status":"0x1","blockNumber":"0x10","gasUsed":"0x5208"}}`))
	})

	receipt, err := verifier.TransactionReceipt(context.Background(), "0xabc")
	require.NoError(t, err)

	assert.True(t, receipt.Found)
	assert.True(t, receipt.Confirmed())
	assert.Equal(t, "0xabc", receipt.TxHash)
	assert.Equal(t, "0x10", receipt.BlockNumber)
}

func TestTransactionReceiptMissing(t *testing.T) {
	verifier := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":null}`))
	})

	receipt, err := verifier.TransactionReceipt(context.Background(), "0xmissing")
	require.NoError(t, err)

	assert.False(t, receipt.Found)
	assert.False(t, receipt.Confirmed())
}

func TestVerifyTransactionRevertedReceipt(t *testing.T) {
	verifier := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":{"status":"0x0"}}`))
	})

	verified, err := verifier.VerifyTransaction(context.Background(), "0xabc")
	require.NoError(t, err)
	assert.False(t, verified)
}

func TestTransactionReceiptRPCError(t *testing.T) {
	verifier := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"error":{"code":-32000,"message":"boom"}}`))
	})

	_, err := verifier.TransactionReceipt(context.Background(), "0xabc")
	assert.Error(t, err)
}

func TestTransactionReceiptNoURL(t *testing.T) {
	verifier := NewRPCVerifier("")
	_, err := verifier.TransactionReceipt(context.Background(), "0xabc")
	assert.Error(t, err)
}
