// Package chain verifies proof transactions against an EVM JSON-RPC node.
package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Receipt is the confirmation detail for a transaction. Found is false when
// the node has no receipt, meaning the transaction is pending or unknown.
type Receipt struct {
	Found       bool   `json:"found"`
	Status      string `json:"status,omitempty"`
	BlockNumber string `json:"blockNumber,omitempty"`
	TxHash      string `json:"transactionHash"`
	GasUsed     string `json:"gasUsed,omitempty"`
}

// Confirmed reports whether the transaction landed successfully.
func (r *Receipt) Confirmed() bool {
	return r != nil && r.Found && r.Status == "0x1"
}

// Verifier reports whether a transaction hash is confirmed on chain.
type Verifier interface {
	VerifyTransaction(ctx context.Context, txHash string) (bool, error)
	TransactionReceipt(ctx context.Context, txHash string) (*Receipt, error)
}

// RPCVerifier checks transaction receipts over JSON-RPC.
type RPCVerifier struct {
	url        string
	httpClient *http.Client
}

func NewRPCVerifier(url string) *RPCVerifier {
	return &RPCVerifier{
		url: url,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
	ID      int           `json:"id"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type receiptResponse struct {
	Result *struct {
		Status      string `json:"status"`
		BlockNumber string `json:"blockNumber"`
		GasUsed     string `json:"gasUsed"`
	} `json:"result"`
	Error *rpcError `json:"error"`
}

// TransactionReceipt fetches the receipt for txHash via
// eth_getTransactionReceipt.
func (v *RPCVerifier) TransactionReceipt(ctx context.Context, txHash string) (*Receipt, error) {
	if v.url == "" {
		return nil, errors.New("chain rpc url is not configured")
	}

	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		Method:  "eth_getTransactionReceipt",
		Params:  []interface{}{txHash},
		ID:      1,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("rpc request failed with status %d", resp.StatusCode)
	}

	var decoded receiptResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, err
	}
	if decoded.Error != nil {
		return nil, fmt.Errorf("rpc error %d: %s", decoded.Error.Code, decoded.Error.Message)
	}
	if decoded.Result == nil {
		return &Receipt{Found: false, TxHash: txHash}, nil
	}
	return &Receipt{
		Found:       true,
		Status:      decoded.Result.Status,
		BlockNumber: decoded.Result.BlockNumber,
		TxHash:      txHash,
		GasUsed:     decoded.Result.GasUsed,
	}, nil
}

// VerifyTransaction reports whether txHash has a successful receipt. A
// missing receipt counts as unverified, not an error.
func (v *RPCVerifier) VerifyTransaction(ctx context.Context, txHash string) (bool, error) {
	receipt, err := v.TransactionReceipt(ctx, txHash)
	if err != nil {
		return false, err
	}
	return receipt.Confirmed(), nil
}
