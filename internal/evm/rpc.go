// Package evm talks JSON-RPC 2.0 to an EVM ledger endpoint and handles
// account-address validation. The client issues single-shot calls;
// retry policy belongs to the caller.
package evm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// DefaultTimeout bounds a single HTTP round trip.
const DefaultTimeout = 30 * time.Second

// ErrConnectionUnavailable is returned when the endpoint fails the
// liveness probe. Connecting is never retried.
var ErrConnectionUnavailable = errors.New("ledger endpoint unavailable")

// Client is the read-only ledger surface the pipeline needs.
type Client interface {
	// ChainID returns the endpoint's reported chain identifier.
	ChainID(ctx context.Context) (uint64, error)

	// CallContract executes a read-only contract call against to and
	// returns the raw ABI-encoded result.
	CallContract(ctx context.Context, to string, data []byte) ([]byte, error)
}

// HTTPClient implements Client using HTTP JSON-RPC 2.0.
type HTTPClient struct {
	endpoint  string
	client    *http.Client
	requestID atomic.Uint64
}

// ClientOption configures HTTPClient.
type ClientOption func(*HTTPClient)

// WithTimeout sets HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *HTTPClient) {
		c.client.Timeout = d
	}
}

// WithHTTPClient sets custom http.Client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *HTTPClient) {
		c.client = client
	}
}

// NewHTTPClient creates a ledger RPC client without probing the endpoint.
func NewHTTPClient(endpoint string, opts ...ClientOption) *HTTPClient {
	c := &HTTPClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Dial creates a client and probes endpoint liveness with a single
// eth_chainId call. An endpoint that cannot answer the probe fails fast
// with ErrConnectionUnavailable.
func Dial(ctx context.Context, endpoint string, opts ...ClientOption) (*HTTPClient, error) {
	c := NewHTTPClient(endpoint, opts...)
	if _, err := c.ChainID(ctx); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConnectionUnavailable, endpoint, err)
	}
	return c, nil
}

// rpcRequest represents a JSON-RPC 2.0 request.
type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      uint64        `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params,omitempty"`
}

// rpcResponse represents a JSON-RPC 2.0 response.
type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

// rpcError represents a JSON-RPC 2.0 error.
type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("RPC error %d: %s", e.Code, e.Message)
}

// call performs a single JSON-RPC round trip.
func (c *HTTPClient) call(ctx context.Context, method string, params []interface{}, result interface{}) error {
	reqBody := rpcRequest{
		JSONRPC: "2.0",
		ID:      c.requestID.Add(1),
		Method:  method,
		Params:  params,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}

	respBody, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(respBody, &rpcResp); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	if rpcResp.Error != nil {
		return rpcResp.Error
	}

	if result != nil && rpcResp.Result != nil {
		if err := json.Unmarshal(rpcResp.Result, result); err != nil {
			return fmt.Errorf("unmarshal result: %w", err)
		}
	}

	return nil
}

// ChainID retrieves the endpoint's chain identifier.
func (c *HTTPClient) ChainID(ctx context.Context) (uint64, error) {
	var result string
	if err := c.call(ctx, "eth_chainId", nil, &result); err != nil {
		return 0, err
	}
	id, err := hexutil.DecodeUint64(result)
	if err != nil {
		return 0, fmt.Errorf("decode chain id %q: %w", result, err)
	}
	return id, nil
}

// CallContract executes eth_call against to at the latest block.
func (c *HTTPClient) CallContract(ctx context.Context, to string, data []byte) ([]byte, error) {
	params := []interface{}{
		map[string]interface{}{
			"to":   to,
			"data": hexutil.Encode(data),
		},
		"latest",
	}

	var result string
	if err := c.call(ctx, "eth_call", params, &result); err != nil {
		return nil, err
	}

	out, err := hexutil.Decode(result)
	if err != nil {
		return nil, fmt.Errorf("decode call result %q: %w", result, err)
	}
	return out, nil
}
