package xrp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/sony/gobreaker"
)

// CallRecorder receives one observation per node call, retries included.
type CallRecorder interface {
	RecordNodeCall(method string, success bool, duration time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) RecordNodeCall(string, bool, time.Duration) {}

// Client implements the ledger node gateway using rippled JSON-RPC
type Client struct {
	rpcURL     string
	username   string
	password   string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	attempts   uint
	retryDelay time.Duration
	recorder   CallRecorder
}

// Option configures a Client.
type Option func(*Client)

// WithBasicAuth enables HTTP basic authentication for JSON-RPC calls.
func WithBasicAuth(username, password string) Option {
	return func(c *Client) {
		c.username = username
		c.password = password
	}
}

// WithTimeout overrides the per-request HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithRetry sets how many times idempotent calls are attempted on transport failures.
func WithRetry(attempts uint, delay time.Duration) Option {
	return func(c *Client) {
		if attempts == 0 {
			attempts = 1
		}
		c.attempts = attempts
		c.retryDelay = delay
	}
}

// WithCallRecorder plugs a metrics sink.
func WithCallRecorder(recorder CallRecorder) Option {
	return func(c *Client) {
		if recorder != nil {
			c.recorder = recorder
		}
	}
}

// NewClient creates a new XRPL client with the given RPC URL
func NewClient(rpcURL string, opts ...Option) *Client {
	c := &Client{
		rpcURL: rpcURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		attempts:   3,
		retryDelay: 200 * time.Millisecond,
		recorder:   nopRecorder{},
	}
	for _, opt := range opts {
		opt(c)
	}

	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "xrpl-node",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// the node answered, so the connection is fine even if the request was rejected
		IsSuccessful: func(err error) bool {
			var nodeErr *NodeError
			return err == nil || errors.As(err, &nodeErr)
		},
	})

	return c
}

// NodeError is an error reported by rippled inside a well-formed response.
type NodeError struct {
	Method  string
	Code    string
	Message string
}

func (e *NodeError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("xrp: %s: node error %s", e.Method, e.Code)
	}
	return fmt.Sprintf("xrp: %s: node error %s - %s", e.Method, e.Code, e.Message)
}

// IsNodeError reports whether err carries a node error with the given code.
func IsNodeError(err error, code string) bool {
	var nodeErr *NodeError
	return errors.As(err, &nodeErr) && nodeErr.Code == code
}

// HTTPStatusError is returned when the node answers with a non-200 status.
type HTTPStatusError struct {
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("xrp: unexpected status code: %d", e.StatusCode)
}

// gatewayError marks every failed node call, whether the node or the transport failed.
type gatewayError struct {
	err error
}

func (e *gatewayError) Error() string {
	return e.err.Error()
}

func (e *gatewayError) Unwrap() error {
	return e.err
}

// IsGatewayError reports whether err originates from a node call.
func IsGatewayError(err error) bool {
	var gwErr *gatewayError
	return errors.As(err, &gwErr)
}

func isTransient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return false
	}
	var nodeErr *NodeError
	if errors.As(err, &nodeErr) {
		return false
	}
	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= http.StatusInternalServerError
	}
	var syntaxErr *json.SyntaxError
	return !errors.As(err, &syntaxErr)
}

// call performs a JSON-RPC request, retrying transport failures of idempotent methods.
func (c *Client) call(ctx context.Context, method string, params any, out statusCarrier, idempotent bool) error {
	attempts := uint(1)
	if idempotent {
		attempts = c.attempts
	}

	start := time.Now()
	err := retry.Do(
		func() error {
			_, er := c.breaker.Execute(func() (interface{}, error) {
				return nil, c.post(ctx, method, params, out)
			})
			return er
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(c.retryDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isTransient),
	)

	var nodeErr *NodeError
	c.recorder.RecordNodeCall(method, err == nil || errors.As(err, &nodeErr), time.Since(start))

	if err != nil {
		return &gatewayError{err: err}
	}
	return nil
}

func (c *Client) post(ctx context.Context, method string, params any, out statusCarrier) error {
	reqBody := rpcRequest{
		Method:  method,
		Params:  []any{params},
		ID:      1,
		JSONRPC: "2.0",
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("xrp: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.rpcURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("xrp: failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("xrp: failed to make request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return &HTTPStatusError{StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(&rpcResponse{Result: out}); err != nil {
		return fmt.Errorf("xrp: failed to decode %s response: %w", method, err)
	}

	st := out.status()
	if st.Error != "" || st.Status == "error" {
		return &NodeError{
			Method:  method,
			Code:    st.Error,
			Message: st.ErrorMessage,
		}
	}

	return nil
}

// AccountInfo fetches the validated AccountRoot of address. A missing account is
// reported with Found == false.
func (c *Client) AccountInfo(ctx context.Context, address string) (*AccountInfo, error) {
	var res accountInfoResult
	err := c.call(ctx, "account_info", accountParams{
		Account:     address,
		LedgerIndex: "validated",
		Strict:      true,
	}, &res, true)
	if err != nil {
		if IsNodeError(err, ErrCodeAccountNotFound) {
			return &AccountInfo{Address: address}, nil
		}
		return nil, fmt.Errorf("xrp: failed to get account info: %w", err)
	}

	return &AccountInfo{
		Address:  address,
		Found:    true,
		Balance:  res.AccountData.Balance,
		Flags:    res.AccountData.Flags,
		Sequence: res.AccountData.Sequence,
	}, nil
}

// AccountLines fetches the trust lines of address.
func (c *Client) AccountLines(ctx context.Context, address string) (*AccountLines, error) {
	var res accountLinesResult
	err := c.call(ctx, "account_lines", accountParams{
		Account:     address,
		LedgerIndex: "validated",
	}, &res, true)
	if err != nil {
		if IsNodeError(err, ErrCodeAccountNotFound) {
			return &AccountLines{Address: address}, nil
		}
		return nil, fmt.Errorf("xrp: failed to get account lines: %w", err)
	}

	return &AccountLines{
		Address: address,
		Found:   true,
		Lines:   res.Lines,
	}, nil
}

// ServerState fetches the node state including load and last ledgers.
func (c *Client) ServerState(ctx context.Context) (*ServerState, error) {
	var res serverStateResult
	err := c.call(ctx, "server_state", emptyParams{}, &res, true)
	if err != nil {
		return nil, fmt.Errorf("xrp: failed to get server state: %w", err)
	}
	return &res.State, nil
}

// Tx looks a transaction up by hash. An unknown hash is reported with Found == false.
func (c *Client) Tx(ctx context.Context, hash string) (*TxResult, error) {
	var res txResult
	err := c.call(ctx, "tx", txParams{Transaction: hash}, &res, true)
	if err != nil {
		if IsNodeError(err, ErrCodeTxNotFound) {
			return &TxResult{Hash: hash}, nil
		}
		return nil, fmt.Errorf("xrp: failed to get transaction: %w", err)
	}

	return &TxResult{
		Hash:        hash,
		Found:       true,
		Validated:   res.Validated,
		LedgerIndex: res.LedgerIndex,
	}, nil
}

// Submit sends a signed transaction blob. It is attempted once.
func (c *Client) Submit(ctx context.Context, txBlob string) (*SubmitResult, error) {
	var res submitResult
	err := c.call(ctx, "submit", submitParams{TxBlob: txBlob}, &res, false)
	if err != nil {
		return nil, fmt.Errorf("xrp: failed to submit transaction: %w", err)
	}
	return &res.SubmitResult, nil
}
