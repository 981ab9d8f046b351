package ledger

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/google/uuid"
	"github.com/hashgraph-online/move-sdk-go/pkg/account"
	"github.com/hashgraph-online/move-sdk-go/pkg/shared"
	"go.uber.org/zap"
)

type Config struct {
	Network    string
	BaseURL    string
	HTTPClient *http.Client
	APIKey     string
	Headers    map[string]string
	Logger     *zap.Logger
}

// Client talks to the REST API of a Move ledger node.
type Client struct {
	baseURL    string
	httpClient *http.Client
	apiKey     string
	headers    map[string]string
	logger     *zap.Logger
}

// NewClient creates a new Client. BaseURL defaults to the node URL of
// Network and must include the API version path.
func NewClient(config Config) (*Client, error) {
	endpoints, err := shared.EndpointsFor(config.Network)
	if err != nil {
		return nil, err
	}

	baseURL := strings.TrimRight(strings.TrimSpace(config.BaseURL), "/")
	if baseURL == "" {
		baseURL = endpoints.NodeURL
	}
	if err := shared.ValidateBaseURL(baseURL); err != nil {
		return nil, fmt.Errorf("invalid node base URL: %w", err)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	headers := map[string]string{}
	for key, value := range config.Headers {
		headers[key] = value
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		apiKey:     strings.TrimSpace(config.APIKey),
		headers:    headers,
		logger:     shared.ResolveLogger(config.Logger),
	}, nil
}

// BaseURL returns the node URL requests are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// LedgerInfo returns the node's view of the chain, including its chain id.
func (c *Client) LedgerInfo(ctx context.Context) (LedgerInfo, error) {
	var info LedgerInfo
	err := c.do(ctx, "get ledger info", http.MethodGet, "/", "", nil, &info)
	return info, err
}

// Account returns the account's sequence number and authentication key.
// A missing account is an *APIError with status 404.
func (c *Client) Account(ctx context.Context, address account.Address) (AccountInfo, error) {
	var info AccountInfo
	path := fmt.Sprintf("/accounts/%s", address.StringLong())
	err := c.do(ctx, "get account", http.MethodGet, path, "", nil, &info)
	return info, err
}

// AccountResource returns one resource stored under address.
func (c *Client) AccountResource(ctx context.Context, address account.Address, resourceType string) (Resource, error) {
	var resource Resource
	if strings.TrimSpace(resourceType) == "" {
		return resource, fmt.Errorf("resource type is required")
	}
	path := fmt.Sprintf("/accounts/%s/resource/%s", address.StringLong(), url.PathEscape(resourceType))
	err := c.do(ctx, "get account resource", http.MethodGet, path, "", nil, &resource)
	return resource, err
}

// SubmitTransaction posts a BCS-encoded signed transaction. The node
// replies 202 once it has accepted the transaction into its mempool.
func (c *Client) SubmitTransaction(ctx context.Context, signedTransaction []byte) (PendingTransaction, error) {
	var pending PendingTransaction
	if len(signedTransaction) == 0 {
		return pending, fmt.Errorf("signed transaction is required")
	}
	err := c.do(
		ctx,
		"submit transaction",
		http.MethodPost,
		"/transactions",
		ContentTypeSignedTransaction,
		signedTransaction,
		&pending,
	)
	return pending, err
}

// TransactionByHash returns the transaction view for hash. Unknown hashes
// are an *APIError with status 404.
func (c *Client) TransactionByHash(ctx context.Context, hash string) (Transaction, error) {
	var transaction Transaction
	normalized := strings.TrimSpace(hash)
	if normalized == "" {
		return transaction, fmt.Errorf("transaction hash is required")
	}
	path := fmt.Sprintf("/transactions/by_hash/%s", normalized)
	err := c.do(ctx, "get transaction", http.MethodGet, path, "", nil, &transaction)
	return transaction, err
}

func (c *Client) do(
	ctx context.Context,
	operation string,
	method string,
	path string,
	contentType string,
	body []byte,
	target any,
) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	request, err := http.NewRequestWithContext(ctx, method, c.resolveURL(path), reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	request.Header.Set("Accept", "application/json")
	request.Header.Set("Accept-Encoding", "br, gzip")
	request.Header.Set("X-Request-ID", requestID)
	if contentType != "" {
		request.Header.Set("Content-Type", contentType)
	}
	if c.apiKey != "" {
		request.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	}
	for key, value := range c.headers {
		request.Header.Set(key, value)
	}

	c.logger.Debug("ledger request",
		zap.String("operation", operation),
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
	)

	response, err := c.httpClient.Do(request)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return &TransportError{Operation: operation, Err: err}
	}
	defer response.Body.Close()

	payload, err := readBody(response)
	if err != nil {
		return &TransportError{Operation: operation, StatusCode: response.StatusCode, Err: err}
	}

	switch {
	case response.StatusCode >= 500:
		return &TransportError{
			Operation:  operation,
			StatusCode: response.StatusCode,
			Err:        fmt.Errorf("%s", strings.TrimSpace(string(payload))),
		}
	case response.StatusCode >= 400:
		return decodeAPIError(operation, response.StatusCode, payload)
	case response.StatusCode < 200 || response.StatusCode >= 300:
		return &TransportError{
			Operation:  operation,
			StatusCode: response.StatusCode,
			Err:        fmt.Errorf("unexpected status"),
		}
	}

	if target == nil {
		return nil
	}
	if err := json.Unmarshal(payload, target); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", operation, err)
	}
	return nil
}

func (c *Client) resolveURL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if path == "/" {
		return c.baseURL
	}
	return c.baseURL + path
}

// readBody reads the response, undoing any content encoding the node
// applied in reply to Accept-Encoding.
func readBody(response *http.Response) ([]byte, error) {
	var reader io.Reader = response.Body
	switch strings.ToLower(strings.TrimSpace(response.Header.Get("Content-Encoding"))) {
	case "br":
		reader = brotli.NewReader(response.Body)
	case "gzip":
		gzipReader, err := gzip.NewReader(response.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip response: %w", err)
		}
		defer gzipReader.Close()
		reader = gzipReader
	}
	return io.ReadAll(reader)
}

func decodeAPIError(operation string, statusCode int, payload []byte) error {
	apiErr := &APIError{Operation: operation, StatusCode: statusCode}
	var decoded errorResponse
	if err := json.Unmarshal(payload, &decoded); err == nil {
		apiErr.Message = decoded.Message
		apiErr.ErrorCode = decoded.ErrorCode
		apiErr.VMErrorCode = decoded.VMErrorCode
	} else {
		apiErr.Message = strings.TrimSpace(string(payload))
	}
	return apiErr
}
