package faucet

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashgraph-online/move-sdk-go/pkg/account"
	"github.com/hashgraph-online/move-sdk-go/pkg/shared"
	"github.com/hashgraph-online/move-sdk-go/pkg/transaction"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Client requests test funds from a network faucet.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	tracker     *transaction.Tracker
	logger      *zap.Logger
	concurrency int
	timeout     time.Duration
}

// NewClient creates a new faucet client. BaseURL defaults to the faucet of
// Network; networks without a faucet require an explicit BaseURL.
func NewClient(config Config) (*Client, error) {
	if config.Tracker == nil {
		return nil, fmt.Errorf("tracker is required")
	}
	endpoints, err := shared.EndpointsFor(config.Network)
	if err != nil {
		return nil, err
	}

	baseURL := strings.TrimRight(strings.TrimSpace(config.BaseURL), "/")
	if baseURL == "" {
		baseURL = endpoints.FaucetURL
	}
	if baseURL == "" {
		return nil, fmt.Errorf("network %q has no faucet", config.Network)
	}
	if err := shared.ValidateBaseURL(baseURL); err != nil {
		return nil, fmt.Errorf("invalid faucet base URL: %w", err)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	concurrency := config.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	return &Client{
		baseURL:     baseURL,
		httpClient:  httpClient,
		tracker:     config.Tracker,
		logger:      shared.ResolveLogger(config.Logger),
		concurrency: concurrency,
		timeout:     config.ConfirmationTimeout,
	}, nil
}

// BaseURL returns the faucet URL.
func (client *Client) BaseURL() string {
	return client.baseURL
}

// Fund asks the faucet to credit amount to address and waits until every
// transaction the faucet reports has committed. The faucet creates the
// account when it does not exist yet.
func (client *Client) Fund(ctx context.Context, address account.Address, amount uint64) ([]transaction.Receipt, error) {
	fail := func(statusCode int, err error) ([]transaction.Receipt, error) {
		return nil, &FundingError{Address: address, Amount: amount, StatusCode: statusCode, Err: err}
	}

	hashes, statusCode, err := client.requestMint(ctx, address, amount)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return fail(statusCode, err)
	}

	receipts := make([]transaction.Receipt, 0, len(hashes))
	for _, hash := range hashes {
		receipt, err := client.tracker.Wait(ctx, hash, client.timeout)
		if err != nil {
			if ctx.Err() != nil {
				return receipts, ctx.Err()
			}
			return fail(0, fmt.Errorf("faucet transaction %s: %w", hash, err))
		}
		receipts = append(receipts, receipt)
	}

	client.logger.Info("funded account",
		zap.Stringer("address", address),
		zap.Uint64("amount", amount),
		zap.Int("transactions", len(receipts)),
	)
	return receipts, nil
}

// FundMany runs every request concurrently, at most Concurrency at a time.
// A failed request does not cancel the others. Results are in request
// order; use Failed to collect the failures.
func (client *Client) FundMany(ctx context.Context, requests []Request) []Result {
	results := make([]Result, len(requests))

	group := new(errgroup.Group)
	group.SetLimit(client.concurrency)
	for index, request := range requests {
		group.Go(func() error {
			receipts, err := client.Fund(ctx, request.Address, request.Amount)
			results[index] = Result{Request: request, Receipts: receipts, Err: err}
			return nil
		})
	}
	_ = group.Wait()

	return results
}

func (client *Client) requestMint(ctx context.Context, address account.Address, amount uint64) ([]string, int, error) {
	query := url.Values{}
	query.Set("amount", strconv.FormatUint(amount, 10))
	query.Set("address", address.StringLong())
	endpoint := client.baseURL + "/mint?" + query.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	requestID := uuid.NewString()
	request.Header.Set("Accept", "application/json")
	request.Header.Set("X-Request-ID", requestID)

	client.logger.Debug("faucet request",
		zap.Stringer("address", address),
		zap.Uint64("amount", amount),
		zap.String("request_id", requestID),
	)

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, 0, err
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, response.StatusCode, fmt.Errorf("failed to read faucet response: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		message := strings.TrimSpace(string(body))
		if message == "" {
			message = http.StatusText(response.StatusCode)
		}
		return nil, response.StatusCode, fmt.Errorf("%s", message)
	}

	var hashes []string
	if err := json.Unmarshal(body, &hashes); err != nil {
		return nil, response.StatusCode, fmt.Errorf("failed to decode faucet response: %w", err)
	}
	return hashes, response.StatusCode, nil
}
