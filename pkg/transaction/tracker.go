package transaction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/hashgraph-online/move-sdk-go/pkg/account"
	"github.com/hashgraph-online/move-sdk-go/pkg/ledger"
	"github.com/hashgraph-online/move-sdk-go/pkg/payload"
	"github.com/hashgraph-online/move-sdk-go/pkg/shared"
	"go.uber.org/zap"
)

const (
	DefaultPollInterval        = time.Second
	DefaultConfirmationTimeout = 20 * time.Second
)

var errStillPending = errors.New("transaction is still pending")

type TrackerConfig struct {
	Ledger       Ledger
	Logger       *zap.Logger
	Metrics      *Metrics
	PollInterval time.Duration
	Timeout      time.Duration
}

// Tracker waits for submitted transactions to reach a terminal status.
type Tracker struct {
	ledger       Ledger
	logger       *zap.Logger
	metrics      *Metrics
	pollInterval time.Duration
	timeout      time.Duration
}

// NewTracker creates a new Tracker.
func NewTracker(config TrackerConfig) (*Tracker, error) {
	if config.Ledger == nil {
		return nil, fmt.Errorf("ledger is required")
	}
	tracker := &Tracker{
		ledger:       config.Ledger,
		logger:       shared.ResolveLogger(config.Logger),
		metrics:      config.Metrics,
		pollInterval: config.PollInterval,
		timeout:      config.Timeout,
	}
	if tracker.pollInterval <= 0 {
		tracker.pollInterval = DefaultPollInterval
	}
	if tracker.timeout <= 0 {
		tracker.timeout = DefaultConfirmationTimeout
	}
	return tracker, nil
}

// Wait polls hash until it is committed, fails, or timeout elapses. A zero
// timeout uses the tracker default.
//
// A committed transaction returns its receipt. A committed but aborted
// transaction returns the failed receipt and an *ExecutionError. Reaching
// the deadline returns a *ConfirmationTimeoutError, which says nothing
// about whether the transaction will still commit. Missing transactions
// and transport errors are treated as still pending.
func (t *Tracker) Wait(ctx context.Context, hash string, timeout time.Duration) (Receipt, error) {
	hash = strings.TrimSpace(hash)
	if hash == "" {
		return Receipt{}, fmt.Errorf("transaction hash is required")
	}
	if timeout <= 0 {
		timeout = t.timeout
	}

	started := time.Now()
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	receipt := Receipt{Hash: hash, Status: StatusPending}
	poll := func() error {
		transaction, err := t.ledger.TransactionByHash(waitCtx, hash)
		if err != nil {
			if waitCtx.Err() != nil {
				return backoff.Permanent(waitCtx.Err())
			}
			if ledger.IsNotFound(err) || ledger.IsTransport(err) {
				return fmt.Errorf("%w: %v", errStillPending, err)
			}
			return backoff.Permanent(err)
		}
		current := receiptFromTransaction(hash, transaction)
		if !current.Status.Terminal() {
			return errStillPending
		}
		receipt = current
		return nil
	}
	notify := func(err error, next time.Duration) {
		t.logger.Debug("waiting for transaction",
			zap.String("hash", hash),
			zap.Duration("next_poll", next),
			zap.NamedError("last", err),
		)
	}

	policy := backoff.WithContext(backoff.NewConstantBackOff(t.pollInterval), waitCtx)
	err := backoff.RetryNotify(poll, policy, notify)
	elapsed := time.Since(started)

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return receipt, ctxErr
		}
		if waitCtx.Err() != nil {
			t.metrics.confirmation("timeout", elapsed)
			t.logger.Warn("transaction not confirmed before deadline",
				zap.String("hash", hash),
				zap.Duration("timeout", timeout),
			)
			return receipt, &ConfirmationTimeoutError{Hash: hash, Timeout: timeout}
		}
		return receipt, fmt.Errorf("failed to query transaction %s: %w", hash, err)
	}

	t.metrics.confirmation(string(receipt.Status), elapsed)
	if receipt.Status == StatusFailed {
		t.logger.Info("transaction failed",
			zap.String("hash", receipt.Hash),
			zap.String("vm_status", receipt.VMStatus),
		)
		return receipt, &ExecutionError{Receipt: receipt}
	}
	t.logger.Info("transaction committed",
		zap.String("hash", receipt.Hash),
		zap.Uint64("version", receipt.Version),
	)
	return receipt, nil
}

// SubmitAndWait submits p and waits for its outcome with the tracker's
// default timeout. On *ConfirmationTimeoutError the submitter's cached
// sequence number for acct is dropped, so the next submission reads it
// from the ledger again.
func SubmitAndWait(
	ctx context.Context,
	submitter *Submitter,
	tracker *Tracker,
	acct *account.Account,
	p payload.Payload,
) (Receipt, error) {
	hash, err := submitter.Submit(ctx, acct, p)
	if err != nil {
		return Receipt{}, err
	}
	receipt, err := tracker.Wait(ctx, hash, 0)
	var timeoutErr *ConfirmationTimeoutError
	if errors.As(err, &timeoutErr) {
		submitter.ResetSequence(acct.Address())
	}
	return receipt, err
}
