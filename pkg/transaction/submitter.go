package transaction

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hashgraph-online/move-sdk-go/pkg/account"
	"github.com/hashgraph-online/move-sdk-go/pkg/ledger"
	"github.com/hashgraph-online/move-sdk-go/pkg/payload"
	"github.com/hashgraph-online/move-sdk-go/pkg/shared"
	"go.uber.org/zap"
)

const (
	DefaultMaxGasAmount         uint64 = 100_000
	DefaultGasUnitPrice         uint64 = 100
	DefaultExpirationTTL               = 600 * time.Second
	DefaultStaleSequenceRetries        = 1
)

// Ledger is the subset of the node API used to submit and confirm
// transactions. *ledger.Client implements it.
type Ledger interface {
	LedgerInfo(ctx context.Context) (ledger.LedgerInfo, error)
	Account(ctx context.Context, address account.Address) (ledger.AccountInfo, error)
	SubmitTransaction(ctx context.Context, signedTransaction []byte) (ledger.PendingTransaction, error)
	TransactionByHash(ctx context.Context, hash string) (ledger.Transaction, error)
}

// SubmitterConfig configures a Submitter. Zero values select the defaults;
// a negative StaleSequenceRetries disables the stale-sequence retry.
type SubmitterConfig struct {
	Ledger               Ledger
	Logger               *zap.Logger
	Metrics              *Metrics
	MaxGasAmount         uint64
	GasUnitPrice         uint64
	ExpirationTTL        time.Duration
	StaleSequenceRetries int
	Now                  func() time.Time
}

// Submitter signs and submits transactions. Submissions from the same
// account are serialized so each receives the next sequence number.
type Submitter struct {
	ledger        Ledger
	logger        *zap.Logger
	metrics       *Metrics
	maxGasAmount  uint64
	gasUnitPrice  uint64
	expirationTTL time.Duration
	staleRetries  int
	now           func() time.Time

	mu        sync.Mutex
	locks     map[account.Address]*sync.Mutex
	sequences map[account.Address]uint64
	chainID   *uint8
}

// NewSubmitter creates a new Submitter.
func NewSubmitter(config SubmitterConfig) (*Submitter, error) {
	if config.Ledger == nil {
		return nil, fmt.Errorf("ledger is required")
	}

	submitter := &Submitter{
		ledger:        config.Ledger,
		logger:        shared.ResolveLogger(config.Logger),
		metrics:       config.Metrics,
		maxGasAmount:  config.MaxGasAmount,
		gasUnitPrice:  config.GasUnitPrice,
		expirationTTL: config.ExpirationTTL,
		staleRetries:  config.StaleSequenceRetries,
		now:           config.Now,
		locks:         map[account.Address]*sync.Mutex{},
		sequences:     map[account.Address]uint64{},
	}
	if submitter.maxGasAmount == 0 {
		submitter.maxGasAmount = DefaultMaxGasAmount
	}
	if submitter.gasUnitPrice == 0 {
		submitter.gasUnitPrice = DefaultGasUnitPrice
	}
	if submitter.expirationTTL <= 0 {
		submitter.expirationTTL = DefaultExpirationTTL
	}
	if submitter.staleRetries == 0 {
		submitter.staleRetries = DefaultStaleSequenceRetries
	}
	if submitter.staleRetries < 0 {
		submitter.staleRetries = 0
	}
	if submitter.now == nil {
		submitter.now = time.Now
	}
	return submitter, nil
}

// Submit signs p with acct and submits it, returning the transaction hash
// once the node has accepted it. Acceptance is not confirmation; use a
// Tracker to wait for the outcome.
func (s *Submitter) Submit(ctx context.Context, acct *account.Account, p payload.Payload) (string, error) {
	if acct == nil {
		return "", fmt.Errorf("account is required")
	}
	sender := acct.Address()

	lock := s.lockFor(sender)
	lock.Lock()
	defer lock.Unlock()

	chainID, err := s.resolveChainID(ctx)
	if err != nil {
		return "", err
	}

	for attempt := 0; ; attempt++ {
		sequence, err := s.nextSequence(ctx, sender)
		if err != nil {
			return "", err
		}

		raw := RawTransaction{
			Sender:                  sender,
			SequenceNumber:          sequence,
			Payload:                 p,
			MaxGasAmount:            s.maxGasAmount,
			GasUnitPrice:            s.gasUnitPrice,
			ExpirationTimestampSecs: uint64(s.now().Add(s.expirationTTL).Unix()),
			ChainID:                 chainID,
		}
		signed, err := raw.Sign(acct)
		if err != nil {
			return "", fmt.Errorf("failed to sign transaction: %w", err)
		}
		encoded, err := signed.Bytes()
		if err != nil {
			return "", fmt.Errorf("failed to encode signed transaction: %w", err)
		}
		hash := HashBytes(encoded)

		s.logger.Debug("submitting transaction",
			zap.Stringer("sender", sender),
			zap.Uint64("sequence_number", sequence),
			zap.Stringer("payload", p),
			zap.String("hash", hash),
		)

		pending, err := s.ledger.SubmitTransaction(ctx, encoded)
		if err == nil {
			s.storeSequence(sender, sequence+1)
			s.metrics.submission(outcomeAccepted)
			if pending.Hash != "" && pending.Hash != hash {
				s.logger.Warn("node reported a different transaction hash",
					zap.String("local", hash),
					zap.String("node", pending.Hash),
				)
				hash = pending.Hash
			}
			return hash, nil
		}

		s.invalidateSequence(sender)

		var apiErr *ledger.APIError
		if !errors.As(err, &apiErr) {
			s.metrics.submission(outcomeTransport)
			return "", err
		}

		rejection := &SubmissionRejectedError{
			Sender:         sender,
			SequenceNumber: sequence,
			StatusCode:     apiErr.StatusCode,
			Message:        apiErr.Message,
			ErrorCode:      apiErr.ErrorCode,
			VMErrorCode:    apiErr.VMErrorCode,
			Err:            apiErr,
		}
		if !rejection.Stale() {
			s.metrics.submission(outcomeRejected)
			return "", rejection
		}

		s.metrics.submission(outcomeStale)
		if attempt >= s.staleRetries {
			return "", rejection
		}
		s.logger.Warn("stale sequence number, refreshing and resubmitting",
			zap.Stringer("sender", sender),
			zap.Uint64("sequence_number", sequence),
			zap.String("reason", rejection.Reason()),
		)
	}
}

// ResetSequence drops the cached sequence number of address so the next
// submission reads it from the ledger.
func (s *Submitter) ResetSequence(address account.Address) {
	s.invalidateSequence(address)
}

func (s *Submitter) lockFor(address account.Address) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[address]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[address] = lock
	}
	return lock
}

func (s *Submitter) resolveChainID(ctx context.Context) (uint8, error) {
	s.mu.Lock()
	cached := s.chainID
	s.mu.Unlock()
	if cached != nil {
		return *cached, nil
	}

	info, err := s.ledger.LedgerInfo(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read chain id: %w", err)
	}

	chainID := info.ChainID
	s.mu.Lock()
	s.chainID = &chainID
	s.mu.Unlock()
	return chainID, nil
}

func (s *Submitter) nextSequence(ctx context.Context, address account.Address) (uint64, error) {
	s.mu.Lock()
	sequence, ok := s.sequences[address]
	s.mu.Unlock()
	if ok {
		return sequence, nil
	}

	info, err := s.ledger.Account(ctx, address)
	if err != nil {
		return 0, fmt.Errorf("failed to read sequence number of %s: %w", address, err)
	}
	sequence, err = info.Sequence()
	if err != nil {
		return 0, fmt.Errorf("invalid sequence number %q for %s: %w", info.SequenceNumber, address, err)
	}
	s.storeSequence(address, sequence)
	return sequence, nil
}

func (s *Submitter) storeSequence(address account.Address, sequence uint64) {
	s.mu.Lock()
	s.sequences[address] = sequence
	s.mu.Unlock()
}

func (s *Submitter) invalidateSequence(address account.Address) {
	s.mu.Lock()
	delete(s.sequences, address)
	s.mu.Unlock()
}
