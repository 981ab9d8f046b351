package faucet

import (
	"net/http"
	"time"

	"github.com/hashgraph-online/move-sdk-go/pkg/account"
	"github.com/hashgraph-online/move-sdk-go/pkg/transaction"
	"go.uber.org/zap"
)

// DefaultConcurrency bounds the requests FundMany runs at once.
const DefaultConcurrency = 8

type Config struct {
	Network             string
	BaseURL             string
	HTTPClient          *http.Client
	Tracker             *transaction.Tracker
	Logger              *zap.Logger
	Concurrency         int
	ConfirmationTimeout time.Duration
}

// Request asks the faucet to credit Amount to Address.
type Request struct {
	Address account.Address
	Amount  uint64
}

// Result is the outcome of one Request. Receipts holds one entry per
// faucet transaction that was confirmed.
type Result struct {
	Request  Request
	Receipts []transaction.Receipt
	Err      error
}
