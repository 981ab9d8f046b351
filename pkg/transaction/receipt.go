package transaction

import (
	"strconv"
	"strings"

	"github.com/hashgraph-online/move-sdk-go/pkg/ledger"
)

// Status is the confirmation state of a submitted transaction. It only
// moves from StatusPending to one of the terminal states.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCommitted Status = "committed"
	StatusFailed    Status = "failed"
)

// Terminal reports whether the status can no longer change.
func (s Status) Terminal() bool {
	return s == StatusCommitted || s == StatusFailed
}

// Receipt is the outcome of a transaction as reported by the ledger.
type Receipt struct {
	Hash     string
	Status   Status
	Version  uint64
	VMStatus string
	Success  bool
	GasUsed  uint64
}

func receiptFromTransaction(hash string, transaction ledger.Transaction) Receipt {
	receipt := Receipt{
		Hash:     hash,
		Status:   StatusPending,
		VMStatus: transaction.VMStatus,
		Success:  transaction.Success,
	}
	if strings.TrimSpace(transaction.Hash) != "" {
		receipt.Hash = transaction.Hash
	}
	if version, err := strconv.ParseUint(transaction.Version, 10, 64); err == nil {
		receipt.Version = version
	}
	if gasUsed, err := strconv.ParseUint(transaction.GasUsed, 10, 64); err == nil {
		receipt.GasUsed = gasUsed
	}
	if transaction.Pending() {
		return receipt
	}
	if transaction.Success {
		receipt.Status = StatusCommitted
	} else {
		receipt.Status = StatusFailed
	}
	return receipt
}
