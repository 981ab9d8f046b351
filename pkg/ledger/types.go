package ledger

import (
	"encoding/json"
	"strconv"
)

// Transaction type values reported by the node.
const (
	TypePendingTransaction = "pending_transaction"
	TypeUserTransaction    = "user_transaction"
)

// ContentTypeSignedTransaction is the media type for BCS signed
// transaction bodies.
const ContentTypeSignedTransaction = "application/x.aptos.signed_transaction+bcs"

type LedgerInfo struct {
	ChainID         uint8  `json:"chain_id"`
	Epoch           string `json:"epoch"`
	LedgerVersion   string `json:"ledger_version"`
	LedgerTimestamp string `json:"ledger_timestamp"`
	BlockHeight     string `json:"block_height"`
	NodeRole        string `json:"node_role"`
}

type AccountInfo struct {
	SequenceNumber    string `json:"sequence_number"`
	AuthenticationKey string `json:"authentication_key"`
}

// Sequence parses SequenceNumber.
func (a AccountInfo) Sequence() (uint64, error) {
	return strconv.ParseUint(a.SequenceNumber, 10, 64)
}

// Resource is an on-chain resource. Data keeps the raw JSON so callers
// can decode only the fields they need.
type Resource struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type PendingTransaction struct {
	Hash                    string `json:"hash"`
	Sender                  string `json:"sender"`
	SequenceNumber          string `json:"sequence_number"`
	MaxGasAmount            string `json:"max_gas_amount"`
	GasUnitPrice            string `json:"gas_unit_price"`
	ExpirationTimestampSecs string `json:"expiration_timestamp_secs"`
}

// Transaction is the subset of the by-hash view the SDK relies on.
type Transaction struct {
	Type           string `json:"type"`
	Hash           string `json:"hash"`
	Version        string `json:"version,omitempty"`
	Success        bool   `json:"success"`
	VMStatus       string `json:"vm_status,omitempty"`
	GasUsed        string `json:"gas_used,omitempty"`
	Sender         string `json:"sender,omitempty"`
	SequenceNumber string `json:"sequence_number,omitempty"`
}

// Pending reports whether the node has not yet executed the transaction.
func (t Transaction) Pending() bool {
	return t.Type == TypePendingTransaction
}

type errorResponse struct {
	Message     string `json:"message"`
	ErrorCode   string `json:"error_code"`
	VMErrorCode *int   `json:"vm_error_code,omitempty"`
}
