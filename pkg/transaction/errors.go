package transaction

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hashgraph-online/move-sdk-go/pkg/account"
)

// Validation status codes the node returns when it refuses a submission.
const (
	StatusCodeInvalidSignature           = 1
	StatusCodeSequenceNumberTooOld       = 3
	StatusCodeSequenceNumberTooNew       = 4
	StatusCodeInsufficientBalanceForGas  = 5
	StatusCodeTransactionExpired         = 6
	StatusCodeSendingAccountDoesNotExist = 7
)

var statusCodeNames = map[int]string{
	StatusCodeInvalidSignature:           "INVALID_SIGNATURE",
	StatusCodeSequenceNumberTooOld:       "SEQUENCE_NUMBER_TOO_OLD",
	StatusCodeSequenceNumberTooNew:       "SEQUENCE_NUMBER_TOO_NEW",
	StatusCodeInsufficientBalanceForGas:  "INSUFFICIENT_BALANCE_FOR_TRANSACTION_FEE",
	StatusCodeTransactionExpired:         "TRANSACTION_EXPIRED",
	StatusCodeSendingAccountDoesNotExist: "SENDING_ACCOUNT_DOES_NOT_EXIST",
}

// Matching order for node messages that carry no status code.
var statusCodeOrder = []int{
	StatusCodeSequenceNumberTooOld,
	StatusCodeSequenceNumberTooNew,
	StatusCodeInvalidSignature,
	StatusCodeTransactionExpired,
	StatusCodeInsufficientBalanceForGas,
	StatusCodeSendingAccountDoesNotExist,
}

// SubmissionRejectedError reports that the node refused a transaction.
// Nothing was applied to the ledger.
type SubmissionRejectedError struct {
	Sender         account.Address
	SequenceNumber uint64
	StatusCode     int
	Message        string
	ErrorCode      string
	VMErrorCode    *int
	Err            error
}

func (e *SubmissionRejectedError) Error() string {
	reason := e.Reason()
	if reason == "" {
		reason = e.Message
	}
	return fmt.Sprintf(
		"transaction from %s with sequence number %d rejected: %s",
		e.Sender,
		e.SequenceNumber,
		reason,
	)
}

func (e *SubmissionRejectedError) Unwrap() error {
	return e.Err
}

// Reason returns the validation status name, or the node's message when
// the code is unknown.
func (e *SubmissionRejectedError) Reason() string {
	if e.VMErrorCode != nil {
		if name, ok := statusCodeNames[*e.VMErrorCode]; ok {
			return name
		}
	}
	for _, code := range statusCodeOrder {
		if name := statusCodeNames[code]; strings.Contains(e.Message, name) {
			return name
		}
	}
	return e.Message
}

// Stale reports whether the rejection was caused by a sequence number that
// no longer matches the ledger.
func (e *SubmissionRejectedError) Stale() bool {
	reason := e.Reason()
	return reason == statusCodeNames[StatusCodeSequenceNumberTooOld] ||
		reason == statusCodeNames[StatusCodeSequenceNumberTooNew]
}

// ErrorKind classifies the VM status of a failed transaction.
type ErrorKind string

const (
	KindAlreadyRegistered   ErrorKind = "already_registered"
	KindNotRegistered       ErrorKind = "not_registered"
	KindPermission          ErrorKind = "permission"
	KindPackageFormat       ErrorKind = "package_format"
	KindResolution          ErrorKind = "resolution"
	KindInsufficientBalance ErrorKind = "insufficient_balance"
	KindOther               ErrorKind = "other"
)

var kindMarkers = []struct {
	kind    ErrorKind
	markers []string
}{
	{KindAlreadyRegistered, []string{"ECOIN_STORE_ALREADY_PUBLISHED"}},
	{KindNotRegistered, []string{"ECOIN_STORE_NOT_PUBLISHED"}},
	{KindPermission, []string{"ENO_CAPABILITIES", "ENOT_AUTHORIZED", "ECOIN_INFO_ADDRESS_MISMATCH"}},
	{KindInsufficientBalance, []string{"EINSUFFICIENT_BALANCE"}},
	{KindPackageFormat, []string{
		"CODE_DESERIALIZATION_ERROR",
		"BAD_MAGIC",
		"MODULE_ADDRESS_DOES_NOT_MATCH_SENDER",
		"EMODULE_NAME_CLASH",
		"EPACKAGE_DEP_MISSING",
		"EINCOMPATIBLE_POLICY",
		"DUPLICATE_MODULE_NAME",
	}},
	{KindResolution, []string{"LINKER_ERROR", "TYPE_RESOLUTION_FAILURE", "FUNCTION_RESOLUTION_FAILURE"}},
}

// ExecutionError reports a transaction that was committed but aborted.
// The sender's sequence number was consumed.
type ExecutionError struct {
	Receipt Receipt
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("transaction %s failed: %s", e.Receipt.Hash, e.Receipt.VMStatus)
}

// Kind classifies the VM status.
func (e *ExecutionError) Kind() ErrorKind {
	return ClassifyVMStatus(e.Receipt.VMStatus)
}

// ClassifyVMStatus maps a VM status string to an ErrorKind.
func ClassifyVMStatus(vmStatus string) ErrorKind {
	for _, entry := range kindMarkers {
		for _, marker := range entry.markers {
			if strings.Contains(vmStatus, marker) {
				return entry.kind
			}
		}
	}
	return KindOther
}

// ConfirmationTimeoutError reports that no terminal status was observed
// before the deadline. The transaction may still commit; the caller must
// query it again before deciding to resubmit.
type ConfirmationTimeoutError struct {
	Hash    string
	Timeout time.Duration
}

func (e *ConfirmationTimeoutError) Error() string {
	return fmt.Sprintf("transaction %s not confirmed within %s", e.Hash, e.Timeout)
}

// IsExecutionKind reports whether err is an *ExecutionError of kind.
func IsExecutionKind(err error, kind ErrorKind) bool {
	var executionErr *ExecutionError
	return errors.As(err, &executionErr) && executionErr.Kind() == kind
}
