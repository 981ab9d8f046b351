package transaction

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"testing"

	"github.com/hashgraph-online/move-sdk-go/pkg/account"
	"github.com/hashgraph-online/move-sdk-go/pkg/ledger"
	"github.com/hashgraph-online/move-sdk-go/pkg/payload"
)

type lookup struct {
	transaction ledger.Transaction
	err         error
}

// stubLedger records calls and replays scripted answers. Once a script is
// exhausted the last entry repeats.
type stubLedger struct {
	mu           sync.Mutex
	chainID      uint8
	sequences    []uint64
	submitErrors []error
	lookups      []lookup

	infoCalls    int
	accountCalls int
	submitted    []SignedTransaction
	lookupCalls  int
}

func (s *stubLedger) LedgerInfo(context.Context) (ledger.LedgerInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.infoCalls++
	return ledger.LedgerInfo{ChainID: s.chainID}, nil
}

func (s *stubLedger) Account(_ context.Context, address account.Address) (ledger.AccountInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	index := min(s.accountCalls, len(s.sequences)-1)
	s.accountCalls++
	return ledger.AccountInfo{SequenceNumber: strconv.FormatUint(s.sequences[index], 10), AuthenticationKey: address.StringLong()}, nil
}

func (s *stubLedger) SubmitTransaction(_ context.Context, encoded []byte) (ledger.PendingTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	signed, err := Decode(encoded)
	if err != nil {
		return ledger.PendingTransaction{}, &ledger.APIError{Operation: "submit transaction", StatusCode: http.StatusBadRequest, Message: err.Error()}
	}
	s.submitted = append(s.submitted, signed)
	if len(s.submitErrors) > 0 {
		err := s.submitErrors[0]
		s.submitErrors = s.submitErrors[1:]
		if err != nil {
			return ledger.PendingTransaction{}, err
		}
	}
	return ledger.PendingTransaction{Hash: HashBytes(encoded)}, nil
}

func (s *stubLedger) TransactionByHash(_ context.Context, hash string) (ledger.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	index := min(s.lookupCalls, len(s.lookups)-1)
	s.lookupCalls++
	answer := s.lookups[index]
	if answer.err == nil && answer.transaction.Hash == "" {
		answer.transaction.Hash = hash
	}
	return answer.transaction, answer.err
}

func rejection(code int) error {
	return &ledger.APIError{
		Operation:   "submit transaction",
		StatusCode:  http.StatusBadRequest,
		Message:     "Invalid transaction: Type: Validation Code: " + statusCodeNames[code],
		ErrorCode:   ledger.ErrorCodeVMError,
		VMErrorCode: &code,
	}
}

func testAccount(t *testing.T) *account.Account {
	t.Helper()
	acct, err := account.Generate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return acct
}

func testPayload(t *testing.T) payload.Payload {
	t.Helper()
	entry, err := payload.Natural("0x1::managed_coin", "register", []string{"0xcafe::stable_coin1::StableCoin1"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return payload.Wrap(entry)
}
