package transaction

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/hashgraph-online/move-sdk-go/pkg/ledger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

const testHash = "0x3c7c4c1f8d6a2b0e9f1e5d4c3b2a19080706050403020100ffeeddccbbaa9988"

var (
	pendingLookup = lookup{transaction: ledger.Transaction{Type: ledger.TypePendingTransaction}}
	missingLookup = lookup{err: &ledger.APIError{Operation: "get transaction", StatusCode: http.StatusNotFound, ErrorCode: ledger.ErrorCodeTransactionNotFound}}
)

func committedLookup(vmStatus string, success bool) lookup {
	return lookup{transaction: ledger.Transaction{
		Type:     ledger.TypeUserTransaction,
		Version:  "42",
		Success:  success,
		VMStatus: vmStatus,
		GasUsed:  "12",
	}}
}

func newTestTracker(t *testing.T, stub *stubLedger, metrics *Metrics) *Tracker {
	t.Helper()
	tracker, err := NewTracker(TrackerConfig{Ledger: stub, Metrics: metrics, PollInterval: 5 * time.Millisecond})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return tracker
}

func TestWaitCommitsAfterPending(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)
	stub := &stubLedger{lookups: []lookup{
		missingLookup,
		pendingLookup,
		{err: &ledger.TransportError{Operation: "get transaction", Err: errors.New("connection reset")}},
		committedLookup("Executed successfully", true),
	}}
	tracker := newTestTracker(t, stub, metrics)

	receipt, err := tracker.Wait(context.Background(), testHash, time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if receipt.Status != StatusCommitted || receipt.Version != 42 || receipt.GasUsed != 12 || receipt.Hash != testHash {
		t.Fatalf("unexpected receipt: %+v", receipt)
	}
	if stub.lookupCalls != 4 {
		t.Fatalf("expected 4 lookups, got %d", stub.lookupCalls)
	}
	if got := testutil.ToFloat64(metrics.confirmations.WithLabelValues(string(StatusCommitted))); got != 1 {
		t.Fatalf("expected one committed confirmation, got %v", got)
	}
}

func TestWaitReturnsExecutionError(t *testing.T) {
	stub := &stubLedger{lookups: []lookup{
		committedLookup("Move abort in 0x1::coin: ECOIN_STORE_ALREADY_PUBLISHED(0x8000a): ", false),
	}}
	tracker := newTestTracker(t, stub, nil)

	receipt, err := tracker.Wait(context.Background(), testHash, time.Second)
	var executionErr *ExecutionError
	if !errors.As(err, &executionErr) {
		t.Fatalf("expected ExecutionError, got %v", err)
	}
	if receipt.Status != StatusFailed || executionErr.Kind() != KindAlreadyRegistered {
		t.Fatalf("unexpected failure: %+v kind %s", receipt, executionErr.Kind())
	}
	if !IsExecutionKind(err, KindAlreadyRegistered) {
		t.Fatal("expected IsExecutionKind to match")
	}
}

func TestWaitTimesOut(t *testing.T) {
	stub := &stubLedger{lookups: []lookup{pendingLookup}}
	tracker := newTestTracker(t, stub, nil)

	receipt, err := tracker.Wait(context.Background(), testHash, 30*time.Millisecond)
	var timeoutErr *ConfirmationTimeoutError
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("expected ConfirmationTimeoutError, got %v", err)
	}
	if timeoutErr.Hash != testHash || receipt.Status != StatusPending {
		t.Fatalf("unexpected timeout result: %v %+v", timeoutErr, receipt)
	}
}

func TestWaitHonorsCallerCancellation(t *testing.T) {
	stub := &stubLedger{lookups: []lookup{pendingLookup}}
	tracker := newTestTracker(t, stub, nil)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	_, err := tracker.Wait(ctx, testHash, time.Minute)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestWaitStopsOnUnexpectedError(t *testing.T) {
	stub := &stubLedger{lookups: []lookup{
		{err: &ledger.APIError{Operation: "get transaction", StatusCode: http.StatusBadRequest, Message: "invalid hash"}},
	}}
	tracker := newTestTracker(t, stub, nil)

	_, err := tracker.Wait(context.Background(), testHash, time.Second)
	var apiErr *ledger.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected the node error, got %v", err)
	}
	if stub.lookupCalls != 1 {
		t.Fatalf("expected a single lookup, got %d", stub.lookupCalls)
	}
}

func TestWaitRequiresHash(t *testing.T) {
	tracker := newTestTracker(t, &stubLedger{lookups: []lookup{pendingLookup}}, nil)
	if _, err := tracker.Wait(context.Background(), "  ", time.Second); err == nil {
		t.Fatal("expected error for empty hash")
	}
}

func TestClassifyVMStatus(t *testing.T) {
	cases := map[string]ErrorKind{
		"Executed successfully": KindOther,
		"Move abort in 0x1::coin: ECOIN_STORE_ALREADY_PUBLISHED(0x8000a): ":      KindAlreadyRegistered,
		"Move abort in 0x1::coin: ECOIN_STORE_NOT_PUBLISHED(0x60005): ":          KindNotRegistered,
		"Move abort in 0x1::managed_coin: ENO_CAPABILITIES(0x50004): ":           KindPermission,
		"Move abort in 0x1::coin: EINSUFFICIENT_BALANCE(0x10006): ":              KindInsufficientBalance,
		"MODULE_ADDRESS_DOES_NOT_MATCH_SENDER":                                   KindPackageFormat,
		"Move abort in 0x1::code: EMODULE_NAME_CLASH(0x10001): ":                 KindPackageFormat,
		"TYPE_RESOLUTION_FAILURE":                                                KindResolution,
		"Move abort in 0xcafe::stable_coin1: 0x1":                                KindOther,
	}
	for vmStatus, expected := range cases {
		if got := ClassifyVMStatus(vmStatus); got != expected {
			t.Fatalf("ClassifyVMStatus(%q) = %s, want %s", vmStatus, got, expected)
		}
	}
}

func TestSubmitAndWaitTimeoutDropsCachedSequence(t *testing.T) {
	stub := &stubLedger{chainID: 4, sequences: []uint64{3, 3}, lookups: []lookup{pendingLookup}}
	submitter := newTestSubmitter(t, stub, SubmitterConfig{})
	tracker, err := NewTracker(TrackerConfig{Ledger: stub, PollInterval: 5 * time.Millisecond, Timeout: 30 * time.Millisecond})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	acct := testAccount(t)

	_, err = SubmitAndWait(context.Background(), submitter, tracker, acct, testPayload(t))
	var timeoutErr *ConfirmationTimeoutError
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("expected ConfirmationTimeoutError, got %v", err)
	}

	if _, err := submitter.Submit(context.Background(), acct, testPayload(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.accountCalls != 2 {
		t.Fatalf("expected the sequence to be read again, got %d account reads", stub.accountCalls)
	}
	if stub.submitted[1].Raw.SequenceNumber != 3 {
		t.Fatalf("expected the ledger sequence 3, got %d", stub.submitted[1].Raw.SequenceNumber)
	}
}
