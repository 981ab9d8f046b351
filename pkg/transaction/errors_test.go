package transaction

import "testing"

func TestRejectionReasonPrefersSequenceStatus(t *testing.T) {
	rejected := &SubmissionRejectedError{
		Message: "INVALID_SIGNATURE after SEQUENCE_NUMBER_TOO_OLD for sender",
	}
	for attempt := 0; attempt < 50; attempt++ {
		if rejected.Reason() != "SEQUENCE_NUMBER_TOO_OLD" || !rejected.Stale() {
			t.Fatalf("attempt %d: unexpected reason %q", attempt, rejected.Reason())
		}
	}
}

func TestRejectionReasonUsesStatusCodeFirst(t *testing.T) {
	code := StatusCodeTransactionExpired
	rejected := &SubmissionRejectedError{
		Message:     "SEQUENCE_NUMBER_TOO_NEW",
		VMErrorCode: &code,
	}
	if rejected.Reason() != "TRANSACTION_EXPIRED" || rejected.Stale() {
		t.Fatalf("unexpected reason %q", rejected.Reason())
	}
}

func TestRejectionReasonFallsBackToMessage(t *testing.T) {
	rejected := &SubmissionRejectedError{Message: "mempool is full"}
	if rejected.Reason() != "mempool is full" || rejected.Stale() {
		t.Fatalf("unexpected reason %q", rejected.Reason())
	}
}
