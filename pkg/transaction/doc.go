// Package transaction signs, submits and confirms Move transactions.
//
// A Submitter wraps a payload in a raw transaction with the sender's next
// sequence number, the ledger's chain id, gas settings and an expiration,
// signs it and posts the BCS encoding to the node. Sequence numbers are
// cached per account and submissions from one account are serialized. A
// stale sequence rejection refreshes the number and resubmits once.
//
// A Tracker polls the node by hash until the transaction is committed,
// fails or the deadline passes:
//
//	hash, err := submitter.Submit(ctx, acct, payload.Wrap(entry))
//	receipt, err := tracker.Wait(ctx, hash, 30*time.Second)
//
// Errors distinguish a refused submission (*SubmissionRejectedError), a
// committed abort (*ExecutionError), an unknown outcome
// (*ConfirmationTimeoutError or a ledger transport error) and caller
// cancellation.
//
// This package is part of the Move SDK for Go.
package transaction
