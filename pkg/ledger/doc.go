// Package ledger provides a client for the REST API of a Move ledger node.
// It reads ledger info, account sequence numbers and resources, submits
// BCS-encoded signed transactions and looks transactions up by hash.
//
// Failures are typed: a *TransportError means the request produced no
// usable answer (network failure, timeout or 5xx) and its effect on the
// ledger is unknown; an *APIError is a definite 4xx reply from the node.
//
//	client, err := ledger.NewClient(ledger.Config{Network: "devnet"})
//	info, err := client.LedgerInfo(ctx)
//
// This package is part of the Move SDK for Go.
package ledger
