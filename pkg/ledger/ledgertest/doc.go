// Package ledgertest runs an in-memory Move ledger node and faucet for
// tests. The node serves the REST routes the SDK uses, validates signed
// transactions the way a mempool does and executes the managed coin,
// coin transfer and package publishing entry functions against
// in-memory state.
//
// Modules published to the fake ledger use the layout produced by
// ModuleBytes instead of real Move bytecode.
//
//	server := ledgertest.New(ledgertest.WithPendingPolls(2))
//	defer server.Close()
//	client, _ := ledger.NewClient(ledger.Config{BaseURL: server.NodeURL()})
//
// This package is part of the Move SDK for Go.
package ledgertest
