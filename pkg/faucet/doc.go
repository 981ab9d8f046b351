// Package faucet funds accounts from a network faucet and waits for the
// funding transactions to commit.
//
// FundMany funds several accounts concurrently and reports one Result per
// request; a failure of one request does not stop the others.
//
//	results := client.FundMany(ctx, []faucet.Request{
//		{Address: local, Amount: 20_000_000},
//		{Address: web, Amount: 20_000_000_000},
//	})
//	if failed := faucet.Failed(results); len(failed) > 0 { ... }
//
// This package is part of the Move SDK for Go.
package faucet
