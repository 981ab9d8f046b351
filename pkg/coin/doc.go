// Package coin registers holders of managed coins, mints supply,
// transfers coins between accounts and reads balances.
//
// Write operations submit one transaction and wait for its outcome. The
// on-chain failures callers are expected to handle are surfaced as
// *AlreadyRegisteredError, *PermissionError and *NotRegisteredError; all
// other execution failures are *transaction.ExecutionError values.
//
//	coinType, _ := coin.CoinType(owner.Address(), "stable_coin1", "StableCoin1")
//	_, err := client.EnsureRegistered(ctx, owner, coinType)
//	_, err = client.Mint(ctx, owner, owner.Address(), coinType, 1_000_000)
//	balance, err := client.Balance(ctx, owner.Address(), coinType)
//
// This package is part of the Move SDK for Go.
package coin
