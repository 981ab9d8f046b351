// Package account provides ledger addresses, signing accounts and
// transaction authenticators.
//
// An Account owns a private key (Ed25519 or secp256k1) and the address the
// key controls. Addresses are derived as SHA3-256 over the public key and a
// scheme byte, so the same key always maps to the same address.
//
//	acct, err := account.LoadKey(os.Getenv("MY_LOCAL_ACCOUNT_PRIVATE_KEY"))
//	fmt.Println(acct.Address())
//
// This package is part of the Move SDK for Go.
package account
