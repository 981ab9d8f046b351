// The Move SDK for Go is a client for Move-based ledgers that speak the
// Aptos REST and BCS wire formats. It builds, signs and submits
// transactions, tracks them to a final outcome and wraps the coin and
// package publishing entry functions of the framework.
//
// # Packages
//
//   - account: keys, addresses and transaction authenticators
//   - bcs: Binary Canonical Serialization
//   - typetag: Move type tags and identifiers
//   - payload: entry function payloads and their argument encoding
//   - ledger: REST client for a full node
//   - transaction: signing, submission and confirmation tracking
//   - coin: register, mint, transfer and balance of managed coins
//   - publisher: compile and publish Move packages
//   - faucet: fund accounts on test networks
//   - coinflow: the end-to-end coin walkthrough
//
// The your-coin example under examples/ runs the walkthrough from the
// command line.
//
// # Installation
//
//	go get github.com/hashgraph-online/move-sdk-go@latest
package move_sdk_go
