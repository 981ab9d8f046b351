// Package shared provides common utilities used across the Move SDK for Go.
// It includes network normalization and endpoint defaults, operator
// configuration loading from environment variables or a .env file, and
// logger defaulting.
//
// # Environment Variables
//
//	MY_LOCAL_ACCOUNT_PRIVATE_KEY  (alias MOVE_PRIVATE_KEY)       signing key
//	MY_WEB_ACCOUNT_ADDRESS        (alias MOVE_RECIPIENT_ADDRESS) transfer recipient
//	MOVE_NETWORK                  devnet (default), testnet, mainnet or local
//	MOVE_NODE_URL, MOVE_FAUCET_URL endpoint overrides
//
// Every missing or malformed value is reported in a single *ConfigError.
//
// This package is part of the Move SDK for Go.
package shared
