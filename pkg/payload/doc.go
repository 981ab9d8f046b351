// Package payload builds entry-function payloads for Move transactions.
//
// Every argument carries an explicit Encoder that fixes its Move type, so
// a Go value is never guessed into u8, u64 or address. Building is pure:
// it performs no network I/O and equal inputs always produce
// byte-identical payloads.
//
//	entry, err := payload.Natural(
//		"0x1::managed_coin",
//		"mint",
//		[]string{"0xa::moon_coin::MoonCoin"},
//		[]payload.Argument{
//			{Value: recipient, Encoder: payload.Address},
//			{Value: uint64(1_000_000), Encoder: payload.U64},
//		},
//	)
//
// This package is part of the Move SDK for Go.
package payload
