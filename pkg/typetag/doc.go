// Package typetag parses, renders and serializes Move type tags such as
// "0x1::coin::CoinStore<0xa::moon_coin::MoonCoin>".
//
// Rendering is canonical: special addresses (0x0 through 0xf) are printed
// short, every other address is printed as 64 hex digits, and type
// parameters are separated by ", ". Parsing a canonical string and calling
// String returns the same string, and two tags identify the same ledger
// type exactly when their BCS encodings match.
//
//	coinType, err := typetag.FromAddress(owner, "moon_coin::MoonCoin")
//	store, err := typetag.NewStructTag(account.AddressOne, "coin", "CoinStore", coinType)
//
// This package is part of the Move SDK for Go.
package typetag
