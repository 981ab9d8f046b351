// Package bcs implements Binary Canonical Serialization, the deterministic
// wire encoding used by Move ledgers for transactions, payloads and type
// tags.
//
// Integers are fixed-width little-endian, sequence and byte-vector lengths
// and enum variant tags are ULEB128, and structs are the concatenation of
// their fields. Two values are equal on the ledger exactly when their BCS
// encodings are byte-identical.
//
// This package is part of the Move SDK for Go.
package bcs
