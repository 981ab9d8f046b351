package typetag

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/hashgraph-online/move-sdk-go/pkg/account"
	"github.com/hashgraph-online/move-sdk-go/pkg/bcs"
)

const longAddress = "0x07c2d8a1e2f5b3c4d6e7f8091a2b3c4d5e6f708192a3b4c5d6e7f8091a2b3c4d"

func TestParseRoundTripCanonical(t *testing.T) {
	cases := []string{
		"u8", "u16", "u32", "u64", "u128", "u256", "bool", "address", "signer",
		"vector<u8>",
		"vector<vector<address>>",
		"0x1::aptos_coin::AptosCoin",
		"0xa::mod::Coin",
		longAddress + "::stable_coin1::StableCoin1",
		"0x1::coin::CoinStore<" + longAddress + "::stable_coin1::StableCoin1>",
		"0x1::table::Table<u64, vector<0x1::string::String>>",
	}

	for _, input := range cases {
		tag, err := Parse(input)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", input, err)
		}
		if tag.String() != input {
			t.Fatalf("round trip mismatch: %q became %q", input, tag.String())
		}

		again, err := Parse(tag.String())
		if err != nil {
			t.Fatalf("unexpected error re-parsing %q: %v", tag.String(), err)
		}
		if !Equal(tag, again) {
			t.Fatalf("re-parsed tag for %q is not byte-identical", input)
		}
	}
}

func TestParseNormalizesNonCanonicalInput(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"0xA::mod::Coin", "0xa::mod::Coin"},
		{"0x0001::coin::CoinStore< 0x1::aptos_coin::AptosCoin >", "0x1::coin::CoinStore<0x1::aptos_coin::AptosCoin>"},
		{"0x1::table::Table<u64,u8>", "0x1::table::Table<u64, u8>"},
		{"0xcafe::m::T", "0x000000000000000000000000000000000000000000000000000000000000cafe::m::T"},
		{" vector < u8 > ", "vector<u8>"},
	}

	for _, tc := range cases {
		canonical, err := Canonical(tc.input)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", tc.input, err)
		}
		if canonical != tc.expected {
			t.Fatalf("expected %q for %q, got %q", tc.expected, tc.input, canonical)
		}
	}
}

func TestParseInvalid(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"0x1::coin",
		"0x1::coin::",
		"0x1:coin::Coin",
		"0x1::coin::Coin<",
		"0x1::coin::Coin<u8",
		"0x1::coin::Coin<u8,>",
		"0x1::coin::Coin>",
		"vector<u8",
		"vector<>",
		"notanaddress::m::T",
		"0x1::9mod::T",
		"0x1::m::T extra",
		"0x1::m::T-",
		"u64::m::T",
	}

	for _, input := range cases {
		_, err := Parse(input)
		if err == nil {
			t.Fatalf("expected error for %q", input)
		}
		var invalid *InvalidTypeTagError
		if !errors.As(err, &invalid) {
			t.Fatalf("expected InvalidTypeTagError for %q, got %T", input, err)
		}
	}
}

func TestParseRejectsDeepNesting(t *testing.T) {
	input := strings.Repeat("vector<", maxDepth+2) + "u8" + strings.Repeat(">", maxDepth+2)
	if _, err := Parse(input); err == nil {
		t.Fatal("expected nesting error")
	}
}

func TestParseStructRejectsPrimitive(t *testing.T) {
	if _, err := ParseStruct("u64"); err == nil {
		t.Fatal("expected error for primitive")
	}
	if _, err := ParseStruct("vector<u8>"); err == nil {
		t.Fatal("expected error for vector")
	}
}

func TestFromAddressMatchesStringConstruction(t *testing.T) {
	owner := account.MustParseAddress(longAddress)
	fromAddress, err := FromAddress(owner, "stable_coin1::StableCoin1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fromString, err := ParseStruct(longAddress + "::stable_coin1::StableCoin1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !Equal(fromAddress, fromString) {
		t.Fatal("expected address and string construction to be identical")
	}

	direct, err := NewStructTag(owner, "stable_coin1", "StableCoin1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if direct.String() != fromString.String() {
		t.Fatalf("expected %q, got %q", fromString.String(), direct.String())
	}
}

func TestNewStructTagValidatesIdentifiers(t *testing.T) {
	if _, err := NewStructTag(account.AddressOne, "bad-module", "Coin"); err == nil {
		t.Fatal("expected error for invalid module")
	}
	if _, err := NewStructTag(account.AddressOne, "coin", ""); err == nil {
		t.Fatal("expected error for empty name")
	}
	if _, err := NewStructTag(account.AddressOne, "coin", "Coin", nil); err == nil {
		t.Fatal("expected error for nil type parameter")
	}
}

func TestStructTagBCSEncoding(t *testing.T) {
	tag := MustParseStruct("0x1::aptos_coin::AptosCoin")
	encoded, err := bcs.Serialize(tag)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []byte{0x07}
	expected = append(expected, account.AddressOne[:]...)
	expected = append(expected, 0x0a)
	expected = append(expected, []byte("aptos_coin")...)
	expected = append(expected, 0x09)
	expected = append(expected, []byte("AptosCoin")...)
	expected = append(expected, 0x00)
	if !bytes.Equal(encoded, expected) {
		t.Fatalf("unexpected encoding:\n got %x\nwant %x", encoded, expected)
	}
}

func TestUnmarshalRoundTrip(t *testing.T) {
	tag, err := Parse("0x1::coin::CoinStore<vector<" + longAddress + "::m::T<u64, bool>>>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	encoded, err := bcs.Serialize(tag)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	deserializer := bcs.NewDeserializer(encoded)
	decoded := Unmarshal(deserializer)
	if deserializer.Err() != nil {
		t.Fatalf("unexpected error: %v", deserializer.Err())
	}
	if decoded.String() != tag.String() {
		t.Fatalf("expected %q, got %q", tag.String(), decoded.String())
	}
}

func TestUnmarshalUnknownVariant(t *testing.T) {
	deserializer := bcs.NewDeserializer([]byte{0x63})
	if Unmarshal(deserializer) != nil || deserializer.Err() == nil {
		t.Fatal("expected unknown variant error")
	}
}

func TestEqualHandlesNil(t *testing.T) {
	if !Equal(nil, nil) {
		t.Fatal("expected nil tags to be equal")
	}
	if Equal(U64, nil) {
		t.Fatal("expected nil and non-nil to differ")
	}
	if Equal(U64, U128) {
		t.Fatal("expected different primitives to differ")
	}
}
