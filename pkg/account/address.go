package account

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/hashgraph-online/move-sdk-go/pkg/bcs"
)

// AddressLength is the size in bytes of an on-ledger address.
const AddressLength = 32

// Address identifies an account or a module-owning entity.
type Address [AddressLength]byte

var (
	AddressZero  = Address{}
	AddressOne   = mustSpecialAddress(0x1)
	AddressThree = mustSpecialAddress(0x3)
	AddressFour  = mustSpecialAddress(0x4)
)

func mustSpecialAddress(value byte) Address {
	var address Address
	address[AddressLength-1] = value
	return address
}

// ParseAddress parses a hex address with or without the 0x prefix. Short
// forms are left-padded with zeros.
func ParseAddress(raw string) (Address, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return Address{}, fmt.Errorf("address cannot be empty")
	}
	candidate = strings.TrimPrefix(strings.TrimPrefix(candidate, "0x"), "0X")
	if candidate == "" {
		return Address{}, fmt.Errorf("address %q has no hex digits", raw)
	}
	if len(candidate) > AddressLength*2 {
		return Address{}, fmt.Errorf("address %q is longer than %d bytes", raw, AddressLength)
	}

	padded := strings.Repeat("0", AddressLength*2-len(candidate)) + candidate
	decoded, err := hexutil.Decode("0x" + padded)
	if err != nil {
		return Address{}, fmt.Errorf("invalid address %q: %w", raw, err)
	}

	var address Address
	copy(address[:], decoded)
	return address, nil
}

// MustParseAddress is ParseAddress for constants; it panics on error.
func MustParseAddress(raw string) Address {
	address, err := ParseAddress(raw)
	if err != nil {
		panic(err)
	}
	return address
}

// IsSpecial reports whether the address is one of 0x0 through 0xf.
func (a Address) IsSpecial() bool {
	for _, value := range a[:AddressLength-1] {
		if value != 0 {
			return false
		}
	}
	return a[AddressLength-1] < 0x10
}

// String renders special addresses in short form and every other address
// as 64 hex digits.
func (a Address) String() string {
	if a.IsSpecial() {
		return fmt.Sprintf("0x%x", a[AddressLength-1])
	}
	return a.StringLong()
}

// StringLong always renders all 64 hex digits.
func (a Address) StringLong() string {
	return hexutil.Encode(a[:])
}

func (a Address) Bytes() []byte {
	return append([]byte(nil), a[:]...)
}

func (a Address) MarshalBCS(serializer *bcs.Serializer) {
	serializer.FixedBytes(a[:])
}

func (a *Address) UnmarshalBCS(deserializer *bcs.Deserializer) {
	copy(a[:], deserializer.FixedBytes(AddressLength))
}

func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Address) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseAddress(raw)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
