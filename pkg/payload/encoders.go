package payload

import (
	"fmt"
	"math"
	"math/big"
	"unicode/utf8"

	"github.com/hashgraph-online/move-sdk-go/pkg/account"
	"github.com/hashgraph-online/move-sdk-go/pkg/bcs"
)

// Encoder writes one argument value in a specific Move encoding. Callers
// must pick the encoder explicitly: a bare Go value is ambiguous between
// integer widths and between address and string forms.
type Encoder struct {
	name   string
	encode func(serializer *bcs.Serializer, value any) error
}

// Name returns the Move type the encoder produces.
func (e Encoder) Name() string {
	return e.name
}

var (
	Bool = Encoder{name: "bool", encode: func(serializer *bcs.Serializer, value any) error {
		typed, ok := value.(bool)
		if !ok {
			return mismatch("bool", value)
		}
		serializer.Bool(typed)
		return nil
	}}

	U8 = Encoder{name: "u8", encode: func(serializer *bcs.Serializer, value any) error {
		typed, err := unsigned(value, math.MaxUint8, "u8")
		if err != nil {
			return err
		}
		serializer.U8(uint8(typed))
		return nil
	}}

	U16 = Encoder{name: "u16", encode: func(serializer *bcs.Serializer, value any) error {
		typed, err := unsigned(value, math.MaxUint16, "u16")
		if err != nil {
			return err
		}
		serializer.U16(uint16(typed))
		return nil
	}}

	U32 = Encoder{name: "u32", encode: func(serializer *bcs.Serializer, value any) error {
		typed, err := unsigned(value, math.MaxUint32, "u32")
		if err != nil {
			return err
		}
		serializer.U32(uint32(typed))
		return nil
	}}

	U64 = Encoder{name: "u64", encode: func(serializer *bcs.Serializer, value any) error {
		typed, err := unsigned(value, math.MaxUint64, "u64")
		if err != nil {
			return err
		}
		serializer.U64(typed)
		return nil
	}}

	U128 = Encoder{name: "u128", encode: func(serializer *bcs.Serializer, value any) error {
		typed, err := bigUnsigned(value, "u128")
		if err != nil {
			return err
		}
		serializer.U128(typed)
		return serializer.Err()
	}}

	Address = Encoder{name: "address", encode: func(serializer *bcs.Serializer, value any) error {
		typed, ok := value.(account.Address)
		if !ok {
			return mismatch("address", value)
		}
		serializer.Struct(typed)
		return nil
	}}

	Bytes = Encoder{name: "vector<u8>", encode: func(serializer *bcs.Serializer, value any) error {
		typed, ok := value.([]byte)
		if !ok {
			return mismatch("vector<u8>", value)
		}
		serializer.WriteBytes(typed)
		return nil
	}}

	String = Encoder{name: "0x1::string::String", encode: func(serializer *bcs.Serializer, value any) error {
		typed, ok := value.(string)
		if !ok {
			return mismatch("0x1::string::String", value)
		}
		if !utf8.ValidString(typed) {
			return fmt.Errorf("string is not valid UTF-8")
		}
		serializer.WriteString(typed)
		return nil
	}}

	BytesVector = Encoder{name: "vector<vector<u8>>", encode: func(serializer *bcs.Serializer, value any) error {
		typed, ok := value.([][]byte)
		if !ok {
			return mismatch("vector<vector<u8>>", value)
		}
		serializer.Uleb128(uint32(len(typed)))
		for _, item := range typed {
			serializer.WriteBytes(item)
		}
		return nil
	}}

	AddressVector = Encoder{name: "vector<address>", encode: func(serializer *bcs.Serializer, value any) error {
		typed, ok := value.([]account.Address)
		if !ok {
			return mismatch("vector<address>", value)
		}
		bcs.SerializeSequence(serializer, typed)
		return nil
	}}

	U64Vector = Encoder{name: "vector<u64>", encode: func(serializer *bcs.Serializer, value any) error {
		typed, ok := value.([]uint64)
		if !ok {
			return mismatch("vector<u64>", value)
		}
		serializer.Uleb128(uint32(len(typed)))
		for _, item := range typed {
			serializer.U64(item)
		}
		return nil
	}}
)

func mismatch(expected string, value any) error {
	return fmt.Errorf("%s encoder cannot encode %T", expected, value)
}

// unsigned accepts Go unsigned integers and non-negative signed integers
// that fit in limit.
func unsigned(value any, limit uint64, name string) (uint64, error) {
	var result uint64
	switch typed := value.(type) {
	case uint8:
		result = uint64(typed)
	case uint16:
		result = uint64(typed)
	case uint32:
		result = uint64(typed)
	case uint64:
		result = typed
	case uint:
		result = uint64(typed)
	case int:
		if typed < 0 {
			return 0, fmt.Errorf("%s value %d is negative", name, typed)
		}
		result = uint64(typed)
	case int64:
		if typed < 0 {
			return 0, fmt.Errorf("%s value %d is negative", name, typed)
		}
		result = uint64(typed)
	case int32:
		if typed < 0 {
			return 0, fmt.Errorf("%s value %d is negative", name, typed)
		}
		result = uint64(typed)
	default:
		return 0, mismatch(name, value)
	}
	if result > limit {
		return 0, fmt.Errorf("%s value %d overflows", name, result)
	}
	return result, nil
}

func bigUnsigned(value any, name string) (*big.Int, error) {
	switch typed := value.(type) {
	case *big.Int:
		if typed == nil {
			return nil, fmt.Errorf("%s value cannot be nil", name)
		}
		return typed, nil
	default:
		small, err := unsigned(value, math.MaxUint64, name)
		if err != nil {
			return nil, err
		}
		return new(big.Int).SetUint64(small), nil
	}
}
