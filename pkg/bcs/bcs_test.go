package bcs

import (
	"bytes"
	"math/big"
	"testing"
)

func TestSerializeIntegersLittleEndian(t *testing.T) {
	serializer := NewSerializer()
	serializer.U8(0x01)
	serializer.U16(0x0203)
	serializer.U32(0x04050607)
	serializer.U64(1_000_000)

	expected := []byte{
		0x01,
		0x03, 0x02,
		0x07, 0x06, 0x05, 0x04,
		0x40, 0x42, 0x0f, 0x00, 0x00, 0x00, 0x00, 0x00,
	}
	if !bytes.Equal(serializer.ToBytes(), expected) {
		t.Fatalf("unexpected encoding: %x", serializer.ToBytes())
	}
}

func TestUleb128Encoding(t *testing.T) {
	cases := []struct {
		value    uint32
		expected []byte
	}{
		{0, []byte{0x00}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x01}},
		{16384, []byte{0x80, 0x80, 0x01}},
		{0xffffffff, []byte{0xff, 0xff, 0xff, 0xff, 0x0f}},
	}

	for _, tc := range cases {
		serializer := NewSerializer()
		serializer.Uleb128(tc.value)
		if !bytes.Equal(serializer.ToBytes(), tc.expected) {
			t.Fatalf("uleb128(%d): expected %x, got %x", tc.value, tc.expected, serializer.ToBytes())
		}

		decoded := NewDeserializer(tc.expected).Uleb128()
		if decoded != tc.value {
			t.Fatalf("decode uleb128 %x: expected %d, got %d", tc.expected, tc.value, decoded)
		}
	}
}

func TestUleb128RejectsOverlongInput(t *testing.T) {
	deserializer := NewDeserializer([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0x01})
	deserializer.Uleb128()
	if deserializer.Err() == nil {
		t.Fatal("expected error for overlong uleb128")
	}
}

func TestBytesAndStringsAreLengthPrefixed(t *testing.T) {
	serializer := NewSerializer()
	serializer.WriteBytes([]byte{0xaa, 0xbb})
	serializer.WriteString("coin")

	expected := []byte{0x02, 0xaa, 0xbb, 0x04, 'c', 'o', 'i', 'n'}
	if !bytes.Equal(serializer.ToBytes(), expected) {
		t.Fatalf("unexpected encoding: %x", serializer.ToBytes())
	}

	deserializer := NewDeserializer(expected)
	if got := deserializer.ReadBytes(); !bytes.Equal(got, []byte{0xaa, 0xbb}) {
		t.Fatalf("unexpected bytes: %x", got)
	}
	if got := deserializer.ReadString(); got != "coin" {
		t.Fatalf("unexpected string: %q", got)
	}
	if deserializer.Remaining() != 0 {
		t.Fatalf("expected input to be consumed, %d bytes left", deserializer.Remaining())
	}
}

func TestU128RoundTripAndOverflow(t *testing.T) {
	value, _ := new(big.Int).SetString("340282366920938463463374607431768211455", 10)
	serializer := NewSerializer()
	serializer.U128(value)
	if serializer.Err() != nil {
		t.Fatalf("unexpected error: %v", serializer.Err())
	}
	encoded := serializer.ToBytes()
	if len(encoded) != 16 {
		t.Fatalf("expected 16 bytes, got %d", len(encoded))
	}
	if decoded := NewDeserializer(encoded).U128(); decoded.Cmp(value) != 0 {
		t.Fatalf("expected %s, got %s", value, decoded)
	}

	overflow := new(big.Int).Lsh(big.NewInt(1), 128)
	serializer = NewSerializer()
	serializer.U128(overflow)
	if serializer.Err() == nil {
		t.Fatal("expected overflow error")
	}

	serializer = NewSerializer()
	serializer.U128(big.NewInt(-1))
	if serializer.Err() == nil {
		t.Fatal("expected negative value error")
	}
}

func TestSerializerStopsAfterFirstError(t *testing.T) {
	serializer := NewSerializer()
	serializer.U128(big.NewInt(-1))
	serializer.U8(7)
	if len(serializer.ToBytes()) != 0 {
		t.Fatalf("expected writes to stop after error, got %x", serializer.ToBytes())
	}
}

func TestDeserializerShortInput(t *testing.T) {
	deserializer := NewDeserializer([]byte{0x01, 0x02})
	if value := deserializer.U64(); value != 0 {
		t.Fatalf("expected zero value, got %d", value)
	}
	if deserializer.Err() == nil {
		t.Fatal("expected short input error")
	}
}

func TestDeserializerInvalidBool(t *testing.T) {
	deserializer := NewDeserializer([]byte{0x02})
	deserializer.Bool()
	if deserializer.Err() == nil {
		t.Fatal("expected invalid bool error")
	}
}

type pair struct {
	left  uint64
	right string
}

func (p *pair) MarshalBCS(serializer *Serializer) {
	serializer.U64(p.left)
	serializer.WriteString(p.right)
}

func (p *pair) UnmarshalBCS(deserializer *Deserializer) {
	p.left = deserializer.U64()
	p.right = deserializer.ReadString()
}

func TestSequenceAndDeserializeTrailingBytes(t *testing.T) {
	serializer := NewSerializer()
	SerializeSequence(serializer, []*pair{{left: 1, right: "a"}, {left: 2, right: "b"}})
	encoded := serializer.ToBytes()
	if encoded[0] != 2 {
		t.Fatalf("expected sequence length prefix 2, got %d", encoded[0])
	}

	single, err := Serialize(&pair{left: 9, right: "z"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var decoded pair
	if err := Deserialize(single, &decoded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded.left != 9 || decoded.right != "z" {
		t.Fatalf("unexpected decoded value: %+v", decoded)
	}

	if err := Deserialize(append(single, 0x00), &decoded); err == nil {
		t.Fatal("expected trailing bytes error")
	}
}
