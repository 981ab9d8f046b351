package bcs

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math/big"
)

// Marshaler is implemented by values with a canonical BCS encoding.
type Marshaler interface {
	MarshalBCS(serializer *Serializer)
}

// Serializer accumulates a BCS encoding. The first error encountered is
// kept and every later write becomes a no-op.
type Serializer struct {
	buffer bytes.Buffer
	err    error
}

// NewSerializer creates a new Serializer.
func NewSerializer() *Serializer {
	return &Serializer{}
}

// Serialize encodes a single value and returns its bytes.
func Serialize(value Marshaler) ([]byte, error) {
	serializer := NewSerializer()
	value.MarshalBCS(serializer)
	if serializer.err != nil {
		return nil, serializer.err
	}
	return serializer.ToBytes(), nil
}

// Err returns the first error recorded by the serializer.
func (s *Serializer) Err() error {
	return s.err
}

// SetError records err unless an earlier error is already present.
func (s *Serializer) SetError(err error) {
	if s.err == nil && err != nil {
		s.err = err
	}
}

// ToBytes returns a copy of the encoded bytes.
func (s *Serializer) ToBytes() []byte {
	return append([]byte(nil), s.buffer.Bytes()...)
}

func (s *Serializer) Bool(value bool) {
	if value {
		s.U8(1)
		return
	}
	s.U8(0)
}

func (s *Serializer) U8(value uint8) {
	if s.err != nil {
		return
	}
	s.buffer.WriteByte(value)
}

func (s *Serializer) U16(value uint16) {
	if s.err != nil {
		return
	}
	var raw [2]byte
	binary.LittleEndian.PutUint16(raw[:], value)
	s.buffer.Write(raw[:])
}

func (s *Serializer) U32(value uint32) {
	if s.err != nil {
		return
	}
	var raw [4]byte
	binary.LittleEndian.PutUint32(raw[:], value)
	s.buffer.Write(raw[:])
}

func (s *Serializer) U64(value uint64) {
	if s.err != nil {
		return
	}
	var raw [8]byte
	binary.LittleEndian.PutUint64(raw[:], value)
	s.buffer.Write(raw[:])
}

// U128 writes a 16-byte little-endian unsigned integer.
func (s *Serializer) U128(value *big.Int) {
	s.bigUnsigned(value, 16)
}

// U256 writes a 32-byte little-endian unsigned integer.
func (s *Serializer) U256(value *big.Int) {
	s.bigUnsigned(value, 32)
}

func (s *Serializer) bigUnsigned(value *big.Int, width int) {
	if s.err != nil {
		return
	}
	if value == nil || value.Sign() < 0 {
		s.SetError(fmt.Errorf("u%d value must be a non-negative integer", width*8))
		return
	}
	if value.BitLen() > width*8 {
		s.SetError(fmt.Errorf("value %s overflows u%d", value.String(), width*8))
		return
	}
	bigEndian := value.FillBytes(make([]byte, width))
	for index := width - 1; index >= 0; index-- {
		s.buffer.WriteByte(bigEndian[index])
	}
}

// Uleb128 writes an unsigned LEB128 value, used for lengths and enum tags.
func (s *Serializer) Uleb128(value uint32) {
	if s.err != nil {
		return
	}
	for value >= 0x80 {
		s.buffer.WriteByte(byte(value&0x7f) | 0x80)
		value >>= 7
	}
	s.buffer.WriteByte(byte(value))
}

// FixedBytes writes raw bytes without a length prefix.
func (s *Serializer) FixedBytes(value []byte) {
	if s.err != nil {
		return
	}
	s.buffer.Write(value)
}

// WriteBytes writes a length-prefixed byte vector.
func (s *Serializer) WriteBytes(value []byte) {
	s.Uleb128(uint32(len(value)))
	s.FixedBytes(value)
}

// WriteString writes a length-prefixed UTF-8 string.
func (s *Serializer) WriteString(value string) {
	s.WriteBytes([]byte(value))
}

// Struct writes a nested value in place.
func (s *Serializer) Struct(value Marshaler) {
	if s.err != nil {
		return
	}
	value.MarshalBCS(s)
}

// SerializeSequence writes a length-prefixed sequence of values.
func SerializeSequence[T Marshaler](serializer *Serializer, values []T) {
	serializer.Uleb128(uint32(len(values)))
	for _, value := range values {
		serializer.Struct(value)
	}
}
