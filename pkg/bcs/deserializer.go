package bcs

import (
	"encoding/binary"
	"fmt"
	"math/big"
)

// Unmarshaler is implemented by values that can be decoded from BCS.
type Unmarshaler interface {
	UnmarshalBCS(deserializer *Deserializer)
}

// maxSequenceLength bounds decoded lengths so corrupt input cannot force a
// huge allocation.
const maxSequenceLength = 1 << 26

// Deserializer reads a BCS encoding. Like Serializer it keeps the first
// error and every later read returns a zero value.
type Deserializer struct {
	source []byte
	offset int
	err    error
}

// NewDeserializer creates a new Deserializer.
func NewDeserializer(source []byte) *Deserializer {
	return &Deserializer{source: source}
}

// Deserialize decodes source into target and requires every byte to be
// consumed.
func Deserialize(source []byte, target Unmarshaler) error {
	deserializer := NewDeserializer(source)
	target.UnmarshalBCS(deserializer)
	if deserializer.err != nil {
		return deserializer.err
	}
	if deserializer.Remaining() != 0 {
		return fmt.Errorf("bcs: %d trailing bytes", deserializer.Remaining())
	}
	return nil
}

// Err returns the first error recorded by the deserializer.
func (d *Deserializer) Err() error {
	return d.err
}

// SetError records err unless an earlier error is already present.
func (d *Deserializer) SetError(err error) {
	if d.err == nil && err != nil {
		d.err = err
	}
}

// Remaining returns the number of unread bytes.
func (d *Deserializer) Remaining() int {
	return len(d.source) - d.offset
}

func (d *Deserializer) take(length int) []byte {
	if d.err != nil {
		return nil
	}
	if length < 0 || d.Remaining() < length {
		d.SetError(fmt.Errorf("bcs: need %d bytes at offset %d, have %d", length, d.offset, d.Remaining()))
		return nil
	}
	chunk := d.source[d.offset : d.offset+length]
	d.offset += length
	return chunk
}

func (d *Deserializer) Bool() bool {
	value := d.U8()
	switch value {
	case 0:
		return false
	case 1:
		return true
	default:
		d.SetError(fmt.Errorf("bcs: invalid bool byte %d", value))
		return false
	}
}

func (d *Deserializer) U8() uint8 {
	chunk := d.take(1)
	if chunk == nil {
		return 0
	}
	return chunk[0]
}

func (d *Deserializer) U16() uint16 {
	chunk := d.take(2)
	if chunk == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(chunk)
}

func (d *Deserializer) U32() uint32 {
	chunk := d.take(4)
	if chunk == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(chunk)
}

func (d *Deserializer) U64() uint64 {
	chunk := d.take(8)
	if chunk == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(chunk)
}

func (d *Deserializer) U128() *big.Int {
	return d.bigUnsigned(16)
}

func (d *Deserializer) U256() *big.Int {
	return d.bigUnsigned(32)
}

func (d *Deserializer) bigUnsigned(width int) *big.Int {
	chunk := d.take(width)
	if chunk == nil {
		return new(big.Int)
	}
	bigEndian := make([]byte, width)
	for index := range chunk {
		bigEndian[width-1-index] = chunk[index]
	}
	return new(big.Int).SetBytes(bigEndian)
}

// Uleb128 reads an unsigned LEB128 value that fits in 32 bits.
func (d *Deserializer) Uleb128() uint32 {
	var value uint64
	for shift := 0; shift < 35; shift += 7 {
		current := d.U8()
		if d.err != nil {
			return 0
		}
		value |= uint64(current&0x7f) << shift
		if current&0x80 == 0 {
			if value > 0xffffffff {
				d.SetError(fmt.Errorf("bcs: uleb128 value overflows u32"))
				return 0
			}
			return uint32(value)
		}
	}
	d.SetError(fmt.Errorf("bcs: uleb128 value too long"))
	return 0
}

// FixedBytes reads exactly length raw bytes.
func (d *Deserializer) FixedBytes(length int) []byte {
	chunk := d.take(length)
	if chunk == nil {
		return nil
	}
	return append([]byte(nil), chunk...)
}

// ReadBytes reads a length-prefixed byte vector.
func (d *Deserializer) ReadBytes() []byte {
	length := d.SequenceLength()
	if d.err != nil {
		return nil
	}
	return d.FixedBytes(length)
}

// ReadString reads a length-prefixed UTF-8 string.
func (d *Deserializer) ReadString() string {
	return string(d.ReadBytes())
}

// SequenceLength reads a sequence length prefix and bounds-checks it.
func (d *Deserializer) SequenceLength() int {
	length := d.Uleb128()
	if length > maxSequenceLength {
		d.SetError(fmt.Errorf("bcs: sequence length %d exceeds limit", length))
		return 0
	}
	return int(length)
}

// Struct decodes a nested value in place.
func (d *Deserializer) Struct(target Unmarshaler) {
	if d.err != nil {
		return
	}
	target.UnmarshalBCS(d)
}
