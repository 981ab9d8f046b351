package payload

import (
	"github.com/hashgraph-online/move-sdk-go/pkg/account"
	"github.com/hashgraph-online/move-sdk-go/pkg/bcs"
)

// DecodeU64 reads an argument encoded with U64.
func DecodeU64(encoded []byte) (uint64, error) {
	deserializer := bcs.NewDeserializer(encoded)
	value := deserializer.U64()
	return value, finish(deserializer)
}

// DecodeAddress reads an argument encoded with Address.
func DecodeAddress(encoded []byte) (account.Address, error) {
	var address account.Address
	err := bcs.Deserialize(encoded, &address)
	return address, err
}

// DecodeBytes reads an argument encoded with Bytes.
func DecodeBytes(encoded []byte) ([]byte, error) {
	deserializer := bcs.NewDeserializer(encoded)
	value := deserializer.ReadBytes()
	return value, finish(deserializer)
}

// DecodeBytesVector reads an argument encoded with BytesVector.
func DecodeBytesVector(encoded []byte) ([][]byte, error) {
	deserializer := bcs.NewDeserializer(encoded)
	count := deserializer.SequenceLength()
	var values [][]byte
	for index := 0; index < count && deserializer.Err() == nil; index++ {
		values = append(values, deserializer.ReadBytes())
	}
	return values, finish(deserializer)
}

func finish(deserializer *bcs.Deserializer) error {
	if err := deserializer.Err(); err != nil {
		return err
	}
	if deserializer.Remaining() != 0 {
		return errTrailingBytes
	}
	return nil
}
