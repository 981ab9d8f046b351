package ledgertest

import (
	"bytes"
	"fmt"

	"github.com/hashgraph-online/move-sdk-go/pkg/account"
	"github.com/hashgraph-online/move-sdk-go/pkg/bcs"
)

// ModuleMagic prefixes every Move bytecode module.
var ModuleMagic = []byte{0xa1, 0x1c, 0xeb, 0x0b}

// CompiledModule is the simplified module layout the fake ledger executes:
// the bytecode magic followed by the BCS encoding of the module address,
// name and declared structs. Every declared struct is treated as a managed
// coin whose capabilities belong to the publisher.
type CompiledModule struct {
	Address account.Address
	Name    string
	Structs []string
}

// ModuleBytes encodes a module for publishing to the fake ledger.
func ModuleBytes(address account.Address, name string, structs ...string) []byte {
	serializer := bcs.NewSerializer()
	serializer.FixedBytes(ModuleMagic)
	serializer.Struct(address)
	serializer.WriteString(name)
	serializer.Uleb128(uint32(len(structs)))
	for _, structName := range structs {
		serializer.WriteString(structName)
	}
	return serializer.ToBytes()
}

// ParseModule decodes bytes produced by ModuleBytes.
func ParseModule(encoded []byte) (CompiledModule, error) {
	if !bytes.HasPrefix(encoded, ModuleMagic) {
		return CompiledModule{}, fmt.Errorf("bad module magic")
	}
	deserializer := bcs.NewDeserializer(encoded[len(ModuleMagic):])
	var module CompiledModule
	deserializer.Struct(&module.Address)
	module.Name = deserializer.ReadString()
	count := deserializer.SequenceLength()
	for index := 0; index < count && deserializer.Err() == nil; index++ {
		module.Structs = append(module.Structs, deserializer.ReadString())
	}
	if err := deserializer.Err(); err != nil {
		return CompiledModule{}, err
	}
	if deserializer.Remaining() != 0 {
		return CompiledModule{}, fmt.Errorf("module has %d trailing bytes", deserializer.Remaining())
	}
	return module, nil
}
