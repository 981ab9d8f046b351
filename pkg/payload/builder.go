package payload

import (
	"fmt"
	"strings"

	"github.com/hashgraph-online/move-sdk-go/pkg/account"
	"github.com/hashgraph-online/move-sdk-go/pkg/bcs"
	"github.com/hashgraph-online/move-sdk-go/pkg/typetag"
)

// Framework module names used by the coin and publish flows.
const (
	ManagedCoinModule  = "managed_coin"
	AptosAccountModule = "aptos_account"
	CodeModule         = "code"
)

// Build encodes a call to moduleAddress::moduleName::functionName. Each
// argument is encoded with its own encoder; the first failure is returned
// as an *InvalidArgumentError and nothing is built.
func Build(
	moduleAddress account.Address,
	moduleName string,
	functionName string,
	typeArgs []typetag.TypeTag,
	args []Argument,
) (EntryFunction, error) {
	if !typetag.IsIdentifier(moduleName) {
		return EntryFunction{}, fmt.Errorf("invalid module name %q", moduleName)
	}
	if !typetag.IsIdentifier(functionName) {
		return EntryFunction{}, fmt.Errorf("invalid function name %q", functionName)
	}

	qualified := moduleAddress.String() + "::" + moduleName + "::" + functionName
	for index, tag := range typeArgs {
		if tag == nil {
			return EntryFunction{}, fmt.Errorf("type argument %d of %s is nil", index, qualified)
		}
	}

	encoded := make([][]byte, 0, len(args))
	for index, arg := range args {
		if arg.Encoder.encode == nil {
			return EntryFunction{}, &InvalidArgumentError{
				Function: qualified,
				Index:    index,
				Encoder:  "none",
				Err:      fmt.Errorf("argument has no encoder"),
			}
		}
		serializer := bcs.NewSerializer()
		if err := arg.Encoder.encode(serializer, arg.Value); err != nil {
			return EntryFunction{}, &InvalidArgumentError{
				Function: qualified,
				Index:    index,
				Encoder:  arg.Encoder.name,
				Err:      err,
			}
		}
		if err := serializer.Err(); err != nil {
			return EntryFunction{}, &InvalidArgumentError{
				Function: qualified,
				Index:    index,
				Encoder:  arg.Encoder.name,
				Err:      err,
			}
		}
		encoded = append(encoded, serializer.ToBytes())
	}

	return EntryFunction{
		module:   ModuleID{Address: moduleAddress, Name: moduleName},
		function: functionName,
		typeArgs: append([]typetag.TypeTag(nil), typeArgs...),
		args:     encoded,
	}, nil
}

// Natural builds an entry function from a "0x1::managed_coin" style module
// id and type argument strings such as "0xa::moon_coin::MoonCoin".
func Natural(module string, function string, typeArgs []string, args []Argument) (EntryFunction, error) {
	parts := strings.Split(strings.TrimSpace(module), "::")
	if len(parts) != 2 {
		return EntryFunction{}, fmt.Errorf("module id %q must have the form address::name", module)
	}
	address, err := account.ParseAddress(parts[0])
	if err != nil {
		return EntryFunction{}, fmt.Errorf("module id %q: %w", module, err)
	}

	tags := make([]typetag.TypeTag, 0, len(typeArgs))
	for _, raw := range typeArgs {
		tag, err := typetag.Parse(raw)
		if err != nil {
			return EntryFunction{}, err
		}
		tags = append(tags, tag)
	}

	return Build(address, strings.TrimSpace(parts[1]), strings.TrimSpace(function), tags, args)
}

// Encode runs a single encoder outside of Build, which is useful for view
// calls and tests.
func Encode(encoder Encoder, value any) ([]byte, error) {
	if encoder.encode == nil {
		return nil, fmt.Errorf("encoder is not initialized")
	}
	serializer := bcs.NewSerializer()
	if err := encoder.encode(serializer, value); err != nil {
		return nil, err
	}
	if err := serializer.Err(); err != nil {
		return nil, err
	}
	return serializer.ToBytes(), nil
}

// PublishPackage builds 0x1::code::publish_package_txn(metadata, modules).
// The ledger publishes every module or none of them.
func PublishPackage(metadata []byte, modules [][]byte) EntryFunction {
	serializer := bcs.NewSerializer()
	serializer.WriteBytes(metadata)
	metadataArg := serializer.ToBytes()

	serializer = bcs.NewSerializer()
	serializer.Uleb128(uint32(len(modules)))
	for _, module := range modules {
		serializer.WriteBytes(module)
	}
	modulesArg := serializer.ToBytes()

	return EntryFunction{
		module:   ModuleID{Address: account.AddressOne, Name: CodeModule},
		function: "publish_package_txn",
		args:     [][]byte{metadataArg, modulesArg},
	}
}

// DecodeEntryFunction parses the BCS encoding of an entry function.
func DecodeEntryFunction(encoded []byte) (EntryFunction, error) {
	deserializer := bcs.NewDeserializer(encoded)
	entry := unmarshalEntryFunction(deserializer)
	if err := deserializer.Err(); err != nil {
		return EntryFunction{}, fmt.Errorf("failed to decode entry function: %w", err)
	}
	if deserializer.Remaining() != 0 {
		return EntryFunction{}, fmt.Errorf("failed to decode entry function: %d trailing bytes", deserializer.Remaining())
	}
	return entry, nil
}

// DecodePayload parses the BCS encoding of a transaction payload.
func DecodePayload(encoded []byte) (Payload, error) {
	var decoded Payload
	if err := bcs.Deserialize(encoded, &decoded); err != nil {
		return Payload{}, fmt.Errorf("failed to decode payload: %w", err)
	}
	return decoded, nil
}

func unmarshalEntryFunction(deserializer *bcs.Deserializer) EntryFunction {
	var entry EntryFunction
	deserializer.Struct(&entry.module)
	entry.function = deserializer.ReadString()

	count := deserializer.SequenceLength()
	for index := 0; index < count && deserializer.Err() == nil; index++ {
		tag := typetag.Unmarshal(deserializer)
		if tag == nil {
			return EntryFunction{}
		}
		entry.typeArgs = append(entry.typeArgs, tag)
	}

	count = deserializer.SequenceLength()
	for index := 0; index < count && deserializer.Err() == nil; index++ {
		entry.args = append(entry.args, deserializer.ReadBytes())
	}
	if deserializer.Err() != nil {
		return EntryFunction{}
	}
	return entry
}
