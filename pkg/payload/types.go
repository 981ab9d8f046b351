package payload

import (
	"strings"

	"github.com/hashgraph-online/move-sdk-go/pkg/account"
	"github.com/hashgraph-online/move-sdk-go/pkg/bcs"
	"github.com/hashgraph-online/move-sdk-go/pkg/typetag"
)

// variantEntryFunction is the TransactionPayload tag for entry functions.
const variantEntryFunction uint32 = 2

// ModuleID names a published module.
type ModuleID struct {
	Address account.Address
	Name    string
}

func (m ModuleID) String() string {
	return m.Address.String() + "::" + m.Name
}

func (m ModuleID) MarshalBCS(serializer *bcs.Serializer) {
	serializer.Struct(m.Address)
	serializer.WriteString(m.Name)
}

func (m *ModuleID) UnmarshalBCS(deserializer *bcs.Deserializer) {
	deserializer.Struct(&m.Address)
	m.Name = deserializer.ReadString()
}

// Argument pairs a value with the encoder that fixes its Move type.
type Argument struct {
	Value   any
	Encoder Encoder
}

// EntryFunction is an encoded call to a public entry function. Values are
// immutable once built; getters return copies.
type EntryFunction struct {
	module   ModuleID
	function string
	typeArgs []typetag.TypeTag
	args     [][]byte
}

func (e EntryFunction) Module() ModuleID {
	return e.module
}

func (e EntryFunction) Function() string {
	return e.function
}

// TypeArgs returns a copy of the type arguments.
func (e EntryFunction) TypeArgs() []typetag.TypeTag {
	return append([]typetag.TypeTag(nil), e.typeArgs...)
}

// Args returns copies of the BCS-encoded arguments.
func (e EntryFunction) Args() [][]byte {
	copied := make([][]byte, len(e.args))
	for index, arg := range e.args {
		copied[index] = append([]byte(nil), arg...)
	}
	return copied
}

// String renders the call as "0x1::module::function<T>".
func (e EntryFunction) String() string {
	var builder strings.Builder
	builder.WriteString(e.module.String())
	builder.WriteString("::")
	builder.WriteString(e.function)
	if len(e.typeArgs) > 0 {
		builder.WriteString("<")
		for index, tag := range e.typeArgs {
			if index > 0 {
				builder.WriteString(", ")
			}
			builder.WriteString(tag.String())
		}
		builder.WriteString(">")
	}
	return builder.String()
}

func (e EntryFunction) MarshalBCS(serializer *bcs.Serializer) {
	serializer.Struct(e.module)
	serializer.WriteString(e.function)
	bcs.SerializeSequence(serializer, e.typeArgs)
	serializer.Uleb128(uint32(len(e.args)))
	for _, arg := range e.args {
		serializer.WriteBytes(arg)
	}
}

// Payload is the TransactionPayload carried by a raw transaction.
type Payload struct {
	EntryFunction EntryFunction
}

// Wrap returns entry as a transaction payload.
func Wrap(entry EntryFunction) Payload {
	return Payload{EntryFunction: entry}
}

func (p Payload) MarshalBCS(serializer *bcs.Serializer) {
	serializer.Uleb128(variantEntryFunction)
	serializer.Struct(p.EntryFunction)
}

func (p *Payload) UnmarshalBCS(deserializer *bcs.Deserializer) {
	variant := deserializer.Uleb128()
	if deserializer.Err() != nil {
		return
	}
	if variant != variantEntryFunction {
		deserializer.SetError(&UnsupportedPayloadError{Variant: variant})
		return
	}
	p.EntryFunction = unmarshalEntryFunction(deserializer)
}

func (p Payload) String() string {
	return p.EntryFunction.String()
}
