package typetag

import (
	"fmt"
	"strings"

	"github.com/hashgraph-online/move-sdk-go/pkg/account"
	"github.com/hashgraph-online/move-sdk-go/pkg/bcs"
)

// Variant tags of the TypeTag enum.
const (
	variantBool    uint32 = 0
	variantU8      uint32 = 1
	variantU64     uint32 = 2
	variantU128    uint32 = 3
	variantAddress uint32 = 4
	variantSigner  uint32 = 5
	variantVector  uint32 = 6
	variantStruct  uint32 = 7
	variantU16     uint32 = 8
	variantU32     uint32 = 9
	variantU256    uint32 = 10
)

// maxDepth bounds nesting of vector and struct type arguments.
const maxDepth = 32

// TypeTag is a fully-qualified Move type.
type TypeTag interface {
	bcs.Marshaler
	String() string
	isTypeTag()
}

// Primitive is a built-in Move type.
type Primitive uint32

const (
	Bool    = Primitive(variantBool)
	U8      = Primitive(variantU8)
	U16     = Primitive(variantU16)
	U32     = Primitive(variantU32)
	U64     = Primitive(variantU64)
	U128    = Primitive(variantU128)
	U256    = Primitive(variantU256)
	Address = Primitive(variantAddress)
	Signer  = Primitive(variantSigner)
)

var primitiveNames = map[Primitive]string{
	Bool:    "bool",
	U8:      "u8",
	U16:     "u16",
	U32:     "u32",
	U64:     "u64",
	U128:    "u128",
	U256:    "u256",
	Address: "address",
	Signer:  "signer",
}

func (p Primitive) String() string {
	if name, ok := primitiveNames[p]; ok {
		return name
	}
	return fmt.Sprintf("primitive(%d)", uint32(p))
}

func (p Primitive) MarshalBCS(serializer *bcs.Serializer) {
	serializer.Uleb128(uint32(p))
}

func (Primitive) isTypeTag() {}

// VectorTag is vector<Element>.
type VectorTag struct {
	Element TypeTag
}

// Vector returns vector<element>.
func Vector(element TypeTag) *VectorTag {
	return &VectorTag{Element: element}
}

func (v *VectorTag) String() string {
	return "vector<" + v.Element.String() + ">"
}

func (v *VectorTag) MarshalBCS(serializer *bcs.Serializer) {
	serializer.Uleb128(variantVector)
	serializer.Struct(v.Element)
}

func (*VectorTag) isTypeTag() {}

// StructTag names a struct declared by a published module.
type StructTag struct {
	Address    account.Address
	Module     string
	Name       string
	TypeParams []TypeTag
}

// NewStructTag creates a StructTag and validates its identifiers.
func NewStructTag(address account.Address, module string, name string, typeParams ...TypeTag) (*StructTag, error) {
	if !IsIdentifier(module) {
		return nil, &InvalidTypeTagError{Input: module, Reason: "module name is not a valid identifier"}
	}
	if !IsIdentifier(name) {
		return nil, &InvalidTypeTagError{Input: name, Reason: "struct name is not a valid identifier"}
	}
	for _, param := range typeParams {
		if param == nil {
			return nil, &InvalidTypeTagError{Input: name, Reason: "type parameter cannot be nil"}
		}
	}
	return &StructTag{
		Address:    address,
		Module:     module,
		Name:       name,
		TypeParams: append([]TypeTag(nil), typeParams...),
	}, nil
}

// FromAddress builds a struct tag from an address and a "module::Name"
// suffix, optionally with type parameters.
func FromAddress(address account.Address, suffix string) (*StructTag, error) {
	return ParseStruct(address.String() + "::" + strings.TrimSpace(suffix))
}

func (s *StructTag) String() string {
	var builder strings.Builder
	builder.WriteString(s.Address.String())
	builder.WriteString("::")
	builder.WriteString(s.Module)
	builder.WriteString("::")
	builder.WriteString(s.Name)
	if len(s.TypeParams) > 0 {
		builder.WriteString("<")
		for index, param := range s.TypeParams {
			if index > 0 {
				builder.WriteString(", ")
			}
			builder.WriteString(param.String())
		}
		builder.WriteString(">")
	}
	return builder.String()
}

func (s *StructTag) MarshalBCS(serializer *bcs.Serializer) {
	serializer.Uleb128(variantStruct)
	serializer.Struct(s.Address)
	serializer.WriteString(s.Module)
	serializer.WriteString(s.Name)
	bcs.SerializeSequence(serializer, s.TypeParams)
}

func (*StructTag) isTypeTag() {}

// Equal reports whether two tags identify the same ledger type.
func Equal(left TypeTag, right TypeTag) bool {
	if left == nil || right == nil {
		return left == nil && right == nil
	}
	leftBytes, leftErr := bcs.Serialize(left)
	rightBytes, rightErr := bcs.Serialize(right)
	if leftErr != nil || rightErr != nil {
		return false
	}
	return string(leftBytes) == string(rightBytes)
}

// Unmarshal decodes a TypeTag from BCS.
func Unmarshal(deserializer *bcs.Deserializer) TypeTag {
	return unmarshalDepth(deserializer, 0)
}

func unmarshalDepth(deserializer *bcs.Deserializer, depth int) TypeTag {
	if depth > maxDepth {
		deserializer.SetError(fmt.Errorf("type tag nesting exceeds %d", maxDepth))
		return nil
	}

	variant := deserializer.Uleb128()
	if deserializer.Err() != nil {
		return nil
	}
	switch variant {
	case variantBool, variantU8, variantU16, variantU32, variantU64, variantU128, variantU256, variantAddress, variantSigner:
		return Primitive(variant)
	case variantVector:
		element := unmarshalDepth(deserializer, depth+1)
		if element == nil {
			return nil
		}
		return Vector(element)
	case variantStruct:
		tag := &StructTag{}
		deserializer.Struct(&tag.Address)
		tag.Module = deserializer.ReadString()
		tag.Name = deserializer.ReadString()
		count := deserializer.SequenceLength()
		for index := 0; index < count && deserializer.Err() == nil; index++ {
			param := unmarshalDepth(deserializer, depth+1)
			if param == nil {
				return nil
			}
			tag.TypeParams = append(tag.TypeParams, param)
		}
		if deserializer.Err() != nil {
			return nil
		}
		return tag
	default:
		deserializer.SetError(fmt.Errorf("unknown type tag variant %d", variant))
		return nil
	}
}
