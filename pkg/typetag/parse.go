package typetag

import (
	"unicode"

	"github.com/hashgraph-online/move-sdk-go/pkg/account"
)

var primitivesByName = map[string]Primitive{
	"bool":    Bool,
	"u8":      U8,
	"u16":     U16,
	"u32":     U32,
	"u64":     U64,
	"u128":    U128,
	"u256":    U256,
	"address": Address,
	"signer":  Signer,
}

// Parse parses a type such as "u64", "vector<u8>" or
// "0x1::coin::CoinStore<0xa::moon_coin::MoonCoin>".
func Parse(raw string) (TypeTag, error) {
	tokens, err := tokenize(raw)
	if err != nil {
		return nil, err
	}
	parser := &typeParser{input: raw, tokens: tokens}
	tag, err := parser.parseType(0)
	if err != nil {
		return nil, err
	}
	if !parser.done() {
		return nil, parser.fail("unexpected trailing input %q", parser.peek())
	}
	return tag, nil
}

// ParseStruct parses a struct type and rejects primitives and vectors.
func ParseStruct(raw string) (*StructTag, error) {
	tag, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	structTag, ok := tag.(*StructTag)
	if !ok {
		return nil, &InvalidTypeTagError{Input: raw, Reason: "expected a struct type"}
	}
	return structTag, nil
}

// MustParseStruct is ParseStruct for constants; it panics on error.
func MustParseStruct(raw string) *StructTag {
	tag, err := ParseStruct(raw)
	if err != nil {
		panic(err)
	}
	return tag
}

func tokenize(raw string) ([]string, error) {
	tokens := make([]string, 0, 8)
	runes := []rune(raw)
	for index := 0; index < len(runes); {
		current := runes[index]
		switch {
		case unicode.IsSpace(current):
			index++
		case current == '<' || current == '>' || current == ',':
			tokens = append(tokens, string(current))
			index++
		case current == ':':
			if index+1 >= len(runes) || runes[index+1] != ':' {
				return nil, &InvalidTypeTagError{Input: raw, Reason: "single ':' is not a valid separator"}
			}
			tokens = append(tokens, "::")
			index += 2
		case current == '_' || unicode.IsLetter(current) || unicode.IsDigit(current):
			start := index
			for index < len(runes) && (runes[index] == '_' || unicode.IsLetter(runes[index]) || unicode.IsDigit(runes[index])) {
				index++
			}
			tokens = append(tokens, string(runes[start:index]))
		default:
			return nil, &InvalidTypeTagError{Input: raw, Reason: "unexpected character " + string(current)}
		}
	}
	if len(tokens) == 0 {
		return nil, &InvalidTypeTagError{Input: raw, Reason: "type tag cannot be empty"}
	}
	return tokens, nil
}

type typeParser struct {
	input    string
	tokens   []string
	position int
}

func (p *typeParser) done() bool {
	return p.position >= len(p.tokens)
}

func (p *typeParser) peek() string {
	if p.done() {
		return ""
	}
	return p.tokens[p.position]
}

func (p *typeParser) next() string {
	token := p.peek()
	if !p.done() {
		p.position++
	}
	return token
}

func (p *typeParser) expect(token string) error {
	if got := p.next(); got != token {
		if got == "" {
			return p.fail("expected %q, reached end of input", token)
		}
		return p.fail("expected %q, got %q", token, got)
	}
	return nil
}

func (p *typeParser) fail(format string, args ...any) error {
	return newInvalidTypeTagError(p.input, format, args...)
}

func (p *typeParser) parseType(depth int) (TypeTag, error) {
	if depth > maxDepth {
		return nil, p.fail("type nesting exceeds %d", maxDepth)
	}

	head := p.next()
	if head == "" {
		return nil, p.fail("expected a type, reached end of input")
	}

	if primitive, ok := primitivesByName[head]; ok && p.peek() != "::" {
		return primitive, nil
	}

	if head == "vector" && p.peek() == "<" {
		p.next()
		element, err := p.parseType(depth + 1)
		if err != nil {
			return nil, err
		}
		if err := p.expect(">"); err != nil {
			return nil, err
		}
		return Vector(element), nil
	}

	return p.parseStruct(head, depth)
}

func (p *typeParser) parseStruct(addressToken string, depth int) (TypeTag, error) {
	address, err := account.ParseAddress(addressToken)
	if err != nil {
		return nil, p.fail("invalid address %q", addressToken)
	}
	if err := p.expect("::"); err != nil {
		return nil, err
	}
	module := p.next()
	if !IsIdentifier(module) {
		return nil, p.fail("invalid module name %q", module)
	}
	if err := p.expect("::"); err != nil {
		return nil, err
	}
	name := p.next()
	if !IsIdentifier(name) {
		return nil, p.fail("invalid struct name %q", name)
	}

	tag := &StructTag{Address: address, Module: module, Name: name}
	if p.peek() != "<" {
		return tag, nil
	}

	p.next()
	for {
		param, err := p.parseType(depth + 1)
		if err != nil {
			return nil, err
		}
		tag.TypeParams = append(tag.TypeParams, param)

		switch p.next() {
		case ",":
			continue
		case ">":
			return tag, nil
		default:
			return nil, p.fail("unterminated type parameter list")
		}
	}
}

// IsIdentifier reports whether value is a valid Move identifier.
func IsIdentifier(value string) bool {
	if value == "" {
		return false
	}
	for index, character := range value {
		if character == '_' || (character >= 'a' && character <= 'z') || (character >= 'A' && character <= 'Z') {
			continue
		}
		if index > 0 && character >= '0' && character <= '9' {
			continue
		}
		return false
	}
	return true
}

// Canonical parses raw and renders it back in canonical form.
func Canonical(raw string) (string, error) {
	tag, err := Parse(raw)
	if err != nil {
		return "", err
	}
	return tag.String(), nil
}
