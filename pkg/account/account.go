package account

import (
	"encoding/hex"
	"fmt"
	"strings"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

// Account pairs an on-ledger address with the key allowed to sign for it.
// The address normally equals the signer's authentication key; it differs
// only after a key rotation.
type Account struct {
	address Address
	signer  Signer
}

// New creates an Account whose address is derived from the signer.
func New(signer Signer) *Account {
	return &Account{address: signer.AuthenticationKey(), signer: signer}
}

// NewWithAddress creates an Account for a rotated key.
func NewWithAddress(address Address, signer Signer) *Account {
	return &Account{address: address, signer: signer}
}

// Generate creates an Account with a fresh Ed25519 key.
func Generate() (*Account, error) {
	signer, err := GenerateEd25519Signer()
	if err != nil {
		return nil, err
	}
	return New(signer), nil
}

// GenerateSecp256k1 creates an Account with a fresh secp256k1 key.
func GenerateSecp256k1() (*Account, error) {
	signer, err := GenerateSecp256k1Signer()
	if err != nil {
		return nil, err
	}
	return New(signer), nil
}

// LoadKey parses a private key and returns the Account it controls.
//
// Accepted forms are AIP-80 strings (ed25519-priv-0x…, secp256k1-priv-0x…),
// 0x-prefixed or bare 32-byte hex (treated as Ed25519), and DER-encoded
// Ed25519 keys.
func LoadKey(raw string) (*Account, error) {
	signer, err := ParsePrivateKey(raw)
	if err != nil {
		return nil, err
	}
	return New(signer), nil
}

// ParsePrivateKey parses the provided input value.
func ParsePrivateKey(raw string) (Signer, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return nil, fmt.Errorf("private key cannot be empty")
	}

	lower := strings.ToLower(candidate)
	switch {
	case strings.HasPrefix(lower, Secp256k1KeyPrefix):
		decoded, err := decodeKeyHex(candidate[len(Secp256k1KeyPrefix):])
		if err != nil {
			return nil, fmt.Errorf("invalid secp256k1 private key: %w", err)
		}
		return NewSecp256k1Signer(decoded)
	case strings.HasPrefix(lower, Ed25519KeyPrefix):
		decoded, err := decodeKeyHex(candidate[len(Ed25519KeyPrefix):])
		if err != nil {
			return nil, fmt.Errorf("invalid ed25519 private key: %w", err)
		}
		return NewEd25519Signer(decoded)
	}

	decoded, hexErr := decodeKeyHex(candidate)
	if hexErr == nil && len(decoded) == 32 {
		return NewEd25519Signer(decoded)
	}

	derKey, derErr := hedera.PrivateKeyFromStringEd25519(strings.TrimPrefix(lower, "0x"))
	if derErr == nil {
		return newEd25519Signer(derKey), nil
	}

	if hexErr == nil {
		hexErr = fmt.Errorf("expected 32 bytes, got %d", len(decoded))
	}
	return nil, fmt.Errorf(
		"failed to parse private key as raw hex (%v) or DER-encoded ED25519 (%v)",
		hexErr,
		derErr,
	)
}

func decodeKeyHex(value string) ([]byte, error) {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(value), "0x"), "0X")
	if trimmed == "" {
		return nil, fmt.Errorf("hex string is required")
	}
	return hex.DecodeString(trimmed)
}

func (a *Account) Address() Address {
	return a.address
}

func (a *Account) PublicKey() []byte {
	return a.signer.PublicKey()
}

func (a *Account) Signer() Signer {
	return a.signer
}

// Sign signs message with the account's key.
func (a *Account) Sign(message []byte) (Authenticator, error) {
	return a.signer.Sign(message)
}

// PrivateKeyString returns the AIP-80 encoding of the account's key.
func (a *Account) PrivateKeyString() string {
	return a.signer.String()
}
