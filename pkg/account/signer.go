package account

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/ethereum/go-ethereum/common/hexutil"
	hedera "github.com/hashgraph/hedera-sdk-go/v2"
	"golang.org/x/crypto/sha3"
)

// AIP-80 private key prefixes.
const (
	Ed25519KeyPrefix   = "ed25519-priv-"
	Secp256k1KeyPrefix = "secp256k1-priv-"
)

// Signer produces authenticators over arbitrary signing messages.
type Signer interface {
	PublicKey() []byte
	AuthenticationKey() Address
	Sign(message []byte) (Authenticator, error)
	// String returns the AIP-80 encoding of the private key.
	String() string
}

// Ed25519Signer signs with an Ed25519 private key.
type Ed25519Signer struct {
	privateKey hedera.PrivateKey
	publicKey  []byte
}

// NewEd25519Signer creates a signer from a 32-byte seed.
func NewEd25519Signer(seed []byte) (*Ed25519Signer, error) {
	if len(seed) != 32 {
		return nil, fmt.Errorf("ed25519 private key must be 32 bytes, got %d", len(seed))
	}
	privateKey, err := hedera.PrivateKeyFromBytesEd25519(seed)
	if err != nil {
		return nil, fmt.Errorf("invalid ed25519 private key: %w", err)
	}
	return newEd25519Signer(privateKey), nil
}

// GenerateEd25519Signer creates a signer with a fresh random key.
func GenerateEd25519Signer() (*Ed25519Signer, error) {
	privateKey, err := hedera.PrivateKeyGenerateEd25519()
	if err != nil {
		return nil, fmt.Errorf("failed to generate ed25519 key: %w", err)
	}
	return newEd25519Signer(privateKey), nil
}

func newEd25519Signer(privateKey hedera.PrivateKey) *Ed25519Signer {
	return &Ed25519Signer{
		privateKey: privateKey,
		publicKey:  privateKey.PublicKey().BytesRaw(),
	}
}

func (s *Ed25519Signer) PublicKey() []byte {
	return append([]byte(nil), s.publicKey...)
}

func (s *Ed25519Signer) AuthenticationKey() Address {
	return ed25519AuthenticationKey(s.publicKey)
}

func (s *Ed25519Signer) Sign(message []byte) (Authenticator, error) {
	signature := s.privateKey.Sign(message)
	if len(signature) != ed25519SignatureLength {
		return Authenticator{}, fmt.Errorf("unexpected ed25519 signature length %d", len(signature))
	}
	return Authenticator{
		Kind:      AuthenticatorEd25519,
		KeyType:   KeyTypeEd25519,
		PublicKey: s.PublicKey(),
		Signature: signature,
	}, nil
}

func (s *Ed25519Signer) String() string {
	return Ed25519KeyPrefix + hexutil.Encode(s.privateKey.BytesRaw())
}

// Secp256k1Signer signs with a secp256k1 key under the single-key scheme.
type Secp256k1Signer struct {
	privateKey *btcec.PrivateKey
	publicKey  []byte
}

// NewSecp256k1Signer creates a signer from a 32-byte scalar.
func NewSecp256k1Signer(raw []byte) (*Secp256k1Signer, error) {
	if len(raw) != 32 {
		return nil, fmt.Errorf("secp256k1 private key must be 32 bytes, got %d", len(raw))
	}
	privateKey, _ := btcec.PrivKeyFromBytes(raw)
	if privateKey.Key.IsZero() {
		return nil, fmt.Errorf("secp256k1 private key cannot be zero")
	}
	return newSecp256k1Signer(privateKey), nil
}

// GenerateSecp256k1Signer creates a signer with a fresh random key.
func GenerateSecp256k1Signer() (*Secp256k1Signer, error) {
	privateKey, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate secp256k1 key: %w", err)
	}
	return newSecp256k1Signer(privateKey), nil
}

func newSecp256k1Signer(privateKey *btcec.PrivateKey) *Secp256k1Signer {
	return &Secp256k1Signer{
		privateKey: privateKey,
		publicKey:  privateKey.PubKey().SerializeUncompressed(),
	}
}

func (s *Secp256k1Signer) PublicKey() []byte {
	return append([]byte(nil), s.publicKey...)
}

func (s *Secp256k1Signer) AuthenticationKey() Address {
	return singleKeyAuthenticationKey(KeyTypeSecp256k1, s.publicKey)
}

// Sign hashes message with SHA3-256 and returns a low-S r||s signature.
func (s *Secp256k1Signer) Sign(message []byte) (Authenticator, error) {
	digest := sha3.Sum256(message)
	compact := ecdsa.SignCompact(s.privateKey, digest[:], false)
	if len(compact) != secp256k1SignatureLength+1 {
		return Authenticator{}, fmt.Errorf("unexpected secp256k1 signature length %d", len(compact))
	}
	return Authenticator{
		Kind:      AuthenticatorSingleKey,
		KeyType:   KeyTypeSecp256k1,
		PublicKey: s.PublicKey(),
		// Drop the recovery byte.
		Signature: compact[1:],
	}, nil
}

func (s *Secp256k1Signer) String() string {
	return Secp256k1KeyPrefix + hexutil.Encode(s.privateKey.Serialize())
}

var (
	_ Signer = (*Ed25519Signer)(nil)
	_ Signer = (*Secp256k1Signer)(nil)
)
