package account

import (
	"crypto/ed25519"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/hashgraph-online/move-sdk-go/pkg/bcs"
	"golang.org/x/crypto/sha3"
)

// AuthenticatorKind is the account authenticator variant tag.
type AuthenticatorKind uint8

const (
	AuthenticatorEd25519   AuthenticatorKind = 0
	AuthenticatorSingleKey AuthenticatorKind = 2
)

// KeyType is the AnyPublicKey / AnySignature variant tag used by single-key
// authenticators.
type KeyType uint8

const (
	KeyTypeEd25519   KeyType = 0
	KeyTypeSecp256k1 KeyType = 1
)

// Authentication key scheme suffixes.
const (
	schemeEd25519   byte = 0x00
	schemeSingleKey byte = 0x02
)

const (
	ed25519PublicKeyLength   = 32
	ed25519SignatureLength   = 64
	secp256k1PublicKeyLength = 65
	secp256k1SignatureLength = 64
)

// Authenticator proves that the holder of a key approved a signing message.
type Authenticator struct {
	Kind      AuthenticatorKind
	KeyType   KeyType
	PublicKey []byte
	Signature []byte
}

func (a Authenticator) MarshalBCS(serializer *bcs.Serializer) {
	serializer.Uleb128(uint32(a.Kind))
	switch a.Kind {
	case AuthenticatorEd25519:
		serializer.WriteBytes(a.PublicKey)
		serializer.WriteBytes(a.Signature)
	case AuthenticatorSingleKey:
		serializer.Uleb128(uint32(a.KeyType))
		serializer.WriteBytes(a.PublicKey)
		serializer.Uleb128(uint32(a.KeyType))
		serializer.WriteBytes(a.Signature)
	default:
		serializer.SetError(fmt.Errorf("unsupported authenticator kind %d", a.Kind))
	}
}

func (a *Authenticator) UnmarshalBCS(deserializer *bcs.Deserializer) {
	a.Kind = AuthenticatorKind(deserializer.Uleb128())
	switch a.Kind {
	case AuthenticatorEd25519:
		a.KeyType = KeyTypeEd25519
		a.PublicKey = deserializer.ReadBytes()
		a.Signature = deserializer.ReadBytes()
	case AuthenticatorSingleKey:
		a.KeyType = KeyType(deserializer.Uleb128())
		a.PublicKey = deserializer.ReadBytes()
		signatureType := KeyType(deserializer.Uleb128())
		if deserializer.Err() == nil && signatureType != a.KeyType {
			deserializer.SetError(fmt.Errorf("signature type %d does not match key type %d", signatureType, a.KeyType))
			return
		}
		a.Signature = deserializer.ReadBytes()
	default:
		deserializer.SetError(fmt.Errorf("unsupported authenticator kind %d", a.Kind))
	}
}

// AuthenticationKey derives the address controlled by the authenticator's
// public key.
func (a Authenticator) AuthenticationKey() Address {
	switch a.Kind {
	case AuthenticatorSingleKey:
		return singleKeyAuthenticationKey(a.KeyType, a.PublicKey)
	default:
		return ed25519AuthenticationKey(a.PublicKey)
	}
}

// Verify checks the signature against message.
func (a Authenticator) Verify(message []byte) bool {
	keyType := a.KeyType
	if a.Kind == AuthenticatorEd25519 {
		keyType = KeyTypeEd25519
	}

	switch keyType {
	case KeyTypeEd25519:
		if len(a.PublicKey) != ed25519PublicKeyLength || len(a.Signature) != ed25519SignatureLength {
			return false
		}
		return ed25519.Verify(ed25519.PublicKey(a.PublicKey), message, a.Signature)
	case KeyTypeSecp256k1:
		return verifySecp256k1(a.PublicKey, message, a.Signature)
	default:
		return false
	}
}

func verifySecp256k1(publicKey []byte, message []byte, signature []byte) bool {
	if len(publicKey) != secp256k1PublicKeyLength || len(signature) != secp256k1SignatureLength {
		return false
	}
	parsedKey, err := btcec.ParsePubKey(publicKey)
	if err != nil {
		return false
	}

	var r, s btcec.ModNScalar
	if overflow := r.SetByteSlice(signature[:32]); overflow {
		return false
	}
	if overflow := s.SetByteSlice(signature[32:]); overflow {
		return false
	}
	// High-S signatures are malleable and rejected by the ledger.
	if s.IsOverHalfOrder() {
		return false
	}

	digest := sha3.Sum256(message)
	return ecdsa.NewSignature(&r, &s).Verify(digest[:], parsedKey)
}

func ed25519AuthenticationKey(publicKey []byte) Address {
	hasher := sha3.New256()
	hasher.Write(publicKey)
	hasher.Write([]byte{schemeEd25519})

	var address Address
	copy(address[:], hasher.Sum(nil))
	return address
}

func singleKeyAuthenticationKey(keyType KeyType, publicKey []byte) Address {
	serializer := bcs.NewSerializer()
	serializer.Uleb128(uint32(keyType))
	serializer.WriteBytes(publicKey)

	hasher := sha3.New256()
	hasher.Write(serializer.ToBytes())
	hasher.Write([]byte{schemeSingleKey})

	var address Address
	copy(address[:], hasher.Sum(nil))
	return address
}
