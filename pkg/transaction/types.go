package transaction

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/hashgraph-online/move-sdk-go/pkg/account"
	"github.com/hashgraph-online/move-sdk-go/pkg/bcs"
	"github.com/hashgraph-online/move-sdk-go/pkg/payload"
	"golang.org/x/crypto/sha3"
)

// Domain separators hashed into signing messages and transaction hashes.
const (
	rawTransactionSalt = "APTOS::RawTransaction"
	transactionSalt    = "APTOS::Transaction"
)

// Transaction authenticator variants.
const (
	authenticatorEd25519      uint32 = 0
	authenticatorSingleSender uint32 = 4
)

// userTransactionVariant tags a signed user transaction inside the
// Transaction enum that the hash covers.
const userTransactionVariant byte = 0

var (
	rawTransactionPrefix = sha3.Sum256([]byte(rawTransactionSalt))
	transactionPrefix    = sha3.Sum256([]byte(transactionSalt))
)

// RawTransaction is an unsigned transaction.
type RawTransaction struct {
	Sender                  account.Address
	SequenceNumber          uint64
	Payload                 payload.Payload
	MaxGasAmount            uint64
	GasUnitPrice            uint64
	ExpirationTimestampSecs uint64
	ChainID                 uint8
}

func (r RawTransaction) MarshalBCS(serializer *bcs.Serializer) {
	serializer.Struct(r.Sender)
	serializer.U64(r.SequenceNumber)
	serializer.Struct(r.Payload)
	serializer.U64(r.MaxGasAmount)
	serializer.U64(r.GasUnitPrice)
	serializer.U64(r.ExpirationTimestampSecs)
	serializer.U8(r.ChainID)
}

func (r *RawTransaction) UnmarshalBCS(deserializer *bcs.Deserializer) {
	deserializer.Struct(&r.Sender)
	r.SequenceNumber = deserializer.U64()
	deserializer.Struct(&r.Payload)
	r.MaxGasAmount = deserializer.U64()
	r.GasUnitPrice = deserializer.U64()
	r.ExpirationTimestampSecs = deserializer.U64()
	r.ChainID = deserializer.U8()
}

// Expiration returns the expiration timestamp as a time.
func (r RawTransaction) Expiration() time.Time {
	return time.Unix(int64(r.ExpirationTimestampSecs), 0)
}

// SigningMessage returns the bytes a sender signs:
// SHA3-256("APTOS::RawTransaction") followed by the BCS encoding.
func (r RawTransaction) SigningMessage() ([]byte, error) {
	encoded, err := bcs.Serialize(r)
	if err != nil {
		return nil, fmt.Errorf("failed to encode raw transaction: %w", err)
	}
	message := make([]byte, 0, len(rawTransactionPrefix)+len(encoded))
	message = append(message, rawTransactionPrefix[:]...)
	return append(message, encoded...), nil
}

// Sign signs the transaction with acct.
func (r RawTransaction) Sign(acct *account.Account) (SignedTransaction, error) {
	message, err := r.SigningMessage()
	if err != nil {
		return SignedTransaction{}, err
	}
	authenticator, err := acct.Sign(message)
	if err != nil {
		return SignedTransaction{}, err
	}
	return SignedTransaction{Raw: r, Authenticator: authenticator}, nil
}

// SignedTransaction is a raw transaction plus the sender's authenticator.
type SignedTransaction struct {
	Raw           RawTransaction
	Authenticator account.Authenticator
}

// MarshalBCS writes the raw transaction followed by the transaction
// authenticator. Ed25519 senders use the legacy Ed25519 variant; other
// key types are wrapped in a single-sender authenticator.
func (s SignedTransaction) MarshalBCS(serializer *bcs.Serializer) {
	serializer.Struct(s.Raw)
	switch s.Authenticator.Kind {
	case account.AuthenticatorEd25519:
		serializer.Struct(s.Authenticator)
	default:
		serializer.Uleb128(authenticatorSingleSender)
		serializer.Struct(s.Authenticator)
	}
}

func (s *SignedTransaction) UnmarshalBCS(deserializer *bcs.Deserializer) {
	deserializer.Struct(&s.Raw)
	if deserializer.Err() != nil {
		return
	}

	variant := deserializer.Uleb128()
	if deserializer.Err() != nil {
		return
	}
	switch variant {
	case authenticatorEd25519:
		s.Authenticator = account.Authenticator{
			Kind:      account.AuthenticatorEd25519,
			KeyType:   account.KeyTypeEd25519,
			PublicKey: deserializer.ReadBytes(),
			Signature: deserializer.ReadBytes(),
		}
	case authenticatorSingleSender:
		deserializer.Struct(&s.Authenticator)
	default:
		deserializer.SetError(fmt.Errorf("unsupported transaction authenticator variant %d", variant))
	}
}

// Bytes returns the BCS encoding submitted to the node.
func (s SignedTransaction) Bytes() ([]byte, error) {
	return bcs.Serialize(s)
}

// Hash returns the 0x-prefixed transaction hash the node reports for s.
func (s SignedTransaction) Hash() (string, error) {
	encoded, err := s.Bytes()
	if err != nil {
		return "", err
	}
	return HashBytes(encoded), nil
}

// Verify checks the signature over the signing message. It does not
// compare the key with the sender's authentication key.
func (s SignedTransaction) Verify() error {
	message, err := s.Raw.SigningMessage()
	if err != nil {
		return err
	}
	if !s.Authenticator.Verify(message) {
		return fmt.Errorf("invalid signature")
	}
	return nil
}

// HashBytes hashes a BCS-encoded signed transaction.
func HashBytes(signedTransaction []byte) string {
	hasher := sha3.New256()
	hasher.Write(transactionPrefix[:])
	hasher.Write([]byte{userTransactionVariant})
	hasher.Write(signedTransaction)
	return hexutil.Encode(hasher.Sum(nil))
}

// Decode parses a BCS-encoded signed transaction.
func Decode(encoded []byte) (SignedTransaction, error) {
	var signed SignedTransaction
	if err := bcs.Deserialize(encoded, &signed); err != nil {
		return SignedTransaction{}, fmt.Errorf("failed to decode signed transaction: %w", err)
	}
	return signed, nil
}
