package coin

import (
	"fmt"

	"github.com/hashgraph-online/move-sdk-go/pkg/account"
)

// AlreadyRegisteredError reports that the account already holds a coin
// store for the coin type. The register transaction was committed and
// consumed a sequence number.
type AlreadyRegisteredError struct {
	Account  account.Address
	CoinType string
	Err      error
}

func (e *AlreadyRegisteredError) Error() string {
	return fmt.Sprintf("%s is already registered for %s", e.Account, e.CoinType)
}

func (e *AlreadyRegisteredError) Unwrap() error {
	return e.Err
}

// PermissionError reports a mint by an account that does not hold the
// coin's mint capability.
type PermissionError struct {
	Account  account.Address
	CoinType string
	Err      error
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("%s is not allowed to mint %s", e.Account, e.CoinType)
}

func (e *PermissionError) Unwrap() error {
	return e.Err
}

// NotRegisteredError reports an account without a coin store for the coin
// type. Err is set when the condition was reported by a failed transaction
// rather than by a balance read.
type NotRegisteredError struct {
	Account  account.Address
	CoinType string
	Err      error
}

func (e *NotRegisteredError) Error() string {
	return fmt.Sprintf("%s is not registered for %s", e.Account, e.CoinType)
}

func (e *NotRegisteredError) Unwrap() error {
	return e.Err
}
