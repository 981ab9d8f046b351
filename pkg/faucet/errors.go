package faucet

import (
	"fmt"

	"github.com/hashgraph-online/move-sdk-go/pkg/account"
)

// FundingError reports a faucet request that did not complete. StatusCode
// is set when the faucet answered with an error status.
type FundingError struct {
	Address    account.Address
	Amount     uint64
	StatusCode int
	Err        error
}

func (e *FundingError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to fund %s with %d (status %d): %v", e.Address, e.Amount, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("failed to fund %s with %d: %v", e.Address, e.Amount, e.Err)
}

func (e *FundingError) Unwrap() error {
	return e.Err
}

// Failed returns the results that carry an error.
func Failed(results []Result) []Result {
	var failed []Result
	for _, result := range results {
		if result.Err != nil {
			failed = append(failed, result)
		}
	}
	return failed
}
