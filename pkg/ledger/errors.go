package ledger

import (
	"errors"
	"fmt"
	"net/http"
)

// Node error codes surfaced in APIError.ErrorCode.
const (
	ErrorCodeAccountNotFound     = "account_not_found"
	ErrorCodeResourceNotFound    = "resource_not_found"
	ErrorCodeTransactionNotFound = "transaction_not_found"
	ErrorCodeVMError             = "vm_error"
	ErrorCodeInvalidInput        = "invalid_input"
)

// TransportError reports a request that never produced a usable response:
// connection failures, timeouts and 5xx replies. Whether the node acted on
// the request is unknown.
type TransportError struct {
	Operation  string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s failed with status %d: %v", e.Operation, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Operation, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError is a 4xx reply from the node.
type APIError struct {
	Operation   string
	StatusCode  int
	Message     string
	ErrorCode   string
	VMErrorCode *int
}

func (e *APIError) Error() string {
	message := e.Message
	if message == "" {
		message = http.StatusText(e.StatusCode)
	}
	if e.ErrorCode != "" {
		return fmt.Sprintf("%s rejected with status %d (%s): %s", e.Operation, e.StatusCode, e.ErrorCode, message)
	}
	return fmt.Sprintf("%s rejected with status %d: %s", e.Operation, e.StatusCode, message)
}

// IsNotFound reports whether err is a 404 from the node.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsTransport reports whether err is a *TransportError.
func IsTransport(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}
