package payload

import (
	"errors"
	"fmt"
)

var errTrailingBytes = errors.New("argument has trailing bytes")

// InvalidArgumentError reports an argument that its encoder rejected.
type InvalidArgumentError struct {
	Function string
	Index    int
	Encoder  string
	Err      error
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("argument %d of %s (%s): %v", e.Index, e.Function, e.Encoder, e.Err)
}

func (e *InvalidArgumentError) Unwrap() error {
	return e.Err
}

// UnsupportedPayloadError is returned when decoding a payload variant other
// than an entry function.
type UnsupportedPayloadError struct {
	Variant uint32
}

func (e *UnsupportedPayloadError) Error() string {
	return fmt.Sprintf("unsupported transaction payload variant %d", e.Variant)
}
