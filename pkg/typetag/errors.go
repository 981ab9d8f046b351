package typetag

import "fmt"

// InvalidTypeTagError reports a type string that cannot be split into
// address, module and identifier parts.
type InvalidTypeTagError struct {
	Input  string
	Reason string
}

func newInvalidTypeTagError(input string, format string, args ...any) *InvalidTypeTagError {
	return &InvalidTypeTagError{Input: input, Reason: fmt.Sprintf(format, args...)}
}

func (e *InvalidTypeTagError) Error() string {
	if e == nil {
		return "invalid type tag"
	}
	return fmt.Sprintf("invalid type tag %q: %s", e.Input, e.Reason)
}
