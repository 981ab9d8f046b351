package publisher

import (
	"fmt"

	"github.com/hashgraph-online/move-sdk-go/pkg/account"
)

// PackageFormatError reports a publish transaction the ledger rejected at
// execution because of the package contents: malformed bytecode, modules
// declared at another address, or an incompatible upgrade. No module of
// the package was published.
type PackageFormatError struct {
	Sender account.Address
	Err    error
}

func (e *PackageFormatError) Error() string {
	return fmt.Sprintf("package published by %s was rejected: %v", e.Sender, e.Err)
}

func (e *PackageFormatError) Unwrap() error {
	return e.Err
}

// CompileError reports a failed compiler run. Output holds the combined
// compiler output.
type CompileError struct {
	PackageDir string
	Output     string
	Err        error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("failed to compile package %s: %v", e.PackageDir, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}
