package publisher

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"sort"
	"strings"

	"github.com/hashgraph-online/move-sdk-go/pkg/account"
	"github.com/hashgraph-online/move-sdk-go/pkg/shared"
	"go.uber.org/zap"
)

// DefaultCompilerBinary is the CLI used when CLICompiler.Binary is empty.
const DefaultCompilerBinary = "aptos"

// Compiler turns a Move package directory into publishable artifacts.
type Compiler interface {
	Exists() bool
	Compile(ctx context.Context, packageDir string, namedAddresses map[string]account.Address) (ArtifactPaths, error)
}

// CLICompiler compiles packages with the ledger's command line tool.
type CLICompiler struct {
	Binary    string
	ExtraArgs []string
	Logger    *zap.Logger
}

func (c *CLICompiler) binary() string {
	if strings.TrimSpace(c.Binary) == "" {
		return DefaultCompilerBinary
	}
	return c.Binary
}

// Exists reports whether the compiler binary is on PATH.
func (c *CLICompiler) Exists() bool {
	_, err := exec.LookPath(c.binary())
	return err == nil
}

// Args returns the compiler arguments for packageDir. Named addresses are
// emitted in key order.
func (c *CLICompiler) Args(packageDir string, namedAddresses map[string]account.Address) []string {
	args := []string{"move", "compile", "--save-metadata", "--package-dir", packageDir}
	if len(namedAddresses) > 0 {
		names := make([]string, 0, len(namedAddresses))
		for name := range namedAddresses {
			names = append(names, name)
		}
		sort.Strings(names)
		pairs := make([]string, 0, len(names))
		for _, name := range names {
			pairs = append(pairs, name+"="+namedAddresses[name].StringLong())
		}
		args = append(args, "--named-addresses", strings.Join(pairs, ","))
	}
	return append(args, c.ExtraArgs...)
}

// Compile runs the compiler and locates its output.
func (c *CLICompiler) Compile(
	ctx context.Context,
	packageDir string,
	namedAddresses map[string]account.Address,
) (ArtifactPaths, error) {
	if strings.TrimSpace(packageDir) == "" {
		return ArtifactPaths{}, fmt.Errorf("package directory is required")
	}
	logger := shared.ResolveLogger(c.Logger)
	args := c.Args(packageDir, namedAddresses)

	var output bytes.Buffer
	command := exec.CommandContext(ctx, c.binary(), args...)
	command.Stdout = &output
	command.Stderr = &output

	logger.Info("compiling package",
		zap.String("binary", c.binary()),
		zap.Strings("args", args),
	)
	if err := command.Run(); err != nil {
		if ctx.Err() != nil {
			return ArtifactPaths{}, ctx.Err()
		}
		return ArtifactPaths{}, &CompileError{PackageDir: packageDir, Output: output.String(), Err: err}
	}
	logger.Debug("compiler output", zap.String("output", output.String()))

	return ResolveArtifactPaths(packageDir, "")
}
