package publisher

import (
	"time"

	"github.com/hashgraph-online/move-sdk-go/pkg/transaction"
	"go.uber.org/zap"
)

// Compiler output layout below a package directory.
const (
	BuildDir            = "build"
	BytecodeModulesDir  = "bytecode_modules"
	MetadataFileName    = "package-metadata.bcs"
	ModuleFileExtension = ".mv"
	ManifestFileName    = "Move.toml"
)

// Artifact is a compiled package ready to publish.
type Artifact struct {
	Metadata []byte
	Modules  [][]byte
}

// ArtifactPaths locates the files of a compiled package.
type ArtifactPaths struct {
	PackageDir   string
	PackageName  string
	MetadataPath string
	ModulePaths  []string
}

type Config struct {
	Submitter           *transaction.Submitter
	Tracker             *transaction.Tracker
	Logger              *zap.Logger
	ConfirmationTimeout time.Duration
}

type manifest struct {
	Package struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"package"`
	Addresses map[string]string `toml:"addresses"`
}
