package publisher

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// PackageName reads the package name from the Move.toml manifest in
// packageDir.
func PackageName(packageDir string) (string, error) {
	path := filepath.Join(packageDir, ManifestFileName)
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read package manifest: %w", err)
	}
	var parsed manifest
	if err := toml.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", path, err)
	}
	name := strings.TrimSpace(parsed.Package.Name)
	if name == "" {
		return "", fmt.Errorf("%s has no package name", path)
	}
	return name, nil
}

// ResolveArtifactPaths locates the compiler output of a package. An empty
// packageName is read from the manifest. Without module names every
// module in the build directory is used, in lexical order.
func ResolveArtifactPaths(packageDir string, packageName string, modules ...string) (ArtifactPaths, error) {
	packageDir = strings.TrimSpace(packageDir)
	if packageDir == "" {
		return ArtifactPaths{}, fmt.Errorf("package directory is required")
	}
	packageName = strings.TrimSpace(packageName)
	if packageName == "" {
		name, err := PackageName(packageDir)
		if err != nil {
			return ArtifactPaths{}, err
		}
		packageName = name
	}

	buildDir := filepath.Join(packageDir, BuildDir, packageName)
	modulesDir := filepath.Join(buildDir, BytecodeModulesDir)
	paths := ArtifactPaths{
		PackageDir:   packageDir,
		PackageName:  packageName,
		MetadataPath: filepath.Join(buildDir, MetadataFileName),
	}

	if len(modules) == 0 {
		matches, err := filepath.Glob(filepath.Join(modulesDir, "*"+ModuleFileExtension))
		if err != nil {
			return ArtifactPaths{}, err
		}
		if len(matches) == 0 {
			return ArtifactPaths{}, fmt.Errorf("no compiled modules found in %s", modulesDir)
		}
		sort.Strings(matches)
		paths.ModulePaths = matches
		return paths, nil
	}

	for _, module := range modules {
		module = strings.TrimSuffix(strings.TrimSpace(module), ModuleFileExtension)
		if module == "" {
			return ArtifactPaths{}, fmt.Errorf("module name cannot be empty")
		}
		paths.ModulePaths = append(paths.ModulePaths, filepath.Join(modulesDir, module+ModuleFileExtension))
	}
	return paths, nil
}

// Load reads the metadata and module files.
func (p ArtifactPaths) Load() (Artifact, error) {
	metadata, err := os.ReadFile(p.MetadataPath)
	if err != nil {
		return Artifact{}, fmt.Errorf("failed to read package metadata: %w", err)
	}
	artifact := Artifact{Metadata: metadata}
	for _, path := range p.ModulePaths {
		module, err := os.ReadFile(path)
		if err != nil {
			return Artifact{}, fmt.Errorf("failed to read module: %w", err)
		}
		artifact.Modules = append(artifact.Modules, module)
	}
	return artifact, nil
}

// ReadArtifact resolves and loads the compiler output of a package.
func ReadArtifact(packageDir string, packageName string, modules ...string) (Artifact, error) {
	paths, err := ResolveArtifactPaths(packageDir, packageName, modules...)
	if err != nil {
		return Artifact{}, err
	}
	return paths.Load()
}
