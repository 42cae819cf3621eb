// Package movepkg reads the Move.toml manifest of a scaffolded project so the
// CLI can decide whether to print the Move contract next steps.
package movepkg

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	toml "github.com/pelletier/go-toml/v2"
)

// ManifestName is the Move package manifest file name.
const ManifestName = "Move.toml"

// SearchDirs lists the project-relative directories probed for a manifest,
// in order. Templates keep their contract under move/.
var SearchDirs = []string{"move", "contract", "."}

// ErrInvalidManifest indicates Move.toml exists but cannot be parsed.
var ErrInvalidManifest = errors.New("movepkg: invalid Move.toml")

// Package describes the parts of a Move package the generator reports on.
type Package struct {
	Dir          string            // project-relative directory holding Move.toml
	Name         string            // [package].name
	Version      string            // [package].version
	Addresses    map[string]string // [addresses], "_" marks a placeholder
	Dependencies []string          // sorted [dependencies] keys
}

// UnsetAddresses returns the sorted named addresses whose value is the
// "_" placeholder and must be supplied at compile time.
func (p *Package) UnsetAddresses() []string {
	var out []string
	for name, addr := range p.Addresses {
		if addr == "_" || addr == "" {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

type manifest struct {
	Package struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"package"`
	Addresses    map[string]string `toml:"addresses"`
	Dependencies map[string]any    `toml:"dependencies"`
}

// Find probes SearchDirs under projectDir and parses the first Move.toml
// found. It returns nil and no error when the project has no Move package.
func Find(projectDir string) (*Package, error) {
	for _, dir := range SearchDirs {
		pkg, err := Load(filepath.Join(projectDir, dir, ManifestName))
		if err != nil {
			return nil, err
		}
		if pkg != nil {
			pkg.Dir = filepath.ToSlash(filepath.Clean(dir))
			return pkg, nil
		}
	}
	return nil, nil
}

// Load parses the manifest at path. A missing file yields nil, nil.
func Load(path string) (*Package, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes Move.toml content.
func Parse(data []byte) (*Package, error) {
	var m manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	if m.Package.Name == "" {
		return nil, fmt.Errorf("%w: missing [package] name", ErrInvalidManifest)
	}

	pkg := &Package{
		Name:      m.Package.Name,
		Version:   m.Package.Version,
		Addresses: m.Addresses,
	}
	if pkg.Addresses == nil {
		pkg.Addresses = map[string]string{}
	}
	for dep := range m.Dependencies {
		pkg.Dependencies = append(pkg.Dependencies, dep)
	}
	sort.Strings(pkg.Dependencies)
	return pkg, nil
}
