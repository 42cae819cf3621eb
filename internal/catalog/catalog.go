// Package catalog holds the static table of scaffoldable templates and
// resolves a template identifier to its catalog entry.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aptos-labs/create-aptos-dapp/pkg/models"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Default env settings applied when a catalog entry leaves them empty.
const (
	DefaultEnvFile    = ".env"
	DefaultNetworkKey = "VITE_APP_NETWORK"
)

// Template is a single catalog entry.
type Template struct {
	Path           string             `yaml:"path"`
	Name           string             `yaml:"name"`
	Description    string             `yaml:"description"`
	Doc            string             `yaml:"doc"`
	ProjectType    models.ProjectType `yaml:"project_type"`
	Hidden         bool               `yaml:"hidden"`
	Networks       []models.Network   `yaml:"networks"`
	Frameworks     []string           `yaml:"frameworks"`
	SigningOptions []string           `yaml:"signing_options"`
	Surf           bool               `yaml:"surf"`
	EnvFile        string             `yaml:"env_file"`
	NetworkKey     string             `yaml:"network_key"`
	EnvKeys        []string           `yaml:"env_keys"`
}

// Info returns the Selection view of the template.
func (t Template) Info() models.TemplateInfo {
	return models.TemplateInfo{
		Path:     t.Path,
		Name:     t.Name,
		Doc:      t.Doc,
		Networks: slices.Clone(t.Networks),
	}
}

// AllowsNetwork reports whether n is in the template's legal choice set.
func (t Template) AllowsNetwork(n models.Network) bool {
	return slices.Contains(t.Networks, n)
}

// DefaultNetwork returns testnet when offered, otherwise the first legal network.
func (t Template) DefaultNetwork() models.Network {
	if t.AllowsNetwork(models.DefaultNetwork) || len(t.Networks) == 0 {
		return models.DefaultNetwork
	}
	return t.Networks[0]
}

// Catalog is an ordered, read-only set of templates.
type Catalog struct {
	templates []Template
}

type catalogDocument struct {
	Templates []Template `yaml:"templates"`
}

// Default returns the built-in catalog. It panics if the embedded document
// is invalid, which can only happen through a build defect.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}

// LoadFile reads and validates a catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse validates data against the catalog schema and decodes it.
// Entries missing env settings receive the package defaults.
func Parse(data []byte) (*Catalog, error) {
	issues, err := validateDocument(data)
	if err != nil {
		return nil, err
	}
	if len(issues) > 0 {
		msgs := make([]string, len(issues))
		for i, is := range issues {
			msgs[i] = is.Path + ": " + is.Message
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidCatalog, strings.Join(msgs, "; "))
	}

	var doc catalogDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	seen := make(map[string]bool, len(doc.Templates))
	for i := range doc.Templates {
		t := &doc.Templates[i]
		if seen[t.Path] {
			return nil, fmt.Errorf("%w: duplicate template path %q", ErrInvalidCatalog, t.Path)
		}
		seen[t.Path] = true

		if t.ProjectType == "" {
			t.ProjectType = models.ProjectTypeFullstack
		}
		if t.EnvFile == "" {
			t.EnvFile = DefaultEnvFile
		}
		if t.NetworkKey == "" {
			t.NetworkKey = DefaultNetworkKey
		}
	}

	return &Catalog{templates: doc.Templates}, nil
}

// Resolve returns the catalog entry for path.
func (c *Catalog) Resolve(path string) (Template, error) {
	for _, t := range c.templates {
		if t.Path == path {
			return t, nil
		}
	}
	return Template{}, &UnknownTemplateError{Path: path, Known: c.Paths()}
}

// Templates returns a copy of all entries in catalog order.
func (c *Catalog) Templates() []Template {
	return slices.Clone(c.templates)
}

// Paths returns all template identifiers in catalog order.
func (c *Catalog) Paths() []string {
	paths := make([]string, len(c.templates))
	for i, t := range c.templates {
		paths[i] = t.Path
	}
	return paths
}

// Selectable returns the non-hidden templates for a project type, in order.
func (c *Catalog) Selectable(pt models.ProjectType) []Template {
	var out []Template
	for _, t := range c.templates {
		if !t.Hidden && t.ProjectType == pt {
			out = append(out, t)
		}
	}
	return out
}

// ForProjectType returns the template a project type resolves to when the
// template question is skipped: the first entry of that type, hidden or not.
func (c *Catalog) ForProjectType(pt models.ProjectType) (Template, bool) {
	for _, t := range c.templates {
		if t.ProjectType == pt {
			return t, true
		}
	}
	return Template{}, false
}
