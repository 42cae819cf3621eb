package catalog

import (
	"errors"
	"fmt"
)

// Sentinel errors for catalog operations.
var (
	// ErrUnknownTemplate indicates a template identifier is absent from the catalog.
	ErrUnknownTemplate = errors.New("catalog: unknown template")

	// ErrInvalidCatalog indicates the catalog document failed to parse or validate.
	ErrInvalidCatalog = errors.New("catalog: invalid catalog")
)

// UnknownTemplateError reports a template identifier missing from the catalog.
// Reaching it through the wizard indicates a catalog defect, not user error.
type UnknownTemplateError struct {
	Path  string
	Known []string
}

// Error implements the error interface.
func (e *UnknownTemplateError) Error() string {
	return fmt.Sprintf("unknown template %q (known: %v)", e.Path, e.Known)
}

// Unwrap returns ErrUnknownTemplate so errors.Is works.
func (e *UnknownTemplateError) Unwrap() error {
	return ErrUnknownTemplate
}

// SchemaIssue is a single schema violation found while loading a catalog.
type SchemaIssue struct {
	Path    string // Instance location, e.g. "/templates/0/networks"
	Message string
}
