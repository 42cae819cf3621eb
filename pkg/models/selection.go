package models

import (
	"errors"
	"fmt"
	"slices"
)

// ErrNetworkNotAllowed indicates the selected network is outside the
// template's legal choice set.
var ErrNetworkNotAllowed = errors.New("network not offered by template")

// TemplateInfo is the subset of a catalog entry carried in a Selection.
type TemplateInfo struct {
	Path     string    // Directory name within the template catalog
	Name     string    // Human label
	Doc      string    // Documentation URL
	Networks []Network // Legal network choices for this template
}

// Selection holds the complete answers collected before scaffolding starts.
type Selection struct {
	ProjectName string
	ProjectType ProjectType
	Template    TemplateInfo
	Network     Network

	// Optional axes, only set for templates that expose them.
	Framework     string
	SigningOption string
	UseSurf       bool

	Telemetry bool // Anonymous usage data consent
}

// Validate checks the cross-field invariants of a Selection.
func (s Selection) Validate() error {
	if s.ProjectName == "" {
		return errors.New("selection: project name is empty")
	}
	if s.Template.Path == "" {
		return errors.New("selection: template is not set")
	}
	if !s.Network.IsValid() {
		return fmt.Errorf("selection: unknown network %q", s.Network)
	}
	if len(s.Template.Networks) > 0 && !slices.Contains(s.Template.Networks, s.Network) {
		return fmt.Errorf("selection: %w: %s does not offer %s", ErrNetworkNotAllowed, s.Template.Path, s.Network)
	}
	return nil
}
