package models

// ProjectType represents the kind of project being scaffolded.
type ProjectType string

const (
	// ProjectTypeFullstack is a frontend dapp with an optional Move package.
	ProjectTypeFullstack ProjectType = "fullstack"
	// ProjectTypeMove is a Move contract package without a frontend.
	ProjectTypeMove ProjectType = "move"
)

// ValidProjectTypes returns all valid project type values.
func ValidProjectTypes() []ProjectType {
	return []ProjectType{ProjectTypeFullstack, ProjectTypeMove}
}

// IsValid checks if the project type is a known value.
func (p ProjectType) IsValid() bool {
	switch p {
	case ProjectTypeFullstack, ProjectTypeMove:
		return true
	}
	return false
}

// Framework names accepted for templates that expose a framework choice.
const (
	FrameworkVite   = "vite"
	FrameworkNextJS = "nextjs"
)

// DefaultProjectName is used when no project name is supplied.
const DefaultProjectName = "my-aptos-dapp"
