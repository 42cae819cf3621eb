package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aptos-labs/create-aptos-dapp/internal/core/project"
)

// Validate checks the configuration for correctness and returns
// *ValidationErrors listing every problem found.
func Validate(cfg *Config) error {
	var errs []ValidationError

	errs = append(errs, validateSource(cfg)...)
	errs = append(errs, validatePackageManager(cfg.PackageManager)...)

	if cfg.Workers < 0 {
		errs = append(errs, ValidationError{
			Field:   "workers",
			Message: "must be zero or positive",
			Value:   cfg.Workers,
			Wrapped: ErrInvalidConfig,
		})
	}

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}

// validateSource checks the source selector and the settings it requires.
func validateSource(cfg *Config) []ValidationError {
	switch cfg.Source {
	case SourceLocal:
		if cfg.TemplatesDir == "" {
			return []ValidationError{{
				Field:   "templates_dir",
				Message: "required when source is local; pass --templates-dir or set CREATE_APTOS_DAPP_TEMPLATES_DIR",
				Wrapped: ErrInvalidConfig,
			}}
		}
	case SourceRemote:
		if cfg.RepoURL == "" {
			return []ValidationError{{
				Field:   "repo_url",
				Message: "required when source is remote",
				Wrapped: ErrInvalidConfig,
			}}
		}
	default:
		return []ValidationError{{
			Field:   "source",
			Message: "must be one of: local, remote",
			Value:   cfg.Source,
			Wrapped: ErrInvalidSource,
		}}
	}
	return nil
}

func validatePackageManager(pm string) []ValidationError {
	valid := project.SupportedPackageManagers()
	if slices.Contains(valid, pm) {
		return nil
	}
	return []ValidationError{{
		Field:   "package_manager",
		Message: fmt.Sprintf("must be one of: %s", strings.Join(valid, ", ")),
		Value:   pm,
		Wrapped: ErrInvalidPackageManager,
	}}
}
