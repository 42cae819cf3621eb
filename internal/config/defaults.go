package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/aptos-labs/create-aptos-dapp/internal/core/project"
)

// Default value constants.
const (
	DefaultSource         = SourceRemote
	DefaultRepoURL        = project.DefaultRepoURL
	DefaultRepoRef        = "main"
	DefaultPackageManager = project.DefaultPackageManager
	DefaultWorkers        = 0

	// EnvPrefix is prepended to every environment variable key.
	EnvPrefix = "CREATE_APTOS_DAPP"

	appDir     = "create-aptos-dapp"
	configName = "config.yaml"
)

// keys lists every configuration key. Each one is bound to its
// CREATE_APTOS_DAPP_<KEY> environment variable.
var keys = []string{
	"source",
	"templates_dir",
	"repo_url",
	"repo_ref",
	"package_manager",
	"install_args",
	"workers",
	"catalog_file",
	"telemetry",
	"telemetry_file",
}

// NewDefaultConfig returns a Config with all fields set to compiled defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Source:         DefaultSource,
		RepoURL:        DefaultRepoURL,
		RepoRef:        DefaultRepoRef,
		PackageManager: DefaultPackageManager,
		InstallArgs:    []string{"install"},
		Workers:        DefaultWorkers,
	}
}

// setDefaults registers compiled defaults on v. Telemetry has no default so
// an unset value leaves the consent question to the wizard.
func setDefaults(v *viper.Viper) {
	d := NewDefaultConfig()
	v.SetDefault("source", d.Source)
	v.SetDefault("templates_dir", d.TemplatesDir)
	v.SetDefault("repo_url", d.RepoURL)
	v.SetDefault("repo_ref", d.RepoRef)
	v.SetDefault("package_manager", d.PackageManager)
	v.SetDefault("install_args", d.InstallArgs)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("catalog_file", "")
	v.SetDefault("telemetry_file", "")
}

// Dir returns the create-aptos-dapp config directory, honouring
// XDG_CONFIG_HOME before the platform default.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDir)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appDir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "."+appDir)
	}
	return filepath.Join(home, ".config", appDir)
}

// FilePath returns the default config file path.
func FilePath() string {
	return filepath.Join(Dir(), configName)
}
