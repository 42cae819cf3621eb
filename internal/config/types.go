package config

// Source values select where template files come from.
const (
	SourceLocal  = "local"
	SourceRemote = "remote"
)

// Config holds the resolved settings for one create-aptos-dapp run.
// Values are populated from config.yaml, CREATE_APTOS_DAPP_* env vars,
// and CLI flags.
type Config struct {
	Source       string `mapstructure:"source"`        // "local" or "remote"
	TemplatesDir string `mapstructure:"templates_dir"` // root of a local template checkout
	RepoURL      string `mapstructure:"repo_url"`
	RepoRef      string `mapstructure:"repo_ref"` // branch; empty means remote HEAD

	PackageManager string   `mapstructure:"package_manager"`
	InstallArgs    []string `mapstructure:"install_args"` // comma-separated when set via env
	Workers        int      `mapstructure:"workers"`      // parallel file copies, 0 = NumCPU

	// CatalogFile replaces the built-in template catalog when set.
	CatalogFile string `mapstructure:"catalog_file"`

	// Telemetry presets the consent question. Nil means ask.
	Telemetry     *bool  `mapstructure:"telemetry"`
	TelemetryFile string `mapstructure:"telemetry_file"`
}
