package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flagKeys maps config keys to the CLI flag that overrides them.
var flagKeys = map[string]string{
	"source":          "source",
	"templates_dir":   "templates-dir",
	"repo_url":        "repo-url",
	"repo_ref":        "repo-ref",
	"package_manager": "package-manager",
}

// Loader layers configuration sources on a private viper instance.
// Precedence, highest first: bound flags, environment, config file, defaults.
// It is thread-safe via sync.Mutex.
type Loader struct {
	mu     sync.Mutex
	v      *viper.Viper
	logger *slog.Logger
	used   string
}

// NewLoader creates a Loader with defaults and environment bindings applied.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	for _, k := range keys {
		// BindEnv only fails when given no key.
		_ = v.BindEnv(k)
	}
	return &Loader{v: v, logger: logger}
}

// BindFlags binds the flags in fs that correspond to configuration keys.
// Flags absent from fs are ignored.
func (l *Loader) BindFlags(fs *pflag.FlagSet) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, name := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := l.v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag --%s: %w", name, err)
		}
	}
	return nil
}

// Set overrides a key with the highest precedence.
func (l *Loader) Set(key string, value any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.v.Set(key, value)
}

// Load reads the config file at path, merges every source, and validates
// the result. An empty path means FilePath(). A missing file is not an
// error; a malformed one is.
func (l *Loader) Load(path string) (*Config, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if path == "" {
		path = FilePath()
	}
	l.v.SetConfigFile(path)
	l.v.SetConfigType("yaml")

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound), errors.Is(err, fs.ErrNotExist):
			l.logger.Debug("config file not found, using defaults", "path", path)
		default:
			return nil, fmt.Errorf("read %s: %w: %v", path, ErrInvalidYAML, err)
		}
	} else {
		l.used = path
		l.logger.Debug("config file loaded", "path", path)
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w: %v", ErrInvalidConfig, err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ConfigFileUsed returns the config file read by the last Load, or "".
func (l *Loader) ConfigFileUsed() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.used
}
