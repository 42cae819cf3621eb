// Package cli provides the Cobra command tree and dependency wiring for
// create-aptos-dapp. This file defines the Dependencies struct
// (Composition Root) that wires the scaffolding components together.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aptos-labs/create-aptos-dapp/internal/catalog"
	"github.com/aptos-labs/create-aptos-dapp/internal/config"
	"github.com/aptos-labs/create-aptos-dapp/internal/core/project"
	"github.com/aptos-labs/create-aptos-dapp/internal/telemetry"
	"github.com/aptos-labs/create-aptos-dapp/internal/ui"
)

// Dependencies holds the services used by CLI commands.
// This is the Composition Root: the only place where concrete types
// are instantiated and wired together.
type Dependencies struct {
	Config   *config.Config
	Catalog  *catalog.Catalog
	Source   project.TemplateSource
	Theme    *ui.Theme
	Headless *ui.HeadlessManager
	Logger   *slog.Logger
	Verbose  bool
}

type depsKey struct{}

// loadDependencies is the root PersistentPreRunE. It loads configuration,
// the template catalog and the template source, and stores them on the
// command context.
func loadDependencies(cmd *cobra.Command, _ []string) error {
	d, err := InitDependencies(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, depsKey{}, d))
	return nil
}

// depsFrom returns the Dependencies stored by loadDependencies.
func depsFrom(cmd *cobra.Command) (*Dependencies, error) {
	d, ok := cmd.Context().Value(depsKey{}).(*Dependencies)
	if !ok || d == nil {
		return nil, errors.New("dependencies not initialized")
	}
	return d, nil
}

// InitDependencies creates and wires the dependencies for cmd from its flags,
// the environment and the config file.
func InitDependencies(cmd *cobra.Command) (*Dependencies, error) {
	verbose := getBoolFlag(cmd, "verbose")
	logger := newLogger(cmd.ErrOrStderr(), verbose)

	loader := config.NewLoader(logger)
	if err := loader.BindFlags(cmd.Flags()); err != nil {
		return nil, err
	}
	cfg, err := loader.Load(getStringFlag(cmd, "config"))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	cat := catalog.Default()
	if cfg.CatalogFile != "" {
		cat, err = catalog.LoadFile(cfg.CatalogFile)
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		logger.Debug("custom catalog loaded", "path", cfg.CatalogFile, "templates", len(cat.Templates()))
	}

	var source project.TemplateSource
	switch cfg.Source {
	case config.SourceLocal:
		source = project.LocalCatalog{Root: cfg.TemplatesDir}
	default:
		source = project.NewRemoteClone(cfg.RepoURL, cfg.RepoRef, logger)
	}

	noColor := getBoolFlag(cmd, "no-color")
	return &Dependencies{
		Config:   cfg,
		Catalog:  cat,
		Source:   source,
		Theme:    ui.NewTheme(ui.ThemeConfig{NoColor: noColor}),
		Headless: ui.NewHeadlessManager(),
		Logger:   logger,
		Verbose:  verbose,
	}, nil
}

// newLogger returns a debug text logger on w when verbose is set and a
// discarding logger otherwise.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// NewInstaller returns the installer for this run, or nil when installation
// is skipped. Output is streamed to w only in verbose mode; otherwise it is
// captured and shown on failure.
func (d *Dependencies) NewInstaller(skip bool, w io.Writer) *project.Installer {
	if skip {
		return nil
	}
	var stream io.Writer
	if d.Verbose {
		stream = w
	}
	return project.NewInstaller(d.Config.PackageManager, d.Config.InstallArgs, stream, d.Logger)
}

// NewEmitter opens the telemetry log when the user consented. Failures
// disable telemetry instead of failing the run.
func (d *Dependencies) NewEmitter(consent bool) *telemetry.Emitter {
	if !consent {
		return nil
	}
	path := d.Config.TelemetryFile
	if path == "" {
		p, err := telemetry.DefaultPath()
		if err != nil {
			d.Logger.Warn("telemetry disabled", "error", err)
			return nil
		}
		path = p
	}
	em, err := telemetry.NewEmitter(path)
	if err != nil {
		d.Logger.Warn("telemetry disabled", "error", err)
		return nil
	}
	d.Logger.Debug("telemetry enabled", "path", path, "run", em.RunID())
	return em
}
