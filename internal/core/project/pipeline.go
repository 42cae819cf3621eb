package project

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/aptos-labs/create-aptos-dapp/internal/catalog"
	"github.com/aptos-labs/create-aptos-dapp/internal/movepkg"
	"github.com/aptos-labs/create-aptos-dapp/internal/telemetry"
	"github.com/aptos-labs/create-aptos-dapp/pkg/models"
)

// State is a step of the scaffolding pipeline.
type State string

// Pipeline states, in execution order. Failed is terminal.
const (
	StatePrompting     State = "prompting"
	StateResolving     State = "resolving"
	StateMaterializing State = "materializing"
	StateWritingEnv    State = "writing-env"
	StateInstalling    State = "installing"
	StateDone          State = "done"
	StateFailed        State = "failed"
)

// Reporter receives progress from the pipeline.
type Reporter interface {
	Phase(name string)
	Done(msg string)
	Fail(err error)
	StartCopy(total int) CopyProgress
}

// CopyProgress tracks file copies during materialization.
type CopyProgress interface {
	Advance(rel string)
	Finish()
}

// Result summarizes a scaffolded project.
type Result struct {
	TargetDir string
	Template  catalog.Template
	Files     []string // relative paths of materialized files
	EnvFile   string
	Install   *InstallOutput   // nil when installation was skipped
	Move      *movepkg.Package // nil when the project has no Move package
	Warnings  []string
}

// PipelineConfig wires the pipeline's collaborators.
type PipelineConfig struct {
	Catalog   *catalog.Catalog
	Source    TemplateSource
	Installer *Installer // nil skips the install step
	Reporter  Reporter   // nil reports nothing
	Events    *telemetry.Emitter
	Logger    *slog.Logger

	// BaseDir is the parent of the target directory. Empty means the
	// working directory.
	BaseDir string
	Workers int
}

// Pipeline sequences resolution, materialization, env writing, and
// installation for one Selection.
type Pipeline struct {
	cfg    PipelineConfig
	logger *slog.Logger

	mu    sync.Mutex
	state State
}

// NewPipeline creates a Pipeline in the Prompting state.
func NewPipeline(cfg PipelineConfig) *Pipeline {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.Catalog == nil {
		cfg.Catalog = catalog.Default()
	}
	if cfg.Source == nil {
		cfg.Source = LocalCatalog{Root: "templates"}
	}
	if cfg.Reporter == nil {
		cfg.Reporter = nopReporter{}
	}
	return &Pipeline{cfg: cfg, logger: logger, state: StatePrompting}
}

// State returns the current pipeline state.
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Pipeline) transition(to State) {
	p.mu.Lock()
	from := p.state
	p.state = to
	p.mu.Unlock()
	p.logger.Debug("pipeline transition", "from", string(from), "to", string(to))
}

// fail moves the pipeline to Failed and reports err.
func (p *Pipeline) fail(sel models.Selection, err error) error {
	failedIn := p.State()
	p.transition(StateFailed)
	p.cfg.Reporter.Fail(err)
	p.logger.Error("scaffold failed", "state", string(failedIn), "error", err)
	_ = p.cfg.Events.Emit(telemetry.KindScaffoldFailed, map[string]string{
		"template": sel.Template.Path,
		"network":  sel.Network.String(),
		"state":    string(failedIn),
		"error":    errorKind(err),
	})
	return err
}

// Execute scaffolds the project described by sel. On failure the pipeline
// is left in StateFailed and the returned error wraps the typed cause.
// Files written before the failure are left in place.
func (p *Pipeline) Execute(ctx context.Context, sel models.Selection) (*Result, error) {
	_ = p.cfg.Events.Emit(telemetry.KindScaffoldStart, map[string]string{
		"template": sel.Template.Path,
		"network":  sel.Network.String(),
	})

	// Resolving
	p.transition(StateResolving)
	p.cfg.Reporter.Phase("Resolving template")

	if err := ValidateProjectName(sel.ProjectName); err != nil {
		return nil, p.fail(sel, err)
	}
	if err := sel.Validate(); err != nil {
		return nil, p.fail(sel, fmt.Errorf("%w: %w", ErrInvalidSelection, err))
	}
	tmpl, err := p.cfg.Catalog.Resolve(sel.Template.Path)
	if err != nil {
		return nil, p.fail(sel, fmt.Errorf("resolve template: %w", err))
	}
	if !tmpl.AllowsNetwork(sel.Network) {
		return nil, p.fail(sel, fmt.Errorf("%w: %w: %s does not offer %s",
			ErrInvalidSelection, models.ErrNetworkNotAllowed, tmpl.Path, sel.Network))
	}

	if err := ctx.Err(); err != nil {
		return nil, p.fail(sel, err)
	}
	srcDir, cleanup, err := p.cfg.Source.Fetch(ctx, tmpl)
	if err != nil {
		return nil, p.fail(sel, fmt.Errorf("fetch template %s: %w", tmpl.Path, err))
	}
	defer cleanup()
	p.cfg.Reporter.Done("Resolved " + tmpl.Name)

	result := &Result{
		TargetDir: filepath.Join(p.cfg.BaseDir, NormalizeProjectName(sel.ProjectName)),
		Template:  tmpl,
	}
	p.logger.Info("scaffolding project",
		"target", result.TargetDir,
		"template", tmpl.Path,
		"network", sel.Network.String(),
	)

	// Materializing
	p.transition(StateMaterializing)
	total, err := CountFiles(srcDir)
	if err != nil {
		return nil, p.fail(sel, fmt.Errorf("scan template: %w", err))
	}
	progress := p.cfg.Reporter.StartCopy(total)
	files, err := Materialize(ctx, srcDir, result.TargetDir, MaterializeOptions{
		Workers: p.cfg.Workers,
		OnFile:  progress.Advance,
	})
	progress.Finish()
	if err != nil {
		return nil, p.fail(sel, fmt.Errorf("materialize: %w", err))
	}
	result.Files = files
	p.logger.Info("template copied", "files", len(files))

	// WritingEnv
	p.transition(StateWritingEnv)
	p.cfg.Reporter.Phase("Writing environment file")
	envPath, err := WriteEnv(result.TargetDir, tmpl, sel)
	if err != nil {
		return nil, p.fail(sel, fmt.Errorf("write env: %w", err))
	}
	result.EnvFile = envPath
	p.cfg.Reporter.Done("Wrote " + tmpl.EnvFile)

	// Installing
	p.transition(StateInstalling)
	if p.cfg.Installer != nil {
		p.cfg.Reporter.Phase("Installing dependencies")
		out, err := p.cfg.Installer.Install(ctx, result.TargetDir)
		if err != nil {
			return nil, p.fail(sel, fmt.Errorf("install dependencies: %w", err))
		}
		result.Install = out
		result.Warnings = append(result.Warnings, out.Warnings...)
		p.cfg.Reporter.Done("Dependencies installed")
	} else {
		p.logger.Info("dependency installation skipped")
	}

	pkg, err := movepkg.Find(result.TargetDir)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("move package: %s", err))
		p.logger.Warn("move package inspection failed", "error", err)
	}
	result.Move = pkg

	p.transition(StateDone)
	_ = p.cfg.Events.Emit(telemetry.KindScaffoldDone, map[string]any{
		"template":  tmpl.Path,
		"network":   sel.Network.String(),
		"files":     len(files),
		"installed": result.Install != nil,
	})
	p.logger.Info("project scaffolded", "target", result.TargetDir, "files", len(files))

	return result, nil
}

// errorKind classifies err for telemetry without leaking paths or output.
func errorKind(err error) string {
	var (
		nameErr *NameError
		ioErr   *IOError
		procErr *ProcessError
	)
	switch {
	case errors.As(err, &nameErr), errors.Is(err, ErrInvalidSelection):
		return "validation"
	case errors.Is(err, catalog.ErrUnknownTemplate):
		return "unknown_template"
	case errors.As(err, &procErr):
		return "process"
	case errors.As(err, &ioErr):
		return "io"
	case errors.Is(err, context.Canceled):
		return "cancelled"
	default:
		return "unexpected"
	}
}

type nopReporter struct{}

func (nopReporter) Phase(string)               {}
func (nopReporter) Done(string)                {}
func (nopReporter) Fail(error)                 {}
func (nopReporter) StartCopy(int) CopyProgress { return nopProgress{} }

type nopProgress struct{}

func (nopProgress) Advance(string) {}
func (nopProgress) Finish()        {}
