package project

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// DefaultPackageManager is used when none is configured.
const DefaultPackageManager = "npm"

// minVersions holds the lowest package manager release known to install
// the templates cleanly. Older versions only produce a warning.
var minVersions = map[string]string{
	"npm":  ">= 8.0.0",
	"pnpm": ">= 8.0.0",
	"yarn": ">= 1.22.0",
	"bun":  ">= 1.0.0",
}

// SupportedPackageManagers returns the accepted package manager names.
func SupportedPackageManagers() []string {
	return []string{"npm", "pnpm", "yarn", "bun"}
}

// runFunc executes name with args in dir, streaming combined output to out.
// It returns the exit code, or -1 when the process did not run to completion.
type runFunc func(ctx context.Context, dir string, out io.Writer, name string, args ...string) (int, error)

// InstallOutput summarizes a finished install.
type InstallOutput struct {
	Command  []string
	Version  string // package manager version reported by --version
	Output   string
	Warnings []string
}

// Installer runs the package manager's install command in a project directory.
type Installer struct {
	PackageManager string
	Args           []string  // defaults to ["install"]
	Stream         io.Writer // receives live output; nil discards it
	Logger         *slog.Logger

	lookPath func(string) (string, error)
	run      runFunc
}

// NewInstaller creates an Installer for the named package manager.
func NewInstaller(pm string, args []string, stream io.Writer, logger *slog.Logger) *Installer {
	if pm == "" {
		pm = DefaultPackageManager
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Installer{
		PackageManager: pm,
		Args:           args,
		Stream:         stream,
		Logger:         logger,
		lookPath:       exec.LookPath,
		run:            runCommand,
	}
}

// Install runs "<pm> install" in dir and blocks until it exits. A missing
// package manager or a non-zero exit is reported as *ProcessError.
func (i *Installer) Install(ctx context.Context, dir string) (*InstallOutput, error) {
	args := i.Args
	if len(args) == 0 {
		args = []string{"install"}
	}
	command := append([]string{i.PackageManager}, args...)
	result := &InstallOutput{Command: command}

	bin, err := i.lookPath(i.PackageManager)
	if err != nil {
		return nil, &ProcessError{Step: StepInstall, Command: command, ExitCode: -1, Output: err.Error(), Err: err}
	}

	version, warn := i.preflight(ctx, dir, bin)
	result.Version = version
	if warn != "" {
		result.Warnings = append(result.Warnings, warn)
		i.Logger.Warn("package manager preflight", "manager", i.PackageManager, "warning", warn)
	}

	var buf bytes.Buffer
	out := io.Writer(&buf)
	if i.Stream != nil {
		out = io.MultiWriter(&buf, i.Stream)
	}

	i.Logger.Info("installing dependencies", "dir", dir, "command", strings.Join(command, " "))

	code, err := i.run(ctx, dir, out, bin, args...)
	result.Output = buf.String()
	if err != nil || code != 0 {
		if err == nil {
			err = fmt.Errorf("exit status %d", code)
		}
		return nil, &ProcessError{Step: StepInstall, Command: command, ExitCode: code, Output: result.Output, Err: err}
	}

	return result, nil
}

// preflight queries "<pm> --version" and checks it against minVersions.
// Problems are returned as a warning string, never as an error.
func (i *Installer) preflight(ctx context.Context, dir, bin string) (string, string) {
	var buf bytes.Buffer
	code, err := i.run(ctx, dir, &buf, bin, "--version")
	if err != nil || code != 0 {
		return "", fmt.Sprintf("could not determine %s version", i.PackageManager)
	}

	raw := strings.TrimSpace(buf.String())
	if idx := strings.IndexByte(raw, '\n'); idx >= 0 {
		raw = raw[:idx]
	}
	v, err := semver.NewVersion(strings.TrimPrefix(raw, "v"))
	if err != nil {
		return raw, fmt.Sprintf("unrecognized %s version %q", i.PackageManager, raw)
	}

	want, ok := minVersions[i.PackageManager]
	if !ok {
		return v.String(), ""
	}
	c, err := semver.NewConstraint(want)
	if err != nil {
		return v.String(), ""
	}
	if !c.Check(v) {
		return v.String(), fmt.Sprintf("%s %s is older than the recommended %s", i.PackageManager, v, want)
	}
	return v.String(), ""
}

// runCommand is the production runFunc.
func runCommand(ctx context.Context, dir string, out io.Writer, name string, args ...string) (int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = out
	cmd.Stderr = out

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && ctx.Err() == nil {
		return exitErr.ExitCode(), err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return -1, ctxErr
	}
	return -1, err
}
