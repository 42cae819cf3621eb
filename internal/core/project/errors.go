// Package project implements the scaffolding pipeline behind the
// create-aptos-dapp command: project name validation, template sourcing,
// file materialization, environment file generation, dependency
// installation, and the orchestrator that sequences them.
package project

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the project package.
var (
	// ErrEmptyName indicates the project name is empty after trimming.
	ErrEmptyName = errors.New("project name is empty")

	// ErrInvalidChars indicates the project name contains a path separator,
	// a reserved character, a control character, or is "." or "..".
	ErrInvalidChars = errors.New("project name contains invalid characters")

	// ErrNameTooLong indicates the project name exceeds MaxNameLength
	// characters or MaxNameBytes bytes.
	ErrNameTooLong = errors.New("project name is too long")

	// ErrInvalidSelection indicates the Selection handed to the pipeline
	// violates a cross-field invariant.
	ErrInvalidSelection = errors.New("invalid selection")
)

// NameError reports a rejected project name. It is recoverable: the
// prompt engine shows Message and asks again.
type NameError struct {
	Name    string
	Message string
	Wrapped error // sentinel for errors.Is support
}

// Error implements the error interface.
func (e *NameError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("invalid project name: %s", e.Message)
	}
	return fmt.Sprintf("invalid project name %q: %s", e.Name, e.Message)
}

// Unwrap returns the underlying sentinel error.
func (e *NameError) Unwrap() error {
	return e.Wrapped
}

// IOError reports a filesystem failure during scaffolding.
type IOError struct {
	Op   string // mkdir, copy, symlink, write-env, fetch
	Path string
	Err  error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *IOError) Unwrap() error {
	return e.Err
}

// Pipeline steps that run external processes.
const (
	StepClone   = "clone"
	StepInstall = "install"
)

// ProcessError reports a failed external process. Output holds the
// combined stdout and stderr, shown verbatim to the user.
type ProcessError struct {
	Step     string // StepClone or StepInstall
	Command  []string
	ExitCode int // -1 when the process never started or was killed
	Output   string
	Err      error
}

// Error implements the error interface.
func (e *ProcessError) Error() string {
	cmd := strings.Join(e.Command, " ")
	if e.ExitCode >= 0 {
		return fmt.Sprintf("%s exited with code %d", cmd, e.ExitCode)
	}
	return fmt.Sprintf("%s: %v", cmd, e.Err)
}

// Unwrap returns the underlying error.
func (e *ProcessError) Unwrap() error {
	return e.Err
}
