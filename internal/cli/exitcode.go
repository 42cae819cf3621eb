package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aptos-labs/create-aptos-dapp/internal/catalog"
	"github.com/aptos-labs/create-aptos-dapp/internal/cli/wizard"
	"github.com/aptos-labs/create-aptos-dapp/internal/config"
	"github.com/aptos-labs/create-aptos-dapp/internal/core/project"
	"github.com/aptos-labs/create-aptos-dapp/internal/ui"
	"github.com/aptos-labs/create-aptos-dapp/pkg/models"
)

// Process exit codes.
const (
	ExitOK              = 0
	ExitUnexpected      = 1
	ExitValidation      = 2
	ExitIO              = 3 // template clone, copy, or env write
	ExitProcess         = 4
	ExitUnknownTemplate = 5
	ExitCancelled       = 130
)

// usageError marks bad flags or arguments.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// reportedError marks a pipeline failure the progress reporter already
// printed. showOutput asks PrintError to echo captured process output.
type reportedError struct {
	err        error
	showOutput bool
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// ExitCode maps err to the process exit code.
func ExitCode(err error) int {
	var (
		procErr *project.ProcessError
		ioErr   *project.IOError
	)
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, wizard.ErrCancelled), errors.Is(err, context.Canceled):
		return ExitCancelled
	case errors.Is(err, catalog.ErrUnknownTemplate):
		return ExitUnknownTemplate
	case isValidation(err):
		return ExitValidation
	case errors.As(err, &procErr):
		if procErr.Step == project.StepClone {
			return ExitIO
		}
		return ExitProcess
	case errors.As(err, &ioErr):
		return ExitIO
	default:
		return ExitUnexpected
	}
}

func isValidation(err error) bool {
	var (
		nameErr  *project.NameError
		usageErr *usageError
		cfgErrs  *config.ValidationErrors
	)
	return errors.As(err, &nameErr) ||
		errors.As(err, &usageErr) ||
		errors.As(err, &cfgErrs) ||
		errors.Is(err, project.ErrInvalidSelection) ||
		errors.Is(err, models.ErrNetworkNotAllowed) ||
		errors.Is(err, wizard.ErrInvalidPreset) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, config.ErrInvalidYAML) ||
		errors.Is(err, catalog.ErrInvalidCatalog)
}

// PrintError writes a one-line diagnostic for err to w. Process failures
// are followed by the captured output, verbatim.
func PrintError(w io.Writer, theme *ui.Theme, err error) {
	if err == nil {
		return
	}
	if ExitCode(err) == ExitCancelled {
		_, _ = fmt.Fprintln(w, theme.Style(theme.Colors.Muted).Render("Cancelled."))
		return
	}

	var reported *reportedError
	if !errors.As(err, &reported) {
		_, _ = fmt.Fprintf(w, "%s Error: %v\n", theme.ErrorMark(), err)
	}

	var procErr *project.ProcessError
	if errors.As(err, &procErr) && procErr.ExitCode >= 0 && (reported == nil || reported.showOutput) {
		if out := strings.TrimRight(procErr.Output, "\n"); out != "" {
			_, _ = fmt.Fprintln(w, out)
		}
	}
}
