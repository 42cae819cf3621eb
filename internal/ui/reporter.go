package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/aptos-labs/create-aptos-dapp/internal/core/project"
)

// Reporter renders pipeline progress. It implements project.Reporter.
// At most one spinner or progress bar is live at a time.
type Reporter struct {
	mu       sync.Mutex
	theme    *Theme
	progress *Progress
	out      io.Writer
	spinner  Spinner
}

var _ project.Reporter = (*Reporter)(nil)

// NewReporter creates a Reporter that writes to out.
func NewReporter(theme *Theme, hm *HeadlessManager, out io.Writer) *Reporter {
	return &Reporter{
		theme:    theme,
		progress: NewProgress(theme, hm, out),
		out:      out,
	}
}

// Phase starts a spinner for name, replacing any running one.
func (r *Reporter) Phase(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
	r.spinner = r.progress.Spinner(name)
}

// Done stops the current spinner and prints msg as a completed step.
func (r *Reporter) Done(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
	_, _ = fmt.Fprintf(r.out, "%s %s\n", r.theme.SuccessMark(), msg)
}

// Fail stops the current spinner and prints err.
func (r *Reporter) Fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
	_, _ = fmt.Fprintf(r.out, "%s %v\n", r.theme.ErrorMark(), err)
}

// Warn prints a non-fatal warning line.
func (r *Reporter) Warn(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = fmt.Fprintf(r.out, "%s %s\n", r.theme.WarningMark(), r.theme.Style(r.theme.Colors.Warning).Render(msg))
}

// StartCopy starts a progress bar over total files.
func (r *Reporter) StartCopy(total int) project.CopyProgress {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
	return &copyProgress{
		bar:   r.progress.Start("Copying template", total),
		total: total,
		out:   r.out,
		theme: r.theme,
	}
}

// Close stops any running spinner.
func (r *Reporter) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
}

func (r *Reporter) stopLocked() {
	if r.spinner != nil {
		r.spinner.Stop()
		r.spinner = nil
	}
}

// copyProgress adapts a ProgressBar to project.CopyProgress.
type copyProgress struct {
	bar    ProgressBar
	total  int
	copied int
	out    io.Writer
	theme  *Theme
	once   sync.Once
}

func (c *copyProgress) Advance(rel string) {
	c.copied++
	c.bar.SetTitle(rel)
	c.bar.Increment(1)
}

func (c *copyProgress) Finish() {
	c.once.Do(func() {
		c.bar.SetTitle("Copying template")
		c.bar.Done()
		_, _ = fmt.Fprintf(c.out, "%s Copied %d of %d files\n", c.theme.SuccessMark(), c.copied, c.total)
	})
}
