package project

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/aptos-labs/create-aptos-dapp/internal/catalog"
)

// DefaultRepoURL is the upstream repository holding the templates/ tree.
const DefaultRepoURL = "https://github.com/aptos-labs/create-aptos-dapp.git"

// TemplateSource locates the on-disk directory of a template.
type TemplateSource interface {
	// Fetch returns the template directory and a cleanup function that
	// releases any temporary storage. cleanup is never nil.
	Fetch(ctx context.Context, tmpl catalog.Template) (dir string, cleanup func(), err error)
}

func noop() {}

// LocalCatalog serves templates from a directory tree laid out as
// Root/<template path>.
type LocalCatalog struct {
	Root string
}

// Fetch returns Root/<tmpl.Path>.
func (l LocalCatalog) Fetch(ctx context.Context, tmpl catalog.Template) (string, func(), error) {
	if err := ctx.Err(); err != nil {
		return "", noop, err
	}

	dir := filepath.Join(l.Root, tmpl.Path)
	info, err := os.Stat(dir)
	if err != nil {
		return "", noop, &IOError{Op: "fetch", Path: dir, Err: err}
	}
	if !info.IsDir() {
		return "", noop, &IOError{Op: "fetch", Path: dir, Err: errors.New("not a directory")}
	}
	return dir, noop, nil
}

// cloneFunc matches git.PlainCloneContext so tests can substitute it.
type cloneFunc func(ctx context.Context, path string, isBare bool, o *git.CloneOptions) (*git.Repository, error)

// RemoteClone shallow-clones the template repository into a temporary
// directory and serves templates from its templates/ folder.
type RemoteClone struct {
	URL    string
	Ref    string // branch name; empty means the remote HEAD
	Logger *slog.Logger

	clone cloneFunc
}

// NewRemoteClone creates a RemoteClone for url at branch ref.
func NewRemoteClone(url, ref string, logger *slog.Logger) *RemoteClone {
	if url == "" {
		url = DefaultRepoURL
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &RemoteClone{URL: url, Ref: ref, Logger: logger, clone: git.PlainCloneContext}
}

// Fetch clones the repository and returns <tmp>/templates/<tmpl.Path>.
func (r *RemoteClone) Fetch(ctx context.Context, tmpl catalog.Template) (string, func(), error) {
	tmp, err := os.MkdirTemp("", "create-aptos-dapp-*")
	if err != nil {
		return "", noop, &IOError{Op: "fetch", Path: os.TempDir(), Err: err}
	}
	cleanup := func() { _ = os.RemoveAll(tmp) }

	opts := &git.CloneOptions{
		URL:          r.URL,
		Depth:        1,
		SingleBranch: true,
	}
	if r.Ref != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(r.Ref)
	}

	r.Logger.Debug("cloning template repository", "url", r.URL, "ref", r.Ref, "dir", tmp)

	clone := r.clone
	if clone == nil {
		clone = git.PlainCloneContext
	}
	if _, err := clone(ctx, tmp, false, opts); err != nil {
		cleanup()
		command := []string{"git", "clone", "--depth", "1"}
		if r.Ref != "" {
			command = append(command, "--branch", r.Ref)
		}
		command = append(command, r.URL)
		return "", noop, &ProcessError{Step: StepClone, Command: command, ExitCode: -1, Output: err.Error(), Err: err}
	}

	dir := filepath.Join(tmp, "templates", tmpl.Path)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		cleanup()
		if err == nil {
			err = errors.New("not a directory")
		}
		return "", noop, &IOError{Op: "fetch", Path: filepath.Join("templates", tmpl.Path), Err: fmt.Errorf("%s: %w", r.URL, err)}
	}

	return dir, cleanup, nil
}
