package project

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ExcludedNames are never copied from a template, at any depth.
var ExcludedNames = map[string]bool{
	".DS_Store":         true,
	"node_modules":      true,
	"package-lock.json": true,
	".aptos":            true,
	"build":             true,
	".env":              true,
}

// MaterializeOptions tunes Materialize.
type MaterializeOptions struct {
	// Workers bounds concurrent file copies. Zero means runtime.NumCPU().
	Workers int

	// OnFile is called once per copied file or link with its slash-separated
	// relative path. Calls are serialized.
	OnFile func(rel string)
}

// copyJob is one non-directory entry scheduled for copy.
type copyJob struct {
	rel  string
	mode fs.FileMode
	link bool
}

// CountFiles returns how many files and links Materialize would copy from
// templateDir. The reporter uses it to size the progress bar.
func CountFiles(templateDir string) (int, error) {
	_, jobs, err := plan(templateDir)
	if err != nil {
		return 0, err
	}
	return len(jobs), nil
}

// Materialize copies templateDir into targetDir, skipping ExcludedNames.
// Existing files in targetDir are overwritten. Directories are created
// first, then files are copied in parallel. The first failure cancels
// outstanding copies and is returned as *IOError; nothing is rolled back.
// It returns the sorted relative paths of every copied entry.
func Materialize(ctx context.Context, templateDir, targetDir string, opts MaterializeOptions) ([]string, error) {
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return nil, &IOError{Op: "mkdir", Path: targetDir, Err: err}
	}

	dirs, jobs, err := plan(templateDir)
	if err != nil {
		return nil, err
	}

	for _, d := range dirs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dst := filepath.Join(targetDir, filepath.FromSlash(d.rel))
		if err := os.MkdirAll(dst, d.mode.Perm()|0o700); err != nil {
			return nil, &IOError{Op: "mkdir", Path: dst, Err: err}
		}
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			src := filepath.Join(templateDir, filepath.FromSlash(job.rel))
			dst := filepath.Join(targetDir, filepath.FromSlash(job.rel))

			var err error
			if job.link {
				err = copySymlink(src, dst)
			} else {
				err = copyFile(src, dst, job.mode)
			}
			if err != nil {
				return err
			}

			if opts.OnFile != nil {
				mu.Lock()
				opts.OnFile(job.rel)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	files := make([]string, len(jobs))
	for i, job := range jobs {
		files[i] = job.rel
	}
	sort.Strings(files)
	return files, nil
}

// plan walks templateDir and splits it into directories to create and
// entries to copy. Special files are skipped.
func plan(templateDir string) ([]copyJob, []copyJob, error) {
	info, err := os.Stat(templateDir)
	if err != nil {
		return nil, nil, &IOError{Op: "read", Path: templateDir, Err: err}
	}
	if !info.IsDir() {
		return nil, nil, &IOError{Op: "read", Path: templateDir, Err: fs.ErrInvalid}
	}

	var dirs, jobs []copyJob
	walkErr := filepath.WalkDir(templateDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return &IOError{Op: "read", Path: path, Err: err}
		}
		if path == templateDir {
			return nil
		}
		if ExcludedNames[entry.Name()] {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(templateDir, path)
		if err != nil {
			return &IOError{Op: "read", Path: path, Err: err}
		}
		rel = filepath.ToSlash(rel)

		switch {
		case entry.IsDir():
			fi, err := entry.Info()
			if err != nil {
				return &IOError{Op: "read", Path: path, Err: err}
			}
			dirs = append(dirs, copyJob{rel: rel, mode: fi.Mode()})
		case entry.Type()&fs.ModeSymlink != 0:
			jobs = append(jobs, copyJob{rel: rel, link: true})
		case entry.Type().IsRegular():
			fi, err := entry.Info()
			if err != nil {
				return &IOError{Op: "read", Path: path, Err: err}
			}
			jobs = append(jobs, copyJob{rel: rel, mode: fi.Mode().Perm()})
		}
		return nil
	})
	if walkErr != nil {
		return nil, nil, walkErr
	}
	return dirs, jobs, nil
}

// copyFile copies src to dst, preserving permission bits.
func copyFile(src, dst string, mode fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return &IOError{Op: "copy", Path: src, Err: err}
	}
	defer in.Close()

	// An earlier run may have left a read-only copy in place.
	if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
		return &IOError{Op: "copy", Path: dst, Err: err}
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return &IOError{Op: "copy", Path: dst, Err: err}
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return &IOError{Op: "copy", Path: dst, Err: err}
	}
	if err := out.Close(); err != nil {
		return &IOError{Op: "copy", Path: dst, Err: err}
	}
	// OpenFile honours the umask; restore the exact template mode.
	if err := os.Chmod(dst, mode); err != nil {
		return &IOError{Op: "copy", Path: dst, Err: err}
	}
	return nil
}

// copySymlink recreates the link at src as dst with the same target.
func copySymlink(src, dst string) error {
	target, err := os.Readlink(src)
	if err != nil {
		return &IOError{Op: "symlink", Path: src, Err: err}
	}
	if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
		return &IOError{Op: "symlink", Path: dst, Err: err}
	}
	if err := os.Symlink(target, dst); err != nil {
		return &IOError{Op: "symlink", Path: dst, Err: err}
	}
	return nil
}
