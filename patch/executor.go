package patch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/natefinch/atomic"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// NotIdempotentError is returned for a file whose rules change their own
// output. The file is not written.
type NotIdempotentError struct {
	Path  string
	Rules []string
	Diff  string
}

func (e *NotIdempotentError) Error() string {
	return fmt.Sprintf("patch: %s: rules not idempotent: %s", e.Path, strings.Join(e.Rules, ", "))
}

// FileResult is the outcome for one file.
type FileResult struct {
	Path    string
	Updated bool
	Rules   []string // rules that changed the file
	Err     error
}

// Report summarises one executor run.
type Report struct {
	Files   []FileResult
	Skipped []string // directories that do not exist
}

// Processed is the number of files examined.
func (r *Report) Processed() int { return len(r.Files) }

// Updated is the number of files rewritten (or, in a dry run, that would be).
func (r *Report) Updated() int {
	n := 0
	for _, f := range r.Files {
		if f.Updated {
			n++
		}
	}
	return n
}

// Failed is the number of files that could not be patched.
func (r *Report) Failed() int {
	n := 0
	for _, f := range r.Files {
		if f.Err != nil {
			n++
		}
	}
	return n
}

// Executor applies rules to the HTML files of directories under Root.
type Executor struct {
	Root   string
	DryRun bool

	logger *zap.Logger
}

// NewExecutor returns an executor rooted at root. A nil logger discards output.
func NewExecutor(root string, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{Root: root, logger: logger}
}

// Run applies rules to every .html file directly inside each dir, in name
// order. Failures are recorded per file and processing continues; the
// returned error combines them.
func (x *Executor) Run(ctx context.Context, rules []Rule, dirs ...string) (*Report, error) {
	report := &Report{}
	var errs error
	for _, dir := range dirs {
		files, err := x.htmlFiles(dir)
		if errors.Is(err, fs.ErrNotExist) {
			x.logger.Warn("patch directory not found, skipping", zap.String("dir", dir))
			report.Skipped = append(report.Skipped, dir)
			continue
		}
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}

		f := File{Nested: filepath.Clean(dir) != "."}
		for _, name := range files {
			if err := ctx.Err(); err != nil {
				return report, multierr.Append(errs, err)
			}
			f.Path = filepath.Join(dir, name)
			res := x.patchFile(f, rules)
			if res.Err != nil {
				x.logger.Error("patch failed", zap.String("file", f.Path), zap.Error(res.Err))
				errs = multierr.Append(errs, res.Err)
			} else if res.Updated {
				x.logger.Info("patched", zap.String("file", f.Path), zap.Strings("rules", res.Rules), zap.Bool("dry_run", x.DryRun))
			}
			report.Files = append(report.Files, res)
		}
	}
	return report, errs
}

// RunSet runs a built-in or custom set over its own directories.
func (x *Executor) RunSet(ctx context.Context, set Set) (*Report, error) {
	return x.Run(ctx, set.Rules, set.Dirs...)
}

func (x *Executor) htmlFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(x.Root, dir))
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".html") {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

func (x *Executor) patchFile(f File, rules []Rule) FileResult {
	res := FileResult{Path: f.Path}
	full := filepath.Join(x.Root, f.Path)

	data, err := os.ReadFile(full)
	if err != nil {
		res.Err = fmt.Errorf("patch: read %s: %w", f.Path, err)
		return res
	}
	orig := string(data)

	out, changed, err := Apply(rules, f, orig)
	if err != nil {
		res.Err = fmt.Errorf("patch: %s: %w", f.Path, err)
		return res
	}
	if out == orig {
		return res
	}

	again, unstable, err := Apply(rules, f, out)
	if err != nil {
		res.Err = fmt.Errorf("patch: %s: %w", f.Path, err)
		return res
	}
	if again != out {
		res.Err = &NotIdempotentError{Path: f.Path, Rules: unstable, Diff: cmp.Diff(out, again)}
		return res
	}

	res.Rules = changed
	res.Updated = true
	if x.DryRun {
		return res
	}
	if err := atomic.WriteFile(full, strings.NewReader(out)); err != nil {
		res.Updated = false
		res.Err = fmt.Errorf("patch: write %s: %w", f.Path, err)
	}
	return res
}
