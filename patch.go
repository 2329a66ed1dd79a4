package sitegen

import (
	"context"
	"fmt"

	"go.uber.org/multierr"

	"github.com/devtechai/sitegen/patch"
)

// CustomSet is the name of the patch set built from SiteConfig.Patches.
const CustomSet = "custom"

// PatchOptions selects what App.Patch runs.
type PatchOptions struct {
	Sets   []string // built-in set names or CustomSet; empty runs every built-in set
	Dirs   []string // overrides each set's directories
	DryRun bool
}

// PatchSets resolves set names. Unknown names are an error. Custom rules that
// fail to compile are reported but the rest of the set still runs.
func (a *App) PatchSets(names []string) ([]patch.Set, error) {
	if len(names) == 0 {
		return patch.Sets(), nil
	}
	var (
		sets []patch.Set
		errs error
	)
	for _, name := range names {
		if name == CustomSet {
			rules, err := patch.Compile(a.Config.Patches)
			errs = multierr.Append(errs, err)
			sets = append(sets, patch.Set{Name: CustomSet, Dirs: a.pageDirs(), Rules: rules})
			continue
		}
		s, ok := patch.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("sitegen: unknown patch set %q (have %v and %q)", name, patch.SetNames(), CustomSet)
		}
		sets = append(sets, s)
	}
	return sets, errs
}

// Patch runs patch sets over the output directory, one set after another.
// The report covers every file visited by every set.
func (a *App) Patch(ctx context.Context, opts PatchOptions) (*patch.Report, error) {
	sets, errs := a.PatchSets(opts.Sets)
	if sets == nil && errs != nil {
		return nil, errs
	}

	x := patch.NewExecutor(a.Config.OutputDir, a.Logger)
	x.DryRun = opts.DryRun

	report := &patch.Report{}
	for _, s := range sets {
		if len(opts.Dirs) > 0 {
			s.Dirs = opts.Dirs
		}
		r, err := x.RunSet(ctx, s)
		if r != nil {
			report.Files = append(report.Files, r.Files...)
			report.Skipped = append(report.Skipped, r.Skipped...)
		}
		errs = multierr.Append(errs, err)
		if ctx.Err() != nil {
			break
		}
	}
	return report, errs
}

func (a *App) pageDirs() []string {
	var dirs []string
	for _, t := range a.Tables() {
		dirs = append(dirs, t.Dir)
	}
	return dirs
}
