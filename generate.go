package sitegen

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/devtechai/sitegen/content"
	"github.com/devtechai/sitegen/views"
)

// PageResult is the outcome for one emitted page.
type PageResult struct {
	Kind content.Kind
	Path string // relative to the output directory
	Err  error
}

// GenerateReport summarises an emitter run.
type GenerateReport struct {
	Pages []PageResult
}

// Written is the number of pages written successfully.
func (r *GenerateReport) Written() int {
	n := 0
	for _, p := range r.Pages {
		if p.Err == nil {
			n++
		}
	}
	return n
}

// Failed is the number of pages that could not be written.
func (r *GenerateReport) Failed() int {
	return len(r.Pages) - r.Written()
}

func (r *GenerateReport) merge(o *GenerateReport) {
	if o != nil {
		r.Pages = append(r.Pages, o.Pages...)
	}
}

// Generate emits every table of the given kinds, or all tables when none are
// named. Each page is attempted even if others fail.
func (a *App) Generate(ctx context.Context, kinds ...content.Kind) (*GenerateReport, error) {
	tables := a.Tables()
	if len(kinds) > 0 {
		var selected []content.Table
		for _, k := range kinds {
			t, ok := content.Find(tables, k)
			if !ok {
				return nil, fmt.Errorf("sitegen: no %s table loaded", k)
			}
			selected = append(selected, t)
		}
		tables = selected
	}

	report := &GenerateReport{}
	var errs error
	for _, t := range tables {
		r, err := Emit(ctx, t, a.Config.OutputDir, a.Logger)
		report.merge(r)
		errs = multierr.Append(errs, err)
		if ctx.Err() != nil {
			break
		}
	}
	return report, errs
}

// Emit writes one page per record of table into outDir/table.Dir,
// overwriting existing files. Records that fail validation, including a
// repeated filename, are reported and skipped; a table-level problem fails
// the whole table. Writes are atomic, so a failed page never leaves a
// truncated file behind.
func Emit(ctx context.Context, table content.Table, outDir string, logger *zap.Logger) (*GenerateReport, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	report := &GenerateReport{}

	invalid, err := table.RecordErrors()
	if err != nil {
		return report, err
	}

	dir := filepath.Join(outDir, table.Dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return report, fmt.Errorf("sitegen: create %s: %w", dir, err)
	}

	var errs error
	for i, rec := range table.Records {
		if err := ctx.Err(); err != nil {
			return report, multierr.Append(errs, err)
		}
		rel := filepath.Join(table.Dir, rec.OutputName())
		res := PageResult{Kind: table.Kind, Path: rel}
		err := invalid[i]
		if err == nil {
			err = emitPage(ctx, table, rec, filepath.Join(outDir, rel))
		}
		if err != nil {
			res.Err = err
			errs = multierr.Append(errs, err)
			logger.Error("page failed", zap.String("page", rel), zap.Error(err))
		} else {
			logger.Info("page written", zap.String("page", rel), zap.String("kind", string(table.Kind)))
		}
		report.Pages = append(report.Pages, res)
	}
	return report, errs
}

func emitPage(ctx context.Context, table content.Table, rec content.Record, path string) error {
	var buf bytes.Buffer
	if err := views.Page(table, rec).Render(ctx, &buf); err != nil {
		return err
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("sitegen: write %s: %w", path, err)
	}
	return nil
}
