package sitegen

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/multierr"

	"github.com/devtechai/sitegen/content"
	"github.com/devtechai/sitegen/patch"
	"github.com/devtechai/sitegen/views"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestApp(t *testing.T, cfg SiteConfig, opts ...Option) *App {
	t.Helper()
	if cfg.OutputDir == "" {
		cfg.OutputDir = t.TempDir()
	}
	a, err := New(cfg, nil, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestEmitServiceExample(t *testing.T) {
	out := t.TempDir()
	rec := content.Record{Filename: "demo.html", Title: "Demo", Subtitle: "x", Category: "Y", Image: "img.jpg", Content: "<p>hi</p>"}
	table := content.Table{Kind: content.KindService, Dir: "services", Records: []content.Record{rec}}

	report, err := Emit(context.Background(), table, out, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Written())

	page := readFile(t, filepath.Join(out, "services", "demo.html"))
	assert.Contains(t, page, "<title>Demo - DevTechAI</title>")
	assert.Contains(t, page, "<p>hi</p>")
	assert.NotContains(t, page, "{title}")
}

func TestEmitOverwrites(t *testing.T) {
	out := t.TempDir()
	path := filepath.Join(out, "services", "demo.html")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	rec := content.Record{Filename: "demo.html", Title: "Demo", Description: "d", Content: "<p>fresh</p>"}
	_, err := Emit(context.Background(), content.Table{Kind: content.KindService, Dir: "services", Records: []content.Record{rec}}, out, nil)
	require.NoError(t, err)
	assert.Contains(t, readFile(t, path), "<p>fresh</p>")
}

func TestEmitContinuesAfterFailure(t *testing.T) {
	out := t.TempDir()
	table := content.Table{Kind: content.KindPortfolio, Dir: "portfolio", Records: []content.Record{
		{Filename: "broken.html", Title: "Broken", Content: "<p>no image</p>"},
		{Filename: "ok.html", Title: "Ok", Subtitle: "s", Category: "c", Image: "i.jpg", Content: "<p>ok</p>"},
		{Filename: "../escape.html", Title: "Escape", Subtitle: "s", Category: "c", Image: "i.jpg", Content: "x"},
	}}

	report, err := Emit(context.Background(), table, out, nil)
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
	assert.Equal(t, 1, report.Written())
	assert.Equal(t, 2, report.Failed())

	var mf *views.MissingFieldError
	assert.True(t, errors.As(err, &mf))
	var verr *content.ValidationError
	assert.True(t, errors.As(err, &verr))

	assert.FileExists(t, filepath.Join(out, "portfolio", "ok.html"))
	assert.NoFileExists(t, filepath.Join(out, "portfolio", "broken.html"))
	assert.NoFileExists(t, filepath.Join(out, "escape.html"))
}

func TestEmitDuplicateFilename(t *testing.T) {
	out := t.TempDir()
	table := content.Table{Kind: content.KindService, Dir: "services", Records: []content.Record{
		{Filename: "a.html", Title: "First", Description: "d", Content: "<p>first</p>"},
		{Filename: "a.html", Title: "Second", Description: "d", Content: "<p>second</p>"},
	}}

	report, err := Emit(context.Background(), table, out, nil)
	require.Error(t, err)
	assert.Equal(t, 1, report.Written())
	assert.Equal(t, 1, report.Failed())
	require.Len(t, report.Pages, 2)
	assert.NoError(t, report.Pages[0].Err)

	var verr *content.ValidationError
	require.True(t, errors.As(report.Pages[1].Err, &verr))
	assert.Equal(t, 1, verr.Index)
	assert.Contains(t, err.Error(), "record 1 (a.html)")

	page := readFile(t, filepath.Join(out, "services", "a.html"))
	assert.Contains(t, page, "<p>first</p>")
	assert.NotContains(t, page, "<p>second</p>")
}

func TestEmitReportsRecordPosition(t *testing.T) {
	out := t.TempDir()
	table := content.Table{Kind: content.KindService, Dir: "services", Records: []content.Record{
		{Filename: "a.html", Title: "A", Description: "d", Content: "x"},
		{Filename: "b.html", Title: "B", Description: "d", Content: "x"},
		{Filename: "c.html", Description: "d", Content: "x"},
	}}

	_, err := Emit(context.Background(), table, out, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record 2 (c.html): title is required")
}

func TestEmitInvalidTable(t *testing.T) {
	out := t.TempDir()
	rec := content.Record{Filename: "a.html", Title: "A", Description: "d", Content: "x"}

	report, err := Emit(context.Background(), content.Table{Kind: content.KindService, Dir: "../outside", Records: []content.Record{rec}}, out, nil)
	require.Error(t, err)
	assert.Empty(t, report.Pages)
	assert.NoDirExists(t, filepath.Join(filepath.Dir(out), "outside"))
}

func TestGenerateDuplicateFilenameFromOption(t *testing.T) {
	a := newTestApp(t, SiteConfig{}, WithTables([]content.Table{{Kind: content.KindService, Dir: "services", Records: []content.Record{
		{Filename: "a.html", Title: "One", Description: "d", Content: "<p>one</p>"},
		{Filename: "a.html", Title: "Two", Description: "d", Content: "<p>two</p>"},
	}}}))

	report, err := a.Generate(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, report.Written())
	assert.Equal(t, 1, report.Failed())
	assert.Contains(t, readFile(t, filepath.Join(a.Config.OutputDir, "services", "a.html")), "<p>one</p>")
}

func TestEmitDirectoryFailure(t *testing.T) {
	out := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(out, "services"), []byte("not a dir"), 0o644))

	rec := content.Record{Filename: "a.html", Title: "A", Description: "d", Content: "x"}
	report, err := Emit(context.Background(), content.Table{Kind: content.KindService, Dir: "services", Records: []content.Record{rec}}, out, nil)
	require.Error(t, err)
	assert.Empty(t, report.Pages)
}

func TestGenerateBuiltin(t *testing.T) {
	a := newTestApp(t, SiteConfig{})

	report, err := a.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 28, report.Written())

	for _, table := range a.Tables() {
		for _, rec := range table.Records {
			assert.FileExists(t, filepath.Join(a.Config.OutputDir, table.Dir, rec.OutputName()))
		}
	}
}

func TestGenerateSelectedKind(t *testing.T) {
	a := newTestApp(t, SiteConfig{})

	report, err := a.Generate(context.Background(), content.KindSolution)
	require.NoError(t, err)
	assert.Equal(t, 8, report.Written())
	assert.NoDirExists(t, filepath.Join(a.Config.OutputDir, "services"))

	only := newTestApp(t, SiteConfig{}, WithTables([]content.Table{{Kind: content.KindService, Dir: "services"}}))
	_, err = only.Generate(context.Background(), content.KindPortfolio)
	assert.Error(t, err)
}

func TestGenerateThenPatch(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	ctx := context.Background()

	_, err := a.Generate(ctx)
	require.NoError(t, err)

	first, err := a.Patch(ctx, PatchOptions{})
	require.NoError(t, err)
	assert.Positive(t, first.Updated())
	assert.Zero(t, first.Failed())

	second, err := a.Patch(ctx, PatchOptions{})
	require.NoError(t, err)
	assert.Zero(t, second.Updated())

	page := readFile(t, filepath.Join(a.Config.OutputDir, "services", "workflow-automation.html"))
	assert.Equal(t, 1, strings.Count(page, patch.MobileMarker))
	assert.Contains(t, page, `<img src="../assets/img/logo.png?v=2"`)
	assert.Contains(t, page, "Madhapur, Hyderabad")
}

func TestPatchCustomSet(t *testing.T) {
	a := newTestApp(t, SiteConfig{Patches: []patch.RuleConfig{
		{Name: "rename", Match: "DevTechAI Portfolio", Replace: "DevTechAI Work"},
		{Name: "broken", Match: "("},
	}})
	ctx := context.Background()
	_, err := a.Generate(ctx, content.KindPortfolio)
	require.NoError(t, err)

	report, err := a.Patch(ctx, PatchOptions{Sets: []string{CustomSet}})
	require.Error(t, err)
	var pe *patch.PatternError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 9, report.Updated())

	_, err = a.Patch(ctx, PatchOptions{Sets: []string{"nope"}})
	assert.Error(t, err)
}

func TestReloadKeepsTablesOnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "services.yaml")
	require.NoError(t, os.WriteFile(path, []byte("kind: service\nrecords:\n- {filename: a.html, title: A, description: d, content: x}\n"), 0o644))

	a := newTestApp(t, SiteConfig{ContentDir: dir})
	require.Len(t, a.Tables(), 1)

	require.NoError(t, os.WriteFile(path, []byte("kind: service\nrecords: [\n"), 0o644))
	assert.Error(t, a.Reload())
	assert.Len(t, a.Tables()[0].Records, 1)
}

func TestWatchRegenerates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "services.yaml")
	write := func(title string) {
		body := "kind: service\nrecords:\n- {filename: a.html, title: " + title + ", description: d, content: x}\n"
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	write("First")

	old := WatchDebounce
	WatchDebounce = 20 * time.Millisecond
	t.Cleanup(func() { WatchDebounce = old })

	a := newTestApp(t, SiteConfig{ContentDir: dir})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Watch(ctx) }()

	out := filepath.Join(a.Config.OutputDir, "services", "a.html")
	require.Eventually(t, func() bool {
		write("Second")
		data, err := os.ReadFile(out)
		return err == nil && strings.Contains(string(data), "<title>Second - DevTechAI</title>")
	}, 5*time.Second, 100*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestWatchNeedsContentDir(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	assert.Error(t, a.Watch(context.Background()))
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base string
		segs []string
		want string
	}{
		{"http://localhost:8000", nil, "http://localhost:8000/"},
		{"https://devtechai.org/", []string{"services", "ai.html"}, "https://devtechai.org/services/ai.html"},
		{"https://devtechai.org/site", []string{"portfolio"}, "https://devtechai.org/site/portfolio/"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segs...); got != tt.want {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segs, got, tt.want)
		}
	}
}

func TestNewNonPositiveDurations(t *testing.T) {
	for _, d := range []time.Duration{0, -time.Second} {
		a := newTestApp(t, SiteConfig{FormRateWindow: d, ShutdownTimeout: d})
		assert.Equal(t, time.Minute, a.Config.FormRateWindow)
		assert.Equal(t, 5*time.Second, a.Config.ShutdownTimeout)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ":8000", cfg.Addr)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, 30, cfg.FormRateLimit)
	assert.Equal(t, time.Minute, cfg.FormRateWindow)
}
