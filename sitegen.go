// Package sitegen builds the DevTechAI marketing site. It emits pages from
// the content tables, runs maintenance patch sets over the generated HTML,
// and serves the result with a small JSON API for local development.
package sitegen

import (
	"fmt"
	"sync"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/devtechai/sitegen/content"
)

// App ties the content tables, the emitter and the dev server together.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Logger *zap.Logger

	mu           sync.RWMutex
	tables       []content.Table
	formLimiter  *FormLimiter
	customRoutes []func(*App)
}

// New creates an App. Tables come from cfg.ContentDir, or the built-in set
// when it is empty, unless WithTables supplies them.
func New(cfg SiteConfig, logger *zap.Logger, opts ...Option) (*App, error) {
	cfg.setDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		Logger: logger,
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.tables == nil {
		tables, err := a.loadTables()
		if err != nil {
			return nil, err
		}
		a.tables = tables
	}

	if cfg.FormRateLimit > 0 {
		a.formLimiter = NewFormLimiter(cfg.FormRateLimit, cfg.FormRateWindow)
	}

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return a, nil
}

func (a *App) loadTables() ([]content.Table, error) {
	if a.Config.ContentDir == "" {
		tables, err := content.Builtin()
		if err != nil {
			return nil, fmt.Errorf("sitegen: load built-in tables: %w", err)
		}
		return tables, nil
	}
	tables, err := content.LoadDir(a.Config.ContentDir)
	if err != nil {
		return nil, fmt.Errorf("sitegen: load tables from %s: %w", a.Config.ContentDir, err)
	}
	return tables, nil
}

// Tables returns the current content tables.
func (a *App) Tables() []content.Table {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.tables
}

// Reload re-reads the tables from their source. On error the previous
// tables stay in place.
func (a *App) Reload() error {
	tables, err := a.loadTables()
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.tables = tables
	a.mu.Unlock()
	return nil
}

// Close releases background resources.
func (a *App) Close() error {
	if a.formLimiter != nil {
		a.formLimiter.Stop()
	}
	return nil
}
