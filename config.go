package sitegen

import (
	"time"

	"github.com/devtechai/sitegen/content"
	"github.com/devtechai/sitegen/patch"
)

// SiteConfig holds all configuration for a site build and its dev server.
type SiteConfig struct {
	Name string `mapstructure:"name"` // Site name (default "DevTechAI")
	URL  string `mapstructure:"url"`  // Canonical URL used in the sitemap (default "http://localhost:8000")

	Addr       string `mapstructure:"addr"`        // Dev server listen address (default ":8000")
	OutputDir  string `mapstructure:"output_dir"`  // Site root pages are written under and served from (default ".")
	ContentDir string `mapstructure:"content_dir"` // Table directory; empty uses the built-in tables

	LogLevel string `mapstructure:"log_level"` // debug, info, warn or error (default "info")

	FormRateLimit   int           `mapstructure:"form_rate_limit"`  // Form posts per client per window (default 30, negative disables)
	FormRateWindow  time.Duration `mapstructure:"form_rate_window"` // default 1m, also used for non-positive values
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"` // default 5s

	Patches []patch.RuleConfig `mapstructure:"patches"` // Rules for the "custom" patch set
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "DevTechAI"
	}
	if c.URL == "" {
		c.URL = "http://localhost:8000"
	}
	if c.Addr == "" {
		c.Addr = ":8000"
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.FormRateLimit == 0 {
		c.FormRateLimit = 30
	}
	if c.FormRateWindow <= 0 {
		c.FormRateWindow = time.Minute
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = 5 * time.Second
	}
}

// DefaultConfig returns a SiteConfig with every default applied.
func DefaultConfig() SiteConfig {
	var c SiteConfig
	c.setDefaults()
	return c
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithTables replaces the tables the app would otherwise load.
func WithTables(tables []content.Table) Option {
	return func(a *App) {
		a.tables = tables
	}
}
