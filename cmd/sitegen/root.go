package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/devtechai/sitegen"
	"github.com/devtechai/sitegen/internal/logging"
)

var (
	cfgFile   string
	appConfig sitegen.SiteConfig
	logger    = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "sitegen",
	Short: "Generate, patch and serve the DevTechAI marketing site",
	Long: `sitegen stamps out the service, portfolio and solution pages of the
DevTechAI site from content tables, runs idempotent maintenance rules over
the generated HTML, and serves the result for local development.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cfgFile, cmd.Root().PersistentFlags())
		if err != nil {
			return err
		}
		appConfig = cfg

		l, err := logging.New(cfg.LogLevel)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is ./sitegen.yaml)")
	pf.String("output-dir", "", "site root pages are written to and served from")
	pf.String("content-dir", "", "directory of content tables (default: built-in tables)")
	pf.String("log-level", "", "log level: debug, info, warn or error")

	rootCmd.AddCommand(generateCmd, patchCmd, serveCmd, initCmd, versionCmd)
}

// configFlags maps config keys to the persistent flags that override them.
var configFlags = map[string]string{
	"output_dir":  "output-dir",
	"content_dir": "content-dir",
	"log_level":   "log-level",
}

// loadConfig layers defaults, the config file, SITEGEN_* environment
// variables and explicitly set flags, in increasing priority.
func loadConfig(file string, flags *pflag.FlagSet) (sitegen.SiteConfig, error) {
	v := viper.New()

	def := sitegen.DefaultConfig()
	v.SetDefault("name", def.Name)
	v.SetDefault("url", def.URL)
	v.SetDefault("addr", def.Addr)
	v.SetDefault("output_dir", def.OutputDir)
	v.SetDefault("content_dir", def.ContentDir)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("form_rate_limit", def.FormRateLimit)
	v.SetDefault("form_rate_window", def.FormRateWindow)
	v.SetDefault("shutdown_timeout", def.ShutdownTimeout)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("sitegen")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("SITEGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range configFlags {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return sitegen.SiteConfig{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || file != "" {
			return sitegen.SiteConfig{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg sitegen.SiteConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return sitegen.SiteConfig{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

func newApp() (*sitegen.App, error) {
	return sitegen.New(appConfig, logger)
}
