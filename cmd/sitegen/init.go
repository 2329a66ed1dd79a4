package main

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/devtechai/sitegen/content"
	"github.com/devtechai/sitegen/internal/printer"
	"github.com/devtechai/sitegen/scaffold"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create a project with a config file and editable content tables",
	Long: `Init writes sitegen.yaml and a content/ directory holding a copy of the
built-in tables into dir (default: the current directory). Existing files
are left alone unless --force is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		created, err := runInit(dir, initForce)
		for _, p := range created {
			printer.Info("  created %s", p)
		}
		if err != nil {
			return err
		}
		printer.Success("Project ready in %s", dir)
		printer.Info("\nNext steps:\n")
		if dir != "." {
			printer.Info("  cd %s", dir)
		}
		printer.Info("  sitegen generate --patch")
		printer.Info("  sitegen serve --watch")
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing files")
}

// scaffoldData holds the template variables passed to every scaffold template.
type scaffoldData struct {
	SiteName  string
	URL       string
	OutputDir string
	Year      int
}

// runInit writes the scaffold into dir and returns the files it created.
func runInit(dir string, force bool) ([]string, error) {
	data := scaffoldData{
		SiteName:  appConfig.Name,
		URL:       appConfig.URL,
		OutputDir: appConfig.OutputDir,
		Year:      time.Now().Year(),
	}
	if data.SiteName == "" {
		data.SiteName = "DevTechAI"
	}
	if data.URL == "" {
		data.URL = "http://localhost:8000"
	}
	if data.OutputDir == "" {
		data.OutputDir = "."
	}

	var created []string
	write := func(rel string, body []byte) error {
		out := filepath.Join(dir, rel)
		if _, err := os.Stat(out); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", out)
		}
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return err
		}
		if err := atomic.WriteFile(out, bytes.NewReader(body)); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		created = append(created, out)
		return nil
	}

	root := "templates"
	err := fs.WalkDir(scaffold.Templates, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		raw, err := scaffold.Templates.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		if !strings.HasSuffix(rel, ".tmpl") {
			return write(rel, raw)
		}

		tmpl, err := template.New(filepath.Base(path)).Parse(string(raw))
		if err != nil {
			return fmt.Errorf("parse template %s: %w", path, err)
		}
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return fmt.Errorf("execute template %s: %w", path, err)
		}
		return write(strings.TrimSuffix(rel, ".tmpl"), buf.Bytes())
	})
	if err != nil {
		return created, err
	}

	// The tables are copied verbatim so they stay loadable by content.LoadDir.
	tables := content.BuiltinFS()
	err = fs.WalkDir(tables, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		raw, err := fs.ReadFile(tables, path)
		if err != nil {
			return err
		}
		return write(filepath.Join("content", path), raw)
	})
	return created, err
}
