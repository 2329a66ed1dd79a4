package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/devtechai/sitegen"
	"github.com/devtechai/sitegen/internal/printer"
	"github.com/devtechai/sitegen/patch"
)

var (
	patchDirs   []string
	patchDryRun bool
)

var patchCmd = &cobra.Command{
	Use:   "patch [set...]",
	Short: "Run maintenance rule sets over the generated HTML",
	Long: fmt.Sprintf(`Patch applies ordered find/replace rules to every .html file directly
inside each target directory and rewrites files whose content changed.
Running a set twice changes nothing the second time.

Sets: %s, %s (rules from the config file).
With no arguments every built-in set runs in that order.`, strings.Join(patch.SetNames(), ", "), sitegen.CustomSet),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()
		return runPatch(cmd, app, sitegen.PatchOptions{Sets: args, Dirs: patchDirs, DryRun: patchDryRun})
	},
}

func init() {
	patchCmd.Flags().StringSliceVar(&patchDirs, "dir", nil, "directories to patch, relative to the output dir (default: each set's own)")
	patchCmd.Flags().BoolVar(&patchDryRun, "dry-run", false, "report changes without writing files")
}

func runPatch(cmd *cobra.Command, app *sitegen.App, opts sitegen.PatchOptions) error {
	names := opts.Sets
	if len(names) == 0 {
		names = patch.SetNames()
	}
	printer.Step("Patching %s with %s", app.Config.OutputDir, strings.Join(names, ", "))

	report, err := app.Patch(cmd.Context(), opts)
	if report == nil {
		return err
	}
	for _, dir := range dedupe(report.Skipped) {
		printer.Warning("%s not found, skipped", dir)
	}
	for _, f := range report.Files {
		switch {
		case f.Err != nil:
			printer.Failure("%s: %v", f.Path, f.Err)
		case f.Updated:
			printer.Info("  updated %s (%s)", f.Path, strings.Join(f.Rules, ", "))
		}
	}
	verb := "Updated"
	if opts.DryRun {
		verb = "Would update"
	}
	printer.Summary(verb, report.Updated(), report.Processed(), report.Failed())

	if err != nil {
		return printer.Error("Patch incomplete", err.Error(),
			[]string{"Fix the rules or files listed above and run sitegen patch again."})
	}
	return nil
}

func dedupe(vals []string) []string {
	seen := make(map[string]struct{}, len(vals))
	var out []string
	for _, v := range vals {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
