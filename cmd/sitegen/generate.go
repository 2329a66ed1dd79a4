package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devtechai/sitegen"
	"github.com/devtechai/sitegen/content"
	"github.com/devtechai/sitegen/internal/printer"
)

var (
	generateKinds []string
	generatePatch bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write every page from the content tables",
	Long: `Generate renders each record of the content tables into its skeleton and
writes it to <output-dir>/<table dir>/<filename>, overwriting existing files.
A page that fails to render is reported and the rest are still written.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		kinds := make([]content.Kind, 0, len(generateKinds))
		for _, s := range generateKinds {
			k, err := content.ParseKind(s)
			if err != nil {
				return err
			}
			kinds = append(kinds, k)
		}

		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		printer.Step("Generating pages into %s", app.Config.OutputDir)
		if err := runGenerate(cmd, app, kinds); err != nil {
			return err
		}
		if generatePatch {
			return runPatch(cmd, app, sitegen.PatchOptions{})
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().StringSliceVar(&generateKinds, "kind", nil, "only generate these kinds (service, portfolio, solution)")
	generateCmd.Flags().BoolVar(&generatePatch, "patch", false, "run every built-in patch set after generating")
}

func runGenerate(cmd *cobra.Command, app *sitegen.App, kinds []content.Kind) error {
	report, err := app.Generate(cmd.Context(), kinds...)
	if report == nil {
		return err
	}
	for _, p := range report.Pages {
		if p.Err != nil {
			printer.Failure("%s: %v", p.Path, p.Err)
			continue
		}
		printer.Info("  wrote %s", p.Path)
	}
	printer.Summary("Wrote", report.Written(), len(report.Pages), report.Failed())

	if err != nil {
		return printer.Error("Generation incomplete",
			fmt.Sprintf("%d page(s) could not be written.", max(report.Failed(), 1)),
			[]string{"Fix the records listed above and run sitegen generate again."})
	}
	return nil
}
