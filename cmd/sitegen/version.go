package main

import (
	"github.com/spf13/cobra"

	"github.com/devtechai/sitegen/internal/printer"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the sitegen version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		printer.Info("sitegen %s", version)
		return nil
	},
}
