package main

import (
	"context"
	"os"

	"github.com/devtechai/sitegen/internal/printer"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	rootCmd.Version = version
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		if !printer.IsReported(err) {
			printer.Failure("%v", err)
		}
		os.Exit(1)
	}
}
