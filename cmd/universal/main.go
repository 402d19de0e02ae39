package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/universal/internal/errors"
)

// Set by the linker: -X main.version=... -X main.commit=... -X main.date=...
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		errors.DisableColors()
	}
	if err := newRootCmd().Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "universal",
		Short: "Server-side rendering for component applications",
		Long: `universal renders a component application to HTML on the server.

Each request bootstraps the application into a fresh document, waits for
it to become stable and returns the app root markup together with the
title, meta, link, style and script elements a host places around it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"Path to universal.json or universal.yaml (default: search upward from the working directory)")

	root.AddCommand(
		initCmd(),
		serveCmd(&configPath),
		renderCmd(&configPath),
		versionCmd(),
	)
	return root
}

// status writes a progress line to w. ok marks completed steps.
func status(w io.Writer, ok bool, format string, args ...any) {
	prefix := "  "
	if ok {
		prefix = "✓ "
		if _, noColor := os.LookupEnv("NO_COLOR"); !noColor {
			prefix = "\033[32m✓\033[0m "
		}
	}
	fmt.Fprintf(w, prefix+format+"\n", args...)
}
