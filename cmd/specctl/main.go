// Package main provides the specctl binary, which evaluates the registered
// product specifications against a YAML catalog.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const appName = "specctl"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Evaluate product specifications",
		Long: `specctl filters a product catalog with the registered specifications.

Without --catalog the built-in sample catalog is used.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().IntVar(&opts.threshold, "threshold", 200_000, "minimum price of a high-price product")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	cmd.AddCommand(specsCmd(&opts), filterCmd(&opts))
	return cmd
}
