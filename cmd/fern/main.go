// Package main provides the CLI for Fern development tools.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/fern-lang/fern/internal/cli"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fern",
		Short: "Fern development tools",
	}

	rootCmd.AddCommand(cli.NewCatalogCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
