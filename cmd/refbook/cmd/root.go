// Package cmd implements the refbook command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/reglet-dev/refbook/application/config"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "refbook",
		Short: "Type-indexed object registry tooling",
		Long: `refbook inspects and exercises the RefBook registry.

Commands:
  schema   - print the JSON Schema of a document
  config   - validate configuration files
  demo     - run a registration scenario and print snapshots`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newSchemaCmd(), newConfigCmd(), newDemoCmd())
	return root
}

// Execute runs the command line against os.Args.
func Execute() error {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		printError(root, err)
		return err
	}
	return nil
}

func printError(c *cobra.Command, err error) {
	fmt.Fprintf(c.ErrOrStderr(), "error: %v\n", err)
}

// loadConfig returns the file's configuration, or the defaults for an empty path.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	if _, err := os.Stat(path); err != nil {
		return config.Config{}, fmt.Errorf("config file: %w", err)
	}
	return config.Load(path)
}
