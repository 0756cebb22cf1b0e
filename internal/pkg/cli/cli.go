// Package cli implements the adf-migrate command line tool.
package cli

import (
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command with all subcommands.
func NewRootCommand(stdout io.Writer, stderr io.Writer) *cobra.Command {
	return newRootCommand(stdout, stderr, afero.NewOsFs())
}

func newRootCommand(stdout io.Writer, stderr io.Writer, fs afero.Fs) *cobra.Command {
	root := &cobra.Command{
		Use:           "adf-migrate",
		Short:         "Migrate Azure Data Factory pipeline definitions to Microsoft Fabric.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.AddCommand(transformCommand(stdout, stderr, fs))
	return root
}
