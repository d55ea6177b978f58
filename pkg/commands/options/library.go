// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"
)

// LibraryOptions captures the library directory override flag.
type LibraryOptions struct {
	Library string
}

// AddLibraryArgs wires library-related flags on the provided command.
func AddLibraryArgs(cmd *cobra.Command, o *LibraryOptions) {
	cmd.Flags().StringVarP(&o.Library, "library", "l", "",
		"Specify the photo library directory.")
}
