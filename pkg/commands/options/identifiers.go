package options

import (
	"github.com/spf13/cobra"
)

// IDOptions captures flags controlling identifier display.
type IDOptions struct {
	ShowID bool
}

// AddShowIDArgs registers the flag that shows catalog ids in listings.
func AddShowIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().BoolVar(&o.ShowID, "show-ids", false,
		"Show the catalog id of each photo.")
}
