package options

import (
	"github.com/spf13/cobra"
)

// MonthOptions captures common month selection flags for commands.
type MonthOptions struct {
	Month string
	All   bool
}

// AddAllMonthsArg registers flags that operate on all months.
func AddAllMonthsArg(cmd *cobra.Command, o *MonthOptions) {
	cmd.Flags().BoolVar(&o.All, "all", false,
		"Expand every month instead of the summary table.")
}
