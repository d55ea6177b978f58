package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/foto/pkg/commands/options"
	"tableflip.dev/foto/pkg/runner/months"
	"tableflip.dev/foto/pkg/store"
)

func addMonths(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	mo := &options.MonthOptions{}

	cmd := &cobra.Command{
		Use:     "months [month]",
		Aliases: []string{"groups", "ls"},
		Short:   "List the months of the catalog, or the photos of one month.",
		Example: `
foto months
foto months 2024-05
foto months --all
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				mo.Month = args[0]
			}

			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			cat, err := store.Open(cfg)
			if err != nil {
				return err
			}

			m := months.Months{
				ShowID:  io.ShowID,
				Month:   mo.Month,
				All:     mo.All,
				Catalog: cat,
			}
			return m.Do(cmd.Context())
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddAllMonthsArg(cmd, mo)

	topLevel.AddCommand(cmd)
}
