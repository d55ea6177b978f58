package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/foto/pkg/commands/options"
	"tableflip.dev/foto/pkg/runner/browse"
	"tableflip.dev/foto/pkg/store"
)

func addBrowse(topLevel *cobra.Command) {
	lo := &options.LibraryOptions{}
	fresh := false

	cmd := &cobra.Command{
		Use:     "browse",
		Aliases: []string{"ui"},
		Short:   "Open the full-screen photo gallery.",
		Example: `
foto browse
foto browse --fresh
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			if lo.Library != "" {
				cfg.LibraryDir = lo.Library
			}

			cat, err := store.Open(cfg)
			if err != nil {
				return err
			}

			b := browse.Browse{
				Catalog: cat,
				Config:  cfg,
				Fresh:   fresh,
			}
			return b.Do(cmd.Context())
		},
	}

	options.AddLibraryArgs(cmd, lo)
	cmd.Flags().BoolVar(&fresh, "fresh", false, "Discard the saved session and start at the top.")

	topLevel.AddCommand(cmd)
}
