package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/foto/pkg/commands/options"
	"tableflip.dev/foto/pkg/runner/scan"
	"tableflip.dev/foto/pkg/store"
)

func addScan(topLevel *cobra.Command) {
	lo := &options.LibraryOptions{}

	cmd := &cobra.Command{
		Use:   "scan [dir]",
		Short: "Index the images of the library into the catalog.",
		Example: `
foto scan
foto scan ~/Pictures/2024
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			if lo.Library != "" {
				cfg.LibraryDir = lo.Library
			}
			if len(args) == 1 {
				cfg.LibraryDir = args[0]
			}

			cat, err := store.Open(cfg)
			if err != nil {
				return err
			}

			s := scan.Scan{
				Dir:     cfg.LibraryDir,
				Catalog: cat,
			}
			return s.Do(cmd.Context())
		},
	}

	options.AddLibraryArgs(cmd, lo)

	topLevel.AddCommand(cmd)
}
