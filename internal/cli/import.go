package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cloudnav/cloudnav/internal/seed"
)

func newImportCmd(serverFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Merge a YAML export into the dataset without overwriting anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			imported, err := seed.NewLoader(args[0]).Load()
			if err != nil {
				return err
			}

			env, err := setup(cmd.Context(), *serverFlag)
			if err != nil {
				return err
			}
			defer env.Close()

			links, categories := env.Store.ImportMerge(imported)
			env.Store.Flush()

			fmt.Printf("Imported %d links and %d new categories\n", links, categories)
			return nil
		},
	}
}
