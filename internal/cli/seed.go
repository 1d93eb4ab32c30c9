package cli

import (
	"github.com/spf13/cobra"

	"github.com/Werneck0live/lista-empresas/internal/admin"
)

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Post the bundled sample records that are not there yet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := admin.SeedCompanies(cmd.Context(), a.api, a.log)
			if err != nil {
				return err
			}
			a.printer.Success("seed done, %d created", n)
			return nil
		},
	}
}
