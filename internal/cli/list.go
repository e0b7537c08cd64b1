package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) newListCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:          "list",
		Short:        "List registered model paths",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		orch, err := a.setup(cmd)
		if err != nil {
			return err
		}
		paths := orch.Registry().Models()
		if all {
			paths = orch.Registry().Paths()
		}
		for _, path := range paths {
			fmt.Fprintln(cmd.OutOrStdout(), path)
		}
		return nil
	}

	cmd.Flags().BoolVar(&all, "all", false, "include enum and scalar declarations")
	return cmd
}
