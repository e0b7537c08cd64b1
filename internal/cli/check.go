package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-docdantic/pkg/validation"
)

func (a *app) newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "check",
		Short:        "Verify every nested model reference resolves",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		orch, err := a.setup(cmd)
		if err != nil {
			return err
		}
		reg := orch.Registry()
		result := validation.ValidateRegistry(reg)
		if !result.Valid {
			for _, issue := range result.Issues {
				Errorf(cmd.ErrOrStderr(), "%s", issue)
			}
			return fmt.Errorf("cli: check found %d issue(s)", len(result.Issues))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d models ok\n", len(reg.Models()))
		return nil
	}
	return cmd
}
