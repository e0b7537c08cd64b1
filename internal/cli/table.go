package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-docdantic/pkg/directive"
	"github.com/goliatone/go-docdantic/pkg/model"
)

func (a *app) newTableCmd() *cobra.Command {
	var excludes []string

	cmd := &cobra.Command{
		Use:   "table [namespace.Model]",
		Short: "Render the tables of one model",
		Long: "Renders a registered model and its nested models. Without an argument\n" +
			"on a terminal, the model is picked interactively.",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		orch, err := a.setup(cmd)
		if err != nil {
			return err
		}
		exclude, err := parseExcludes(excludes)
		if err != nil {
			return err
		}

		var target string
		if len(args) == 1 {
			target = args[0]
		} else {
			target, err = a.pickModel(orch.Registry().Models())
			if err != nil {
				return err
			}
		}

		table, err := orch.RenderPath(target, directive.Config{Exclude: exclude})
		if err != nil {
			return err
		}
		_, err = io.WriteString(cmd.OutOrStdout(), table)
		return err
	}

	cmd.Flags().StringArrayVarP(&excludes, "exclude", "x", nil, "exclude a field as Model.field (repeatable)")
	return cmd
}

func (a *app) pickModel(models []string) (string, error) {
	if len(models) == 0 {
		return "", errors.New("cli: no models registered, add --openapi or --jsonschema sources")
	}
	if a.isTerminal == nil || !a.isTerminal() {
		return "", errors.New("cli: model path required when stdin is not a terminal")
	}
	return a.selector.Select("Model to render", models)
}

// parseExcludes groups `Model.field` values by model name.
func parseExcludes(values []string) (model.Exclusions, error) {
	if len(values) == 0 {
		return nil, nil
	}
	out := make(model.Exclusions)
	for _, value := range values {
		idx := strings.LastIndex(value, ".")
		if idx <= 0 || idx == len(value)-1 {
			return nil, fmt.Errorf("cli: --exclude expects Model.field, got %q", value)
		}
		name, field := value[:idx], value[idx+1:]
		out[name] = append(out[name], field)
	}
	return out, nil
}
