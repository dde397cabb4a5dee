package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

type showCommand struct{}

func (showCommand) Command() string {
	return "show"
}

func (showCommand) Description() string {
	return "Show one dependency"
}

func (c showCommand) Build(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <path>",
		Short: c.Description(),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := app.workspace()
			if err != nil {
				return err
			}

			dep, ok, err := ws.Show(args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("dependency %s does not exist", args[0])
			}

			app.printf("Path:   %s\n", dep.Path)
			app.printf("URL:    %s\n", dep.URL)
			app.printf("Branch: %s\n", dep.Branch)
			app.printf("Commit: %s\n", dep.Commit)

			keys := make([]string, 0, len(dep.Extra))
			for k := range dep.Extra {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				app.printf("  %s = %s\n", k, dep.Extra[k])
			}
			return nil
		},
	}
}

func init() {
	registerCommand(showCommand{})
}
