package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

type removeCommand struct{}

func (removeCommand) Command() string {
	return "remove"
}

func (removeCommand) Description() string {
	return "Remove dependencies from the manifest"
}

func (c removeCommand) Build(app *App) *cobra.Command {
	var (
		all     bool
		persist persistFlags
	)

	cmd := &cobra.Command{
		Use:     "remove [path...]",
		Aliases: []string{"rm"},
		Short:   c.Description(),
		Args: func(cmd *cobra.Command, args []string) error {
			if all && len(args) > 0 {
				return fmt.Errorf("--all does not take paths")
			}
			if !all && len(args) == 0 {
				return fmt.Errorf("missing dependency path (or --all)")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := app.workspace()
			if err != nil {
				return err
			}

			opts := persist.options(cmd, app.Config)
			if err := ws.Remove(args, opts); err != nil {
				return fmt.Errorf("failed to remove dependencies: %w", err)
			}

			if all {
				app.printf("Removed all dependencies\n")
			} else {
				for _, p := range args {
					app.printf("Removed dependency %s\n", p)
				}
			}
			reportDryRun(app, opts)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Remove every dependency")
	persist.register(cmd)
	return cmd
}

func init() {
	registerCommand(removeCommand{})
}
