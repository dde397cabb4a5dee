package commands

import (
	"github.com/spf13/cobra"
)

type listCommand struct{}

func (listCommand) Command() string {
	return "list"
}

func (listCommand) Description() string {
	return "List dependencies"
}

func (c listCommand) Build(app *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   c.Description(),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := app.workspace()
			if err != nil {
				return err
			}

			format := app.Config.Output
			if cmd.Flags().Changed("output") {
				format = output
			}
			out, err := ws.Render(format)
			if err != nil {
				return err
			}
			app.printf("%s", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format (text, json, yaml, table)")
	return cmd
}

func init() {
	registerCommand(listCommand{})
}
