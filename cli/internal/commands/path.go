package commands

import (
	"github.com/kuchuk-borom-debbarma/GitPkg/core"
	"github.com/spf13/cobra"
)

type pathCommand struct{}

func (pathCommand) Command() string {
	return "path"
}

func (pathCommand) Description() string {
	return "Print the local path a url would be added under"
}

func (c pathCommand) Build(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "path <url>",
		Short: c.Description(),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.printf("%s\n", core.ParsePath(args[0]))
			return nil
		},
	}
}

func init() {
	registerCommand(pathCommand{})
}
