package commands

import (
	"github.com/spf13/cobra"
)

type versionCommand struct{}

func (versionCommand) Command() string {
	return "version"
}

func (versionCommand) Description() string {
	return "Print version information"
}

func (c versionCommand) Build(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: c.Description(),
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			app.printf("%s version %s\n", appName, Version)
		},
	}
}

func init() {
	registerCommand(versionCommand{})
}
