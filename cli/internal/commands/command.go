package commands

import (
	"sort"

	"github.com/spf13/cobra"
)

type Command interface {
	// return the name of the command such as add
	Command() string
	// one line description
	Description() string
	// Build the cobra command bound to app
	Build(app *App) *cobra.Command
}

var commandRegistry = make(map[string]Command)

func registerCommand(command Command) {
	commandRegistry[command.Command()] = command
}

func GetCommand(name string) (Command, bool) {
	cmd, ok := commandRegistry[name]
	return cmd, ok
}

func ListCommands() []string {
	keys := make([]string, 0, len(commandRegistry))
	for k := range commandRegistry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
