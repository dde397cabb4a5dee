package commands

import (
	"errors"

	"github.com/spf13/cobra"
)

var errUnhealthy = errors.New("dependency check found issues")

type doctorCommand struct{}

func (doctorCommand) Command() string {
	return "doctor"
}

func (doctorCommand) Description() string {
	return "Check dependencies against the working copy and its submodules"
}

func (c doctorCommand) Build(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: c.Description(),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := app.workspace()
			if err != nil {
				return err
			}

			report, healthy, err := ws.Doctor()
			if err != nil {
				return err
			}
			app.printf("%s", report)
			if !healthy {
				return errUnhealthy
			}
			return nil
		},
	}
}

func init() {
	registerCommand(doctorCommand{})
}
