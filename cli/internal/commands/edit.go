package commands

import (
	"errors"
	"fmt"

	"github.com/kuchuk-borom-debbarma/GitPkg/core"
	"github.com/spf13/cobra"
)

type editCommand struct{}

func (editCommand) Command() string {
	return "edit"
}

func (editCommand) Description() string {
	return "Change the url, branch or commit of a dependency"
}

func (c editCommand) Build(app *App) *cobra.Command {
	var (
		req     core.EditRequest
		persist persistFlags
	)

	cmd := &cobra.Command{
		Use:   "edit <path>",
		Short: c.Description(),
		Long: `Change the dependency recorded at <path>.

Values not given keep their current setting. With --reset, branch and commit
not given go back to master and HEAD, and unknown variables are dropped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := app.workspace()
			if err != nil {
				return err
			}

			path := args[0]
			opts := persist.options(cmd, app.Config)
			dep, err := ws.Edit(path, req, opts)
			if errors.Is(err, core.ErrNotFound) {
				return fmt.Errorf("dependency %s does not exist yet (use add)", path)
			}
			if err != nil {
				return fmt.Errorf("failed to edit dependency: %w", err)
			}

			app.printf("Updated dependency %s (%s, branch %s, commit %s)\n", dep.Path, dep.URL, dep.Branch, dep.Commit)
			reportDryRun(app, opts)
			return nil
		},
	}

	cmd.Flags().StringVarP(&req.URL, "url", "u", "", "New repository url")
	cmd.Flags().StringVarP(&req.Branch, "branch", "b", "", "Branch to track")
	cmd.Flags().StringVarP(&req.Commit, "commit", "c", "", "Tag, branch or hash to pin")
	cmd.Flags().BoolVar(&req.Reset, "reset", false, "Reset values not given to their defaults")
	persist.register(cmd)
	return cmd
}

func init() {
	registerCommand(editCommand{})
}
