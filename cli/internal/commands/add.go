package commands

import (
	"fmt"

	"github.com/kuchuk-borom-debbarma/GitPkg/core"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type addCommand struct{}

func (addCommand) Command() string {
	return "add"
}

func (addCommand) Description() string {
	return "Add a dependency on a repository"
}

func (c addCommand) Build(app *App) *cobra.Command {
	var (
		req     core.AddRequest
		persist persistFlags
	)

	cmd := &cobra.Command{
		Use:   "add <url>",
		Short: c.Description(),
		Long: `Add a dependency on the repository at <url>.

The local path defaults to the last component of the url with any "owner-"
prefix and ".git" suffix removed and dots turned into directories:
  https://example.com/owner/acme-my.lib.git -> my/lib

Branch defaults to master and commit to HEAD. An existing record at the same
path is replaced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := app.workspace()
			if err != nil {
				return err
			}

			url := args[0]
			path := req.Path
			if path == "" {
				path = core.ParsePath(url)
			}
			if _, exists, err := ws.Show(path); err == nil && exists {
				log.Warn().Msgf("Replacing existing dependency %s", path)
			}

			opts := persist.options(cmd, app.Config)
			dep, err := ws.Add(url, req, opts)
			if err != nil {
				return fmt.Errorf("failed to add dependency: %w", err)
			}

			app.printf("Added dependency %s (%s, branch %s, commit %s)\n", dep.Path, dep.URL, dep.Branch, dep.Commit)
			reportDryRun(app, opts)
			return nil
		},
	}

	cmd.Flags().StringVarP(&req.Path, "path", "p", "", "Local path (default derived from the url)")
	cmd.Flags().StringVarP(&req.Branch, "branch", "b", "", "Branch to track (default master)")
	cmd.Flags().StringVarP(&req.Commit, "commit", "c", "", "Tag, branch or hash to pin (default HEAD)")
	persist.register(cmd)
	return cmd
}

func reportDryRun(app *App, opts core.Options) {
	if !opts.Store {
		app.printf("Dry run: %s not written\n", core.ManifestFile)
	}
}

func init() {
	registerCommand(addCommand{})
}
