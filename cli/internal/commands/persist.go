package commands

import (
	"github.com/kuchuk-borom-debbarma/GitPkg/cli/internal/config"
	"github.com/kuchuk-borom-debbarma/GitPkg/core"
	"github.com/spf13/cobra"
)

// persistFlags are shared by every command that changes the manifest.
type persistFlags struct {
	dryRun    bool
	gitCommit bool
	message   string
}

func (p *persistFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&p.dryRun, "dry-run", "n", false, "Do not write the manifest")
	cmd.Flags().BoolVarP(&p.gitCommit, "git-commit", "g", false, "Stage and commit the manifest (opens the editor without -m)")
	cmd.Flags().StringVarP(&p.message, "message", "m", "", "Commit message; implies --git-commit")
}

// options resolves the flags against the config. A message implies a commit;
// a dry run never stores or commits.
func (p *persistFlags) options(cmd *cobra.Command, cfg config.Config) core.Options {
	dryRun := cfg.DryRun
	if cmd.Flags().Changed("dry-run") {
		dryRun = p.dryRun
	}
	commit := cfg.GitCommit
	if cmd.Flags().Changed("git-commit") {
		commit = p.gitCommit
	}
	if p.message != "" {
		commit = true
	}
	if dryRun {
		return core.Options{}
	}
	return core.Options{Store: true, Commit: commit, Message: p.message}
}
