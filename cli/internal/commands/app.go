package commands

import (
	"fmt"
	"io"

	"github.com/kuchuk-borom-debbarma/GitPkg/cli/internal/config"
	"github.com/kuchuk-borom-debbarma/GitPkg/cli/internal/logging"
	"github.com/kuchuk-borom-debbarma/GitPkg/core"
	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/cobra"
)

const (
	Version = "0.1.0"
	appName = "git-pkg"
)

// App carries what every command needs for one invocation.
type App struct {
	Out    io.Writer
	ErrOut io.Writer

	// Config is filled in before any command runs.
	Config config.Config

	// RepoDir is where the working copy is searched from.
	RepoDir string

	// Open binds a workspace to the working copy enclosing a directory.
	Open func(dir string) (*core.Workspace, error)

	// Lookuper resolves environment variables for the config.
	Lookuper envconfig.Lookuper

	configPath string
	logLevel   string
	verbose    bool
}

// NewApp returns an App wired to the real process environment.
func NewApp(out, errOut io.Writer) *App {
	return &App{
		Out:      out,
		ErrOut:   errOut,
		RepoDir:  ".",
		Open:     core.Open,
		Lookuper: envconfig.OsLookuper(),
	}
}

func (a *App) workspace() (*core.Workspace, error) {
	return a.Open(a.RepoDir)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.Out, format, args...)
}

// setup loads the configuration and installs the logger. Flags given on the
// command line win over config and environment.
func (a *App) setup(cmd *cobra.Command) error {
	path, required := a.configPath, true
	if path == "" {
		path, required = config.DefaultPath(), false
	}

	cfg, err := config.Load(cmd.Context(), config.LoadOptions{
		Path:     path,
		Required: required,
		Lookuper: a.Lookuper,
	})
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	a.Config = cfg

	return logging.Configure(a.ErrOut, cfg.LogLevel, a.verbose)
}

// NewRootCommand builds the git-pkg command tree from the registered commands.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Manage submodule packages through a manifest file",
		Long: `git-pkg records the repositories a project depends on in a .gitpackages
manifest at the root of the working copy. Each dependency is pinned to a url,
a branch and a commit, under a local path.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
	}
	root.SetOut(app.Out)
	root.SetErr(app.ErrOut)

	flags := root.PersistentFlags()
	flags.StringVar(&app.RepoDir, "repo", app.RepoDir, "Directory inside the working copy to operate on")
	flags.StringVar(&app.configPath, "config", "", "Config file path (TOML)")
	flags.StringVar(&app.logLevel, "log-level", "warn", "Log level (trace, debug, info, warn, error, disabled)")
	flags.BoolVarP(&app.verbose, "verbose", "v", false, "Enable debug logging")

	for _, name := range ListCommands() {
		c, _ := GetCommand(name)
		root.AddCommand(c.Build(app))
	}
	return root
}
