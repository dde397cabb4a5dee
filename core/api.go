package core

import (
	"github.com/kuchuk-borom-debbarma/GitPkg/core/internal/dependency"
	"github.com/kuchuk-borom-debbarma/GitPkg/core/internal/dependency/model"
	"github.com/kuchuk-borom-debbarma/GitPkg/core/internal/doctor"
	fileUtil "github.com/kuchuk-borom-debbarma/GitPkg/core/internal/util/file"
	gitUtil "github.com/kuchuk-borom-debbarma/GitPkg/core/internal/util/git"
)

// Dependency is one manifest record.
type Dependency = model.Dependency

// ManifestFile is the manifest name inside the working-copy root.
const ManifestFile = dependency.ManifestFile

var (
	ErrNotFound      = dependency.ErrNotFound
	ErrNotRepository = gitUtil.ErrNotRepository
)

// Committer stages and commits the manifest. An empty message means an
// interactive commit.
type Committer interface {
	Stage(path string) error
	Commit(message string) error
}

// Options says what to do with a change once it is applied in memory.
type Options struct {
	// Store writes the manifest file.
	Store bool
	// Commit stages and commits the manifest file; implies Store.
	Commit bool
	// Message is the commit message; empty opens the editor.
	Message string
}

func (o Options) persist() dependency.Persist {
	return dependency.Persist{Store: o.Store, Commit: o.Commit, Message: o.Message}
}

// AddRequest describes a new dependency. Path defaults to ParsePath(url).
type AddRequest struct {
	Path   string
	Branch string
	Commit string
}

// EditRequest changes an existing dependency. Empty fields keep their current
// value, or fall back to the defaults when Reset is set.
type EditRequest struct {
	URL    string
	Branch string
	Commit string
	Reset  bool
}

// Workspace is the dependency manifest of one git working copy. It lives for
// a single command.
type Workspace struct {
	registry *dependency.Registry
}

// Open locates the working copy enclosing dir and binds a workspace to it.
// Commits go through the git binary.
func Open(dir string) (*Workspace, error) {
	abs, err := fileUtil.Abs(dir)
	if err != nil {
		return nil, err
	}
	root, err := gitUtil.FindRepoRoot(abs)
	if err != nil {
		return nil, err
	}
	return OpenWith(root, gitUtil.Runner{Root: root}), nil
}

// OpenWith binds a workspace to a known root and committer.
func OpenWith(root string, committer Committer) *Workspace {
	return &Workspace{registry: dependency.NewRegistry(root, committer)}
}

// Root returns the working-copy root.
func (w *Workspace) Root() string {
	return w.registry.Root()
}

// ManifestPath returns the manifest location.
func (w *Workspace) ManifestPath() string {
	return w.registry.ManifestPath()
}

// Add records a dependency on url, replacing any record at the same path.
func (w *Workspace) Add(url string, req AddRequest, opts Options) (Dependency, error) {
	return w.registry.AddDependency(dependency.SetRequest{
		URL:    url,
		Path:   req.Path,
		Branch: req.Branch,
		Commit: req.Commit,
	}, opts.persist())
}

// Edit updates the dependency at path. It fails with ErrNotFound before
// changing anything when there is none.
func (w *Workspace) Edit(path string, req EditRequest, opts Options) (Dependency, error) {
	return w.registry.EditDependency(path, dependency.SetRequest{
		URL:    req.URL,
		Branch: req.Branch,
		Commit: req.Commit,
		Reset:  req.Reset,
	}, opts.persist())
}

// Remove deletes the given dependencies, or all of them when paths is empty.
func (w *Workspace) Remove(paths []string, opts Options) error {
	return w.registry.RemoveDependencies(paths, opts.persist())
}

// List returns every dependency sorted by path.
func (w *Workspace) List() ([]Dependency, error) {
	return w.registry.List()
}

// Show returns the dependency at path, if any.
func (w *Workspace) Show(path string) (Dependency, bool, error) {
	return w.registry.Dependency(path)
}

// Render formats the dependency list as text, json, yaml or table.
func (w *Workspace) Render(format string) (string, error) {
	f, err := dependency.ParseFormat(format)
	if err != nil {
		return "", err
	}
	return w.registry.Render(f)
}

// Doctor checks the manifest against the working copy and its submodules. The
// bool is false when any dependency has an issue.
func (w *Workspace) Doctor() (string, bool, error) {
	d, err := doctor.GetDoctor(w.registry)
	if err != nil {
		return "", false, err
	}
	return d.String(), d.Healthy(), nil
}

// ParsePath derives the default dependency path for a repository location.
func ParsePath(url string) string {
	return dependency.ParsePath(url)
}
