package dependency

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/kuchuk-borom-debbarma/GitPkg/core/internal/dependency/model"
	"github.com/kuchuk-borom-debbarma/GitPkg/core/internal/manifest"
	"github.com/rs/zerolog/log"
)

// Committer stages and commits the manifest file. An empty message asks for an
// interactive commit in the user's editor.
type Committer interface {
	Stage(path string) error
	Commit(message string) error
}

// Tracker is implemented by committers that can tell whether a path is already
// known to git.
type Tracker interface {
	Tracked(path string) (bool, error)
}

// SetRequest describes a dependency write. Empty fields are resolved from the
// existing record (unless Reset) and then from the defaults.
type SetRequest struct {
	URL    string
	Path   string
	Branch string
	Commit string
	Reset  bool
}

// Persist controls what happens after an in-memory change. Commit implies
// Store. With neither set the change is only simulated.
type Persist struct {
	Store   bool
	Commit  bool
	Message string
}

// Registry is the dependency view of one working copy's manifest.
//
// It owns the manifest for the duration of one command; nothing is shared
// between registries and concurrent use is not supported.
type Registry struct {
	root      string
	manifest  *manifest.Manifest
	committer Committer
}

// NewRegistry binds a registry to the manifest under root. The manifest is read
// on first use.
func NewRegistry(root string, committer Committer) *Registry {
	return &Registry{
		root:      root,
		manifest:  manifest.New(filepath.Join(root, ManifestFile)),
		committer: committer,
	}
}

// Root returns the working-copy root.
func (r *Registry) Root() string {
	return r.root
}

// ManifestPath returns the absolute manifest location.
func (r *Registry) ManifestPath() string {
	return r.manifest.Path()
}

// Manifest exposes the underlying store.
func (r *Registry) Manifest() *manifest.Manifest {
	return r.manifest
}

// Dependencies returns the record paths, sorted.
func (r *Registry) Dependencies() ([]string, error) {
	if err := r.manifest.Load(); err != nil {
		return nil, err
	}
	return r.manifest.Names(Section), nil
}

// Exists reports whether a record is stored under path.
func (r *Registry) Exists(path string) (bool, error) {
	_, ok, err := r.Dependency(path)
	return ok, err
}

// Dependency returns the record stored under path. Unset branch and commit come
// back as their defaults.
func (r *Registry) Dependency(path string) (model.Dependency, bool, error) {
	if err := r.manifest.Load(); err != nil {
		return model.Dependency{}, false, err
	}
	values := r.manifest.NamedValues(Section, path)
	if values == nil {
		return model.Dependency{}, false, nil
	}
	return toModel(path, values), true, nil
}

// DependencySetting returns one raw variable of a record.
func (r *Registry) DependencySetting(path, variable string) (string, bool, error) {
	if err := r.manifest.Load(); err != nil {
		return "", false, err
	}
	v, ok := r.manifest.NamedValue(Section, path, variable)
	return v, ok, nil
}

// List returns every record, sorted by path.
func (r *Registry) List() ([]model.Dependency, error) {
	paths, err := r.Dependencies()
	if err != nil {
		return nil, err
	}
	deps := make([]model.Dependency, 0, len(paths))
	for _, p := range paths {
		deps = append(deps, toModel(p, r.manifest.NamedValues(Section, p)))
	}
	return deps, nil
}

// SetDependency writes a full record.
//
// Resolution:
//   - path: req.Path, else derived from the url with ParsePath.
//   - url: req.URL, else the existing record's url.
//   - branch/commit: the request value, else the existing value unless Reset,
//     else master/HEAD.
//
// With Reset the record is replaced, dropping any extra variables; otherwise
// the resolved values are merged into it.
func (r *Registry) SetDependency(req SetRequest, persist Persist) (model.Dependency, error) {
	path := req.Path
	if path == "" {
		path = ParsePath(req.URL)
	}
	if err := validatePath(path); err != nil {
		return model.Dependency{}, err
	}

	existing, found, err := r.Dependency(path)
	if err != nil {
		return model.Dependency{}, err
	}

	url := req.URL
	if url == "" {
		url = existing.URL
	}
	if url == "" {
		return model.Dependency{}, fmt.Errorf("dependency %s: %w", path, ErrMissingURL)
	}

	values := map[string]string{
		VarURL:    url,
		VarPath:   path,
		VarBranch: resolve(req.Branch, existing.Branch, found && !req.Reset, DefaultBranch),
		VarCommit: resolve(req.Commit, existing.Commit, found && !req.Reset, DefaultCommit),
	}
	if err := validateValues(values); err != nil {
		return model.Dependency{}, err
	}

	if req.Reset {
		err = r.manifest.ReplaceRecord(Section, path, values)
	} else {
		err = r.manifest.MergeIntoRecord(Section, path, values)
	}
	if err != nil {
		return model.Dependency{}, fmt.Errorf("failed to write dependency %s: %w", path, err)
	}

	log.Debug().
		Str("path", path).
		Str("url", url).
		Str("branch", values[VarBranch]).
		Str("commit", values[VarCommit]).
		Bool("reset", req.Reset).
		Msg("dependency set")

	if err := r.persist(persist); err != nil {
		return model.Dependency{}, err
	}

	dep, _, err := r.Dependency(path)
	return dep, err
}

// AddDependency writes a fresh record: anything already stored under the same
// path is replaced.
func (r *Registry) AddDependency(req SetRequest, persist Persist) (model.Dependency, error) {
	req.Reset = true
	return r.SetDependency(req, persist)
}

// EditDependency updates the record stored under path and fails with
// ErrNotFound, before any change, when there is none.
func (r *Registry) EditDependency(path string, req SetRequest, persist Persist) (model.Dependency, error) {
	exists, err := r.Exists(path)
	if err != nil {
		return model.Dependency{}, err
	}
	if err := validateExists(exists, path); err != nil {
		return model.Dependency{}, err
	}
	req.Path = path
	return r.SetDependency(req, persist)
}

// RemoveDependencies removes the given records, or every record when paths is
// empty. Paths without a record are ignored.
func (r *Registry) RemoveDependencies(paths []string, persist Persist) error {
	if len(paths) == 0 {
		if err := r.manifest.RemoveNamedSetting(Section, ""); err != nil {
			return err
		}
		log.Debug().Msg("all dependencies removed")
	}
	for _, p := range paths {
		if err := r.manifest.RemoveNamedSetting(Section, p); err != nil {
			return err
		}
		log.Debug().Str("path", p).Msg("dependency removed")
	}
	return r.persist(persist)
}

func (r *Registry) persist(p Persist) error {
	if !p.Store && !p.Commit {
		log.Debug().Msg("manifest not stored (dry run)")
		return nil
	}

	if err := r.manifest.Store(); err != nil {
		return err
	}
	if !p.Commit {
		return nil
	}

	if r.committer == nil {
		return fmt.Errorf("cannot commit %s: no committer configured", ManifestFile)
	}
	if r.manifest.Empty() {
		// Deleting a manifest git never saw leaves nothing to commit.
		if t, ok := r.committer.(Tracker); ok {
			tracked, err := t.Tracked(r.manifest.Path())
			if err != nil {
				return fmt.Errorf("failed checking %s: %w", ManifestFile, err)
			}
			if !tracked {
				log.Info().Msgf("%s was never committed, nothing to commit", ManifestFile)
				return nil
			}
		}
	}
	if err := r.committer.Stage(r.manifest.Path()); err != nil {
		return fmt.Errorf("failed staging %s: %w", ManifestFile, err)
	}
	if err := r.committer.Commit(p.Message); err != nil {
		return fmt.Errorf("failed committing %s: %w", ManifestFile, err)
	}
	log.Info().Msgf("Committed %s", ManifestFile)
	return nil
}

func resolve(explicit, existing string, keepExisting bool, fallback string) string {
	if explicit != "" {
		return explicit
	}
	if keepExisting && existing != "" {
		return existing
	}
	return fallback
}

func validatePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	if strings.ContainsAny(path, "\"[]") || strings.IndexFunc(path, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%w: path %q", ErrInvalidValue, path)
	}
	return nil
}

func toModel(path string, values map[string]string) model.Dependency {
	dep := model.Dependency{
		Path:   path,
		URL:    values[VarURL],
		Branch: values[VarBranch],
		Commit: values[VarCommit],
	}
	if dep.Branch == "" {
		dep.Branch = DefaultBranch
	}
	if dep.Commit == "" {
		dep.Commit = DefaultCommit
	}
	for k, v := range values {
		switch k {
		case VarURL, VarPath, VarBranch, VarCommit:
			continue
		}
		if dep.Extra == nil {
			dep.Extra = make(map[string]string)
		}
		dep.Extra[k] = v
	}
	return dep
}
