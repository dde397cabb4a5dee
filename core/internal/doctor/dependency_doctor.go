package doctor

import (
	"fmt"
	"path/filepath"

	"github.com/kuchuk-borom-debbarma/GitPkg/core/internal/dependency"
	fileUtil "github.com/kuchuk-borom-debbarma/GitPkg/core/internal/util/file"
	gitUtil "github.com/kuchuk-borom-debbarma/GitPkg/core/internal/util/git"
	"github.com/rs/zerolog/log"
)

// DependencyReport lists what is wrong with one dependency record.
type DependencyReport struct {
	Path   string
	URL    string
	Issues []string
}

// Healthy reports whether no issue was found.
func (r DependencyReport) Healthy() bool {
	return len(r.Issues) == 0
}

// GetDependencyReports checks every record against the working copy.
func GetDependencyReports(reg *dependency.Registry) ([]DependencyReport, error) {
	deps, err := reg.List()
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	submodules, err := gitUtil.Submodules(reg.Root())
	if err != nil {
		// Without a readable .gitmodules every dependency simply reads as
		// unregistered.
		log.Debug().Err(err).Msg("submodules unavailable")
		submodules = map[string]string{}
	}

	reports := make([]DependencyReport, 0, len(deps))
	for _, dep := range deps {
		report := DependencyReport{Path: dep.Path, URL: dep.URL}

		if dep.URL == "" {
			report.Issues = append(report.Issues, "url is not set")
		}
		if stored, ok, _ := reg.DependencySetting(dep.Path, dependency.VarPath); ok && stored != dep.Path {
			report.Issues = append(report.Issues, fmt.Sprintf("path value %q differs from record name", stored))
		}
		if !fileUtil.IsDir(filepath.Join(reg.Root(), filepath.FromSlash(dep.Path))) {
			report.Issues = append(report.Issues, "not checked out in the working copy")
		}
		subURL, ok := submodules[dep.Path]
		switch {
		case !ok:
			report.Issues = append(report.Issues, "not registered as a git submodule")
		case dep.URL != "" && subURL != dep.URL:
			report.Issues = append(report.Issues, fmt.Sprintf("submodule url %q differs", subURL))
		}

		reports = append(reports, report)
	}
	return reports, nil
}
