package doctor

import (
	"fmt"
	"strings"

	"github.com/kuchuk-borom-debbarma/GitPkg/core/internal/dependency"
)

type Doctor struct {
	Basic        *BasicDoctor
	Dependencies []DependencyReport
}

func GetDoctor(reg *dependency.Registry) (*Doctor, error) {
	basic, err := GetBasicDoctor(reg.Root(), reg.ManifestPath())
	if err != nil {
		return nil, fmt.Errorf("failed to get basic doctor: %w", err)
	}

	deps, err := GetDependencyReports(reg)
	if err != nil {
		return nil, fmt.Errorf("failed to get dependency doctor: %w", err)
	}

	return &Doctor{
		Basic:        basic,
		Dependencies: deps,
	}, nil
}

// Healthy reports whether every dependency passed its checks.
func (d *Doctor) Healthy() bool {
	for _, r := range d.Dependencies {
		if !r.Healthy() {
			return false
		}
	}
	return true
}

func (d *Doctor) String() string {
	var sb strings.Builder

	sb.WriteString("git-pkg Doctor\n")
	sb.WriteString("==============\n\n")

	sb.WriteString(fmt.Sprintf("Root:     %s\n", d.Basic.RootPath))
	sb.WriteString(fmt.Sprintf("Branch:   %s\n", d.Basic.CurrentBranch))
	cleanState := "Clean"
	if !d.Basic.IsClean {
		cleanState = "Dirty"
	}
	sb.WriteString(fmt.Sprintf("State:    %s\n", cleanState))
	manifest := "present"
	if !d.Basic.ManifestPresent {
		manifest = "missing"
	}
	sb.WriteString(fmt.Sprintf("Manifest: %s (%s)\n\n", d.Basic.ManifestPath, manifest))

	sb.WriteString("Dependencies:\n")
	sb.WriteString("-------------\n")
	if len(d.Dependencies) == 0 {
		sb.WriteString("(none)\n")
		return sb.String()
	}
	for _, r := range d.Dependencies {
		if r.Healthy() {
			sb.WriteString(fmt.Sprintf("[ok]   %s\n", r.Path))
			continue
		}
		sb.WriteString(fmt.Sprintf("[warn] %s\n", r.Path))
		for _, issue := range r.Issues {
			sb.WriteString(fmt.Sprintf("       - %s\n", issue))
		}
	}

	return sb.String()
}
