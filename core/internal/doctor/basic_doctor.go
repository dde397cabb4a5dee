package doctor

import (
	"fmt"
	"strings"

	fileUtil "github.com/kuchuk-borom-debbarma/GitPkg/core/internal/util/file"
	gitUtil "github.com/kuchuk-borom-debbarma/GitPkg/core/internal/util/git"
)

type BasicDoctor struct {
	RootPath        string
	CurrentBranch   string
	IsClean         bool
	ManifestPath    string
	ManifestPresent bool
}

func GetBasicDoctor(rootAbsPath, manifestPath string) (*BasicDoctor, error) {
	if !gitUtil.IsInsideGitRepo(rootAbsPath) {
		return nil, fmt.Errorf("not a git repository: %s", rootAbsPath)
	}

	branch, err := gitUtil.GetCurrentBranch(rootAbsPath)
	if err != nil {
		// A repository without commits has no branch to name yet.
		branch = "(no commits)"
	}

	clean, err := gitUtil.IsClean(rootAbsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read status of %s: %w", rootAbsPath, err)
	}

	return &BasicDoctor{
		RootPath:        rootAbsPath,
		CurrentBranch:   strings.TrimSpace(branch),
		IsClean:         clean,
		ManifestPath:    manifestPath,
		ManifestPresent: fileUtil.Exists(manifestPath),
	}, nil
}
