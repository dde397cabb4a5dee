package git

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	gogit "github.com/go-git/go-git/v5"
)

// ErrNotRepository is returned when no git working copy encloses a path.
var ErrNotRepository = errors.New("not a git repository")

// runGit executes a git command and returns trimmed stdout + error.
func runGit(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	output := strings.TrimSpace(out.String())
	if err != nil && output != "" {
		err = fmt.Errorf("%w: %s", err, output)
	}
	return output, err
}

// FindRepoRoot returns the working-copy root enclosing start.
func FindRepoRoot(start string) (string, error) {
	repo, err := gogit.PlainOpenWithOptions(start, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return "", fmt.Errorf("%w: %s", ErrNotRepository, start)
		}
		return "", fmt.Errorf("failed to open repository at %s: %w", start, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to open worktree at %s: %w", start, err)
	}
	return wt.Filesystem.Root(), nil
}

// Submodules returns the submodules declared in .gitmodules, path -> url.
func Submodules(root string) (map[string]string, error) {
	repo, err := gogit.PlainOpen(root)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository at %s: %w", root, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to open worktree at %s: %w", root, err)
	}
	subs, err := wt.Submodules()
	if err != nil {
		return nil, fmt.Errorf("failed to read submodules: %w", err)
	}

	out := make(map[string]string, len(subs))
	for _, s := range subs {
		cfg := s.Config()
		out[cfg.Path] = cfg.URL
	}
	return out, nil
}

// IsInsideGitRepo returns true if path is inside a git working tree.
func IsInsideGitRepo(path string) bool {
	out, err := runGit(path, "rev-parse", "--is-inside-work-tree")
	return err == nil && out == "true"
}

// GetCurrentBranch returns the checked out branch, or "HEAD" when detached.
func GetCurrentBranch(path string) (string, error) {
	return runGit(path, "rev-parse", "--abbrev-ref", "HEAD")
}

// IsClean reports whether the working copy has no staged, unstaged or
// untracked changes.
func IsClean(path string) (bool, error) {
	out, err := runGit(path, "status", "--porcelain", "--untracked-files=normal")
	if err != nil {
		return false, err
	}
	return out == "", nil
}

// IsTracked reports whether git's index holds path. A tracked file that was
// deleted but not yet staged still counts.
func IsTracked(repoPath, path string) (bool, error) {
	out, err := runGit(repoPath, "ls-files", "--", path)
	if err != nil {
		return false, err
	}
	return out != "", nil
}

// StagePath stages a file, including its deletion.
func StagePath(repoPath, relativePath string) error {
	_, err := runGit(repoPath, "add", "--all", "--", relativePath)
	return err
}

// Commit creates a commit with a message.
func Commit(repoPath, message string) error {
	_, err := runGit(repoPath, "commit", "-m", message)
	return err
}

// CommitInteractive runs "git commit" attached to the terminal so git can open
// the user's editor. It returns once the editor exits.
func CommitInteractive(repoPath string) error {
	cmd := exec.Command("git", "commit")
	cmd.Dir = repoPath
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Runner stages and commits through the git binary in one working copy.
type Runner struct {
	Root string
}

// Tracked reports whether path is already in the index.
func (r Runner) Tracked(path string) (bool, error) {
	return IsTracked(r.Root, path)
}

// Stage stages path, given absolute or relative to the root.
func (r Runner) Stage(path string) error {
	return StagePath(r.Root, path)
}

// Commit commits what is staged. An empty message opens the editor.
func (r Runner) Commit(message string) error {
	if message == "" {
		return CommitInteractive(r.Root)
	}
	return Commit(r.Root, message)
}
