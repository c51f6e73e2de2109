package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// TempGitRepo is a throwaway repository with a bare remote named origin
type TempGitRepo struct {
	Path   string
	Remote string
	T      *testing.T
}

// NewTempGitRepo creates a repository with one commit, pushed to a bare
// origin so that a plain `git push` works
func NewTempGitRepo(t *testing.T) *TempGitRepo {
	t.Helper()

	base := t.TempDir()
	repo := &TempGitRepo{
		Path:   filepath.Join(base, "work"),
		Remote: filepath.Join(base, "origin.git"),
		T:      t,
	}

	repo.git(base, "init", "--bare", repo.Remote)
	repo.git(base, "init", repo.Path)
	repo.Git("config", "user.name", "Test User")
	repo.Git("config", "user.email", "test@example.com")

	repo.CreateFile("README.md", "# Test Repository\n")
	repo.Commit("Initial commit")

	repo.Git("remote", "add", "origin", repo.Remote)
	repo.Git("push", "-u", "origin", "HEAD")

	return repo
}

// Git runs a git command in the repository and returns trimmed output
func (r *TempGitRepo) Git(args ...string) string {
	r.T.Helper()
	return r.git(r.Path, args...)
}

func (r *TempGitRepo) git(dir string, args ...string) string {
	r.T.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		r.T.Fatalf("git %s failed: %v\n%s", strings.Join(args, " "), err, output)
	}
	return strings.TrimSpace(string(output))
}

// CreateFile creates a file in the repository
func (r *TempGitRepo) CreateFile(name, content string) {
	r.T.Helper()
	path := filepath.Join(r.Path, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		r.T.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		r.T.Fatalf("failed to create file: %v", err)
	}
}

// Commit stages and commits all changes
func (r *TempGitRepo) Commit(message string) {
	r.T.Helper()
	r.Git("add", ".")
	r.Git("commit", "-m", message)
}

// HeadMessage returns the subject of the latest commit
func (r *TempGitRepo) HeadMessage() string {
	r.T.Helper()
	return r.Git("log", "-1", "--format=%s")
}

// RemoteHead returns the commit the remote's branch for HEAD points at
func (r *TempGitRepo) RemoteHead() string {
	r.T.Helper()
	branch := r.Git("rev-parse", "--abbrev-ref", "HEAD")
	return r.git(r.Remote, "rev-parse", branch)
}

// FileExists checks if a file is tracked at HEAD
func (r *TempGitRepo) FileExists(file string) bool {
	r.T.Helper()
	for _, line := range strings.Split(r.Git("ls-tree", "-r", "--name-only", "HEAD"), "\n") {
		if strings.TrimSpace(line) == file {
			return true
		}
	}
	return false
}
