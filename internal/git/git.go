package git

import (
	"fmt"
	"os/exec"
	"strings"
)

// run executes git in dir and includes its output in any error
func run(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s: %w\nOutput: %s", args[0], err, strings.TrimSpace(string(output)))
	}
	return strings.TrimSpace(string(output)), nil
}

// IsGitRepo checks if dir is inside a git repository
func IsGitRepo(dir string) bool {
	cmd := exec.Command("git", "rev-parse", "--git-dir")
	cmd.Dir = dir
	return cmd.Run() == nil
}

// GetCurrentCommit returns the commit hash of HEAD in dir
func GetCurrentCommit(dir string) (string, error) {
	output, err := run(dir, "rev-parse", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to get current commit: %w", err)
	}
	return output, nil
}

// SetIdentity configures the committer name and email for the repository in dir
func SetIdentity(dir, name, email string) error {
	if _, err := run(dir, "config", "user.name", name); err != nil {
		return fmt.Errorf("failed to set user.name: %w", err)
	}
	if _, err := run(dir, "config", "user.email", email); err != nil {
		return fmt.Errorf("failed to set user.email: %w", err)
	}
	return nil
}

// AddAll stages every change in the working tree
func AddAll(dir string) error {
	if _, err := run(dir, "add", "."); err != nil {
		return fmt.Errorf("failed to add files: %w", err)
	}
	return nil
}

// CommitInDir creates a commit with the given message in a specific directory
func CommitInDir(dir, message string) error {
	if _, err := run(dir, "commit", "-m", message); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// Push pushes the current branch. An empty remote uses the configured upstream.
func Push(dir, remote string) error {
	args := []string{"push"}
	if remote != "" {
		args = append(args, remote, "HEAD")
	}
	if _, err := run(dir, args...); err != nil {
		return fmt.Errorf("failed to push: %w", err)
	}
	return nil
}
