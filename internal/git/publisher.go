package git

import "fmt"

// Publisher commits and pushes archive changes with a fixed identity
type Publisher struct {
	Dir       string
	UserName  string
	UserEmail string
	Remote    string
}

// CommitMessage returns the message used when publishing version
func CommitMessage(version string) string {
	return fmt.Sprintf("Archive version %s", version)
}

// Publish stages everything, commits and pushes
func (p *Publisher) Publish(version string) error {
	if !IsGitRepo(p.Dir) {
		return fmt.Errorf("not a git repository: %s", p.Dir)
	}
	if err := SetIdentity(p.Dir, p.UserName, p.UserEmail); err != nil {
		return err
	}
	if err := AddAll(p.Dir); err != nil {
		return err
	}
	if err := CommitInDir(p.Dir, CommitMessage(version)); err != nil {
		return err
	}
	return Push(p.Dir, p.Remote)
}
