package git

import (
	"testing"

	"github.com/pders01/version-archive/internal/testutil"
)

func TestIsGitRepo(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)

	if !IsGitRepo(repo.Path) {
		t.Error("expected repository to be detected")
	}
	if IsGitRepo(t.TempDir()) {
		t.Error("expected plain directory not to be a repository")
	}
}

func TestGetCurrentCommit(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)

	commit, err := GetCurrentCommit(repo.Path)
	if err != nil {
		t.Fatalf("failed to get commit: %v", err)
	}
	if commit != repo.Git("rev-parse", "HEAD") {
		t.Errorf("unexpected commit %q", commit)
	}
}

func TestPublish(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	repo.CreateFile("versions/1.0.0/index.html", "<html></html>")
	repo.CreateFile("versions/index.json", "[]")

	p := &Publisher{Dir: repo.Path, UserName: "GitHub Actions", UserEmail: "actions@github.com"}
	if err := p.Publish("1.0.0"); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	if msg := repo.HeadMessage(); msg != "Archive version 1.0.0" {
		t.Errorf("unexpected commit message %q", msg)
	}
	if author := repo.Git("log", "-1", "--format=%an <%ae>"); author != "GitHub Actions <actions@github.com>" {
		t.Errorf("unexpected author %q", author)
	}
	if !repo.FileExists("versions/1.0.0/index.html") {
		t.Error("archived page was not committed")
	}
	if repo.RemoteHead() != repo.Git("rev-parse", "HEAD") {
		t.Error("commit was not pushed")
	}
}

func TestPublishExplicitRemote(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	repo.CreateFile("versions/index.json", "[]")

	p := &Publisher{Dir: repo.Path, UserName: "CI", UserEmail: "ci@example.com", Remote: "origin"}
	if err := p.Publish("2.0.0"); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if repo.RemoteHead() != repo.Git("rev-parse", "HEAD") {
		t.Error("commit was not pushed")
	}
}

func TestPublishNothingToCommit(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)

	p := &Publisher{Dir: repo.Path, UserName: "CI", UserEmail: "ci@example.com"}
	if err := p.Publish("1.0.0"); err == nil {
		t.Error("expected error when there is nothing to commit")
	}
}

func TestPublishNotRepo(t *testing.T) {
	p := &Publisher{Dir: t.TempDir(), UserName: "CI", UserEmail: "ci@example.com"}
	if err := p.Publish("1.0.0"); err == nil {
		t.Error("expected error outside a repository")
	}
}
