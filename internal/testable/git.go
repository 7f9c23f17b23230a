// Package testable provides interfaces for mocking external dependencies
// such as go-git operations. Production code uses the Real* implementations;
// tests can inject mock implementations to avoid hitting real git repos.
package testable

import (
	"github.com/go-git/go-git/v5"
)

// GitOpener abstracts locating the repository a given directory belongs
// to. Production code uses RealGitOpener; tests inject a mock to avoid
// filesystem dependencies.
type GitOpener interface {
	// PlainOpenWithDetection opens the repository containing path,
	// searching parent directories for a .git entry the way `git` itself
	// does, and returns the repository's root directory.
	PlainOpenWithDetection(path string) (string, error)
}

// RealGitOpener is the production implementation of GitOpener. It
// delegates to git.PlainOpenWithOptions with DetectDotGit enabled.
type RealGitOpener struct{}

// PlainOpenWithDetection opens the repository containing path and returns
// its worktree root.
func (RealGitOpener) PlainOpenWithDetection(path string) (string, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", err
	}
	return wt.Filesystem.Root(), nil
}

// DefaultGitOpener is the production GitOpener used as default.
var DefaultGitOpener GitOpener = RealGitOpener{}

// Compile-time interface check.
var _ GitOpener = RealGitOpener{}
