package testable

import "github.com/go-git/go-git/v5"

// MockGitOpener is a test double for GitOpener. Set RootFunc to control
// PlainOpenWithDetection behavior. If nil, it returns Root (or OpenErr if
// both are unset).
type MockGitOpener struct {
	// Root is returned by PlainOpenWithDetection when RootFunc is nil.
	Root string

	// OpenErr is the error returned when RootFunc is nil and Root is empty.
	OpenErr error

	// RootFunc, if set, is called instead of using Root/OpenErr.
	RootFunc func(path string) (string, error)

	// OpenCalls records the paths passed to PlainOpenWithDetection.
	OpenCalls []string
}

// PlainOpenWithDetection records the call and delegates to RootFunc or
// returns Root/OpenErr.
func (m *MockGitOpener) PlainOpenWithDetection(path string) (string, error) {
	m.OpenCalls = append(m.OpenCalls, path)
	if m.RootFunc != nil {
		return m.RootFunc(path)
	}
	if m.Root != "" {
		return m.Root, nil
	}
	if m.OpenErr != nil {
		return "", m.OpenErr
	}
	return "", git.ErrRepositoryNotExists
}

// Compile-time interface check.
var _ GitOpener = (*MockGitOpener)(nil)
