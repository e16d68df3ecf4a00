// Package gitops keeps an optional git history of a tally directory.
package gitops

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNothingToCommit is returned by Commit when the given paths are unchanged.
var ErrNothingToCommit = errors.New("nothing to commit")

// Available reports whether a git binary is on PATH.
func Available() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// Init initializes a new git repository at dir.
func Init(dir string) error {
	if _, err := run(dir, "init", "--quiet"); err != nil {
		return fmt.Errorf("git init: %w", err)
	}
	return nil
}

// IsRepo reports whether dir is the root of a git repository.
func IsRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// Commit stages paths (relative to dir, or all changes when empty) and
// commits them. With paths, anything else already staged is left out of the
// commit. Returns the short commit hash.
func Commit(dir, message, authorName, authorEmail string, paths ...string) (string, error) {
	add := []string{"add", "-A"}
	var pathspec []string
	if len(paths) > 0 {
		pathspec = append([]string{"--"}, paths...)
		add = append([]string{"add"}, pathspec...)
	}
	if _, err := run(dir, add...); err != nil {
		return "", fmt.Errorf("git add: %w", err)
	}

	staged, err := run(dir, append([]string{"diff", "--cached", "--name-only"}, pathspec...)...)
	if err != nil {
		return "", fmt.Errorf("git diff: %w", err)
	}
	if staged == "" {
		return "", ErrNothingToCommit
	}

	author := fmt.Sprintf("%s <%s>", authorName, authorEmail)
	commit := []string{
		"-c", "user.name=" + authorName,
		"-c", "user.email=" + authorEmail,
		"commit", "--quiet", "-m", message, "--author", author,
	}
	if _, err := run(dir, append(commit, pathspec...)...); err != nil {
		return "", fmt.Errorf("git commit: %w", err)
	}

	hash, err := run(dir, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", fmt.Errorf("git rev-parse: %w", err)
	}
	return hash, nil
}

// run executes git in dir and returns trimmed stdout. On failure the error
// carries git's combined output.
func run(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%s: %w", strings.TrimSpace(string(out)), err)
	}
	return strings.TrimSpace(string(out)), nil
}
