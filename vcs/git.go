// Package vcs runs the few git commands git-z needs: locating the repository
// and creating the commit.
package vcs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/gopasspw/gopass/pkg/debug"
)

// ErrNotInWorkTree indicates a repository without a work tree, like a bare
// repository or the inside of the .git directory.
var ErrNotInWorkTree = errors.New("not inside a git work tree")

// GitError is returned when a git command fails. Stderr holds what git
// printed, trimmed.
type GitError struct {
	Args   []string
	Code   int
	Stderr string
}

func (e *GitError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("git %s: %s", strings.Join(e.Args, " "), e.Stderr)
	}

	return fmt.Sprintf("git %s: exit status %d", strings.Join(e.Args, " "), e.Code)
}

// ExitError relays the exit status of `git commit`. Its output already went
// to the terminal.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("git commit exited with status %d", e.Code)
}

// Backend creates a commit with the given message.
type Backend interface {
	Commit(ctx context.Context, message string, extraArgs []string) error
}

// Git commits with `git commit -em <message>`, so the user can still edit
// the message in the editor.
type Git struct {
	Dir string
	// Env is added to the environment of git.
	Env    []string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Commit runs git commit. Extra arguments are passed through unchanged.
func (g *Git) Commit(ctx context.Context, message string, extraArgs []string) error {
	args := append([]string{"commit", "-em", message}, extraArgs...)

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.Dir
	if len(g.Env) > 0 {
		cmd.Env = append(os.Environ(), g.Env...)
	}
	cmd.Stdin = orDefault(g.Stdin, io.Reader(os.Stdin))
	cmd.Stdout = orDefault(g.Stdout, io.Writer(os.Stdout))
	cmd.Stderr = orDefault(g.Stderr, io.Writer(os.Stderr))

	debug.V(1).Log("running git commit with extra args %q", extraArgs)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Code: exitErr.ExitCode()}
		}

		return fmt.Errorf("failed to run git commit: %w", err)
	}

	return nil
}

// Print writes the message instead of committing.
type Print struct {
	Out io.Writer
}

// Commit prints message.
func (p *Print) Commit(_ context.Context, message string, _ []string) error {
	if _, err := fmt.Fprintln(p.Out, message); err != nil {
		return fmt.Errorf("failed to print commit message: %w", err)
	}

	return nil
}

// RepoRoot returns the top level directory of the work tree containing dir.
func RepoRoot(ctx context.Context, dir string) (string, error) {
	return run(ctx, dir, "rev-parse", "--show-toplevel")
}

// GitDir returns the absolute path of the .git directory for dir.
func GitDir(ctx context.Context, dir string) (string, error) {
	return run(ctx, dir, "rev-parse", "--absolute-git-dir")
}

// EnsureWorkTree fails unless dir is inside a git work tree.
func EnsureWorkTree(ctx context.Context, dir string) error {
	out, err := run(ctx, dir, "rev-parse", "--is-inside-work-tree")
	if err != nil {
		return err
	}
	if out != "true" {
		return ErrNotInWorkTree
	}

	return nil
}

func run(ctx context.Context, dir string, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", &GitError{Args: args, Code: exitErr.ExitCode(), Stderr: strings.TrimSpace(stderr.String())}
		}

		return "", fmt.Errorf("failed to run git: %w", err)
	}

	out := strings.TrimSpace(stdout.String())
	debug.V(3).Log("git %s: %q", strings.Join(args, " "), out)

	return out, nil
}

func orDefault[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}

	return v
}
