package main

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/gitz-dev/gitz/prompt"
	"github.com/gitz-dev/gitz/vcs"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// version is set at build time.
var version = "dev"

// app holds what the commands share. Tests replace the streams and the
// working directory.
type app struct {
	dir    string
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// started is set once a command runs, errors before are usage errors.
	started bool
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{stdin: stdin, stdout: stdout, stderr: stderr}
}

func run(ctx context.Context, args []string, a *app) int {
	root := newRootCmd(a)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}

	if !a.started {
		var uErr *usageError
		if !errors.As(err, &uErr) {
			err = &usageError{msg: err.Error()}
		}
	}

	report(a.stderr, err)

	return exitCode(err)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "git-z",
		Short:         "A Git extension to write conventional commits",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			a.started = true
		},
	}
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{msg: err.Error()}
	})

	root.AddCommand(
		newInitCmd(a),
		newUpdateCmd(a),
		newCommitCmd(a),
		newCheckCmd(a),
		newVersionCmd(a),
	)

	return root
}

func (a *app) workDir() (string, error) {
	if a.dir != "" {
		return a.dir, nil
	}

	return os.Getwd()
}

// prompter returns a line editing terminal when stdin is one, plain line
// reading otherwise.
func (a *app) prompter() (*prompt.Terminal, error) {
	if f, ok := a.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return prompt.NewTerminal(a.stderr)
	}

	return prompt.NewReader(a.stdin, a.stderr), nil
}

func (a *app) backend(printOnly bool, dir string) vcs.Backend {
	if printOnly {
		return &vcs.Print{Out: a.stdout}
	}

	return &vcs.Git{Dir: dir, Stdin: a.stdin, Stdout: a.stdout, Stderr: a.stderr}
}
