package main

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/gitz-dev/gitz"
	"github.com/gitz-dev/gitz/prompt"
	"github.com/gitz-dev/gitz/vcs"
	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	_, versionErr := gitz.ClassifyVersion("0.9")

	testCases := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", want: exitOK},
		{name: "git status", err: fmt.Errorf("commit: %w", &vcs.ExitError{Code: 128}), want: 128},
		{name: "usage", err: &usageError{msg: "bad flag"}, want: exitUsage},
		{name: "no config", err: fmt.Errorf("%w: x", gitz.ErrNoConfigFile), want: exitNoInput},
		{name: "parse", err: &gitz.ParseError{Path: "x", Line: 1}, want: exitDataErr},
		{name: "version", err: versionErr, want: exitDataErr},
		{name: "missing version", err: gitz.ErrMissingVersion, want: exitDataErr},
		{name: "validation", err: gitz.ValidationErrors{{Field: "types", Message: "x"}}, want: exitDataErr},
		{name: "internal", err: &gitz.InternalError{Step: "x", Err: gitz.ValidationErrors{{Message: "x"}}}, want: exitSoftware},
		{name: "exists", err: gitz.ErrAlreadyExists, want: exitCantCreate},
		{name: "write", err: fmt.Errorf("%w: disk full", gitz.ErrWriteConfig), want: exitIOErr},
		{name: "cancelled", err: prompt.ErrCancelled, want: exitUnavailable},
		{name: "no tty", err: prompt.ErrNotTerminal, want: exitUnavailable},
		{name: "not in repo", err: &vcs.GitError{Code: 128}, want: exitUnavailable},
		{name: "other", err: errors.New("boom"), want: exitFailure},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, exitCode(tc.err))
		})
	}
}

func TestReport(t *testing.T) {
	t.Parallel()

	_, futureErr := gitz.ClassifyVersion("0.9")
	_, unsupportedErr := gitz.ClassifyVersion("0.2-dev.5")

	testCases := []struct {
		name     string
		err      error
		contains []string
	}{
		{
			name:     "future version",
			err:      futureErr,
			contains: []string{"Error: ", `"0.9"`, "please upgrade git-z"},
		},
		{
			name:     "unsupported version",
			err:      unsupportedErr,
			contains: []string{"Supported versions are \"0.1\""},
		},
		{
			name:     "no config",
			err:      gitz.ErrNoConfigFile,
			contains: []string{"Error: no configuration file", "git z init"},
		},
		{
			name:     "internal",
			err:      &gitz.InternalError{Step: "upgrade", Err: fmt.Errorf("wrapped: %w", gitz.ErrInconsistentDocument)},
			contains: []string{"internal error in upgrade", "caused by: wrapped", "caused by: document is inconsistent", "bug in git-z"},
		},
		{
			name:     "exists",
			err:      gitz.ErrAlreadyExists,
			contains: []string{"--force"},
		},
		{
			name:     "cancelled",
			err:      prompt.ErrCancelled,
			contains: []string{"Cancelled."},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			buf := &bytes.Buffer{}
			report(buf, tc.err)

			for _, c := range tc.contains {
				assert.Contains(t, buf.String(), c)
			}
		})
	}
}

func TestReportGitExit(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	report(buf, &vcs.ExitError{Code: 1})
	assert.Empty(t, buf.String())
}

func TestKnownVersions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `"0.1", "0.2-dev.0", "0.2-dev.1", "0.2-dev.2", "0.2-dev.3", "0.2"`, knownVersions())
}
