package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gitz-dev/gitz"
	"github.com/gitz-dev/gitz/prompt"
	"github.com/gitz-dev/gitz/vcs"
)

// Exit codes, following sysexits.h.
const (
	exitOK          = 0
	exitFailure     = 1
	exitUsage       = 64
	exitDataErr     = 65
	exitNoInput     = 66
	exitUnavailable = 69
	exitSoftware    = 70
	exitCantCreate  = 73
	exitIOErr       = 74
)

type usageError struct {
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

// exitCode maps an error to the exit status of git-z. The status of a failed
// git commit is relayed as is.
func exitCode(err error) int {
	var (
		usageErr *usageError
		exitErr  *vcs.ExitError
		gitErr   *vcs.GitError
		intErr   *gitz.InternalError
		parseErr *gitz.ParseError
		verErr   *gitz.VersionError
	)

	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.As(err, &usageErr):
		return exitUsage
	case errors.As(err, &intErr):
		return exitSoftware
	case errors.Is(err, gitz.ErrNoConfigFile):
		return exitNoInput
	case errors.As(err, &parseErr), errors.As(err, &verErr),
		errors.Is(err, gitz.ErrMissingVersion), errors.Is(err, gitz.ErrInvalidConfig):
		return exitDataErr
	case errors.Is(err, gitz.ErrAlreadyExists):
		return exitCantCreate
	case errors.Is(err, gitz.ErrWriteConfig):
		return exitIOErr
	case errors.Is(err, prompt.ErrCancelled), errors.Is(err, prompt.ErrNotTerminal),
		errors.Is(err, vcs.ErrNotInWorkTree), errors.As(err, &gitErr):
		return exitUnavailable
	default:
		return exitFailure
	}
}

// report prints err with a hint where one helps.
func report(w io.Writer, err error) {
	var (
		exitErr *vcs.ExitError
		intErr  *gitz.InternalError
		verErr  *gitz.VersionError
	)

	switch {
	case errors.As(err, &exitErr):
		// git already explained itself.
	case errors.Is(err, prompt.ErrCancelled):
		warning(w, "Cancelled.")
	case errors.As(err, &intErr):
		errorf(w, "%s", err)
		for e := errors.Unwrap(err); e != nil; e = errors.Unwrap(e) {
			fmt.Fprintf(w, "  caused by: %s\n", e)
		}
		hint(w, "This is a bug in git-z, please report it.")
	case errors.As(err, &verErr) && errors.Is(err, gitz.ErrFutureVersion):
		errorf(w, "%s", err)
		hint(w, "The configuration has been written by a newer git-z, please upgrade git-z.")
	case errors.As(err, &verErr):
		errorf(w, "%s", err)
		hint(w, "Supported versions are %s.", knownVersions())
	case errors.Is(err, gitz.ErrNoConfigFile):
		errorf(w, "%s", err)
		hint(w, "You can create one by running `git z init`.")
	case errors.Is(err, gitz.ErrAlreadyExists):
		errorf(w, "%s", err)
		hint(w, "Use `git z init --force` to replace it.")
	default:
		errorf(w, "%s", err)
	}
}

func knownVersions() string {
	versions := gitz.KnownVersions()

	tags := make([]string, 0, len(versions))
	for _, v := range versions {
		tags = append(tags, `"`+v.String()+`"`)
	}

	return strings.Join(tags, ", ")
}
