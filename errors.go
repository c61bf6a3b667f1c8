package gitz

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoConfigFile indicates that there is no git-z.toml at the expected
	// location.
	ErrNoConfigFile = errors.New("no configuration file")
	// ErrMissingVersion indicates a configuration without a string `version`.
	ErrMissingVersion = errors.New("missing configuration version")
	// ErrUnsupportedVersion indicates a version tag that is not known.
	ErrUnsupportedVersion = errors.New("unsupported configuration version")
	// ErrFutureVersion indicates a version tag newer than the latest known one.
	ErrFutureVersion = errors.New("configuration version is newer than supported")
	// ErrInvalidConfig indicates a configuration that violates a schema rule.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrInconsistentDocument indicates that the document text and the decoded
	// model disagree, e.g. a key the model relies on is missing in the text.
	ErrInconsistentDocument = errors.New("document is inconsistent with its model")
	// ErrUpToDate indicates an upgrade request for a configuration that already
	// has the latest version.
	ErrUpToDate = errors.New("configuration is already up to date")
	// ErrAlreadyExists indicates that Init found an existing file.
	ErrAlreadyExists = errors.New("configuration file already exists")
	// ErrWriteConfig indicates a config file could not be written.
	ErrWriteConfig = errors.New("failed to write config")
)

// ParseError is a TOML syntax error with its location.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("failed to parse %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}

	return fmt.Sprintf("failed to parse %s: %s", e.Path, e.Message)
}

// VersionError reports a version that can not be loaded. It unwraps to
// ErrUnsupportedVersion or ErrFutureVersion.
type VersionError struct {
	Found  string
	Latest Version
	err    error
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("%s: found %q, latest is %q", e.err, e.Found, e.Latest)
}

func (e *VersionError) Unwrap() error {
	return e.err
}

// ValidationError is a single rule violation. Field is the dotted path of the
// offending value.
type ValidationError struct {
	Version Version
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}

	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfig
}

// ValidationErrors collects every violation found in a configuration.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, v := range e {
		msgs = append(msgs, v.Error())
	}

	return fmt.Sprintf("%s: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

func (e ValidationErrors) Unwrap() []error {
	errs := make([]error, 0, len(e))
	for _, v := range e {
		errs = append(errs, v)
	}

	return errs
}

func (e ValidationErrors) orNil() error {
	if len(e) == 0 {
		return nil
	}

	return e
}

// InternalError is a bug in git-z, like an upgrade step producing an invalid
// configuration. It should never be seen by users.
type InternalError struct {
	Step string
	Err  error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error in %s: %v", e.Step, e.Err)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

func internalf(step, format string, args ...any) error {
	return &InternalError{Step: step, Err: fmt.Errorf(format, args...)}
}
