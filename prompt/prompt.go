// Package prompt asks the questions of the commit wizard on a terminal.
//
// Terminal implements Prompter on top of liner when standard input is a
// terminal. NewReader gives the same dialog over plain lines, which is used
// for piped input and in tests.
package prompt

import (
	"errors"
)

var (
	// ErrCancelled indicates that the user aborted the dialog with Ctrl-C or
	// Ctrl-D. It is not a failure of git-z.
	ErrCancelled = errors.New("cancelled by the user")
	// ErrNotTerminal indicates that standard input is not a terminal.
	ErrNotTerminal = errors.New("standard input is not a terminal")
)

// Validator checks an answer. The error message is shown to the user, who
// is asked again.
type Validator func(answer string) error

// TextOptions configures a free text question.
type TextOptions struct {
	// Help is shown once, below the label.
	Help string
	// Initial pre-fills the answer.
	Initial string
	// Placeholder is shown next to the label when there is no initial value.
	Placeholder string
	// Skippable allows an empty answer, returned as "".
	Skippable bool
	Validate  Validator
}

// Prompter asks questions.
type Prompter interface {
	// Select shows options in pages of pageSize and returns the index of the
	// chosen one. def is chosen on an empty answer.
	Select(label string, options []string, pageSize, def int) (int, error)
	// Text asks for a line of text.
	Text(label string, opts TextOptions) (string, error)
}
