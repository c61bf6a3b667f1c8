// Package render renders commit templates with pongo2, a Django / Jinja2
// like template engine.
package render

import (
	"errors"
	"fmt"

	"github.com/flosch/pongo2/v6"
	"github.com/gopasspw/gopass/pkg/debug"
)

// Commit messages are plain text, so HTML escaping is switched off for the
// whole template. The wrapper adds no newline, line numbers stay accurate.
const (
	escapeOff    = "{% autoescape off %}"
	escapeOffEnd = "{% endautoescape %}"
)

// Error is a template error with the location of the offending construct.
type Error struct {
	Op      string
	Line    int
	Column  int
	Near    string
	Message string
}

func (e *Error) Error() string {
	if e.Line <= 0 {
		return fmt.Sprintf("failed to %s template: %s", e.Op, e.Message)
	}
	if e.Near != "" {
		return fmt.Sprintf("failed to %s template at line %d, column %d near %q: %s", e.Op, e.Line, e.Column, e.Near, e.Message)
	}

	return fmt.Sprintf("failed to %s template at line %d, column %d: %s", e.Op, e.Line, e.Column, e.Message)
}

// Values are the answers available to the commit template. Type and
// Description are always set, the others are optional and are left out of
// the template context when empty.
type Values struct {
	Type           string `toml:"type,omitempty"`
	Scope          string `toml:"scope,omitempty"`
	Description    string `toml:"description,omitempty"`
	BreakingChange string `toml:"breaking_change,omitempty"`
	Ticket         string `toml:"ticket,omitempty"`
}

func (v Values) context() pongo2.Context {
	ctx := pongo2.Context{
		"type":        v.Type,
		"description": v.Description,
	}
	for k, val := range map[string]string{
		"scope":           v.Scope,
		"breaking_change": v.BreakingChange,
		"ticket":          v.Ticket,
	} {
		if val != "" {
			ctx[k] = val
		}
	}

	return ctx
}

// Template is a parsed commit template.
type Template struct {
	tpl *pongo2.Template
}

// Parse parses a template. Syntax errors are reported as *Error.
func Parse(text string) (*Template, error) {
	tpl, err := pongo2.FromString(escapeOff + text + escapeOffEnd)
	if err != nil {
		return nil, wrapError("parse", err)
	}

	return &Template{tpl: tpl}, nil
}

// Render executes the template with the given values.
func (t *Template) Render(v Values) (string, error) {
	out, err := t.tpl.Execute(v.context())
	if err != nil {
		return "", wrapError("render", err)
	}

	debug.V(3).Log("rendered template:\n%s", out)

	return out, nil
}

// Render parses and executes text in one go.
func Render(text string, v Values) (string, error) {
	t, err := Parse(text)
	if err != nil {
		return "", err
	}

	return t.Render(v)
}

func wrapError(op string, err error) error {
	var pErr *pongo2.Error
	if !errors.As(err, &pErr) {
		return &Error{Op: op, Message: err.Error()}
	}

	e := &Error{
		Op:     op,
		Line:   pErr.Line,
		Column: pErr.Column,
	}
	if pErr.OrigError != nil {
		e.Message = pErr.OrigError.Error()
	}
	if pErr.Token != nil {
		e.Near = pErr.Token.Val
	}
	if e.Line == 1 && e.Column > len(escapeOff) {
		e.Column -= len(escapeOff)
	}

	return e
}
