package gitz

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gitz-dev/gitz/render"
	"github.com/gitz-dev/gitz/ticket"
	"github.com/gopasspw/gopass/pkg/debug"
)

// validator collects rule violations. It never stops at the first one.
type validator struct {
	version Version
	errs    ValidationErrors
}

func newValidator(v Version) *validator {
	return &validator{version: v}
}

func (v *validator) addf(field, format string, args ...any) {
	v.errs = append(v.errs, &ValidationError{
		Version: v.version,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	})
}

func (v *validator) err() error {
	if len(v.errs) > 0 {
		debug.V(1).Log("configuration %s has %d violations: %s", v.version, len(v.errs), v.errs)
	}

	return v.errs.orNil()
}

// types checks the type names. declared is the number of entries in the
// file, which can be more than len(types) when some could not be parsed.
func (v *validator) types(field string, types []Type, declared int) {
	if declared == 0 {
		v.addf(field, "at least one type is required")

		return
	}

	seen := make(map[string]bool, len(types))
	for _, t := range types {
		switch {
		case t.Name == "":
			v.addf(field, "type names must not be empty")
		case strings.IndexFunc(t.Name, unicode.IsSpace) >= 0:
			v.addf(field, "type name %q must not contain whitespace", t.Name)
		case seen[t.Name]:
			v.addf(field, "duplicate type %q", t.Name)
		}
		seen[t.Name] = true
	}
}

// scopeList checks a list of scopes. An empty list is only an error when
// required is set.
func (v *validator) scopeList(field string, list []string, required bool) {
	if required && len(list) == 0 {
		v.addf(field, "must contain at least one scope")

		return
	}

	seen := make(map[string]bool, len(list))
	for i, s := range list {
		switch {
		case strings.TrimSpace(s) == "":
			v.addf(indexed(field, i), "scopes must not be empty")
		case seen[s]:
			v.addf(indexed(field, i), "duplicate scope %q", s)
		}
		seen[s] = true
	}
}

func (v *validator) ticketPrefixes(field string, prefixes []string) {
	before := len(v.errs)

	seen := make(map[string]bool, len(prefixes))
	for i, p := range prefixes {
		if err := ticket.ValidatePrefix(p); err != nil {
			v.addf(indexed(field, i), "%s", err)
		} else if seen[p] {
			v.addf(indexed(field, i), "duplicate ticket prefix %q", p)
		}
		seen[p] = true
	}

	if len(v.errs) > before {
		return
	}

	if _, err := ticket.New(prefixes); err != nil {
		v.addf(field, "%s", err)
	}
}

func (v *validator) template(field, text string) {
	if _, err := render.Parse(text); err != nil {
		v.addf(field, "%s", err)
	}
}

func indexed(field string, i int) string {
	return fmt.Sprintf("%s[%d]", field, i)
}
