package gitz

import (
	"fmt"
	"sort"

	"github.com/gobwas/glob"
	"github.com/gopasspw/gopass/pkg/set"
)

// shape describes the key paths a configuration version may contain. Paths
// are dotted, `*` matches a single path element.
type shape struct {
	allowed  []glob.Glob
	required []string
	// nested lists the keys that are required once their table exists.
	nested map[string][]string
}

func newShape(allowed, required []string, nested map[string][]string) *shape {
	s := &shape{required: required, nested: nested}
	for _, p := range allowed {
		s.allowed = append(s.allowed, glob.MustCompile(p, '.'))
	}

	return s
}

// tablesShape is shared by every version since `ticket.required` appeared.
var tablesShape = newShape(
	[]string{
		"version", "types", "types.*",
		"scopes", "scopes.accept", "scopes.list",
		"ticket", "ticket.required", "ticket.prefixes",
		"templates", "templates.commit",
	},
	[]string{"version", "types", "templates", "templates.commit"},
	map[string][]string{
		"scopes": {"accept"},
		"ticket": {"required", "prefixes"},
	},
)

var shapes = map[Version]*shape{
	V0_1: newShape(
		[]string{"version", "types", "scopes", "template", "ticket_prefixes"},
		[]string{"version", "types", "scopes", "template"},
		nil,
	),
	V0_2Dev0: newShape(
		[]string{
			"version", "types", "types.*",
			"scopes", "scopes.accept", "scopes.list",
			"ticket", "ticket.prefixes",
			"templates", "templates.commit",
		},
		[]string{"version", "types", "templates", "templates.commit"},
		map[string][]string{
			"scopes": {"accept", "list"},
			"ticket": {"prefixes"},
		},
	),
	V0_2Dev1: tablesShape,
	V0_2Dev2: tablesShape,
	V0_2Dev3: tablesShape,
	V0_2:     tablesShape,
}

// checkShape compares the key paths of a generic document with the shape of
// version v. Unknown paths come first, then missing ones, each sorted.
func checkShape(v Version, raw map[string]any) ValidationErrors {
	s, found := shapes[v]
	if !found {
		return ValidationErrors{{Version: v, Message: fmt.Sprintf("no shape for version %q", v)}}
	}

	paths := flatten("", raw)

	var unknown []string
	for _, p := range paths {
		if !s.allows(p) {
			unknown = append(unknown, p)
		}
	}

	present := make(map[string]bool, len(paths))
	for _, p := range paths {
		present[p] = true
	}

	var missing []string
	for _, p := range s.required {
		if !present[p] {
			missing = append(missing, p)
		}
	}
	for table, keys := range s.nested {
		if !present[table] {
			continue
		}
		for _, k := range keys {
			if !present[table+"."+k] {
				missing = append(missing, table+"."+k)
			}
		}
	}

	var errs ValidationErrors
	for _, p := range set.Sorted(unknown) {
		errs = append(errs, &ValidationError{Version: v, Field: p, Message: "unknown field"})
	}
	for _, p := range set.Sorted(missing) {
		errs = append(errs, &ValidationError{Version: v, Field: p, Message: "missing required field"})
	}

	return errs
}

func (s *shape) allows(path string) bool {
	for _, g := range s.allowed {
		if g.Match(path) {
			return true
		}
	}

	return false
}

// flatten returns the dotted paths of all tables and values in raw. Arrays,
// including arrays of tables, are leaves.
func flatten(prefix string, raw map[string]any) []string {
	paths := make([]string, 0, len(raw))
	for k, v := range raw {
		p := k
		if prefix != "" {
			p = prefix + "." + k
		}
		paths = append(paths, p)

		if sub, ok := v.(map[string]any); ok {
			paths = append(paths, flatten(p, sub)...)
		}
	}
	sort.Strings(paths)

	return paths
}
