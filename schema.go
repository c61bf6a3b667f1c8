package gitz

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/gitz-dev/gitz/tomldoc"
	"github.com/gopasspw/gopass/pkg/set"
	"github.com/pelletier/go-toml/v2"
)

// Model is a decoded configuration of one specific version. It is
// implemented by the Config* types of this package only.
type Model interface {
	// Version returns the format version of the model.
	Version() Version
	// Validate checks the semantic rules of the version and returns
	// ValidationErrors, or nil.
	Validate() error

	upgrade(opts UpgradeOptions) (*UpgradeStep, error)
}

// Config is the configuration in the latest format. This is what the commit
// wizard works with.
type Config = ConfigV0_2

// Type is a commit type and its description.
type Type struct {
	Name        string
	Description string
}

// ScopeMode tells if and how the wizard asks for a scope.
type ScopeMode string

// Scope modes.
const (
	ScopesNone ScopeMode = "none"
	ScopesAny  ScopeMode = "any"
	ScopesList ScopeMode = "list"
)

// Scopes is the scope configuration. List is only set in ScopesList mode,
// or when a list was written next to a different mode.
type Scopes struct {
	Mode ScopeMode
	List []string
}

// TicketMode tells if the wizard asks for a ticket and if an answer is
// mandatory.
type TicketMode string

// Ticket modes.
const (
	TicketNotAsked TicketMode = "none"
	TicketOptional TicketMode = "optional"
	TicketRequired TicketMode = "required"
)

// Ticket is the ticket reference configuration.
type Ticket struct {
	Mode     TicketMode
	Prefixes []string
}

// Templates holds the templates used to build messages.
type Templates struct {
	Commit string
}

// decodeModel strictly decodes text into the model of version v. doc must be
// the parsed form of the same text, it provides the declaration order of the
// types.
func decodeModel(v Version, text string, doc *tomldoc.Document, raw map[string]any) (Model, error) {
	switch v {
	case V0_1:
		return decodeV0_1(text, raw)
	case V0_2Dev0:
		return decodeV0_2Dev0(text, doc, raw)
	case V0_2Dev1:
		return decodeV0_2Dev1(text, doc, raw)
	case V0_2Dev2:
		return decodeV0_2Dev2(text, doc, raw)
	case V0_2Dev3:
		return decodeV0_2Dev3(text, doc, raw)
	case V0_2:
		return decodeV0_2(text, doc, raw)
	default:
		return nil, internalf("decode", "no model for version %q", v)
	}
}

func decodeStrict(v Version, text string, target any) error {
	dec := toml.NewDecoder(bytes.NewReader([]byte(text)))
	dec.DisallowUnknownFields()

	err := dec.Decode(target)
	if err == nil {
		return nil
	}

	var strictErr *toml.StrictMissingError
	if errors.As(err, &strictErr) {
		errs := make(ValidationErrors, 0, len(strictErr.Errors))
		for _, e := range strictErr.Errors {
			errs = append(errs, &ValidationError{
				Version: v,
				Field:   strings.Join(e.Key(), "."),
				Message: "unknown field",
			})
		}

		return errs
	}

	return ValidationErrors{{Version: v, Message: err.Error()}}
}

// orderedTypes returns the types in the order of the `[types]` table. For an
// inline table the order is not recoverable and names are sorted instead.
func orderedTypes(doc *tomldoc.Document, descriptions map[string]string) []Type {
	types := make([]Type, 0, len(descriptions))

	if t, found := doc.Table("types"); found {
		for _, e := range t.Entries() {
			if desc, ok := descriptions[e.Name()]; ok {
				types = append(types, Type{Name: e.Name(), Description: desc})
			}
		}
	}

	if len(types) == len(descriptions) {
		return types
	}

	types = types[:0]
	for _, name := range set.SortedKeys(descriptions) {
		types = append(types, Type{Name: name, Description: descriptions[name]})
	}

	return types
}

// hasPath reports whether a dotted path exists in a generic document.
func hasPath(raw map[string]any, path string) bool {
	cur := raw
	parts := strings.Split(path, ".")
	for i, p := range parts {
		v, found := cur[p]
		if !found {
			return false
		}
		if i == len(parts)-1 {
			return true
		}
		next, ok := v.(map[string]any)
		if !ok {
			return false
		}
		cur = next
	}

	return false
}

func typeNames(types []Type) []string {
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, t.Name)
	}

	return names
}

func versionMismatch(want Version, found string) error {
	return internalf("decode", "expected version %q, decoded %q", want, found)
}

// clonedStrings returns a copy of list that is never nil.
func clonedStrings(list []string) []string {
	out := make([]string, len(list))
	copy(out, list)

	return out
}

func describe(m Model) string {
	return fmt.Sprintf("%T(%s)", m, m.Version())
}
