package gitz

import (
	"github.com/gitz-dev/gitz/tomldoc"
)

// ConfigV0_2Dev1 adds `ticket.required`.
type ConfigV0_2Dev1 struct {
	Types     []Type
	Scopes    Scopes
	Ticket    Ticket
	Templates Templates
}

// ConfigV0_2Dev2 has the same keys as 0.2-dev.1. Its default configuration
// switched the ticket prefix from "" to "#".
type ConfigV0_2Dev2 struct {
	Types     []Type
	Scopes    Scopes
	Ticket    Ticket
	Templates Templates
}

// ConfigV0_2Dev3 accepts any scope, with `accept = "any"`.
type ConfigV0_2Dev3 struct {
	Types     []Type
	Scopes    Scopes
	Ticket    Ticket
	Templates Templates
}

var (
	_ Model = (*ConfigV0_2Dev1)(nil)
	_ Model = (*ConfigV0_2Dev2)(nil)
	_ Model = (*ConfigV0_2Dev3)(nil)
)

// tables is the common layout of all table based versions. Every model from
// 0.2-dev.0 on converts to and from it.
type tables struct {
	Types     []Type
	Scopes    Scopes
	Ticket    Ticket
	Templates Templates
}

type fileTables struct {
	Version string            `toml:"version"`
	Types   map[string]string `toml:"types"`
	Scopes  *struct {
		Accept string   `toml:"accept"`
		List   []string `toml:"list"`
	} `toml:"scopes"`
	Ticket *struct {
		Required bool     `toml:"required"`
		Prefixes []string `toml:"prefixes"`
	} `toml:"ticket"`
	Templates struct {
		Commit string `toml:"commit"`
	} `toml:"templates"`
}

// decodeTables decodes a version that has `ticket.required`.
func decodeTables(v Version, text string, doc *tomldoc.Document, raw map[string]any) (tables, error) {
	var f fileTables
	if err := decodeStrict(v, text, &f); err != nil {
		return tables{}, err
	}
	if f.Version != string(v) {
		return tables{}, versionMismatch(v, f.Version)
	}

	c := tables{
		Types:     orderedTypes(doc, f.Types),
		Scopes:    Scopes{Mode: ScopesNone},
		Ticket:    Ticket{Mode: TicketNotAsked},
		Templates: Templates{Commit: f.Templates.Commit},
	}

	if f.Scopes != nil {
		c.Scopes.Mode = ScopeMode(f.Scopes.Accept)
		if hasPath(raw, "scopes.list") {
			c.Scopes.List = clonedStrings(f.Scopes.List)
		}
	}

	if f.Ticket != nil {
		c.Ticket = Ticket{Mode: TicketOptional, Prefixes: clonedStrings(f.Ticket.Prefixes)}
		if f.Ticket.Required {
			c.Ticket.Mode = TicketRequired
		}
	}

	return c, nil
}

// validateTables checks the rules shared by the table based versions. Before
// 0.2-dev.3 the only scope mode was "list".
func validateTables(version Version, c tables, anyScope bool) error {
	v := newValidator(version)

	v.types("types", c.Types, len(c.Types))

	switch c.Scopes.Mode {
	case ScopesNone:
	case ScopesAny:
		if !anyScope {
			v.addf("scopes.accept", "must be %q, got %q", ScopesList, c.Scopes.Mode)

			break
		}
		if c.Scopes.List != nil {
			v.addf("scopes.list", "is only valid when accept is %q", ScopesList)
		}
	case ScopesList:
		if c.Scopes.List == nil {
			v.addf("scopes.list", "is required when accept is %q", ScopesList)
		} else {
			v.scopeList("scopes.list", c.Scopes.List, true)
		}
	default:
		if anyScope {
			v.addf("scopes.accept", "must be one of %q or %q, got %q", ScopesAny, ScopesList, c.Scopes.Mode)
		} else {
			v.addf("scopes.accept", "must be %q, got %q", ScopesList, c.Scopes.Mode)
		}
	}

	switch c.Ticket.Mode {
	case TicketNotAsked:
	case TicketOptional, TicketRequired:
		v.ticketPrefixes("ticket.prefixes", c.Ticket.Prefixes)
	default:
		v.addf("ticket", "unknown ticket mode %q", c.Ticket.Mode)
	}

	v.template("templates.commit", c.Templates.Commit)

	return v.err()
}

// clone returns a deep copy of c.
func (c tables) clone() tables {
	out := c
	out.Types = append([]Type(nil), c.Types...)
	if c.Scopes.List != nil {
		out.Scopes.List = clonedStrings(c.Scopes.List)
	}
	if c.Ticket.Prefixes != nil {
		out.Ticket.Prefixes = clonedStrings(c.Ticket.Prefixes)
	}

	return out
}

func decodeV0_2Dev1(text string, doc *tomldoc.Document, raw map[string]any) (*ConfigV0_2Dev1, error) {
	c, err := decodeTables(V0_2Dev1, text, doc, raw)
	if err != nil {
		return nil, err
	}
	m := ConfigV0_2Dev1(c)

	return &m, nil
}

func decodeV0_2Dev2(text string, doc *tomldoc.Document, raw map[string]any) (*ConfigV0_2Dev2, error) {
	c, err := decodeTables(V0_2Dev2, text, doc, raw)
	if err != nil {
		return nil, err
	}
	m := ConfigV0_2Dev2(c)

	return &m, nil
}

func decodeV0_2Dev3(text string, doc *tomldoc.Document, raw map[string]any) (*ConfigV0_2Dev3, error) {
	c, err := decodeTables(V0_2Dev3, text, doc, raw)
	if err != nil {
		return nil, err
	}
	m := ConfigV0_2Dev3(c)

	return &m, nil
}

// Version implements Model.
func (c *ConfigV0_2Dev1) Version() Version { return V0_2Dev1 }

// Version implements Model.
func (c *ConfigV0_2Dev2) Version() Version { return V0_2Dev2 }

// Version implements Model.
func (c *ConfigV0_2Dev3) Version() Version { return V0_2Dev3 }

// Validate implements Model.
func (c *ConfigV0_2Dev1) Validate() error {
	return validateTables(V0_2Dev1, tables(*c), false)
}

// Validate implements Model.
func (c *ConfigV0_2Dev2) Validate() error {
	return validateTables(V0_2Dev2, tables(*c), false)
}

// Validate implements Model.
func (c *ConfigV0_2Dev3) Validate() error {
	return validateTables(V0_2Dev3, tables(*c), true)
}
