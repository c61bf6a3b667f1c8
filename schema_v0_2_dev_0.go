package gitz

import (
	"github.com/gitz-dev/gitz/tomldoc"
)

// ConfigV0_2Dev0 is the first table based format. Scopes can only be given
// as a list and tickets are never required.
type ConfigV0_2Dev0 struct {
	Types     []Type
	Scopes    Scopes
	Ticket    Ticket
	Templates Templates
}

var _ Model = (*ConfigV0_2Dev0)(nil)

type fileV0_2Dev0 struct {
	Version string            `toml:"version"`
	Types   map[string]string `toml:"types"`
	Scopes  *struct {
		Accept string   `toml:"accept"`
		List   []string `toml:"list"`
	} `toml:"scopes"`
	Ticket *struct {
		Prefixes []string `toml:"prefixes"`
	} `toml:"ticket"`
	Templates struct {
		Commit string `toml:"commit"`
	} `toml:"templates"`
}

func decodeV0_2Dev0(text string, doc *tomldoc.Document, raw map[string]any) (*ConfigV0_2Dev0, error) {
	var f fileV0_2Dev0
	if err := decodeStrict(V0_2Dev0, text, &f); err != nil {
		return nil, err
	}
	if f.Version != string(V0_2Dev0) {
		return nil, versionMismatch(V0_2Dev0, f.Version)
	}

	c := &ConfigV0_2Dev0{
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
	}

	return c, nil
}

// Version implements Model.
func (c *ConfigV0_2Dev0) Version() Version {
	return V0_2Dev0
}

// Validate implements Model.
func (c *ConfigV0_2Dev0) Validate() error {
	return validateTables(V0_2Dev0, tables(*c), false)
}
