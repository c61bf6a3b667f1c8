package gitz

import (
	"strings"
	"unicode"
)

// ConfigV0_1 is the original configuration format, with flat keys and types
// written as "name  description" strings.
type ConfigV0_1 struct {
	Tag            string   `toml:"version"`
	Types          []string `toml:"types"`
	Scopes         []string `toml:"scopes"`
	TicketPrefixes []string `toml:"ticket_prefixes"`
	Template       string   `toml:"template"`

	// HasTicketPrefixes is false when `ticket_prefixes` is absent, which
	// means no ticket is asked for.
	HasTicketPrefixes bool `toml:"-"`
}

var _ Model = (*ConfigV0_1)(nil)

func decodeV0_1(text string, raw map[string]any) (*ConfigV0_1, error) {
	var c ConfigV0_1
	if err := decodeStrict(V0_1, text, &c); err != nil {
		return nil, err
	}
	if c.Tag != string(V0_1) {
		return nil, versionMismatch(V0_1, c.Tag)
	}

	c.HasTicketPrefixes = hasPath(raw, "ticket_prefixes")

	return &c, nil
}

// Version implements Model.
func (c *ConfigV0_1) Version() Version {
	return V0_1
}

// Validate implements Model.
func (c *ConfigV0_1) Validate() error {
	v := newValidator(V0_1)

	types := make([]Type, 0, len(c.Types))
	for i, entry := range c.Types {
		t, ok := splitTypeV0_1(entry)
		if !ok {
			v.addf(indexed("types", i), "%q must be a type name followed by its description", entry)

			continue
		}
		types = append(types, t)
	}
	v.types("types", types, len(c.Types))

	v.scopeList("scopes", c.Scopes, false)

	if c.HasTicketPrefixes {
		v.ticketPrefixes("ticket_prefixes", c.TicketPrefixes)
	}

	v.template("template", c.Template)

	return v.err()
}

// ParsedTypes returns the types split into name and description. Malformed
// entries are skipped.
func (c *ConfigV0_1) ParsedTypes() []Type {
	types := make([]Type, 0, len(c.Types))
	for _, entry := range c.Types {
		if t, ok := splitTypeV0_1(entry); ok {
			types = append(types, t)
		}
	}

	return types
}

// splitTypeV0_1 splits "feat   introduces a new feature" at the first run of
// whitespace.
func splitTypeV0_1(entry string) (Type, bool) {
	entry = strings.TrimSpace(entry)

	i := strings.IndexFunc(entry, unicode.IsSpace)
	if i <= 0 {
		return Type{}, false
	}

	desc := strings.TrimLeftFunc(entry[i:], unicode.IsSpace)
	if desc == "" {
		return Type{}, false
	}

	return Type{Name: entry[:i], Description: desc}, true
}
