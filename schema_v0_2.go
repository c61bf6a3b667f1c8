package gitz

import (
	"github.com/gitz-dev/gitz/tomldoc"
)

// ConfigV0_2 is the current configuration format.
type ConfigV0_2 struct {
	Types     []Type
	Scopes    Scopes
	Ticket    Ticket
	Templates Templates
}

var _ Model = (*ConfigV0_2)(nil)

func decodeV0_2(text string, doc *tomldoc.Document, raw map[string]any) (*ConfigV0_2, error) {
	c, err := decodeTables(V0_2, text, doc, raw)
	if err != nil {
		return nil, err
	}
	m := ConfigV0_2(c)

	return &m, nil
}

// Version implements Model.
func (c *ConfigV0_2) Version() Version {
	return V0_2
}

// Validate implements Model.
func (c *ConfigV0_2) Validate() error {
	return validateTables(V0_2, tables(*c), true)
}

func (c *ConfigV0_2) upgrade(UpgradeOptions) (*UpgradeStep, error) {
	return nil, internalf("upgrade", "%s is the latest version", V0_2)
}

// TypeNames returns the names of the types in declaration order.
func (c *ConfigV0_2) TypeNames() []string {
	return typeNames(c.Types)
}
