package gitz

import (
	"fmt"

	"github.com/gitz-dev/gitz/tomldoc"
)

func (c *ConfigV0_2Dev3) upgrade(UpgradeOptions) (*UpgradeStep, error) {
	next := ConfigV0_2(tables(*c).clone())

	return &UpgradeStep{
		From: V0_2Dev3,
		To:   V0_2,
		next: &next,
		patch: func(doc *tomldoc.Document) error {
			return patchFromV0_2Dev3(doc, next.Scopes, next.Ticket)
		},
	}, nil
}

// patchFromV0_2Dev3 refreshes the documentation comments that are still the
// canonical 0.2-dev ones.
func patchFromV0_2Dev3(doc *tomldoc.Document, scopes Scopes, tk Ticket) error {
	if err := expectVersion(doc, V0_2Dev3); err != nil {
		return err
	}
	if err := setVersion(doc, V0_2); err != nil {
		return err
	}

	types, err := requireTable(doc, "types")
	if err != nil {
		return err
	}
	types.ReplacePrefix(dev0TypesDoc, typesDoc)

	t, found := doc.Table("scopes")
	if found != (scopes.Mode != ScopesNone) {
		return fmt.Errorf("%w: [scopes] present is %t, scope mode is %s", ErrInconsistentDocument, found, scopes.Mode)
	}
	if found {
		t.ReplacePrefix(dev0ScopesDoc, scopesDoc)
	} else {
		doc.ReplaceComment(dev3ScopesCommented, scopesCommented)
	}

	t, found = doc.Table("ticket")
	if found != (tk.Mode != TicketNotAsked) {
		return fmt.Errorf("%w: [ticket] present is %t, ticket mode is %s", ErrInconsistentDocument, found, tk.Mode)
	}
	if found {
		t.ReplacePrefix(dev0TicketDoc, ticketDoc)
	} else {
		doc.ReplaceComment(dev1TicketCommented, ticketCommented)
	}

	templates, err := requireTable(doc, "templates")
	if err != nil {
		return err
	}
	if !templates.ReplacePrefix(dev0TemplatesDoc, templatesDoc) {
		templates.SetPrefixIfEmpty(templatesDoc)
	}

	commit, err := requireEntry(doc, "templates.commit")
	if err != nil {
		return err
	}
	if !commit.ReplacePrefix(dev0TemplatesCommitDoc, templatesCommitDoc) {
		commit.SetPrefixIfEmpty(templatesCommitDoc)
	}

	return nil
}
