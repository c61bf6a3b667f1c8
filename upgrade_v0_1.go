package gitz

import (
	"fmt"

	"github.com/gitz-dev/gitz/tomldoc"
)

func (c *ConfigV0_1) upgrade(UpgradeOptions) (*UpgradeStep, error) {
	next := &ConfigV0_2Dev0{
		Types:     c.ParsedTypes(),
		Scopes:    Scopes{Mode: ScopesNone},
		Ticket:    Ticket{Mode: TicketNotAsked},
		Templates: Templates{Commit: c.Template},
	}
	if len(next.Types) != len(c.Types) {
		return nil, internalf("upgrade from 0.1", "%d of %d types are malformed", len(c.Types)-len(next.Types), len(c.Types))
	}

	// An empty list used to mean "do not ask for a scope".
	if len(c.Scopes) > 0 {
		next.Scopes = Scopes{Mode: ScopesList, List: clonedStrings(c.Scopes)}
	}

	if c.HasTicketPrefixes {
		next.Ticket = Ticket{Mode: TicketOptional, Prefixes: clonedStrings(c.TicketPrefixes)}
	}

	return &UpgradeStep{
		From: V0_1,
		To:   V0_2Dev0,
		next: next,
		patch: func(doc *tomldoc.Document) error {
			return patchFromV0_1(doc, next)
		},
	}, nil
}

// patchFromV0_1 moves the flat keys of a 0.1 document into the tables of
// 0.2-dev.0. Comments above each key move along with it.
func patchFromV0_1(doc *tomldoc.Document, next *ConfigV0_2Dev0) error {
	if err := expectVersion(doc, V0_1); err != nil {
		return err
	}
	if err := setVersion(doc, V0_2Dev0); err != nil {
		return err
	}

	root := doc.Root()

	trailer := doc.Trailer()
	doc.SetTrailer("")

	types, found := root.Remove("types")
	if !found {
		return fmt.Errorf("%w: no \"types\" entry", ErrInconsistentDocument)
	}
	scopes, found := root.Remove("scopes")
	if !found {
		return fmt.Errorf("%w: no \"scopes\" entry", ErrInconsistentDocument)
	}
	template, found := root.Remove("template")
	if !found {
		return fmt.Errorf("%w: no \"template\" entry", ErrInconsistentDocument)
	}
	prefixes, hasPrefixes := root.Remove("ticket_prefixes")
	if hasPrefixes != (next.Ticket.Mode != TicketNotAsked) {
		return fmt.Errorf("%w: ticket_prefixes present is %t, ticket mode is %s", ErrInconsistentDocument, hasPrefixes, next.Ticket.Mode)
	}

	if err := moveTypes(doc, types, next.Types); err != nil {
		return err
	}

	if err := moveScopes(doc, scopes, next.Scopes); err != nil {
		return err
	}

	if hasPrefixes {
		t, err := doc.AppendTable("ticket", dev0TicketDoc)
		if err != nil {
			return err
		}
		prefix := swapDoc(tomldoc.TrimLeadingBlankLines(prefixes.Prefix), tomldoc.TrimLeadingBlankLines(v01TicketPrefixesDoc), dev0TicketPrefixesDoc)
		if err := t.Append(renamed(prefixes, "prefixes", prefix)); err != nil {
			return err
		}
	} else {
		doc.AppendComment(dev0TicketCommented)
	}

	t, err := doc.AppendTable("templates", dev0TemplatesDoc)
	if err != nil {
		return err
	}
	prefix := swapDoc(tomldoc.TrimLeadingBlankLines(template.Prefix), tomldoc.TrimLeadingBlankLines(v01TemplateDoc), dev0TemplatesCommitDoc)
	if err := t.Append(renamed(template, "commit", prefix)); err != nil {
		return err
	}

	if trailer != "" {
		doc.AppendComment(trailer)
	}

	return nil
}

func moveTypes(doc *tomldoc.Document, entry *tomldoc.Entry, types []Type) error {
	t, err := doc.AppendTable("types", swapDoc(entry.Prefix, v01TypesDoc, dev0TypesDoc))
	if err != nil {
		return err
	}
	t.SetPrefixIfEmpty(dev0TypesDoc)
	// A trailing comment on the old key stays on the header line.
	t.Header = "[types]" + ensureNewline(entry.Rest)

	for _, ty := range types {
		if err := t.Append(tomldoc.NewEntry(ty.Name, tomldoc.EncodeString(ty.Description))); err != nil {
			return err
		}
	}

	return nil
}

func moveScopes(doc *tomldoc.Document, entry *tomldoc.Entry, scopes Scopes) error {
	if scopes.Mode == ScopesNone {
		block, swapped := swapDocOK(entry.Prefix, v01ScopesDoc, dev0ScopesCommented)
		if !swapped {
			block = entry.Prefix + dev0ScopesCommented
		}
		doc.AppendComment(block)

		return nil
	}

	t, err := doc.AppendTable("scopes", swapDoc(entry.Prefix, v01ScopesDoc, dev0ScopesDoc))
	if err != nil {
		return err
	}
	t.SetPrefixIfEmpty(dev0ScopesDoc)

	accept := tomldoc.NewEntry("accept", tomldoc.EncodeString(string(ScopesList)))
	accept.Prefix = dev0ScopesAcceptDoc
	if err := t.Append(accept); err != nil {
		return err
	}

	return t.Append(renamed(entry, "list", ""))
}

// renamed returns a copy of e under a new key, keeping its raw value and
// trailing comment.
func renamed(e *tomldoc.Entry, key, prefix string) *tomldoc.Entry {
	return &tomldoc.Entry{
		Prefix: prefix,
		Indent: e.Indent,
		Key:    tomldoc.EncodeKey(key),
		Sep:    e.Sep,
		Value:  e.Value,
		Rest:   ensureNewline(e.Rest),
	}
}
