package gitz

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gitz-dev/gitz/tomldoc"
)

// Templates of 0.2-dev.1 hardcoded the `#` of GitHub issues in front of the
// ticket, with an empty ticket prefix.
const (
	hashedTicket = "#{{ ticket }}"
	bareTicket   = "{{ ticket }}"
)

func (c *ConfigV0_2Dev1) upgrade(opts UpgradeOptions) (*UpgradeStep, error) {
	next := ConfigV0_2Dev2(tables(*c).clone())

	hashed := false
	if opts.EmptyPrefixToHash && next.Ticket.Mode != TicketNotAsked {
		if i := slices.Index(next.Ticket.Prefixes, ""); i >= 0 {
			hashed = true
			if slices.Contains(next.Ticket.Prefixes, "#") {
				next.Ticket.Prefixes = slices.Delete(next.Ticket.Prefixes, i, i+1)
			} else {
				next.Ticket.Prefixes[i] = "#"
			}
			next.Templates.Commit = strings.ReplaceAll(next.Templates.Commit, hashedTicket, bareTicket)
		}
	}

	return &UpgradeStep{
		From: V0_2Dev1,
		To:   V0_2Dev2,
		next: &next,
		patch: func(doc *tomldoc.Document) error {
			return patchFromV0_2Dev1(doc, next.Ticket, next.Templates, hashed)
		},
	}, nil
}

// patchFromV0_2Dev1 refreshes the ticket prefixes documentation. When hashed
// is set, the prefixes and the commit template are rewritten as well.
func patchFromV0_2Dev1(doc *tomldoc.Document, tk Ticket, tpl Templates, hashed bool) error {
	if err := expectVersion(doc, V0_2Dev1); err != nil {
		return err
	}
	if err := setVersion(doc, V0_2Dev2); err != nil {
		return err
	}

	_, found := doc.Table("ticket")
	if found != (tk.Mode != TicketNotAsked) {
		return fmt.Errorf("%w: [ticket] present is %t, ticket mode is %s", ErrInconsistentDocument, found, tk.Mode)
	}
	if !found {
		return nil
	}

	prefixes, err := requireEntry(doc, "ticket.prefixes")
	if err != nil {
		return err
	}
	prefixes.ReplacePrefix(dev0TicketPrefixesDoc, ticketPrefixesDoc)

	if !hashed {
		return nil
	}

	prefixes.SetValue(tomldoc.EncodeStrings(tk.Prefixes))

	commit, err := requireEntry(doc, "templates.commit")
	if err != nil {
		return err
	}
	// Editing the raw value keeps the string style. Escapes can hide the
	// pattern from it, the string is encoded again then.
	commit.SetValue(strings.ReplaceAll(commit.Value, hashedTicket, bareTicket))
	if s, err := commit.Str(); err != nil || s != tpl.Commit {
		commit.SetString(tpl.Commit)
	}

	return nil
}
