package gitz

import (
	"fmt"
	"regexp"

	"github.com/gitz-dev/gitz/tomldoc"
)

var (
	templateToken = regexp.MustCompile(`(?s)\{%-?\s*(\w+)(.*?)-?%\}|\{\{-?\s*(ticket)\b`)
	ticketWord    = regexp.MustCompile(`\bticket\b`)
)

func (c *ConfigV0_2Dev0) upgrade(opts UpgradeOptions) (*UpgradeStep, error) {
	next := ConfigV0_2Dev1(tables(*c).clone())

	hadTicket := c.Ticket.Mode != TicketNotAsked
	switch {
	case !hadTicket && (opts.Ticket == TicketOptional || opts.Ticket == TicketRequired):
		return nil, invalidOption("ticket", "can not ask for a ticket: no ticket prefixes are configured")
	case !hadTicket:
	case opts.Ticket == TicketNotAsked:
		next.Ticket = Ticket{Mode: TicketNotAsked}
	case opts.Ticket != "":
		next.Ticket.Mode = opts.Ticket
	case usesTicketUnguarded(c.Templates.Commit):
		// A template that always prints the ticket can not do without one.
		next.Ticket.Mode = TicketRequired
	}

	return &UpgradeStep{
		From: V0_2Dev0,
		To:   V0_2Dev1,
		next: &next,
		patch: func(doc *tomldoc.Document) error {
			return patchFromV0_2Dev0(doc, hadTicket, next.Ticket)
		},
	}, nil
}

// patchFromV0_2Dev0 adds `ticket.required`, or comments the [ticket] table
// out when the ticket is no longer asked for.
func patchFromV0_2Dev0(doc *tomldoc.Document, hadTicket bool, tk Ticket) error {
	if err := expectVersion(doc, V0_2Dev0); err != nil {
		return err
	}
	if err := setVersion(doc, V0_2Dev1); err != nil {
		return err
	}

	t, found := doc.Table("ticket")
	if found != hadTicket {
		return fmt.Errorf("%w: [ticket] present is %t, expected %t", ErrInconsistentDocument, found, hadTicket)
	}

	switch {
	case !found:
		doc.ReplaceComment(dev0TicketCommented, dev1TicketCommented)

		return nil
	case tk.Mode == TicketNotAsked:
		block, swapped := swapDocOK(t.Prefix, dev0TicketDoc, dev1TicketCommented)
		if !swapped {
			block = t.Prefix + dev1TicketCommented
		}
		i, _ := doc.RemoveTable("ticket")
		doc.InsertComment(i, block)

		return nil
	}

	required := tomldoc.NewEntry("required", tomldoc.EncodeBool(tk.Mode == TicketRequired))
	required.Prefix = ticketRequiredDoc

	return t.InsertBefore("prefixes", required)
}

// usesTicketUnguarded reports whether the template prints `{{ ticket }}`
// outside of any `{% if %}` branch whose condition mentions the ticket.
func usesTicketUnguarded(template string) bool {
	var guards []bool

	guarded := func() bool {
		for _, g := range guards {
			if g {
				return true
			}
		}

		return false
	}

	for _, m := range templateToken.FindAllStringSubmatch(template, -1) {
		if m[3] != "" {
			if !guarded() {
				return true
			}

			continue
		}

		top := len(guards) - 1
		switch m[1] {
		case "if":
			guards = append(guards, ticketWord.MatchString(m[2]))
		case "for":
			guards = append(guards, false)
		case "elif":
			if top >= 0 {
				guards[top] = ticketWord.MatchString(m[2])
			}
		case "else":
			if top >= 0 {
				guards[top] = false
			}
		case "endif", "endfor":
			if top >= 0 {
				guards = guards[:top]
			}
		}
	}

	return false
}
