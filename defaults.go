package gitz

import (
	"embed"
	"fmt"

	"github.com/gitz-dev/gitz/tomldoc"
)

//go:embed defaults/*.toml
var defaults embed.FS

// DefaultDocument returns the canonical configuration file of version v, as
// written by the git-z release that introduced it.
func DefaultDocument(v Version) (string, error) {
	if v.Index() < 0 {
		return "", &VersionError{Found: string(v), Latest: Latest, err: ErrUnsupportedVersion}
	}

	buf, err := defaults.ReadFile("defaults/v" + string(v) + ".toml")
	if err != nil {
		return "", internalf("defaults", "no default document for %s: %w", v, err)
	}

	return string(buf), nil
}

// InitOptions adjusts the default configuration written by Init. Zero values
// keep the defaults: any scope and an optional `#` ticket.
type InitOptions struct {
	Scopes    ScopeMode
	ScopeList []string

	Ticket         TicketMode
	TicketPrefixes []string
}

// InitDocument returns the latest default configuration adjusted by opts.
// The result is validated.
func InitDocument(opts InitOptions) (string, error) {
	text, err := DefaultDocument(Latest)
	if err != nil {
		return "", err
	}

	doc, err := tomldoc.Parse(text)
	if err != nil {
		return "", internalf("init", "failed to parse default document: %w", err)
	}

	// The ticket goes first: a commented-out scopes block would otherwise end
	// up in the prefix of the ticket table and be removed along with it.
	if err := initTicket(doc, opts); err != nil {
		return "", err
	}
	if err := initScopes(doc, opts); err != nil {
		return "", err
	}

	out := doc.String()
	if _, err := Parse(FileName, out); err != nil {
		return "", err
	}

	return out, nil
}

func initScopes(doc *tomldoc.Document, opts InitOptions) error {
	switch opts.Scopes {
	case "", ScopesAny:
		if len(opts.ScopeList) > 0 {
			return invalidOption("scopes", "a scope list needs the %q mode", ScopesList)
		}
	case ScopesList:
		accept, err := requireEntry(doc, "scopes.accept")
		if err != nil {
			return internalf("init", "%w", err)
		}
		accept.SetString(string(ScopesList))

		t, err := requireTable(doc, "scopes")
		if err != nil {
			return internalf("init", "%w", err)
		}
		if err := t.Append(tomldoc.NewEntry("list", tomldoc.EncodeStrings(opts.ScopeList))); err != nil {
			return internalf("init", "%w", err)
		}
	case ScopesNone:
		i, found := doc.RemoveTable("scopes")
		if !found {
			return internalf("init", "%w: no [scopes] table", ErrInconsistentDocument)
		}
		doc.InsertComment(i, scopesCommented)
	default:
		return invalidOption("scopes", "unknown mode %q", opts.Scopes)
	}

	return nil
}

func initTicket(doc *tomldoc.Document, opts InitOptions) error {
	switch opts.Ticket {
	case "", TicketOptional:
	case TicketRequired:
		required, err := requireEntry(doc, "ticket.required")
		if err != nil {
			return internalf("init", "%w", err)
		}
		required.SetBool(true)
	case TicketNotAsked:
		if opts.TicketPrefixes != nil {
			return invalidOption("ticket", "prefixes are only used when a ticket is asked for")
		}
		i, found := doc.RemoveTable("ticket")
		if !found {
			return internalf("init", "%w: no [ticket] table", ErrInconsistentDocument)
		}
		doc.InsertComment(i, ticketCommented)

		return nil
	default:
		return invalidOption("ticket", "unknown mode %q", opts.Ticket)
	}

	if opts.TicketPrefixes != nil {
		prefixes, err := requireEntry(doc, "ticket.prefixes")
		if err != nil {
			return internalf("init", "%w", err)
		}
		prefixes.SetValue(tomldoc.EncodeStrings(opts.TicketPrefixes))
	}

	return nil
}

func invalidOption(field, format string, args ...any) error {
	return ValidationErrors{{Version: Latest, Field: field, Message: fmt.Sprintf(format, args...)}}
}
