package wizard

import (
	"errors"
	"strings"

	"github.com/gitz-dev/gitz"
	"github.com/gitz-dev/gitz/prompt"
	"github.com/gitz-dev/gitz/ticket"
)

var (
	scopeChoices = []struct {
		label string
		mode  gitz.ScopeMode
	}{
		{"Ask for a scope, accept any", gitz.ScopesAny},
		{"Ask for a scope in a list", gitz.ScopesList},
		{"Do not ask for a scope", gitz.ScopesNone},
	}
	ticketChoices = []struct {
		label string
		mode  gitz.TicketMode
	}{
		{"Require a ticket number", gitz.TicketRequired},
		{"Ask for an optional ticket number", gitz.TicketOptional},
		{"Do not ask for a ticket number", gitz.TicketNotAsked},
	}
)

// AskInit asks how a new configuration should handle scopes and tickets.
func AskInit(p prompt.Prompter) (gitz.InitOptions, error) {
	var opts gitz.InitOptions

	labels := make([]string, 0, len(scopeChoices))
	for _, c := range scopeChoices {
		labels = append(labels, c.label)
	}
	i, err := p.Select("Should git-z ask for a scope?", labels, PageSize, 0)
	if err != nil {
		return opts, err
	}
	opts.Scopes = scopeChoices[i].mode

	if opts.Scopes == gitz.ScopesList {
		answer, err := p.Text("Scopes", prompt.TextOptions{
			Help:     "Space separated, you can edit the list in git-z.toml later.",
			Validate: validateWords,
		})
		if err != nil {
			return opts, err
		}
		opts.ScopeList = strings.Fields(answer)
	}

	labels = labels[:0]
	for _, c := range ticketChoices {
		labels = append(labels, c.label)
	}
	i, err = p.Select("Should git-z ask for a ticket number?", labels, PageSize, 1)
	if err != nil {
		return opts, err
	}
	opts.Ticket = ticketChoices[i].mode

	if opts.Ticket != gitz.TicketNotAsked {
		answer, err := p.Text("Ticket prefixes", prompt.TextOptions{
			Help:    "Space separated, like `#` for GitHub / GitLab issues or `JIRA-` for a Jira project.",
			Initial: ticket.HashMarker,
			Validate: func(s string) error {
				_, err := ticket.New(strings.Fields(s))

				return err
			},
		})
		if err != nil {
			return opts, err
		}
		opts.TicketPrefixes = strings.Fields(answer)
	}

	return opts, nil
}

func validateWords(s string) error {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return errors.New("at least one scope is required")
	}

	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if seen[f] {
			return errors.New("duplicate scope " + f)
		}
		seen[f] = true
	}

	return nil
}
