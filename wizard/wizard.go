// Package wizard asks the commit questions and renders the commit message.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gitz-dev/gitz"
	"github.com/gitz-dev/gitz/prompt"
	"github.com/gitz-dev/gitz/render"
	"github.com/gitz-dev/gitz/ticket"
	"github.com/gopasspw/gopass/pkg/debug"
)

// PageSize is the number of options shown at once.
const PageSize = 15

// Description length limits, in characters.
const (
	MinDescription = 5
	MaxDescription = 50
)

// NoScope is the extra option to leave the scope empty when scopes come
// from a list.
const NoScope = "(no scope)"

// Run asks the questions configured by cfg. Each answer is recorded in the
// cache, and the answers of an unfinished previous run are offered as
// defaults.
func Run(ctx context.Context, cfg *gitz.Config, p prompt.Prompter, cache *Cache) (render.Values, error) {
	if len(cfg.Types) == 0 {
		return render.Values{}, errors.New("no commit types configured")
	}

	var prev render.Values
	resumed := cache.Resumable()
	if resumed {
		prev = cache.Answers
		debug.V(1).Log("resuming the wizard from %s", cache.Path())
	}

	var v render.Values
	steps := []func() error{
		func() (err error) {
			v.Type, err = askType(cfg, p, prev.Type)

			return err
		},
		func() (err error) {
			v.Scope, err = askScope(cfg, p, prev.Scope, resumed)

			return err
		},
		func() (err error) {
			v.Description, err = p.Text("Short description", prompt.TextOptions{
				Placeholder: fmt.Sprintf("describe your change with a short description (%d-%d characters)", MinDescription, MaxDescription),
				Help:        "You will be able to add a long description to your commit in an editor later.",
				Initial:     prev.Description,
				Validate:    ValidateDescription,
			})

			return err
		},
		func() (err error) {
			v.BreakingChange, err = p.Text("BREAKING CHANGE", prompt.TextOptions{
				Placeholder: "summary of the breaking change",
				Help:        "Leave empty if there are no breaking changes.",
				Initial:     prev.BreakingChange,
				Skippable:   true,
			})

			return err
		},
		func() (err error) {
			v.Ticket, err = askTicket(cfg, p, prev.Ticket)

			return err
		},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return render.Values{}, err
		}
		if err := step(); err != nil {
			return render.Values{}, err
		}
		if err := cache.Record(v); err != nil {
			return render.Values{}, err
		}
	}

	if err := cache.Complete(); err != nil {
		return render.Values{}, err
	}

	return v, nil
}

// Message renders the commit template of cfg with the answers.
func Message(cfg *gitz.Config, v render.Values) (string, error) {
	return render.Render(cfg.Templates.Commit, v)
}

// FormatTypes aligns type names and descriptions in two columns.
func FormatTypes(types []gitz.Type) []string {
	width := 0
	for _, t := range types {
		width = max(width, utf8.RuneCountInString(t.Name))
	}

	out := make([]string, 0, len(types))
	for _, t := range types {
		pad := strings.Repeat(" ", width-utf8.RuneCountInString(t.Name))
		out = append(out, t.Name+pad+"  "+t.Description)
	}

	return out
}

// ValidateDescription checks the short description of a commit.
func ValidateDescription(s string) error {
	n := utf8.RuneCountInString(s)
	switch {
	case n < MinDescription:
		return fmt.Errorf("the description must be at least %d characters long", MinDescription)
	case n > MaxDescription:
		return fmt.Errorf("the description must not be longer than %d characters", MaxDescription)
	}

	if r, _ := utf8.DecodeRuneInString(s); unicode.IsUpper(r) {
		return errors.New("the description must start in lowercase")
	}

	return nil
}

func askType(cfg *gitz.Config, p prompt.Prompter, prev string) (string, error) {
	names := cfg.TypeNames()

	def := max(slices.Index(names, prev), 0)

	i, err := p.Select("Commit type", FormatTypes(cfg.Types), PageSize, def)
	if err != nil {
		return "", err
	}

	return names[i], nil
}

// askScope offers the previous answer as default. An empty previous answer
// from a resumed run means NoScope was chosen.
func askScope(cfg *gitz.Config, p prompt.Prompter, prev string, resumed bool) (string, error) {
	switch cfg.Scopes.Mode {
	case gitz.ScopesAny:
		return p.Text("Scope", prompt.TextOptions{
			Help:      "Leave empty to omit the scope.",
			Initial:   prev,
			Skippable: true,
		})
	case gitz.ScopesList:
		options := append(slices.Clone(cfg.Scopes.List), NoScope)

		def := max(slices.Index(cfg.Scopes.List, prev), 0)
		if resumed && prev == "" {
			def = len(options) - 1
		}

		i, err := p.Select("Scope", options, PageSize, def)
		if err != nil {
			return "", err
		}
		if i == len(options)-1 {
			return "", nil
		}

		return options[i], nil
	default:
		return "", nil
	}
}

func askTicket(cfg *gitz.Config, p prompt.Prompter, prev string) (string, error) {
	if cfg.Ticket.Mode == gitz.TicketNotAsked {
		return "", nil
	}

	m, err := ticket.New(cfg.Ticket.Prefixes)
	if err != nil {
		return "", err
	}

	opts := prompt.TextOptions{
		Placeholder: m.Placeholder(),
		Initial:     prev,
		Validate: func(s string) error {
			if _, ok := m.Match(s); !ok {
				return fmt.Errorf("the issue / ticket number must be in the form %s", m.Placeholder())
			}

			return nil
		},
	}
	if cfg.Ticket.Mode == gitz.TicketOptional {
		opts.Skippable = true
		opts.Help = "Leave empty to omit the ticket reference."
	}

	answer, err := p.Text("Issue / ticket number", opts)
	if err != nil || answer == "" {
		return "", err
	}

	normalized, _ := m.Match(answer)

	return normalized, nil
}
