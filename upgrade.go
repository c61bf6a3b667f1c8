package gitz

import (
	"fmt"
	"strings"

	"github.com/gitz-dev/gitz/tomldoc"
	"github.com/gopasspw/gopass/pkg/debug"
	"github.com/pelletier/go-toml/v2"
)

// UpgradeStep converts a model and its document from one version to the
// next. The next model and the document patch are built together by the
// model being upgraded, so they always describe the same change.
type UpgradeStep struct {
	From Version
	To   Version

	next  Model
	patch func(doc *tomldoc.Document) error
}

// Next returns the upgraded model.
func (s *UpgradeStep) Next() Model {
	return s.next
}

// UpgradeOptions are the choices an upgrade can make on behalf of the user.
// The zero value keeps the configuration as close as possible to what it
// was.
type UpgradeOptions struct {
	// SwitchScopesToAny replaces a scope list by `accept = "any"` when
	// upgrading to 0.2-dev.3.
	SwitchScopesToAny bool
	// Ticket sets the ticket mode when `ticket.required` is introduced in
	// 0.2-dev.1. When empty, a ticket is required if the commit template
	// prints it unconditionally. TicketNotAsked removes the [ticket] table.
	Ticket TicketMode
	// EmptyPrefixToHash replaces the "" ticket prefix by "#" when upgrading
	// to 0.2-dev.2, and removes the `#` hardcoded before `{{ ticket }}` in
	// the commit template.
	EmptyPrefixToHash bool
}

func (o UpgradeOptions) validate() error {
	switch o.Ticket {
	case "", TicketNotAsked, TicketOptional, TicketRequired:
		return nil
	default:
		return invalidOption("ticket", "unknown mode %q", o.Ticket)
	}
}

// UpgradeModel upgrades a model in memory up to the latest version. It
// returns the versions it went through, excluding the starting one.
func UpgradeModel(m Model, opts UpgradeOptions) (Model, []Version, error) {
	return walk(m, nil, opts)
}

// UpgradeDocument upgrades m and patches doc along the way. Every step is
// applied exactly once. After each step the document must carry the new
// version tag and match the key shape of that version.
func UpgradeDocument(doc *tomldoc.Document, m Model, opts UpgradeOptions) (Model, []Version, error) {
	if doc == nil {
		return nil, nil, internalf("upgrade", "no document")
	}

	return walk(m, doc, opts)
}

func walk(m Model, doc *tomldoc.Document, opts UpgradeOptions) (Model, []Version, error) {
	if m == nil {
		return nil, nil, internalf("upgrade", "no model")
	}
	if err := opts.validate(); err != nil {
		return nil, nil, err
	}

	applied := make(map[Version]bool, len(knownVersions))
	var path []Version

	for m.Version() != Latest {
		step, err := m.upgrade(opts)
		if err != nil {
			return nil, nil, err
		}
		if err := checkStep(step, m); err != nil {
			return nil, nil, err
		}
		if applied[step.From] {
			return nil, nil, internalf(stepName(step), "step applied twice")
		}
		applied[step.From] = true

		if doc != nil {
			if err := applyPatch(step, doc); err != nil {
				return nil, nil, err
			}
		}

		debug.V(1).Log("upgraded %s to %s", describe(m), describe(step.next))

		m = step.next
		path = append(path, step.To)
	}

	return m, path, nil
}

func checkStep(step *UpgradeStep, from Model) error {
	if step == nil || step.next == nil || step.patch == nil {
		return internalf("upgrade from "+from.Version().String(), "incomplete step")
	}

	want, ok := from.Version().Next()
	switch {
	case !ok:
		return internalf(stepName(step), "no version after %s", from.Version())
	case step.From != from.Version():
		return internalf(stepName(step), "step starts at %s, model is %s", step.From, from.Version())
	case step.To != want || step.next.Version() != want:
		return internalf(stepName(step), "step leads to %s (model %s), expected %s", step.To, step.next.Version(), want)
	}

	return nil
}

func applyPatch(step *UpgradeStep, doc *tomldoc.Document) error {
	if err := step.patch(doc); err != nil {
		return &InternalError{Step: stepName(step), Err: err}
	}

	e, found := doc.Entry("version")
	if !found {
		return internalf(stepName(step), "%w: no version entry after patch", ErrInconsistentDocument)
	}
	tag, err := e.Str()
	if err != nil || tag != string(step.To) {
		return internalf(stepName(step), "%w: version reads %q after patch", ErrInconsistentDocument, e.Value)
	}

	var raw map[string]any
	if err := toml.Unmarshal([]byte(doc.String()), &raw); err != nil {
		return internalf(stepName(step), "patched document is not valid TOML: %w", err)
	}
	if errs := checkShape(step.To, raw); len(errs) > 0 {
		return internalf(stepName(step), "%w: %w", ErrInconsistentDocument, errs)
	}

	debug.V(3).Log("patched document to %s:\n%s", step.To, doc)

	return nil
}

func stepName(step *UpgradeStep) string {
	return fmt.Sprintf("upgrade from %s to %s", step.From, step.To)
}

// requireEntry fetches an entry the model says must exist.
func requireEntry(doc *tomldoc.Document, path string) (*tomldoc.Entry, error) {
	e, found := doc.Entry(path)
	if !found {
		return nil, fmt.Errorf("%w: no %q entry", ErrInconsistentDocument, path)
	}

	return e, nil
}

// requireTable fetches a table the model says must exist.
func requireTable(doc *tomldoc.Document, name string) (*tomldoc.Table, error) {
	t, found := doc.Table(name)
	if !found {
		return nil, fmt.Errorf("%w: no [%s] table", ErrInconsistentDocument, name)
	}

	return t, nil
}

// expectVersion fails unless the document still has version v. Patches
// start with it, so a patch can not run twice on the same document.
func expectVersion(doc *tomldoc.Document, v Version) error {
	e, err := requireEntry(doc, "version")
	if err != nil {
		return err
	}
	if tag, err := e.Str(); err != nil || tag != string(v) {
		return fmt.Errorf("%w: expected version %q, found %s", ErrInconsistentDocument, v, e.Value)
	}

	return nil
}

// setVersion writes the version tag, keeping the entry decor.
func setVersion(doc *tomldoc.Document, v Version) error {
	e, err := requireEntry(doc, "version")
	if err != nil {
		return err
	}
	e.SetString(string(v))

	return nil
}

// swapDoc replaces a canonical doc comment by its newer version. Prefixes
// the user changed are kept as they are.
func swapDoc(prefix, old, replacement string) string {
	out, _ := swapDocOK(prefix, old, replacement)

	return out
}

// swapDocOK is swapDoc, also telling whether old was found. A prefix with
// CRLF line endings is compared and returned with LF ones.
func swapDocOK(prefix, old, replacement string) (string, bool) {
	prefix = strings.ReplaceAll(prefix, "\r\n", "\n")
	if old == "" || !strings.Contains(prefix, old) {
		return prefix, false
	}

	return strings.Replace(prefix, old, replacement, 1), true
}

func ensureNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}

	return s + "\n"
}
