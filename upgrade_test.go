package gitz

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/gitz-dev/gitz/tomldoc"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upgradeText(t *testing.T, text string) *UpgradeResult {
	t.Helper()

	l, err := Parse(FileName, text)
	require.NoError(t, err)
	require.True(t, l.Outdated)

	res, err := UpgradeLoaded(l, UpgradeOptions{})
	require.NoError(t, err)

	return res
}

func upgradeWith(t *testing.T, text string, opts UpgradeOptions) *UpgradeResult {
	t.Helper()

	l, err := Parse(FileName, text)
	require.NoError(t, err)

	res, err := UpgradeLoaded(l, opts)
	require.NoError(t, err)

	return res
}

func defaultDocument(t *testing.T, v Version) string {
	t.Helper()

	text, err := DefaultDocument(v)
	require.NoError(t, err)

	return text
}

func initDocument(t *testing.T, opts InitOptions) string {
	t.Helper()

	text, err := InitDocument(opts)
	require.NoError(t, err)

	return text
}

func TestUpgradeDefaultV0_1(t *testing.T) {
	t.Parallel()

	v01, err := DefaultDocument(V0_1)
	require.NoError(t, err)

	res := upgradeText(t, v01)
	assert.Equal(t, V0_1, res.From)
	assert.Equal(t, V0_2, res.To)
	assert.Equal(t, []Version{V0_2Dev0, V0_2Dev1, V0_2Dev2, V0_2Dev3, V0_2}, res.Steps)

	// The 0.1 defaults asked for a bare ticket number, printed it
	// unconditionally and had no scopes.
	want, err := InitDocument(InitOptions{Scopes: ScopesNone, Ticket: TicketRequired})
	require.NoError(t, err)
	want = strings.Replace(want, `prefixes = ["#"]`, `prefixes = [""]`, 1)
	want = strings.Replace(want, "{% if ticket %}Refs: {{ ticket }}{% endif %}", "Refs: #{{ ticket }}", 1)

	assert.Equal(t, want, res.Text)
}

func TestUpgradeDefaultV0_2Dev0(t *testing.T) {
	t.Parallel()

	res := upgradeText(t, defaultDocument(t, V0_2Dev0))
	assert.Equal(t, []Version{V0_2Dev1, V0_2Dev2, V0_2Dev3, V0_2}, res.Steps)

	want := initDocument(t, InitOptions{Scopes: ScopesNone, Ticket: TicketOptional})
	want = strings.Replace(want, `prefixes = ["#"]`, `prefixes = [""]`, 1)
	want = strings.Replace(want, "Refs: {{ ticket }}", "Refs: #{{ ticket }}", 1)

	assert.Equal(t, want, res.Text)
	assert.Equal(t, TicketOptional, res.Config.Ticket.Mode)
}

func TestUpgradeDefaultDevVersions(t *testing.T) {
	t.Parallel()

	dev1 := initDocument(t, InitOptions{Scopes: ScopesNone, Ticket: TicketOptional})
	dev1 = strings.Replace(dev1, `prefixes = ["#"]`, `prefixes = [""]`, 1)
	dev1 = strings.Replace(dev1, "Refs: {{ ticket }}", "Refs: #{{ ticket }}", 1)

	testCases := []struct {
		from  Version
		steps []Version
		want  string
	}{
		{
			from:  V0_2Dev1,
			steps: []Version{V0_2Dev2, V0_2Dev3, V0_2},
			want:  dev1,
		},
		{
			from:  V0_2Dev2,
			steps: []Version{V0_2Dev3, V0_2},
			want:  initDocument(t, InitOptions{Scopes: ScopesNone, Ticket: TicketOptional}),
		},
		{
			from:  V0_2Dev3,
			steps: []Version{V0_2},
			want:  initDocument(t, InitOptions{}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.from.String(), func(t *testing.T) {
			t.Parallel()

			res := upgradeText(t, defaultDocument(t, tc.from))
			assert.Equal(t, tc.from, res.From)
			assert.Equal(t, tc.steps, res.Steps)
			assert.Equal(t, tc.want, res.Text)
		})
	}
}

func TestUpgradeOptionSwitchScopesToAny(t *testing.T) {
	t.Parallel()

	in := `version = "0.1"
types = ["feat  a feature"]
scopes = ["api", "cli"]
template = "{{ type }}: {{ description }}"
`

	res := upgradeWith(t, in, UpgradeOptions{SwitchScopesToAny: true})
	assert.Equal(t, Scopes{Mode: ScopesAny}, res.Config.Scopes)
	assert.Contains(t, res.Text, "[scopes]\n"+scopesAcceptDoc+"accept = \"any\"\n")
	assert.NotContains(t, res.Text, "list = ")

	// Nothing to switch without a scope list.
	res = upgradeWith(t, defaultDocument(t, V0_2Dev2), UpgradeOptions{SwitchScopesToAny: true})
	assert.Equal(t, ScopesNone, res.Config.Scopes.Mode)

	// The option only applies when crossing 0.2-dev.3.
	dev3 := strings.Replace(defaultDocument(t, V0_2Dev3), `accept = "any"`, "accept = \"list\"\nlist = [\"api\"]", 1)
	res = upgradeWith(t, dev3, UpgradeOptions{SwitchScopesToAny: true})
	assert.Equal(t, Scopes{Mode: ScopesList, List: []string{"api"}}, res.Config.Scopes)
}

func TestUpgradeOptionTicket(t *testing.T) {
	t.Parallel()

	v01 := defaultDocument(t, V0_1)

	t.Run("required", func(t *testing.T) {
		t.Parallel()

		res := upgradeWith(t, defaultDocument(t, V0_2Dev0), UpgradeOptions{Ticket: TicketRequired})
		assert.Equal(t, TicketRequired, res.Config.Ticket.Mode)
		assert.Contains(t, res.Text, ticketRequiredDoc+"required = true\n")
	})

	t.Run("optional", func(t *testing.T) {
		t.Parallel()

		// Without the option the unconditional `{{ ticket }}` makes it required.
		res := upgradeWith(t, v01, UpgradeOptions{Ticket: TicketOptional})
		assert.Equal(t, TicketOptional, res.Config.Ticket.Mode)
		assert.Contains(t, res.Text, ticketRequiredDoc+"required = false\n")
	})

	t.Run("none", func(t *testing.T) {
		t.Parallel()

		res := upgradeWith(t, v01, UpgradeOptions{Ticket: TicketNotAsked})
		assert.Equal(t, Ticket{Mode: TicketNotAsked}, res.Config.Ticket)

		want := initDocument(t, InitOptions{Scopes: ScopesNone, Ticket: TicketNotAsked})
		want = strings.Replace(want, "{% if ticket %}Refs: {{ ticket }}{% endif %}", "Refs: #{{ ticket }}", 1)
		assert.Equal(t, want, res.Text)
	})

	t.Run("none keeps a custom comment", func(t *testing.T) {
		t.Parallel()

		in := strings.Replace(defaultDocument(t, V0_2Dev0), dev0TicketDoc+"[ticket]", "\n# Our tracker.\n[ticket]", 1)
		res := upgradeWith(t, in, UpgradeOptions{Ticket: TicketNotAsked})
		assert.Contains(t, res.Text, "\n# Our tracker.\n"+ticketCommented)
		assert.NotContains(t, res.Text, "\n[ticket]")
	})

	t.Run("no prefixes", func(t *testing.T) {
		t.Parallel()

		in := `version = "0.1"
types = ["feat  a feature"]
scopes = []
template = "{{ type }}: {{ description }}"
`
		l, err := Parse(FileName, in)
		require.NoError(t, err)

		_, err = UpgradeLoaded(l, UpgradeOptions{Ticket: TicketRequired})
		require.ErrorIs(t, err, ErrInvalidConfig)

		var vErrs ValidationErrors
		require.ErrorAs(t, err, &vErrs)
		assert.Equal(t, "ticket", vErrs[0].Field)

		res, err := UpgradeLoaded(l, UpgradeOptions{Ticket: TicketNotAsked})
		require.NoError(t, err)
		assert.Equal(t, TicketNotAsked, res.Config.Ticket.Mode)
	})

	t.Run("unknown mode", func(t *testing.T) {
		t.Parallel()

		l, err := Parse(FileName, v01)
		require.NoError(t, err)

		_, err = UpgradeLoaded(l, UpgradeOptions{Ticket: "sometimes"})
		require.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestUpgradeOptionEmptyPrefixToHash(t *testing.T) {
	t.Parallel()

	opts := UpgradeOptions{EmptyPrefixToHash: true}

	res := upgradeWith(t, defaultDocument(t, V0_2Dev0), opts)
	assert.Equal(t, initDocument(t, InitOptions{Scopes: ScopesNone, Ticket: TicketOptional}), res.Text)
	assert.Equal(t, []string{"#"}, res.Config.Ticket.Prefixes)

	res = upgradeWith(t, defaultDocument(t, V0_1), opts)
	want := initDocument(t, InitOptions{Scopes: ScopesNone, Ticket: TicketRequired})
	want = strings.Replace(want, "{% if ticket %}Refs: {{ ticket }}{% endif %}", "Refs: {{ ticket }}", 1)
	assert.Equal(t, want, res.Text)

	in := `version = "0.1"
types = ["feat  a feature"]
scopes = []
ticket_prefixes = ["", "#", "GH-"]
template = 'Refs: #{{ ticket }}'
`
	res = upgradeWith(t, in, opts)
	assert.Equal(t, []string{"#", "GH-"}, res.Config.Ticket.Prefixes)
	assert.Equal(t, "Refs: {{ ticket }}", res.Config.Templates.Commit)
	assert.Contains(t, res.Text, "prefixes = [\"#\", \"GH-\"]\n")
	assert.Contains(t, res.Text, "commit = 'Refs: {{ ticket }}'\n")

	// Prefixes without "" are left alone, and so is the template.
	in = strings.Replace(in, `["", "#", "GH-"]`, `["GH-"]`, 1)
	res = upgradeWith(t, in, opts)
	assert.Equal(t, []string{"GH-"}, res.Config.Ticket.Prefixes)
	assert.Equal(t, "Refs: #{{ ticket }}", res.Config.Templates.Commit)
}

func TestUpgradeRejectsInlineTables(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		text  string
		field string
	}{
		{
			name: "inline types",
			text: `version = "0.2-dev.0"
types = { feat = "a feature" }
[templates]
commit = "{{ type }}: {{ description }}"
`,
			field: "types",
		},
		{
			name: "dotted ticket",
			text: `version = "0.2-dev.1"
ticket.required = false
ticket.prefixes = ["#"]
[types]
feat = "a feature"
[templates]
commit = "{{ type }}: {{ description }}"
`,
			field: "ticket",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			l, err := Parse(FileName, tc.text)
			require.NoError(t, err)

			_, err = UpgradeLoaded(l, UpgradeOptions{})
			require.ErrorIs(t, err, ErrInvalidConfig)

			var iErr *InternalError
			assert.NotErrorAs(t, err, &iErr)

			var vErrs ValidationErrors
			require.ErrorAs(t, err, &vErrs)
			require.Len(t, vErrs, 1)
			assert.Equal(t, tc.field, vErrs[0].Field)
			assert.Contains(t, vErrs[0].Message, "["+tc.field+"] table")
		})
	}
}

func TestUpgradeDocumentsTablesWithoutComments(t *testing.T) {
	t.Parallel()

	in := `version = "0.1"
types = ["feat  a feature"]
scopes = ["api"]
template = "{{ type }}: {{ description }}"
`

	res := upgradeText(t, in)
	assert.Contains(t, res.Text, typesDoc+"[types]\n")
	assert.Contains(t, res.Text, scopesDoc+"[scopes]\n")
}

func TestUpgradeCRLF(t *testing.T) {
	t.Parallel()

	in := strings.ReplaceAll(defaultDocument(t, V0_1), "\n", "\r\n")

	res := upgradeText(t, in)
	assert.Equal(t, strings.Count(res.Text, "\n"), strings.Count(res.Text, "\r\n"), res.Text)

	want := initDocument(t, InitOptions{Scopes: ScopesNone, Ticket: TicketRequired})
	want = strings.Replace(want, `prefixes = ["#"]`, `prefixes = [""]`, 1)
	want = strings.Replace(want, "{% if ticket %}Refs: {{ ticket }}{% endif %}", "Refs: #{{ ticket }}", 1)
	assert.Equal(t, strings.ReplaceAll(want, "\n", "\r\n"), res.Text)
}

func TestUpgradeScopesAndRequiredTicket(t *testing.T) {
	t.Parallel()

	in := `version = "0.1"
types = ["feat  a feature", "fix   a fix"]
scopes = ["a", "b"]
ticket_prefixes = ["", "GH-"]
template = "{{ type }}: {{ description }} ({{ ticket }})"
`

	res := upgradeText(t, in)

	cfg := res.Config
	assert.Equal(t, []string{"feat", "fix"}, cfg.TypeNames())
	assert.Equal(t, Scopes{Mode: ScopesList, List: []string{"a", "b"}}, cfg.Scopes)
	assert.Equal(t, Ticket{Mode: TicketRequired, Prefixes: []string{"", "GH-"}}, cfg.Ticket)

	assert.Contains(t, res.Text, "[ticket]\n"+ticketRequiredDoc+"required = true\nprefixes = [\"\", \"GH-\"]\n")
	assert.Contains(t, res.Text, "[scopes]\n"+scopesAcceptDoc+"accept = \"list\"\nlist = [\"a\", \"b\"]\n")
	assert.Contains(t, res.Text, "[types]\nfeat = \"a feature\"\nfix = \"a fix\"\n")
}

func TestUpgradeKeepsUserComments(t *testing.T) {
	t.Parallel()

	in := headerDoc + `version = "0.2-dev.0"
` + dev0TypesDoc + `[types]
feat = "a feature" # shown first
# Bug fixes only.
fix = "a fix"

# Our scopes.
[scopes]
` + dev0ScopesAcceptDoc + `accept = "list"
list = ["api", "cli"] # keep in sync with the repo layout

[templates]
# The commit message template.
commit = "{{ type }}: {{ description }}"
`

	want := headerDoc + `version = "0.2"
` + typesDoc + `[types]
feat = "a feature" # shown first
# Bug fixes only.
fix = "a fix"

# Our scopes.
[scopes]
` + scopesAcceptDoc + `accept = "list"
list = ["api", "cli"] # keep in sync with the repo layout
` + templatesDoc + `[templates]
` + templatesCommitDoc + `commit = "{{ type }}: {{ description }}"
`

	res := upgradeText(t, in)
	assert.Equal(t, want, res.Text)
	assert.Equal(t, TicketNotAsked, res.Config.Ticket.Mode)
	assert.Equal(t, []string{"feat", "fix"}, res.Config.TypeNames())
}

func TestUpgradeMovesCommentsWithKeys(t *testing.T) {
	t.Parallel()

	in := `version = "0.1" # managed by hand

# Keep this short.
types = ["feat  a feature"] # more to come
scopes = ["api"]

# Only GitHub.
ticket_prefixes = ["GH-"]
template = "{{ type }}: {{ description }}"

# End of file.
`

	res := upgradeText(t, in)

	assert.Contains(t, res.Text, `version = "0.2" # managed by hand`)
	assert.Contains(t, res.Text, "\n# Keep this short.\n[types] # more to come\nfeat = \"a feature\"\n")
	assert.Contains(t, res.Text, "[ticket]\n"+ticketRequiredDoc+"required = false\n# Only GitHub.\nprefixes = [\"GH-\"]\n")
	assert.True(t, strings.HasSuffix(res.Text, "\n# End of file.\n"), res.Text)
}

func TestUpgradeInjectsCommentedTables(t *testing.T) {
	t.Parallel()

	in := `version = "0.1"
types = ["feat  a feature"]
scopes = []
template = "{{ type }}: {{ description }}"
`

	res := upgradeText(t, in)

	assert.Equal(t, ScopesNone, res.Config.Scopes.Mode)
	assert.Equal(t, TicketNotAsked, res.Config.Ticket.Mode)
	assert.Empty(t, res.Config.Ticket.Prefixes)

	assert.Contains(t, res.Text, scopesCommented+ticketCommented+templatesDoc+"[templates]\n")
	assert.NotContains(t, res.Text, "\n[ticket]")
	assert.NotContains(t, res.Text, "\n[scopes]")
}

func TestUpgradeUpToDate(t *testing.T) {
	t.Parallel()

	v02, err := DefaultDocument(V0_2)
	require.NoError(t, err)

	l, err := Parse(FileName, v02)
	require.NoError(t, err)
	assert.False(t, l.Outdated)

	_, err = UpgradeLoaded(l, UpgradeOptions{})
	require.ErrorIs(t, err, ErrUpToDate)

	doc, err := tomldoc.Parse(v02)
	require.NoError(t, err)
	m, steps, err := UpgradeDocument(doc, l.Model, UpgradeOptions{})
	require.NoError(t, err)
	assert.Empty(t, steps)
	assert.Equal(t, V0_2, m.Version())
	assert.Equal(t, v02, doc.String())
}

func TestPatchAppliedTwice(t *testing.T) {
	t.Parallel()

	for _, v := range KnownVersions() {
		if v == Latest {
			continue
		}
		text, err := DefaultDocument(v)
		require.NoError(t, err)

		l, err := Parse(FileName, text)
		require.NoError(t, err)

		step, err := l.Model.upgrade(UpgradeOptions{})
		require.NoError(t, err)

		doc, err := tomldoc.Parse(text)
		require.NoError(t, err)

		require.NoError(t, step.patch(doc), v)
		require.ErrorIs(t, step.patch(doc), ErrInconsistentDocument, v)
	}
}

func TestUpgradeModelInMemory(t *testing.T) {
	t.Parallel()

	v01, err := DefaultDocument(V0_1)
	require.NoError(t, err)

	l, err := Parse(FileName, v01)
	require.NoError(t, err)

	m, steps, err := UpgradeModel(l.Model, UpgradeOptions{})
	require.NoError(t, err)
	assert.Equal(t, []Version{V0_2Dev0, V0_2Dev1, V0_2Dev2, V0_2Dev3, V0_2}, steps)
	assert.Equal(t, l.Config, m)
	assert.Equal(t, v01, l.Document.String())

	_, _, err = UpgradeModel(nil, UpgradeOptions{})
	var iErr *InternalError
	require.ErrorAs(t, err, &iErr)
}

func TestUsesTicketUnguarded(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		template string
		want     bool
	}{
		{template: "{{ type }}: {{ description }}", want: false},
		{template: "Refs: {{ ticket }}", want: true},
		{template: "Refs: #{{ticket}}", want: true},
		{template: "{{ ticket|upper }}", want: true},
		{template: "{% if ticket %}Refs: {{ ticket }}{% endif %}", want: false},
		{template: "{%- if ticket -%}{{ ticket }}{%- endif -%}", want: false},
		{template: "{% if ticket %}x{% endif %}{{ ticket }}", want: true},
		{template: "{% if scope %}{{ ticket }}{% endif %}", want: true},
		{template: "{% if scope %}{% elif ticket %}{{ ticket }}{% endif %}", want: false},
		{template: "{% if ticket %}{% else %}{{ ticket }}{% endif %}", want: true},
		{template: "{% if ticket %}{% for x in y %}{{ ticket }}{% endfor %}{% endif %}", want: false},
		{template: "{{ ticket_number }}", want: false},
		{template: "{% if ticket and scope %}{{ ticket }}{% endif %}", want: false},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, usesTicketUnguarded(tc.template), tc.template)
	}
}

func TestUpgradeClosureProperty(t *testing.T) {
	t.Parallel()

	templates := []string{
		"{{ type }}: {{ description }}",
		"{{ type }}: {{ description }}\n\nRefs: {{ ticket }}\n",
		"{{ type }}{% if scope %}({{ scope }}){% endif %}: {{ description }}{% if ticket %} {{ ticket }}{% endif %}",
		"{{ type }}: {{ description }}{% if ticket %} (#{{ ticket }}){% endif %}",
	}
	prefixChoices := [][]string{nil, {}, {""}, {"#"}, {"", "GH-"}, {"#", "JIRA-", "GH-"}, {"", "#"}}
	ticketOptions := []TicketMode{"", TicketNotAsked, TicketOptional, TicketRequired}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("upgraded 0.1 documents load as valid 0.2", prop.ForAll(
		func(typeNames, scopes []string, prefixIdx, tplIdx, ticketIdx int, anyScope, hash bool) bool {
			typeNames = uniqueNonEmpty(typeNames)
			if len(typeNames) == 0 {
				typeNames = []string{"feat"}
			}
			scopes = uniqueNonEmpty(scopes)
			prefixes := prefixChoices[prefixIdx]
			opts := UpgradeOptions{SwitchScopesToAny: anyScope, Ticket: ticketOptions[ticketIdx], EmptyPrefixToHash: hash}

			text := v01Text(typeNames, scopes, prefixes, templates[tplIdx])

			l, err := Parse(FileName, text)
			if err != nil {
				t.Logf("input does not load: %s\n%s", err, text)

				return false
			}

			res, err := UpgradeLoaded(l, opts)
			if prefixes == nil && (opts.Ticket == TicketOptional || opts.Ticket == TicketRequired) {
				// No prefixes to ask a ticket with.
				return errors.Is(err, ErrInvalidConfig)
			}
			if err != nil {
				t.Logf("upgrade failed with %+v: %s\n%s", opts, err, text)

				return false
			}

			again, err := Parse(FileName, res.Text)
			if err != nil || again.Version != Latest || again.Config.Validate() != nil {
				t.Logf("upgraded document does not load: %v\n%s", err, res.Text)

				return false
			}
			cfg := again.Config

			wantTicket := TicketNotAsked
			switch {
			case prefixes == nil, opts.Ticket == TicketNotAsked:
			case opts.Ticket != "":
				wantTicket = opts.Ticket
			case tplIdx == 1:
				wantTicket = TicketRequired
			default:
				wantTicket = TicketOptional
			}

			wantScopes := ScopesNone
			if len(scopes) > 0 {
				wantScopes = ScopesList
				if anyScope {
					wantScopes = ScopesAny
				}
			}

			hashed := hash && wantTicket != TicketNotAsked && slices.Contains(prefixes, "")
			if hashed && (slices.Contains(cfg.Ticket.Prefixes, "") || !slices.Contains(cfg.Ticket.Prefixes, "#") ||
				strings.Contains(cfg.Templates.Commit, "#{{ ticket }}")) {
				t.Logf("empty prefix not hashed: %+v\n%s", cfg.Ticket, res.Text)

				return false
			}

			return cfg.Ticket.Mode == wantTicket &&
				cfg.Scopes.Mode == wantScopes &&
				strings.Join(cfg.TypeNames(), ",") == strings.Join(typeNames, ",")
		},
		gen.SliceOf(gen.Identifier()),
		gen.SliceOf(gen.Identifier()),
		gen.IntRange(0, len(prefixChoices)-1),
		gen.IntRange(0, len(templates)-1),
		gen.IntRange(0, len(ticketOptions)-1),
		gen.Bool(),
		gen.Bool(),
	))

	versions := KnownVersions()[:len(knownVersions)-1]

	properties.Property("default documents of every version upgrade to valid 0.2", prop.ForAll(
		func(vIdx, ticketIdx int, anyScope, hash bool) bool {
			v := versions[vIdx]
			opts := UpgradeOptions{SwitchScopesToAny: anyScope, Ticket: ticketOptions[ticketIdx], EmptyPrefixToHash: hash}

			text, err := DefaultDocument(v)
			if err != nil {
				return false
			}
			l, err := Parse(FileName, text)
			if err != nil {
				return false
			}

			res, err := UpgradeLoaded(l, opts)
			if err != nil {
				t.Logf("upgrade of %s failed with %+v: %s", v, opts, err)

				return false
			}

			again, err := Parse(FileName, res.Text)

			return err == nil && again.Version == Latest && again.Config.Validate() == nil &&
				res.Steps[len(res.Steps)-1] == Latest && len(res.Steps) == len(knownVersions)-1-v.Index()
		},
		gen.IntRange(0, len(versions)-1),
		gen.IntRange(0, len(ticketOptions)-1),
		gen.Bool(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

func v01Text(types, scopes, prefixes []string, template string) string {
	entries := make([]string, 0, len(types))
	for _, name := range types {
		entries = append(entries, name+"  does "+name)
	}

	var b strings.Builder
	b.WriteString("version = \"0.1\"\n")
	b.WriteString("types = " + tomldoc.EncodeStrings(entries) + "\n")
	b.WriteString("scopes = " + tomldoc.EncodeStrings(scopes) + "\n")
	if prefixes != nil {
		b.WriteString("ticket_prefixes = " + tomldoc.EncodeStrings(prefixes) + "\n")
	}
	b.WriteString("template = " + tomldoc.EncodeString(template) + "\n")

	return b.String()
}

func uniqueNonEmpty(list []string) []string {
	seen := make(map[string]bool, len(list))
	out := make([]string, 0, len(list))
	for _, s := range list {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}

	return out
}
