package wizard

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gitz-dev/gitz"
	"github.com/gitz-dev/gitz/prompt"
	"github.com/gitz-dev/gitz/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, opts gitz.InitOptions) *gitz.Config {
	t.Helper()

	text, err := gitz.InitDocument(opts)
	require.NoError(t, err)

	l, err := gitz.Parse(gitz.FileName, text)
	require.NoError(t, err)

	return l.Config
}

func TestRun(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		opts  gitz.InitOptions
		input string
		want  render.Values
	}{
		{
			name:  "defaults",
			input: "2\napi\nShort\nfix the bug\n\n42\n",
			want:  render.Values{Type: "fix", Scope: "api", Description: "fix the bug", Ticket: "#42"},
		},
		{
			name:  "everything skipped",
			input: "\n\nadd things\n\n\n",
			want:  render.Values{Type: "feat", Description: "add things"},
		},
		{
			name:  "scope list and required ticket",
			opts:  gitz.InitOptions{Scopes: gitz.ScopesList, ScopeList: []string{"api", "cli"}, Ticket: gitz.TicketRequired, TicketPrefixes: []string{"GH-"}},
			input: "1\n2\nadd things\nremoves the old flag\n\nbad\nGH-12\n",
			want:  render.Values{Type: "feat", Scope: "cli", Description: "add things", BreakingChange: "removes the old flag", Ticket: "GH-12"},
		},
		{
			name:  "no scope from the list",
			opts:  gitz.InitOptions{Scopes: gitz.ScopesList, ScopeList: []string{"api", "cli"}},
			input: "1\n3\nadd things\n\n\n",
			want:  render.Values{Type: "feat", Description: "add things"},
		},
		{
			name:  "nothing asked",
			opts:  gitz.InitOptions{Scopes: gitz.ScopesNone, Ticket: gitz.TicketNotAsked},
			input: "11\nrevert things\n\n",
			want:  render.Values{Type: "revert", Description: "revert things"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := testConfig(t, tc.opts)
			p := prompt.NewReader(strings.NewReader(tc.input), &bytes.Buffer{})
			cache := NewCache(CachePath(t.TempDir()))

			got, err := Run(context.Background(), cfg, p, cache)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)

			assert.Equal(t, Completed, cache.State)
			loaded, err := LoadCache(cache.Path())
			require.NoError(t, err)
			assert.Equal(t, Completed, loaded.State)
			assert.Equal(t, tc.want, loaded.Answers)
		})
	}
}

func TestRunResumes(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, gitz.InitOptions{})
	path := CachePath(t.TempDir())

	p := prompt.NewReader(strings.NewReader("3\ncli\nupdate readme\n"), &bytes.Buffer{})
	_, err := Run(context.Background(), cfg, p, NewCache(path))
	require.ErrorIs(t, err, prompt.ErrCancelled)

	cache, err := LoadCache(path)
	require.NoError(t, err)
	assert.Equal(t, Ongoing, cache.State)
	assert.Equal(t, render.Values{Type: "docs", Scope: "cli", Description: "update readme"}, cache.Answers)

	// Every question accepts its previous answer.
	p = prompt.NewReader(strings.NewReader("\n\n\n\n\n"), &bytes.Buffer{})
	got, err := Run(context.Background(), cfg, p, cache)
	require.NoError(t, err)
	assert.Equal(t, render.Values{Type: "docs", Scope: "cli", Description: "update readme"}, got)
}

func TestRunResumesWithoutScope(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, gitz.InitOptions{Scopes: gitz.ScopesList, ScopeList: []string{"api", "cli"}})
	path := CachePath(t.TempDir())

	p := prompt.NewReader(strings.NewReader("1\n3\nadd things\n"), &bytes.Buffer{})
	_, err := Run(context.Background(), cfg, p, NewCache(path))
	require.ErrorIs(t, err, prompt.ErrCancelled)

	cache, err := LoadCache(path)
	require.NoError(t, err)
	require.True(t, cache.Resumable())

	// The default of the scope question is the NoScope option again.
	p = prompt.NewReader(strings.NewReader("\n\n\n\n\n"), &bytes.Buffer{})
	got, err := Run(context.Background(), cfg, p, cache)
	require.NoError(t, err)
	assert.Equal(t, render.Values{Type: "feat", Description: "add things"}, got)
}

func TestRunCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := testConfig(t, gitz.InitOptions{})
	p := prompt.NewReader(strings.NewReader("1\n"), &bytes.Buffer{})

	_, err := Run(ctx, cfg, p, NewCache(""))
	require.ErrorIs(t, err, context.Canceled)
}

func TestMessage(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, gitz.InitOptions{})

	msg, err := Message(cfg, render.Values{Type: "fix", Scope: "api", Description: "fix the bug", Ticket: "#42"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(msg, "fix(api): fix the bug\n"), msg)
	assert.Contains(t, msg, "Refs: #42")
	assert.NotContains(t, msg, "BREAKING CHANGE")

	msg, err = Message(cfg, render.Values{Type: "feat", Description: "drop v1", BreakingChange: "v1 is gone"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(msg, "feat!: drop v1\n"), msg)
	assert.Contains(t, msg, "BREAKING CHANGE: v1 is gone")
	assert.NotContains(t, msg, "Refs:")
}

func TestFormatTypes(t *testing.T) {
	t.Parallel()

	got := FormatTypes([]gitz.Type{
		{Name: "feat", Description: "a feature"},
		{Name: "refactor", Description: "a refactoring"},
	})

	assert.Equal(t, []string{
		"feat      a feature",
		"refactor  a refactoring",
	}, got)
	assert.Empty(t, FormatTypes(nil))
}

func TestValidateDescription(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		in string
		ok bool
	}{
		{in: "add a feature", ok: true},
		{in: "abcde", ok: true},
		{in: strings.Repeat("a", 50), ok: true},
		{in: "étude", ok: true},
		{in: "abcd"},
		{in: strings.Repeat("a", 51)},
		{in: "Add a feature"},
		{in: "Élan vital"},
	}

	for _, tc := range testCases {
		err := ValidateDescription(tc.in)
		if tc.ok {
			assert.NoError(t, err, tc.in)
		} else {
			assert.Error(t, err, tc.in)
		}
	}
}

func TestCachePath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, filepath.Join("repo", ".git", "git-z", "commit-cache.toml"), CachePath(filepath.Join("repo", ".git")))
}
