// Package ticket validates ticket prefixes and matches ticket references
// like `#42` or `GH-42` against them.
package ticket

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/gopasspw/gopass/pkg/debug"
)

// HashMarker is the GitHub / GitLab style prefix. Like the empty prefix it is
// not part of the compiled pattern: it is stripped from the input before
// matching and put back on the result.
const HashMarker = "#"

const metaChars = `\.+*?()|[]{}^$`

var (
	// ErrInvalidPrefix indicates a prefix that is not a safe literal.
	ErrInvalidPrefix = errors.New("invalid ticket prefix")
	// ErrDuplicatePrefix indicates a prefix listed more than once.
	ErrDuplicatePrefix = errors.New("duplicate ticket prefix")
)

// IsMarker returns true for the zero-width prefixes "" and "#".
func IsMarker(prefix string) bool {
	return prefix == "" || prefix == HashMarker
}

// ValidatePrefix checks that prefix can be used as a literal alternative in
// the ticket pattern.
func ValidatePrefix(prefix string) error {
	if IsMarker(prefix) {
		return nil
	}

	for _, r := range prefix {
		switch {
		case unicode.IsSpace(r) || unicode.IsControl(r):
			return fmt.Errorf("%w %q: must not contain whitespace or control characters", ErrInvalidPrefix, prefix)
		case r == '#':
			return fmt.Errorf("%w %q: `#` is only valid as a prefix on its own", ErrInvalidPrefix, prefix)
		case strings.ContainsRune(metaChars, r):
			return fmt.Errorf("%w %q: must not contain the pattern character %q", ErrInvalidPrefix, prefix, r)
		}
	}

	if last := prefix[len(prefix)-1]; last >= '0' && last <= '9' {
		return fmt.Errorf("%w %q: must not end with a digit", ErrInvalidPrefix, prefix)
	}

	return nil
}

// Matcher matches ticket references for a list of prefixes.
type Matcher struct {
	prefixes []string
	re       *regexp.Regexp
	hash     bool
	bare     bool
}

// New validates the prefixes and compiles a matcher. An empty list accepts
// bare ticket numbers.
func New(prefixes []string) (*Matcher, error) {
	m := &Matcher{prefixes: prefixes}

	seen := make(map[string]bool, len(prefixes))
	literals := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		if seen[p] {
			return nil, fmt.Errorf("%w %q", ErrDuplicatePrefix, p)
		}
		seen[p] = true

		if err := ValidatePrefix(p); err != nil {
			return nil, err
		}

		switch p {
		case "":
			m.bare = true
		case HashMarker:
			m.hash = true
		default:
			literals = append(literals, regexp.QuoteMeta(p))
		}
	}

	pattern := `^()(\d+)$`
	if len(literals) > 0 {
		optional := ""
		if m.bare || m.hash {
			optional = "?"
		}
		pattern = `^((?:` + strings.Join(literals, "|") + `)` + optional + `)(\d+)$`
	} else {
		m.bare = true
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to compile ticket pattern %q: %w", pattern, err)
	}
	m.re = re

	debug.V(3).Log("compiled ticket pattern %q for prefixes %q", pattern, prefixes)

	return m, nil
}

// Match checks input and returns the normalized ticket reference. A bare
// number gets the `#` marker back when that marker is configured.
//
// Example:
//
//	m, _ := ticket.New([]string{"#", "GH-"})
//	m.Match("#12")   // "#12", true
//	m.Match("12")    // "#12", true
//	m.Match("GH-12") // "GH-12", true
func (m *Matcher) Match(input string) (string, bool) {
	s := strings.TrimSpace(input)

	stripped := false
	if m.hash && strings.HasPrefix(s, HashMarker) {
		s = strings.TrimPrefix(s, HashMarker)
		stripped = true
	}

	sub := m.re.FindStringSubmatch(s)
	if sub == nil {
		return "", false
	}

	if sub[1] != "" {
		if stripped {
			return "", false
		}

		return s, true
	}

	if m.hash {
		return HashMarker + sub[2], true
	}

	return sub[2], true
}

// Placeholder describes the accepted forms, like `#XXX or GH-XXX`.
func (m *Matcher) Placeholder() string {
	if len(m.prefixes) == 0 {
		return "XXX"
	}

	forms := make([]string, 0, len(m.prefixes))
	for _, p := range m.prefixes {
		forms = append(forms, p+"XXX")
	}

	return strings.Join(forms, " or ")
}

// Prefixes returns the configured prefixes.
func (m *Matcher) Prefixes() []string {
	return m.prefixes
}
