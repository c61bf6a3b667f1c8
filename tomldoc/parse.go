package tomldoc

import (
	"fmt"
	"strings"

	"github.com/gopasspw/gopass/pkg/debug"
)

// Parse splits a TOML document into tables and entries while keeping every
// byte of the input. Comments and blank lines are attached to the entry or
// table header that follows them, the rest ends up in the document trailer.
//
// Parse is not a validating TOML parser. It expects syntactically valid input
// (callers decode the same text with a real TOML decoder first) and only fails
// when the structure of a line cannot be recognized at all.
func Parse(text string) (*Document, error) {
	p := &parser{src: text}
	doc, err := p.parse()
	if err != nil {
		return nil, err
	}

	debug.V(3).Log("parsed document with %d root entries and %d tables", len(doc.root.entries), len(doc.tables))

	return doc, nil
}

type parser struct {
	src string
	pos int
	nl  string
}

func (p *parser) parse() (*Document, error) {
	if n := strings.IndexByte(p.src, '\n'); n > 0 && p.src[n-1] == '\r' {
		p.nl = crlf
	}

	doc := &Document{root: &Table{nl: p.nl}, nl: p.nl}
	cur := doc.root

	var decor strings.Builder
	for p.pos < len(p.src) {
		end := lineEnd(p.src, p.pos)
		line := p.src[p.pos:end]
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "" || strings.HasPrefix(trimmed, "#"):
			decor.WriteString(line)
			p.pos = end
		case strings.HasPrefix(trimmed, "["):
			name, array, err := parseHeader(trimmed)
			if err != nil {
				return nil, p.errorf(p.pos, "%w", err)
			}
			cur = &Table{Prefix: decor.String(), Header: line, name: name, array: array, nl: p.nl}
			doc.tables = append(doc.tables, cur)
			decor.Reset()
			p.pos = end
		default:
			e, err := p.entry(decor.String())
			if err != nil {
				return nil, err
			}
			cur.entries = append(cur.entries, e)
			decor.Reset()
		}
	}
	doc.trailer = decor.String()

	return doc, nil
}

func (p *parser) entry(prefix string) (*Entry, error) {
	src := p.src
	start := p.pos

	i := start
	for i < len(src) && (src[i] == ' ' || src[i] == '\t') {
		i++
	}
	indent := src[start:i]

	keyStart := i
	for i < len(src) && src[i] != '=' {
		var err error
		switch src[i] {
		case '"':
			i, err = scanBasic(src, i)
		case '\'':
			i, err = scanLiteral(src, i)
		case '\n':
			return nil, p.errorf(i, "%w: expected '=' after key", ErrSyntax)
		default:
			i++
		}
		if err != nil {
			return nil, p.errorf(keyStart, "%w", err)
		}
	}
	if i >= len(src) {
		return nil, p.errorf(keyStart, "%w: expected '=' after key", ErrSyntax)
	}

	key := strings.TrimRight(src[keyStart:i], " \t")
	if key == "" {
		return nil, p.errorf(keyStart, "%w: empty key", ErrSyntax)
	}
	sepStart := keyStart + len(key)

	i++
	for i < len(src) && (src[i] == ' ' || src[i] == '\t') {
		i++
	}
	sep := src[sepStart:i]

	valEnd, err := scanValue(src, i)
	if err != nil {
		return nil, p.errorf(i, "%w", err)
	}
	restEnd := lineEnd(src, valEnd)

	p.pos = restEnd

	return &Entry{
		Prefix: prefix,
		Indent: indent,
		Key:    key,
		Sep:    sep,
		Value:  src[i:valEnd],
		Rest:   src[valEnd:restEnd],
		nl:     p.nl,
	}, nil
}

func (p *parser) errorf(offset int, format string, args ...any) error {
	line := strings.Count(p.src[:offset], "\n") + 1

	return fmt.Errorf("line %d: %w", line, fmt.Errorf(format, args...))
}

// lineEnd returns the offset just past the next newline, or the end of the
// input.
func lineEnd(src string, from int) int {
	if n := strings.IndexByte(src[from:], '\n'); n >= 0 {
		return from + n + 1
	}

	return len(src)
}

// parseHeader extracts the dotted name of a table header like `[a.b]` or
// `[[a.b]]`. The input must already be trimmed.
func parseHeader(line string) (string, bool, error) {
	array := strings.HasPrefix(line, "[[")
	open := 1
	if array {
		open = 2
	}

	i := open
	for i < len(line) && line[i] != ']' {
		var err error
		switch line[i] {
		case '"':
			i, err = scanBasic(line, i)
		case '\'':
			i, err = scanLiteral(line, i)
		default:
			i++
		}
		if err != nil {
			return "", false, err
		}
	}
	if i >= len(line) {
		return "", false, fmt.Errorf("%w: unterminated table header", ErrSyntax)
	}

	name := canonicalName(line[open:i])
	if name == "" {
		return "", false, fmt.Errorf("%w: empty table header", ErrSyntax)
	}

	return name, array, nil
}

// canonicalName turns a raw (possibly quoted, possibly dotted) key into its
// dotted form without quotes or surrounding whitespace.
func canonicalName(raw string) string {
	parts := splitDotted(raw)
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if len(part) >= 2 && (part[0] == '"' || part[0] == '\'') && part[len(part)-1] == part[0] {
			part = part[1 : len(part)-1]
		}
		parts[i] = part
	}

	return strings.Join(parts, ".")
}

func splitDotted(raw string) []string {
	var parts []string

	start := 0
	for i := 0; i < len(raw); {
		switch raw[i] {
		case '"':
			end, err := scanBasic(raw, i)
			if err != nil {
				return append(parts, raw[start:])
			}
			i = end
		case '\'':
			end, err := scanLiteral(raw, i)
			if err != nil {
				return append(parts, raw[start:])
			}
			i = end
		case '.':
			parts = append(parts, raw[start:i])
			i++
			start = i
		default:
			i++
		}
	}

	return append(parts, raw[start:])
}

// scanValue returns the offset just past the raw TOML value starting at i.
func scanValue(src string, i int) (int, error) {
	if i >= len(src) {
		return 0, fmt.Errorf("%w: missing value", ErrSyntax)
	}

	switch {
	case strings.HasPrefix(src[i:], `"""`):
		return scanMultiline(src, i, `"""`)
	case strings.HasPrefix(src[i:], `'''`):
		return scanMultiline(src, i, `'''`)
	case src[i] == '"':
		return scanBasic(src, i)
	case src[i] == '\'':
		return scanLiteral(src, i)
	case src[i] == '[' || src[i] == '{':
		return scanNested(src, i)
	default:
		return scanBare(src, i)
	}
}

func scanMultiline(src string, i int, delim string) (int, error) {
	escapes := delim[0] == '"'

	j := i + len(delim)
	for j < len(src) {
		if escapes && src[j] == '\\' {
			j += 2

			continue
		}
		if strings.HasPrefix(src[j:], delim) {
			end := j + len(delim)
			// Up to two quotes may directly precede the closing delimiter.
			for k := 0; k < 2 && end < len(src) && src[end] == delim[0]; k++ {
				end++
			}

			return end, nil
		}
		j++
	}

	return 0, fmt.Errorf("%w: unterminated multi-line string", ErrSyntax)
}

func scanBasic(src string, i int) (int, error) {
	for j := i + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case '"':
			return j + 1, nil
		case '\n':
			return 0, fmt.Errorf("%w: unterminated string", ErrSyntax)
		}
	}

	return 0, fmt.Errorf("%w: unterminated string", ErrSyntax)
}

func scanLiteral(src string, i int) (int, error) {
	for j := i + 1; j < len(src); j++ {
		switch src[j] {
		case '\'':
			return j + 1, nil
		case '\n':
			return 0, fmt.Errorf("%w: unterminated string", ErrSyntax)
		}
	}

	return 0, fmt.Errorf("%w: unterminated string", ErrSyntax)
}

// scanNested skips an array or inline table, including nested strings and
// comments between array elements.
func scanNested(src string, i int) (int, error) {
	depth := 0
	j := i
	for j < len(src) {
		switch src[j] {
		case '[', '{':
			depth++
			j++
		case ']', '}':
			depth--
			j++
			if depth == 0 {
				return j, nil
			}
		case '"', '\'':
			end, err := scanValue(src, j)
			if err != nil {
				return 0, err
			}
			j = end
		case '#':
			j = lineEnd(src, j) - 1
			if src[j] != '\n' {
				j++
			}
		default:
			j++
		}
	}

	return 0, fmt.Errorf("%w: unterminated array or inline table", ErrSyntax)
}

func scanBare(src string, i int) (int, error) {
	j := i
	for j < len(src) && src[j] != '\n' && src[j] != '#' {
		j++
	}
	for j > i && (src[j-1] == ' ' || src[j-1] == '\t' || src[j-1] == '\r') {
		j--
	}
	if j == i {
		return 0, fmt.Errorf("%w: missing value", ErrSyntax)
	}

	return j, nil
}
