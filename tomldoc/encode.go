package tomldoc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// EncodeKey returns key as a bare key when possible, quoted otherwise.
func EncodeKey(key string) string {
	if key != "" && strings.IndexFunc(key, func(r rune) bool {
		return !isBareKeyRune(r)
	}) < 0 {
		return key
	}

	return quoteBasic(key)
}

// EncodeString encodes s as a TOML string. Strings containing a newline are
// written as multi-line basic strings starting on their own line.
func EncodeString(s string) string {
	if !strings.Contains(s, "\n") {
		return quoteBasic(s)
	}

	var b strings.Builder
	b.WriteString("\"\"\"\n")
	for i, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case r == '"' && (strings.HasPrefix(s[i:], `"""`) || i == len(s)-1):
			b.WriteString(`\"`)
		case r == '\n' || r == '\t':
			b.WriteRune(r)
		case r == '\r':
			b.WriteString(`\r`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\u%04X`, r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteString(`"""`)

	return b.String()
}

// EncodeStrings encodes a single-line array of strings.
func EncodeStrings(list []string) string {
	parts := make([]string, 0, len(list))
	for _, s := range list {
		parts = append(parts, quoteBasic(s))
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

// EncodeBool encodes a TOML boolean.
func EncodeBool(v bool) string {
	return strconv.FormatBool(v)
}

func quoteBasic(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u%04X`, r)

				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')

	return b.String()
}

func isBareKeyRune(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_' || r == '-'
}

// Str decodes the entry value as a string.
func (e *Entry) Str() (string, error) {
	var v struct {
		V string `toml:"v"`
	}
	if err := e.decode(&v); err != nil {
		return "", err
	}

	return v.V, nil
}

// Strings decodes the entry value as an array of strings.
func (e *Entry) Strings() ([]string, error) {
	var v struct {
		V []string `toml:"v"`
	}
	if err := e.decode(&v); err != nil {
		return nil, err
	}

	return v.V, nil
}

// Bool decodes the entry value as a boolean.
func (e *Entry) Bool() (bool, error) {
	var v struct {
		V bool `toml:"v"`
	}
	if err := e.decode(&v); err != nil {
		return false, err
	}

	return v.V, nil
}

func (e *Entry) decode(v any) error {
	if err := toml.Unmarshal([]byte("v = "+e.Value+"\n"), v); err != nil {
		return fmt.Errorf("failed to decode value of %q: %w", e.Name(), err)
	}

	return nil
}
