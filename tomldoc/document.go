package tomldoc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gopasspw/gopass/pkg/debug"
)

var (
	// ErrSyntax indicates a line that can not be split into key and value or
	// a table header that is not terminated.
	ErrSyntax = errors.New("syntax error")
	// ErrKeyNotFound indicates an edit anchored on a key that does not exist.
	ErrKeyNotFound = errors.New("key not found")
	// ErrDuplicateKey indicates an insert of a key that is already present.
	ErrDuplicateKey = errors.New("duplicate key")
)

// Document is a format-preserving representation of a TOML file.
//
// The document is an ordered list of tables. The root table holds the keys
// that appear before the first table header. Every entry and every table
// header remembers the decor (blank lines and comments) that preceded it, so
// serializing an unmodified document gives back the exact input.
//
// A document keeps the line ending style of its first line. Text added by
// edits is converted to it, raw values excepted.
//
// Note: Document is not thread-safe.
type Document struct {
	root    *Table
	tables  []*Table
	trailer string
	nl      string
}

// Table is a TOML table: its header line and its entries. The root table has
// no header.
type Table struct {
	// Prefix holds the blank lines and comments before the header.
	Prefix string
	// Header is the raw header line, including any trailing comment and the
	// line terminator.
	Header string

	name    string
	array   bool
	entries []*Entry
	nl      string
}

// Entry is a single `key = value` pair.
type Entry struct {
	// Prefix holds the blank lines and comments before the key.
	Prefix string
	Indent string
	// Key is the raw key as written in the file.
	Key string
	// Sep is the separator between key and value, usually " = ".
	Sep string
	// Value is the raw TOML value. It may span several lines.
	Value string
	// Rest is everything after the value on its last line: whitespace, an
	// optional comment and the line terminator.
	Rest string

	nl string
}

// New returns an empty document.
func New() *Document {
	return &Document{root: &Table{}}
}

// String serializes the document.
func (d *Document) String() string {
	var b strings.Builder

	d.root.write(&b)
	for _, t := range d.tables {
		t.write(&b)
	}
	b.WriteString(d.trailer)

	return b.String()
}

// Root returns the root table.
func (d *Document) Root() *Table {
	return d.root
}

// Tables returns the non-root tables in document order.
func (d *Document) Tables() []*Table {
	return d.tables
}

// Trailer returns the decor after the last entry of the document.
func (d *Document) Trailer() string {
	return d.trailer
}

// Table returns the first (non-array) table with the given dotted name.
// An empty name returns the root table.
func (d *Document) Table(name string) (*Table, bool) {
	if name == "" {
		return d.root, true
	}

	for _, t := range d.tables {
		if !t.array && t.name == name {
			return t, true
		}
	}

	return nil, false
}

// Entry looks up an entry by its dotted path. The last path element is the
// key, everything before it names the table. Keys of the root table have no
// dot.
//
// Example:
//
//	e, ok := doc.Entry("ticket.prefixes")
func (d *Document) Entry(path string) (*Entry, bool) {
	table, key := "", path
	if n := strings.LastIndex(path, "."); n > 0 {
		table, key = path[:n], path[n+1:]
	}

	t, ok := d.Table(table)
	if !ok {
		return nil, false
	}

	return t.Entry(key)
}

// Keys returns the dotted paths of all entries in document order.
func (d *Document) Keys() []string {
	keys := make([]string, 0, len(d.root.entries))
	for _, e := range d.root.entries {
		keys = append(keys, e.Name())
	}
	for _, t := range d.tables {
		for _, e := range t.entries {
			keys = append(keys, t.name+"."+e.Name())
		}
	}

	return keys
}

// AppendTable adds a new table at the end of the document. Pending trailer
// decor moves in front of the new table, before prefix.
func (d *Document) AppendTable(name, prefix string) (*Table, error) {
	if _, found := d.Table(name); found {
		return nil, fmt.Errorf("%w: table %q", ErrDuplicateKey, name)
	}

	d.terminate()

	t := &Table{
		Prefix: d.trailer + withNewline(prefix, d.nl),
		Header: "[" + EncodeKey(name) + "]" + eol(d.nl),
		name:   name,
		nl:     d.nl,
	}
	d.trailer = ""
	d.tables = append(d.tables, t)

	debug.V(3).Log("appended table %q", name)

	return t, nil
}

// RemoveTable deletes a table together with its prefix. It returns the index
// the table had, so callers can put something else in its place.
func (d *Document) RemoveTable(name string) (int, bool) {
	for i, t := range d.tables {
		if t.array || t.name != name {
			continue
		}
		d.tables = append(d.tables[:i], d.tables[i+1:]...)

		debug.V(3).Log("removed table %q", name)

		return i, true
	}

	return -1, false
}

// InsertComment inserts a comment block in front of the table at index i.
// If i is past the last table the block goes into the trailer.
func (d *Document) InsertComment(i int, block string) {
	if i >= 0 && i < len(d.tables) {
		d.tables[i].Prefix = withNewline(block, d.nl) + d.tables[i].Prefix

		return
	}

	d.AppendComment(block)
}

// AppendComment appends a comment block at the end of the document.
func (d *Document) AppendComment(block string) {
	d.terminate()
	d.trailer += withNewline(block, d.nl)
}

// SetTrailer replaces the decor after the last entry of the document.
func (d *Document) SetTrailer(trailer string) {
	d.trailer = trailer
}

// ReplaceComment replaces the first occurrence of old in any prefix or in the
// trailer. It reports whether a replacement happened.
func (d *Document) ReplaceComment(old, replacement string) bool {
	if old == "" {
		return false
	}

	prefixes := make([]*string, 0, 16)
	for _, e := range d.root.entries {
		prefixes = append(prefixes, &e.Prefix)
	}
	for _, t := range d.tables {
		prefixes = append(prefixes, &t.Prefix)
		for _, e := range t.entries {
			prefixes = append(prefixes, &e.Prefix)
		}
	}
	prefixes = append(prefixes, &d.trailer)

	for _, p := range prefixes {
		if replacePrefix(p, old, replacement) {
			return true
		}
	}

	return false
}

// terminate makes sure the serialized document ends with a newline so that
// appended content starts on its own line.
func (d *Document) terminate() {
	if s := d.String(); s == "" || strings.HasSuffix(s, "\n") {
		return
	}

	switch {
	case d.trailer != "":
		d.trailer += eol(d.nl)
	case len(d.tables) > 0:
		d.tables[len(d.tables)-1].terminate()
	default:
		d.root.terminate()
	}
}

// Name returns the dotted table name.
func (t *Table) Name() string {
	return t.name
}

// Entries returns the entries of the table in document order.
func (t *Table) Entries() []*Entry {
	return t.entries
}

// Entry returns the entry for key.
func (t *Table) Entry(key string) (*Entry, bool) {
	if i := t.index(key); i >= 0 {
		return t.entries[i], true
	}

	return nil, false
}

// Append adds e after the last entry.
func (t *Table) Append(e *Entry) error {
	if t.index(e.Name()) >= 0 {
		return fmt.Errorf("%w: %q", ErrDuplicateKey, e.Name())
	}

	t.terminate()
	t.adopt(e)
	t.entries = append(t.entries, e)

	return nil
}

// InsertBefore inserts e right before the entry named key.
func (t *Table) InsertBefore(key string, e *Entry) error {
	return t.insertAt(key, 0, e)
}

// InsertAfter inserts e right after the entry named key.
func (t *Table) InsertAfter(key string, e *Entry) error {
	return t.insertAt(key, 1, e)
}

func (t *Table) insertAt(key string, offset int, e *Entry) error {
	if t.index(e.Name()) >= 0 {
		return fmt.Errorf("%w: %q", ErrDuplicateKey, e.Name())
	}

	i := t.index(key)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}
	t.adopt(e)
	if offset > 0 && !strings.HasSuffix(t.entries[i].Rest, "\n") {
		t.entries[i].Rest += eol(t.nl)
	}
	if offset == 0 && !strings.HasSuffix(e.Rest, "\n") {
		e.Rest += eol(t.nl)
	}

	i += offset
	t.entries = append(t.entries, nil)
	copy(t.entries[i+1:], t.entries[i:])
	t.entries[i] = e

	return nil
}

// Remove deletes the entry named key together with its prefix and returns it.
func (t *Table) Remove(key string) (*Entry, bool) {
	i := t.index(key)
	if i < 0 {
		return nil, false
	}

	e := t.entries[i]
	t.entries = append(t.entries[:i], t.entries[i+1:]...)

	return e, true
}

// ReplacePrefix replaces old by replacement in the prefix of the table header.
// Nothing happens if the prefix does not contain old.
func (t *Table) ReplacePrefix(old, replacement string) bool {
	return replacePrefix(&t.Prefix, old, replacement)
}

// SetPrefixIfEmpty sets the table prefix unless it already has one.
func (t *Table) SetPrefixIfEmpty(prefix string) bool {
	return setPrefixIfEmpty(&t.Prefix, withNewline(prefix, t.nl))
}

// adopt converts the decor of a new entry to the line endings of the table.
func (t *Table) adopt(e *Entry) {
	e.nl = t.nl
	e.Prefix = withNewline(e.Prefix, t.nl)
	e.Rest = withNewline(e.Rest, t.nl)
}

func (t *Table) index(key string) int {
	for i, e := range t.entries {
		if e.Name() == key {
			return i
		}
	}

	return -1
}

func (t *Table) terminate() {
	if len(t.entries) > 0 {
		last := t.entries[len(t.entries)-1]
		if !strings.HasSuffix(last.Rest, "\n") {
			last.Rest += eol(t.nl)
		}

		return
	}

	if t.Header != "" && !strings.HasSuffix(t.Header, "\n") {
		t.Header += eol(t.nl)
	}
}

func (t *Table) write(b *strings.Builder) {
	b.WriteString(t.Prefix)
	b.WriteString(t.Header)
	for _, e := range t.entries {
		e.write(b)
	}
}

// NewEntry builds an entry with the usual ` = ` separator. rawValue must
// already be TOML encoded, see EncodeString and friends.
func NewEntry(key, rawValue string) *Entry {
	return &Entry{
		Key:   EncodeKey(key),
		Sep:   " = ",
		Value: rawValue,
		Rest:  "\n",
	}
}

// Name returns the key without quotes.
func (e *Entry) Name() string {
	return canonicalName(e.Key)
}

// SetValue replaces the raw value and keeps everything else, including a
// trailing comment.
func (e *Entry) SetValue(raw string) {
	e.Value = raw
}

// SetString sets the value to the TOML encoding of s.
func (e *Entry) SetString(s string) {
	e.SetValue(EncodeString(s))
}

// SetBool sets the value to a TOML boolean.
func (e *Entry) SetBool(v bool) {
	e.SetValue(EncodeBool(v))
}

// ReplacePrefix replaces old by replacement in the entry prefix. Nothing
// happens if the prefix does not contain old.
func (e *Entry) ReplacePrefix(old, replacement string) bool {
	return replacePrefix(&e.Prefix, old, replacement)
}

// SetPrefixIfEmpty sets the entry prefix unless it already has one.
func (e *Entry) SetPrefixIfEmpty(prefix string) bool {
	return setPrefixIfEmpty(&e.Prefix, withNewline(prefix, e.nl))
}

// Comment returns the trailing comment of the entry, without the `#`.
func (e *Entry) Comment() string {
	_, comment, found := strings.Cut(e.Rest, "#")
	if !found {
		return ""
	}

	return strings.TrimSpace(comment)
}

func (e *Entry) write(b *strings.Builder) {
	b.WriteString(e.Prefix)
	b.WriteString(e.Indent)
	b.WriteString(e.Key)
	b.WriteString(e.Sep)
	b.WriteString(e.Value)
	b.WriteString(e.Rest)
}

// replacePrefix matches old against a CRLF prefix with CRLF line endings.
func replacePrefix(prefix *string, old, replacement string) bool {
	if strings.Contains(*prefix, crlf) {
		old, replacement = withNewline(old, crlf), withNewline(replacement, crlf)
	}
	if old == "" || !strings.Contains(*prefix, old) {
		return false
	}
	*prefix = strings.Replace(*prefix, old, replacement, 1)

	return true
}

func setPrefixIfEmpty(prefix *string, value string) bool {
	if strings.TrimSpace(*prefix) != "" {
		return false
	}
	*prefix = value

	return true
}

// TrimLeadingBlankLines removes the blank lines at the start of a prefix.
// Prefixes of keys moved into a table start directly below the header.
func TrimLeadingBlankLines(prefix string) string {
	for prefix != "" {
		end := lineEnd(prefix, 0)
		if strings.TrimSpace(prefix[:end]) != "" {
			break
		}
		prefix = prefix[end:]
	}

	return prefix
}

const crlf = "\r\n"

// eol returns the line terminator for the line ending style nl.
func eol(nl string) string {
	if nl == crlf {
		return crlf
	}

	return "\n"
}

// withNewline converts the line endings of s to the style nl.
func withNewline(s, nl string) string {
	if nl != crlf {
		return s
	}

	return strings.ReplaceAll(strings.ReplaceAll(s, crlf, "\n"), "\n", crlf)
}
