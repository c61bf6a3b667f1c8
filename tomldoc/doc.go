// Package tomldoc implements a format-preserving view of TOML documents.
//
// The package does not try to understand every corner of TOML. It only splits
// a document into table headers and `key = value` entries, and keeps all the
// text in between (comments, blank lines, indentation, trailing comments) so
// the document can be edited surgically and written back without losing
// anything the edit did not touch.
//
// Values are kept as raw TOML text. Use Entry.Str, Entry.Strings and
// Entry.Bool to decode them, and EncodeString, EncodeStrings and EncodeBool
// to produce new raw values.
//
// # Usage
//
//	doc, err := tomldoc.Parse(text)
//	if err != nil { ... }
//	if e, ok := doc.Entry("version"); ok {
//	  e.SetString("0.2")
//	}
//	fmt.Print(doc.String())
//
// Comment ownership follows the layout of the file: the comment block right
// above a key or a table header belongs to it and is removed with it. Comment
// blocks after the last key of the document form the trailer.
package tomldoc
