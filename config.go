package gitz

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gitz-dev/gitz/tomldoc"
	"github.com/gitz-dev/gitz/vcs"
	"github.com/gopasspw/gopass/pkg/debug"
	"github.com/gopasspw/gopass/pkg/set"
	"github.com/pelletier/go-toml/v2"
)

// FileName is the name of the configuration file at the repository root.
const FileName = "git-z.toml"

// Loaded is a configuration file as found on disk, together with its
// in-memory upgrade to the latest format.
type Loaded struct {
	Path    string
	Version Version
	// Model is the configuration in the version of the file.
	Model Model
	// Config is Model upgraded to the latest version. The file is not
	// changed by this.
	Config *Config
	// Outdated is true when Version is not the latest one.
	Outdated bool
	// Document is the format-preserving form of the file.
	Document *tomldoc.Document

	text string
	raw  map[string]any
}

// Text returns the file content as loaded.
func (l *Loaded) Text() string {
	return l.text
}

// UpgradeResult describes a successful upgrade.
type UpgradeResult struct {
	From Version
	To   Version
	// Steps lists the versions the configuration went through.
	Steps  []Version
	Config *Config
	// Text is the upgraded file content.
	Text string
}

// Locate returns the path of the configuration file of the git repository
// containing dir.
func Locate(ctx context.Context, dir string) (string, error) {
	root, err := vcs.RepoRoot(ctx, dir)
	if err != nil {
		return "", fmt.Errorf("failed to locate the repository root: %w", err)
	}

	return filepath.Join(root, FileName), nil
}

// Load reads, validates and decodes the configuration file at path.
func Load(path string) (*Loaded, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoConfigFile, path)
		}

		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	l, err := Parse(path, string(buf))
	if err != nil {
		return nil, err
	}

	debug.V(1).Log("loaded %s (version %s, outdated %t)", path, l.Version, l.Outdated)

	return l, nil
}

// Parse decodes configuration text. name is only used in error messages.
//
// Parsing goes through these stages, each with its own error type:
//
//   - TOML syntax (*ParseError)
//   - version detection (ErrMissingVersion or *VersionError)
//   - key shape and strict decoding (ValidationErrors)
//   - semantic validation (ValidationErrors)
func Parse(name, text string) (*Loaded, error) {
	var raw map[string]any
	if err := toml.Unmarshal([]byte(text), &raw); err != nil {
		return nil, newParseError(name, err)
	}

	v, err := DetectVersion(raw)
	if err != nil {
		return nil, err
	}

	if errs := checkShape(v, raw); len(errs) > 0 {
		return nil, errs
	}

	doc, err := tomldoc.Parse(text)
	if err != nil {
		return nil, &ParseError{Path: name, Message: err.Error()}
	}

	m, err := decodeModel(v, text, doc, raw)
	if err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	latest, _, err := UpgradeModel(m, UpgradeOptions{})
	if err != nil {
		return nil, err
	}
	cfg, ok := latest.(*Config)
	if !ok {
		return nil, internalf("load", "upgrade ended with %s", describe(latest))
	}
	if err := cfg.Validate(); err != nil {
		return nil, &InternalError{Step: "in-memory upgrade from " + v.String(), Err: err}
	}

	return &Loaded{
		Path:     name,
		Version:  v,
		Model:    m,
		Config:   cfg,
		Outdated: v != Latest,
		Document: doc,
		text:     text,
		raw:      raw,
	}, nil
}

// Upgrade rewrites the configuration file at path in the latest format. The
// file mode is kept. ErrUpToDate is returned when there is nothing to do.
func Upgrade(path string, opts UpgradeOptions) (*UpgradeResult, error) {
	l, err := Load(path)
	if err != nil {
		return nil, err
	}

	res, err := UpgradeLoaded(l, opts)
	if err != nil {
		return nil, err
	}

	if err := writeFileAtomic(path, []byte(res.Text), fileMode(path)); err != nil {
		return nil, err
	}

	debug.V(1).Log("upgraded %s from %s to %s", path, res.From, res.To)

	return res, nil
}

// UpgradeLoaded computes the upgraded text of a loaded configuration without
// writing it. The result is checked by parsing it again.
func UpgradeLoaded(l *Loaded, opts UpgradeOptions) (*UpgradeResult, error) {
	if !l.Outdated {
		return nil, ErrUpToDate
	}
	if err := checkLayout(l.Version, l.raw, l.Document); err != nil {
		return nil, err
	}

	// Work on a fresh copy, l.Document stays as loaded.
	doc, err := tomldoc.Parse(l.text)
	if err != nil {
		return nil, &ParseError{Path: l.Path, Message: err.Error()}
	}

	m, steps, err := UpgradeDocument(doc, l.Model, opts)
	if err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, &InternalError{Step: "upgrade from " + l.Version.String(), Err: err}
	}

	text := doc.String()

	check, err := Parse(l.Path, text)
	if err != nil {
		return nil, &InternalError{Step: "upgrade from " + l.Version.String(), Err: fmt.Errorf("upgraded configuration does not load: %w", err)}
	}
	if check.Version != Latest {
		return nil, internalf("upgrade from "+l.Version.String(), "upgraded configuration has version %s", check.Version)
	}

	return &UpgradeResult{
		From:   l.Version,
		To:     Latest,
		Steps:  steps,
		Config: check.Config,
		Text:   text,
	}, nil
}

// Init writes a new configuration file at path. It never overwrites an
// existing file.
func Init(path string, opts InitOptions) error {
	text, err := InitDocument(opts)
	if err != nil {
		return err
	}

	return writeFileExclusive(path, []byte(text), 0o644)
}

// Save validates text and replaces the file at path with it. The mode of an
// existing file is kept.
func Save(path, text string) error {
	if _, err := Parse(path, text); err != nil {
		return err
	}

	return writeFileAtomic(path, []byte(text), fileMode(path))
}

// checkLayout rejects tables written inline or with dotted keys. Upgrade
// patches only edit standard `[name]` tables.
func checkLayout(v Version, raw map[string]any, doc *tomldoc.Document) error {
	var errs ValidationErrors
	for _, name := range set.SortedKeys(raw) {
		if _, ok := raw[name].(map[string]any); !ok {
			continue
		}
		if _, found := doc.Table(name); !found {
			errs = append(errs, &ValidationError{
				Version: v,
				Field:   name,
				Message: fmt.Sprintf("must be written as a [%s] table to be upgraded", name),
			})
		}
	}
	if len(errs) > 0 {
		return errs
	}

	return nil
}

func fileMode(path string) fs.FileMode {
	if fi, err := os.Stat(path); err == nil {
		return fi.Mode().Perm()
	}

	return 0o644
}

func newParseError(name string, err error) error {
	var decErr *toml.DecodeError
	if errors.As(err, &decErr) {
		line, col := decErr.Position()

		return &ParseError{Path: name, Line: line, Column: col, Message: decErr.Error()}
	}

	return &ParseError{Path: name, Message: err.Error()}
}
