package wizard

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/gitz-dev/gitz/render"
	"github.com/gopasspw/gopass/pkg/debug"
)

// CacheVersion is the format version of the commit cache. A cache with
// another version is discarded.
const CacheVersion = "0.1"

// State is the progress of the wizard.
type State string

// Wizard states.
const (
	NotStarted State = "not_started"
	Ongoing    State = "ongoing"
	Completed  State = "completed"
)

// Cache keeps the answers of the wizard between runs, so an aborted commit
// can be resumed. A Cache without a path only lives in memory.
type Cache struct {
	Version string        `toml:"version"`
	State   State         `toml:"wizard_state"`
	Answers render.Values `toml:"wizard_answers"`

	path string
}

// CachePath returns the location of the commit cache for a git directory.
func CachePath(gitDir string) string {
	return filepath.Join(gitDir, "git-z", "commit-cache.toml")
}

// NewCache returns an empty cache stored at path.
func NewCache(path string) *Cache {
	return &Cache{Version: CacheVersion, State: NotStarted, path: path}
}

// LoadCache reads the cache at path. A missing file gives an empty cache. A
// file that can not be used is removed and an empty cache is returned.
func LoadCache(path string) (*Cache, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewCache(path), nil
		}

		return nil, fmt.Errorf("failed to read the commit cache: %w", err)
	}

	c := NewCache(path)
	if err := c.decode(string(buf)); err != nil {
		debug.Log("discarding commit cache %s: %s", path, err)

		fresh := NewCache(path)
		if err := fresh.Discard(); err != nil {
			return nil, err
		}

		return fresh, nil
	}

	debug.V(1).Log("loaded commit cache %s (%s)", path, c.State)

	return c, nil
}

func (c *Cache) decode(text string) error {
	var head struct {
		Version string `toml:"version"`
	}
	if _, err := toml.Decode(text, &head); err != nil {
		return err
	}
	if head.Version != CacheVersion {
		return fmt.Errorf("unsupported commit cache version %q", head.Version)
	}

	if _, err := toml.Decode(text, c); err != nil {
		return err
	}

	switch c.State {
	case NotStarted, Ongoing, Completed:
		return nil
	default:
		return fmt.Errorf("unknown wizard state %q", c.State)
	}
}

// Path returns where the cache is stored.
func (c *Cache) Path() string {
	return c.path
}

// Resumable reports whether the cache holds answers of a previous run.
func (c *Cache) Resumable() bool {
	return c.State != NotStarted
}

// Record stores the answers given so far.
func (c *Cache) Record(answers render.Values) error {
	c.State = Ongoing
	c.Answers = answers

	return c.save()
}

// Complete marks the wizard as done. The answers are kept until Discard, in
// case the commit itself fails.
func (c *Cache) Complete() error {
	c.State = Completed

	return c.save()
}

// Discard resets the cache and removes its file.
func (c *Cache) Discard() error {
	c.State = NotStarted
	c.Answers = render.Values{}

	if c.path == "" {
		return nil
	}

	if err := os.Remove(c.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to discard the commit cache: %w", err)
	}

	return nil
}

func (c *Cache) save() error {
	if c.path == "" {
		return nil
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("failed to encode the commit cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(c.path), err)
	}
	if err := os.WriteFile(c.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write the commit cache: %w", err)
	}

	debug.V(3).Log("saved commit cache %s", c.path)

	return nil
}
