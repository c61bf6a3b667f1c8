package gitz

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gopasspw/gopass/pkg/debug"
	"github.com/natefinch/atomic"
)

// writeFileAtomic replaces path with data, readers see either the old or the
// new file. The mode is set to perm afterwards, atomic.WriteFile only keeps
// the mode of a file it replaces.
func writeFileAtomic(path string, data []byte, perm fs.FileMode) error {
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteConfig, err)
	}

	if err := os.Chmod(path, perm); err != nil {
		return fmt.Errorf("%w: failed to set mode of %s: %w", ErrWriteConfig, path, err)
	}

	debug.V(1).Log("wrote config to %s", path)

	return nil
}

// writeFileExclusive creates path with data and fails with ErrAlreadyExists
// if it exists. The complete file is linked into place, there is no window
// where path exists with partial content.
func writeFileExclusive(path string, data []byte, perm fs.FileMode) error {
	return writeTemp(path, data, perm, func(tmp string) error {
		if err := os.Link(tmp, path); err != nil {
			if errors.Is(err, fs.ErrExist) {
				return fmt.Errorf("%w: %s", ErrAlreadyExists, path)
			}

			return err
		}

		return os.Remove(tmp)
	})
}

func writeTemp(path string, data []byte, perm fs.FileMode, commit func(tmp string) error) error {
	dir := filepath.Dir(path)

	f, err := os.CreateTemp(dir, ".git-z-*.toml")
	if err != nil {
		return fmt.Errorf("%w: failed to create temp file in %s: %w", ErrWriteConfig, dir, err)
	}
	tmp := f.Name()

	done := false
	defer func() {
		if !done {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("%w: failed to write %s: %w", ErrWriteConfig, tmp, err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("%w: failed to sync %s: %w", ErrWriteConfig, tmp, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: failed to close %s: %w", ErrWriteConfig, tmp, err)
	}
	if err := os.Chmod(tmp, perm); err != nil {
		return fmt.Errorf("%w: failed to set mode of %s: %w", ErrWriteConfig, tmp, err)
	}

	if err := commit(tmp); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return err
		}

		return fmt.Errorf("%w: failed to move %s to %s: %w", ErrWriteConfig, tmp, path, err)
	}
	done = true

	debug.V(1).Log("wrote config to %s", path)

	return nil
}
