package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"stockpick/internal/domain"
)

// readJSON reads path and decodes it into out.
func readJSON(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read %s", path)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return domain.CatalogFormatf("decode %s: %v", path, err)
	}
	return nil
}

// WriteFile writes bytes via a temp file, then atomically replaces the target.
func WriteFile(path string, b []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	f, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return errors.Wrapf(err, "create temp for %s", path)
	}
	tmp := f.Name()

	// Best-effort cleanup if anything fails before rename.
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return errors.WithStack(err)
	}
	if err := f.Chmod(mode); err != nil {
		_ = f.Close()
		return errors.WithStack(err)
	}
	if err := f.Close(); err != nil {
		return errors.WithStack(err)
	}

	return errors.Wrapf(os.Rename(tmp, path), "replace %s", path)
}
