// Package fs implements a filesystem-backed artifact store.
//
// Each artifact is one file named <key><ext> inside a single namespace
// directory. The directory is created lazily on first write; creation is
// idempotent. Writes go to a scratch file in the same directory and are
// published with an atomic rename, so a file that exists under its final
// name is always complete. The store writes nothing else into the
// directory.
package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type Config struct {
	// Dir is the namespace directory holding all artifacts.
	Dir string

	// Ext is appended to every artifact filename (e.g. ".html").
	// Empty is allowed; a non-empty Ext must start with a dot.
	Ext string
}

type Store struct {
	dir string
	ext string
}

func New(cfg Config) (*Store, error) {
	if cfg.Dir == "" {
		return nil, errors.New("fs store: dir is required")
	}
	if cfg.Ext != "" && !strings.HasPrefix(cfg.Ext, ".") {
		return nil, fmt.Errorf("fs store: ext %q must start with a dot", cfg.Ext)
	}
	return &Store{dir: cfg.Dir, ext: cfg.Ext}, nil
}

// Path returns the file path an artifact for key is (or would be) published
// at. Useful for callers that link to artifacts instead of inlining them.
func (s *Store) Path(key string) string {
	return filepath.Join(s.dir, key+s.ext)
}

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	if err := validateKey(key); err != nil {
		return nil, false, err
	}
	b, err := os.ReadFile(s.Path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return b, true, nil
}

func (s *Store) Exists(_ context.Context, key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}
	_, err := os.Stat(s.Path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Put writes value to a scratch file next to the final path and renames it
// into place. Rename within one directory is atomic on POSIX filesystems;
// concurrent writers of the same key race harmlessly because content-derived
// keys guarantee their bytes are identical.
func (s *Store) Put(_ context.Context, key string, value []byte) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return false, fmt.Errorf("fs store: create namespace dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return false, err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if err := tmp.Chmod(0o644); err != nil {
		return false, err
	}
	if _, err := tmp.Write(value); err != nil {
		return false, err
	}
	if err := tmp.Close(); err != nil {
		return false, err
	}

	if err := os.Rename(tmpName, s.Path(key)); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) Del(_ context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := os.Remove(s.Path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *Store) Close(context.Context) error { return nil }

func validateKey(key string) error {
	if key == "" {
		return errors.New("fs store: key is empty")
	}
	// Disallow both separators so validation is stable across GOOS.
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("fs store: key %q is not filesystem-safe", key)
	}
	return nil
}
