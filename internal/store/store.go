// Package store persists downloaded documents on the local filesystem.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config captures the parameters for the document store.
type Config struct {
	// Dir is the directory where documents are stored, one file per
	// document named <identity>.<ext>.
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// Store writes documents under their identity plus original extension and
// answers whether an identity has been seen before. Files are never mutated
// or deleted by the harvester.
type Store struct {
	dir string
}

// New validates the directory, creating it if needed.
func New(cfg Config) (*Store, error) {
	if strings.TrimSpace(cfg.Dir) == "" {
		return nil, fmt.Errorf("store directory is required")
	}

	info, err := os.Stat(cfg.Dir)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("stat store directory: %w", err)
		}
		if mkErr := os.MkdirAll(cfg.Dir, 0o750); mkErr != nil {
			return nil, fmt.Errorf("create store directory: %w", mkErr)
		}
	} else if !info.IsDir() {
		return nil, fmt.Errorf("store path %s is not a directory", cfg.Dir)
	}

	return &Store{dir: cfg.Dir}, nil
}

// Seen returns the identity stems of every stored document, regardless of
// extension. Taken once at the start of a run as the skip set.
func (s *Store) Seen() (map[string]struct{}, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("scan store directory: %w", err)
	}
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		seen[strings.TrimSuffix(name, filepath.Ext(name))] = struct{}{}
	}
	return seen, nil
}

// Exists reports whether a document with this identity was stored under any
// extension.
func (s *Store) Exists(id string) (bool, error) {
	seen, err := s.Seen()
	if err != nil {
		return false, err
	}
	_, ok := seen[id]
	return ok, nil
}

// Save writes the document bytes as <id>.<ext> in a single write and returns
// the file path. Callers are expected to have skipped identities that already
// exist; Save does not guard against overwrite.
func (s *Store) Save(id, ext string, data []byte) (string, error) {
	if id == "" {
		return "", fmt.Errorf("document identity is required")
	}
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		return "", fmt.Errorf("document extension is required")
	}
	path := filepath.Join(s.dir, fmt.Sprintf("%s.%s", id, strings.ToLower(ext)))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("write document %s: %w", path, err)
	}
	return path, nil
}
