package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ManifestName is the file name ember projects carry at their root.
const ManifestName = "ember.toml"

// FindEmberToml walks up from startDir to locate ember.toml.
func FindEmberToml(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// FindProjectRoot returns the directory containing ember.toml, if any.
func FindProjectRoot(startDir string) (root string, ok bool, err error) {
	manifestPath, ok, err := FindEmberToml(startDir)
	if err != nil || !ok {
		return "", ok, err
	}
	return filepath.Dir(manifestPath), true, nil
}

// LoadForDir locates and parses the manifest governing startDir.
// ok is false when no ember.toml exists between startDir and the
// filesystem root; a found but invalid manifest returns ok together
// with the parse error.
func LoadForDir(startDir string) (Manifest, string, bool, error) {
	manifestPath, ok, err := FindEmberToml(startDir)
	if err != nil || !ok {
		return Manifest{}, "", ok, err
	}
	m, err := LoadManifest(manifestPath)
	if err != nil {
		return Manifest{}, manifestPath, true, err
	}
	return m, manifestPath, true, nil
}
