// Package project реализует поиск и разбор манифеста ember.toml.
// Манифест задаёт имя пакета, целевую платформу и настройки проверок;
// флаги командной строки имеют приоритет над манифестом.
package project

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"

	"ember/internal/target"
)

// DefaultMaxDiagnostics bounds a check run when neither the manifest nor
// the command line sets a limit.
const DefaultMaxDiagnostics = 256

// Manifest is a parsed ember.toml.
type Manifest struct {
	Package PackageSection
	Target  TargetSection
	Checks  ChecksSection
}

// PackageSection is the [package] table.
type PackageSection struct {
	Name string
}

// TargetSection is the [target] table. An empty triple means the default
// target.
type TargetSection struct {
	Triple string
}

// ChecksSection is the [checks] table.
type ChecksSection struct {
	RequireWasmImportModule bool
	MaxDiagnostics          int
}

var (
	// ErrPackageSectionMissing indicates that [package] is missing in ember.toml.
	ErrPackageSectionMissing = errors.New("missing [package]")
	// ErrPackageNameMissing indicates that [package].name is missing in ember.toml.
	ErrPackageNameMissing = errors.New("missing [package].name")
)

type manifestFile struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
	Target struct {
		Triple string `toml:"triple"`
	} `toml:"target"`
	Checks struct {
		RequireWasmImportModule bool `toml:"require_wasm_import_module"`
		MaxDiagnostics          int  `toml:"max_diagnostics"`
	} `toml:"checks"`
}

// LoadManifest parses an ember.toml file. [package].name is required;
// [target] and [checks] fall back to zero values.
func LoadManifest(path string) (Manifest, error) {
	var cfg manifestFile
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Manifest{}, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}
	name := strings.TrimSpace(cfg.Package.Name)
	if !meta.IsDefined("package", "name") || name == "" {
		return Manifest{}, fmt.Errorf("%s: %w", path, ErrPackageNameMissing)
	}
	if !IsValidPackageName(name) {
		return Manifest{}, fmt.Errorf("%s: invalid [package].name %q", path, name)
	}
	if cfg.Checks.MaxDiagnostics < 0 {
		return Manifest{}, fmt.Errorf("%s: invalid [checks].max_diagnostics %d: must not be negative", path, cfg.Checks.MaxDiagnostics)
	}
	return Manifest{
		Package: PackageSection{Name: name},
		Target:  TargetSection{Triple: strings.TrimSpace(cfg.Target.Triple)},
		Checks: ChecksSection{
			RequireWasmImportModule: cfg.Checks.RequireWasmImportModule,
			MaxDiagnostics:          cfg.Checks.MaxDiagnostics,
		},
	}, nil
}

// TargetSpec resolves the manifest triple, falling back to the default
// target when [target].triple is absent.
func (m Manifest) TargetSpec() target.Spec {
	if m.Target.Triple == "" {
		return target.Default()
	}
	return target.FromTriple(m.Target.Triple)
}

// MaxDiagnostics returns the configured diagnostics cap or the default.
func (m Manifest) MaxDiagnostics() int {
	if m.Checks.MaxDiagnostics > 0 {
		return m.Checks.MaxDiagnostics
	}
	return DefaultMaxDiagnostics
}

// IsValidPackageName reports whether name can serve as [package].name:
// ASCII, letter or '_' first, then letters, digits, '_' or '-'.
func IsValidPackageName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r > unicode.MaxASCII {
			return false
		}
		if i == 0 {
			if r != '_' && !unicode.IsLetter(r) {
				return false
			}
			continue
		}
		if r != '_' && r != '-' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
