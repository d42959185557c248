package main

import (
	"path/filepath"

	"ember/internal/driver"
	"ember/internal/project"
	"ember/internal/target"
)

// checkSettings собирает значения флагов, влияющие на проход по дампам.
// requireWasmSet отличает явный --require-wasm-import-module=false от
// значения по умолчанию.
type checkSettings struct {
	triple           string
	requireWasmSet   bool
	requireWasm      bool
	maxDiagnostics   int
	ignoreWarnings   bool
	warningsAsErrors bool
	enableTimings    bool
	jobs             int
}

// resolveDriverOptions merges ember.toml defaults with explicit flag values.
// Flags win over the manifest; the manifest wins over built-in defaults.
func resolveDriverOptions(manifest *project.Manifest, s checkSettings) driver.Options {
	var opts driver.Options
	if manifest != nil {
		opts.Target = manifest.TargetSpec()
		opts.Config.RequireWasmImportModule = manifest.Checks.RequireWasmImportModule
		opts.MaxDiagnostics = manifest.MaxDiagnostics()
	}
	if s.triple != "" {
		opts.Target = target.FromTriple(s.triple)
	}
	if s.requireWasmSet {
		opts.Config.RequireWasmImportModule = s.requireWasm
	}
	if s.maxDiagnostics > 0 {
		opts.MaxDiagnostics = s.maxDiagnostics
	}
	opts.IgnoreWarnings = s.ignoreWarnings
	opts.WarningsAsErrors = s.warningsAsErrors
	opts.EnableTimings = s.enableTimings
	opts.Jobs = s.jobs
	return opts
}

// manifestStartDir возвращает каталог, от которого ищем ember.toml.
func manifestStartDir(path string, isDir bool) string {
	if isDir {
		return path
	}
	return filepath.Dir(path)
}

// loadManifestFor ищет ember.toml вверх от startDir. Отсутствие манифеста
// не ошибка, найденный, но некорректный манифест - ошибка.
func loadManifestFor(startDir string) (*project.Manifest, error) {
	m, _, ok, err := project.LoadForDir(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &m, nil
}

// openCheckCache открывает кэш результатов в явном каталоге или в
// стандартном месте (XDG_CACHE_HOME/ember).
func openCheckCache(cacheDir string) (*driver.DiskCache, error) {
	if cacheDir != "" {
		return driver.OpenDiskCacheAt(cacheDir)
	}
	return driver.OpenDiskCache("ember")
}
