package hir

// Module represents an HIR module (corresponding to a source file).
// It arrives fully resolved from the upstream parser: names are plain
// strings and spans point into the embedded source text.
type Module struct {
	Name  string  // Module name
	Path  string  // Source path the module was parsed from
	Items []*Item // Top-level declarations in source order
}
