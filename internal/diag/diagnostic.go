package diag

import (
	"ember/internal/source"
)

// Note attaches a secondary span with its own short message to a diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

// FixEdit is a single text replacement inside a source file.
type FixEdit struct {
	Span    source.Span
	NewText string
}

// Fix is a suggested correction. Data-only: nothing here applies edits.
type Fix struct {
	Title string
	Edits []FixEdit
}

// Diagnostic is one finding of a pipeline phase. Values are immutable once
// emitted; builders assemble them in a single step.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}
