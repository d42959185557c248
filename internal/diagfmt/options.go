// Package diagfmt отвечает за внешнее представление диагностик:
// человекочитаемый вывод с выдержками из исходника, JSON для инструментов
// и SARIF для CI. Короткий однострочный формат живёт в diag (golden-файлы
// тестов и CLI используют одну и ту же реализацию).
package diagfmt

import (
	"ember/internal/source"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	Context   int8
	PathMode  PathMode
	Width     uint8 // максимальная ширина выдержки, 0 - не ограничено
	ShowNotes bool
	ShowFixes bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	Max              int // обрезка вывода, не Bag
	IncludeNotes     bool
	IncludeFixes     bool
}

// SarifRunMeta provides metadata for SARIF output.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InvocationArgs []string
}

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}

// locate resolves a span into its file and line/column bounds.
func locate(fs *source.FileSet, span source.Span) (f *source.File, start, end source.LineCol, ok bool) {
	// Защита от битых FileID (например, из устаревшего кэша).
	defer func() {
		if recover() != nil {
			f, start, end, ok = nil, source.LineCol{}, source.LineCol{}, false
		}
	}()

	f = fs.Get(span.File)
	start, end = fs.Resolve(span)
	return f, start, end, true
}
