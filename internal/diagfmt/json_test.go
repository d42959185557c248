package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"ember/internal/diag"
	"ember/internal/source"
)

// TestJSONBasic проверяет базовое JSON форматирование
func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("@inline\nstruct Point {}\n")
	fileID := fs.AddVirtual("test.em", content)

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevError,
		diag.SemaAttrInlineTarget,
		source.Span{File: fileID, Start: 0, End: 7},
		"attribute should be applied to function or closure",
	))

	var buf bytes.Buffer
	opts := JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		IncludeNotes:     true,
		IncludeFixes:     true,
	}
	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	// Парсим JSON чтобы убедиться что он валидный
	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput: %s", err, buf.String())
	}

	if output.Count != 1 {
		t.Errorf("Expected count=1, got %d", output.Count)
	}
	if len(output.Diagnostics) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %d", len(output.Diagnostics))
	}

	got := output.Diagnostics[0]
	if got.Severity != "ERROR" {
		t.Errorf("Expected severity=ERROR, got %s", got.Severity)
	}
	if got.Code != "SEM3001" {
		t.Errorf("Expected code=SEM3001, got %s", got.Code)
	}
	if got.Message != "attribute should be applied to function or closure" {
		t.Errorf("Unexpected message: %s", got.Message)
	}
	if got.Location.File != "test.em" {
		t.Errorf("Expected file=test.em, got %s", got.Location.File)
	}
	if got.Location.StartByte != 0 || got.Location.EndByte != 7 {
		t.Errorf("Unexpected byte range: %d-%d", got.Location.StartByte, got.Location.EndByte)
	}
	if got.Location.StartLine != 1 || got.Location.StartCol != 1 {
		t.Errorf("Unexpected start position: %d:%d", got.Location.StartLine, got.Location.StartCol)
	}
	if got.Location.EndLine != 1 || got.Location.EndCol != 8 {
		t.Errorf("Unexpected end position: %d:%d", got.Location.EndLine, got.Location.EndCol)
	}
}

// TestJSONWithNotesAndFixes проверяет JSON с заметками и исправлениями
func TestJSONWithNotesAndFixes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("@non_exhaustive(\"why\")\nstruct S {}\n")
	fileID := fs.AddVirtual("test.em", content)

	bag := diag.NewBag(10)
	d := diag.New(
		diag.SevError,
		diag.SemaAttrNonExhaustiveShape,
		source.Span{File: fileID, Start: 0, End: 22},
		"attribute should be empty",
	)
	d = d.WithNote(
		source.Span{File: fileID, Start: 23, End: 34},
		"not empty",
	)
	d = d.WithFix(
		"remove the attribute arguments",
		diag.FixEdit{
			Span:    source.Span{File: fileID, Start: 0, End: 22},
			NewText: "@non_exhaustive",
		},
	)
	bag.Add(d)

	var buf bytes.Buffer
	opts := JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		IncludeNotes:     true,
		IncludeFixes:     true,
	}
	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v", err)
	}
	if len(output.Diagnostics) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %d", len(output.Diagnostics))
	}

	got := output.Diagnostics[0]
	if len(got.Notes) != 1 {
		t.Fatalf("Expected 1 note, got %d", len(got.Notes))
	}
	if got.Notes[0].Message != "not empty" {
		t.Errorf("Unexpected note message: %s", got.Notes[0].Message)
	}
	if got.Notes[0].Location.StartByte != 23 {
		t.Errorf("Unexpected note start: %d", got.Notes[0].Location.StartByte)
	}

	if len(got.Fixes) != 1 {
		t.Fatalf("Expected 1 fix, got %d", len(got.Fixes))
	}
	fix := got.Fixes[0]
	if fix.Title != "remove the attribute arguments" {
		t.Errorf("Unexpected fix title: %s", fix.Title)
	}
	if len(fix.Edits) != 1 {
		t.Fatalf("Expected 1 edit, got %d", len(fix.Edits))
	}
	if fix.Edits[0].NewText != "@non_exhaustive" {
		t.Errorf("Unexpected new_text: %s", fix.Edits[0].NewText)
	}
}

// TestJSONWithoutPositions проверяет JSON без позиций строк/колонок
func TestJSONWithoutPositions(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.em", []byte("let x = 42"))

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevInfo,
		diag.SemaInfo,
		source.Span{File: fileID, Start: 4, End: 5},
		"Info message",
	))

	var buf bytes.Buffer
	opts := JSONOpts{PathMode: PathModeBasename}
	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v", err)
	}

	got := output.Diagnostics[0]
	// Позиции должны быть скрыты omitempty
	if got.Location.StartLine != 0 {
		t.Errorf("Expected start_line to be omitted (0), got %d", got.Location.StartLine)
	}
	// Но байтовые позиции должны быть всегда
	if got.Location.StartByte != 4 {
		t.Errorf("Expected start_byte=4, got %d", got.Location.StartByte)
	}
}

// TestJSONMaxLimit проверяет ограничение количества диагностик
func TestJSONMaxLimit(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.em", []byte("test content"))

	bag := diag.NewBag(10)
	for i := range 5 {
		bag.Add(diag.New(
			diag.SevError,
			diag.SemaAttrUsedTarget,
			source.Span{File: fileID, Start: uint32(i), End: uint32(i + 1)},
			"Error message",
		))
	}

	var buf bytes.Buffer
	opts := JSONOpts{PathMode: PathModeBasename, Max: 3}
	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v", err)
	}

	if output.Count != 3 {
		t.Errorf("Expected count=3 (limited), got %d", output.Count)
	}
	if len(output.Diagnostics) != 3 {
		t.Errorf("Expected 3 diagnostics (limited), got %d", len(output.Diagnostics))
	}
}

// TestJSONPathModes проверяет различные режимы путей
func TestJSONPathModes(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/home/user/project")
	fileID := fs.AddVirtual("/home/user/project/src/main.em", []byte("test"))

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevError,
		diag.SemaAttrUsedTarget,
		source.Span{File: fileID, Start: 0, End: 1},
		"Error",
	))

	tests := []struct {
		name     string
		pathMode PathMode
		expected string
	}{
		{"Absolute", PathModeAbsolute, "/home/user/project/src/main.em"},
		{"Relative", PathModeRelative, "src/main.em"},
		{"Basename", PathModeBasename, "main.em"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			opts := JSONOpts{PathMode: tt.pathMode}
			if err := JSON(&buf, bag, fs, opts); err != nil {
				t.Fatalf("JSON() error: %v", err)
			}

			var output DiagnosticsOutput
			if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
				t.Fatalf("Invalid JSON output: %v", err)
			}
			if output.Diagnostics[0].Location.File != tt.expected {
				t.Errorf("Expected file=%s, got %s", tt.expected, output.Diagnostics[0].Location.File)
			}
		})
	}
}

// TestJSONBadFileID проверяет устойчивость к спанам с неизвестным файлом
func TestJSONBadFileID(t *testing.T) {
	fs := source.NewFileSet()

	bag := diag.NewBag(2)
	bag.Add(diag.New(
		diag.SevError,
		diag.IOBadDump,
		source.Span{File: 42, Start: 1, End: 2},
		"stale cache entry",
	))

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v", err)
	}
	got := output.Diagnostics[0]
	if got.Location.File != "<unknown>" {
		t.Errorf("Expected <unknown> file, got %s", got.Location.File)
	}
	if got.Location.StartByte != 1 || got.Location.EndByte != 2 {
		t.Errorf("Byte offsets must survive: %d-%d", got.Location.StartByte, got.Location.EndByte)
	}
}
