package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/norm"

	"ember/internal/diag"
	"ember/internal/source"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes
// с аналогичным форматом и заголовки Fixes. Цвет включается опцией.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	items := bag.Items()
	for i := range items {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &items[i], fs, opts)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	file, start, end, ok := locate(fs, d.Primary)
	if !ok {
		fmt.Fprintf(w, "<unknown>: %s %s: %s\n", severityName(d.Severity), d.Code.ID(), d.Message)
		return
	}

	sev := severityName(d.Severity)
	code := d.Code.ID()
	if opts.Color {
		c := severityColor(d.Severity)
		sev = c.Sprint(sev)
		code = c.Sprint(code)
	}
	path := formatPath(file, fs, opts.PathMode)
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", path, start.Line, start.Col, sev, code, d.Message)
	writeExcerpt(w, file, start, end, int(opts.Context), opts.Width)

	if opts.ShowNotes {
		for _, note := range d.Notes {
			nfile, nstart, nend, nok := locate(fs, note.Span)
			if !nok {
				continue
			}
			label := "note"
			if opts.Color {
				label = labelColor(color.FgCyan).Sprint(label)
			}
			npath := formatPath(nfile, fs, opts.PathMode)
			fmt.Fprintf(w, "%s: %s:%d:%d: %s\n", label, npath, nstart.Line, nstart.Col, note.Msg)
			writeExcerpt(w, nfile, nstart, nend, 0, opts.Width)
		}
	}

	if opts.ShowFixes {
		for _, fix := range d.Fixes {
			label := "help"
			if opts.Color {
				label = labelColor(color.FgGreen).Sprint(label)
			}
			fmt.Fprintf(w, "%s: %s\n", label, fix.Title)
		}
	}
}

// writeExcerpt печатает строки вокруг span с нумерацией и строку-каретку
// под первой строкой span. context задаёт число строк до и после.
func writeExcerpt(w io.Writer, f *source.File, start, end source.LineCol, context int, width uint8) {
	if len(f.Content) == 0 || start.Line == 0 {
		return
	}
	lineCount := uint32(len(f.LineIdx)) + 1
	if start.Line > lineCount {
		return
	}

	first := start.Line
	if context > 0 && uint32(context) < first {
		first -= uint32(context)
	} else if context > 0 {
		first = 1
	}
	last := start.Line + uint32(max(context, 0))
	if last > lineCount {
		last = lineCount
	}

	gutter := len(fmt.Sprintf("%d", last))
	for line := first; line <= last; line++ {
		text := f.GetLine(line)
		fmt.Fprintf(w, " %*d | %s\n", gutter, line, clipLine(text, width))
		if line == start.Line {
			fmt.Fprintf(w, " %s | %s\n", strings.Repeat(" ", gutter), caretRow(text, start, end, width))
		}
	}
}

// caretRow строит подчёркивание ^~~~ по колонкам span внутри text.
// Колонки байтовые; ширина каретки меряется по отображаемой ширине
// нормализованного (NFC) текста, табы в отступе сохраняются.
func caretRow(text string, start, end source.LineCol, width uint8) string {
	startIdx := int(start.Col) - 1
	if startIdx < 0 {
		startIdx = 0
	}
	if startIdx > len(text) {
		startIdx = len(text)
	}
	endIdx := len(text)
	if end.Line == start.Line {
		endIdx = int(end.Col) - 1
	}
	if endIdx < startIdx {
		endIdx = startIdx
	}
	if endIdx > len(text) {
		endIdx = len(text)
	}

	var pad strings.Builder
	padWidth := 0
	for _, r := range norm.NFC.String(text[:startIdx]) {
		if r == '\t' {
			pad.WriteByte('\t')
			padWidth++
			continue
		}
		rw := runewidth.RuneWidth(r)
		pad.WriteString(strings.Repeat(" ", rw))
		padWidth += rw
	}

	caretWidth := runewidth.StringWidth(norm.NFC.String(text[startIdx:endIdx]))
	if caretWidth < 1 {
		caretWidth = 1
	}
	if width > 0 {
		if remaining := int(width) - padWidth; remaining >= 1 && caretWidth > remaining {
			caretWidth = remaining
		}
	}
	return pad.String() + "^" + strings.Repeat("~", caretWidth-1)
}

func clipLine(text string, width uint8) string {
	if width == 0 {
		return text
	}
	return runewidth.Truncate(norm.NFC.String(text), int(width), "…")
}

func severityName(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "info"
	}
}

func severityColor(sev diag.Severity) *color.Color {
	var c *color.Color
	switch sev {
	case diag.SevError:
		c = color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		c = color.New(color.FgYellow, color.Bold)
	default:
		c = color.New(color.FgCyan)
	}
	c.EnableColor()
	return c
}

func labelColor(attr color.Attribute) *color.Color {
	c := color.New(attr)
	c.EnableColor()
	return c
}
