// Package testkit provides shared invariant checks over decoded HIR modules
// for package tests and fuzz harnesses.
package testkit

import (
	"fmt"

	"ember/internal/hir"
	"ember/internal/source"
)

// CheckModuleInvariants validates the guarantees the dump decoder makes for
// every module it returns:
//  1. the module carries a source path
//  2. every span is well formed (Start <= End) and references the module's file
//  3. attribute payloads match their form: name-value carries a literal,
//     a list carries a non-nil item slice, a bare word carries neither
//  4. the same discipline holds for nested meta items
func CheckModuleInvariants(mod *hir.Module, fileID source.FileID) error {
	if mod == nil {
		return fmt.Errorf("nil module")
	}
	if mod.Path == "" {
		return fmt.Errorf("module has no source path")
	}
	w := &invariantWalker{file: fileID}
	hir.Walk(w, mod)
	return w.err
}

type invariantWalker struct {
	file source.FileID
	err  error
}

func (w *invariantWalker) VisitItem(item *hir.Item) {
	if w.err != nil || item == nil {
		return
	}
	what := "item " + item.Kind.String()
	if item.Name != "" {
		what += " " + item.Name
	}
	if err := w.checkSpan(what, item.Span); err != nil {
		w.err = err
		return
	}
	if err := w.checkPayloadSpans(what, item.Data); err != nil {
		w.err = err
		return
	}
	w.checkAttrs(item.Attrs)
}

func (w *invariantWalker) VisitStmt(stmt *hir.Stmt) {
	if w.err != nil || stmt == nil {
		return
	}
	if err := w.checkSpan("stmt "+stmt.Kind.String(), stmt.Span); err != nil {
		w.err = err
		return
	}
	w.checkAttrs(stmt.Attrs)
}

func (w *invariantWalker) VisitExpr(expr *hir.Expr) {
	if w.err != nil || expr == nil {
		return
	}
	if err := w.checkSpan("expr "+expr.Kind.String(), expr.Span); err != nil {
		w.err = err
		return
	}
	w.checkAttrs(expr.Attrs)
}

// checkPayloadSpans covers the span-carrying payload parts Walk does not
// visit: params, fields, variants and foreign declarations.
func (w *invariantWalker) checkPayloadSpans(what string, data hir.ItemData) error {
	switch d := data.(type) {
	case hir.FnDecl:
		for i := range d.Params {
			if err := w.checkSpan(what+" param", d.Params[i].Span); err != nil {
				return err
			}
		}
	case hir.StructDecl:
		return w.checkFieldSpans(what, d.Fields)
	case hir.UnionDecl:
		return w.checkFieldSpans(what, d.Fields)
	case hir.EnumDecl:
		for i := range d.Variants {
			v := &d.Variants[i]
			if err := w.checkSpan(what+" variant "+v.Name, v.Span); err != nil {
				return err
			}
			if err := w.checkFieldSpans(what+" variant "+v.Name, v.Fields); err != nil {
				return err
			}
		}
	case hir.ForeignModDecl:
		for i := range d.Decls {
			if err := w.checkSpan(what+" decl "+d.Decls[i].Name, d.Decls[i].Span); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *invariantWalker) checkFieldSpans(what string, fields []hir.Field) error {
	for i := range fields {
		if err := w.checkSpan(what+" field "+fields[i].Name, fields[i].Span); err != nil {
			return err
		}
	}
	return nil
}

func (w *invariantWalker) checkAttrs(attrs []hir.Attr) {
	if w.err != nil {
		return
	}
	for i := range attrs {
		if err := w.checkAttr(&attrs[i]); err != nil {
			w.err = err
			return
		}
	}
}

func (w *invariantWalker) checkAttr(attr *hir.Attr) error {
	what := "attr @" + attr.Name
	if attr.Name == "" {
		return fmt.Errorf("attribute without a name")
	}
	if err := w.checkSpan(what, attr.Span); err != nil {
		return err
	}
	switch attr.Kind {
	case hir.AttrNameValue:
		if attr.Value == nil {
			return fmt.Errorf("%s: name-value attribute without literal", what)
		}
		if attr.Items != nil {
			return fmt.Errorf("%s: name-value attribute carries items", what)
		}
		return w.checkSpan(what+" literal", attr.Value.Span)
	case hir.AttrList:
		if attr.Items == nil {
			return fmt.Errorf("%s: list attribute with nil items", what)
		}
		if attr.Value != nil {
			return fmt.Errorf("%s: list attribute carries a literal", what)
		}
		for i := range attr.Items {
			if err := w.checkMetaItem(what, &attr.Items[i]); err != nil {
				return err
			}
		}
		return nil
	default:
		if attr.Value != nil || attr.Items != nil {
			return fmt.Errorf("%s: bare attribute carries a payload", what)
		}
		return nil
	}
}

func (w *invariantWalker) checkMetaItem(parent string, item *hir.MetaItem) error {
	what := parent + " item"
	if item.Name != "" {
		what += " " + item.Name
	}
	if err := w.checkSpan(what, item.Span); err != nil {
		return err
	}
	switch item.Kind {
	case hir.MetaNameValue, hir.MetaLit:
		if item.Value == nil {
			return fmt.Errorf("%s: missing literal", what)
		}
		if item.Kind == hir.MetaNameValue && item.Name == "" {
			return fmt.Errorf("%s: name-value item without a name", what)
		}
		return w.checkSpan(what+" literal", item.Value.Span)
	case hir.MetaList:
		if item.Items == nil {
			return fmt.Errorf("%s: nested list with nil items", what)
		}
		for i := range item.Items {
			if err := w.checkMetaItem(what, &item.Items[i]); err != nil {
				return err
			}
		}
		return nil
	default:
		if item.Value != nil || item.Items != nil {
			return fmt.Errorf("%s: bare word carries a payload", what)
		}
		if item.Name == "" {
			return fmt.Errorf("%s: bare word without a name", what)
		}
		return nil
	}
}

func (w *invariantWalker) checkSpan(what string, sp source.Span) error {
	if sp.End < sp.Start {
		return fmt.Errorf("%s: inverted span %d-%d", what, sp.Start, sp.End)
	}
	if sp.File != w.file {
		return fmt.Errorf("%s: span references file %d, want %d", what, sp.File, w.file)
	}
	return nil
}
