package sema

import (
	"ember/internal/diag"
	"ember/internal/hir"
	"ember/internal/source"
)

// checkItemAttrs runs every placement rule against one declaration.
// Порядок повторяет структуру правил: сначала хук кодогенерации либо
// проверка @target_feature, затем пер-атрибутный цикл, затем правила
// для @repr и @used, которые смотрят на комбинации.
func (ac *attrChecker) checkItemAttrs(item *hir.Item, target Target) {
	if target == TargetFn || target == TargetConst {
		// Functions and constants may carry codegen attributes; resolve
		// them eagerly so the backend sees a validated set.
		if ac.codegen != nil {
			ac.codegen.ResolveCodegenAttrs(item)
		}
	} else {
		for i := range item.Attrs {
			if item.Attrs[i].Name != "target_feature" {
				continue
			}
			ac.reportWithNote(diag.SemaAttrTargetFeatureTarget, item.Attrs[i].Span,
				"attribute should be applied to a function",
				item.Span, "not a function")
			break
		}
	}

	hasWasmImportModule := false
	for i := range item.Attrs {
		attr := item.Attrs[i]
		switch attr.Name {
		case "inline":
			ac.checkInline(attr, item.Span, target)
		case "non_exhaustive":
			ac.checkNonExhaustive(attr, item, target)
		case "wasm_import_module":
			hasWasmImportModule = true
			// Форма и место прикрепления проверяются независимо: у
			// атрибута без строкового значения на не-extern блоке будут
			// обе диагностики.
			if _, ok := attr.ValueStr(); !ok {
				ac.report(diag.SemaAttrWasmImportForm, attr.Span,
					`must be of the form @wasm_import_module = "..."`)
			}
			if target != TargetForeignMod {
				ac.report(diag.SemaAttrWasmImportTarget, attr.Span,
					"must only be attached to foreign modules")
			}
		case "wasm_custom_section":
			if target != TargetConst {
				ac.report(diag.SemaAttrWasmSectionTarget, attr.Span,
					"only allowed on consts")
			}
		}
	}

	if target == TargetForeignMod &&
		!hasWasmImportModule &&
		ac.target.IsWasm32() &&
		ac.config.RequireWasmImportModule {
		diag.ReportWarning(ac.reporter, diag.SemaAttrWasmImportMissing, item.Span,
			`must have a @wasm_import_module = "..." attribute, this will become a hard error before too long`).
			Emit()
	}

	ac.checkRepr(item, target)
	ac.checkUsed(item, target)
}

// checkInline validates @inline placement. The note span is the enclosing
// declaration, statement or expression the attribute sits on.
func (ac *attrChecker) checkInline(attr hir.Attr, span source.Span, target Target) {
	if target != TargetFn && target != TargetClosure {
		ac.reportWithNote(diag.SemaAttrInlineTarget, attr.Span,
			"attribute should be applied to function or closure",
			span, "not a function or closure")
	}
}

// checkNonExhaustive validates @non_exhaustive placement and shape.
func (ac *attrChecker) checkNonExhaustive(attr hir.Attr, item *hir.Item, target Target) {
	switch target {
	case TargetStruct, TargetEnum:
		// допустимо
	default:
		ac.reportWithNote(diag.SemaAttrNonExhaustiveTarget, attr.Span,
			"attribute can only be applied to a struct or enum",
			item.Span, "not a struct or enum")
		return
	}

	// Атрибут обязан быть голым словом: и список (даже пустой), и любое
	// литеральное значение считаются нарушением формы.
	if attr.Kind == hir.AttrList || (attr.Kind == hir.AttrNameValue && attr.Value != nil) {
		diag.ReportError(ac.reporter, diag.SemaAttrNonExhaustiveShape, attr.Span,
			"attribute should be empty").
			WithNote(item.Span, "not empty").
			WithFix("remove the attribute arguments", diag.FixEdit{
				Span:    attr.Span,
				NewText: "@non_exhaustive",
			}).
			Emit()
	}
}

// checkUsed validates @used placement. Every misplaced occurrence is
// reported, not just the first.
func (ac *attrChecker) checkUsed(item *hir.Item, target Target) {
	for i := range item.Attrs {
		if item.Attrs[i].Name == "used" && target != TargetStatic {
			ac.report(diag.SemaAttrUsedTarget, item.Attrs[i].Span,
				"attribute must be applied to a `static` variable")
		}
	}
}

// checkStmtAttrs runs the reduced rule set for statements. Only
// declaration statements carry checkable attributes; expression statements
// are handled through their expression.
func (ac *attrChecker) checkStmtAttrs(stmt *hir.Stmt) {
	if stmt == nil || !stmt.IsDecl() {
		return
	}
	for i := range stmt.Attrs {
		attr := stmt.Attrs[i]
		switch attr.Name {
		case "inline":
			ac.checkInline(attr, stmt.Span, TargetStatement)
		case "repr":
			ac.emitReprError(attr.Span, stmt.Span,
				"attribute should not be applied to a statement",
				"not a struct, enum or union")
		}
	}
}

// checkExprAttrs runs the reduced rule set for expressions.
func (ac *attrChecker) checkExprAttrs(expr *hir.Expr) {
	if expr == nil {
		return
	}
	target := TargetForExpr(expr)
	for i := range expr.Attrs {
		attr := expr.Attrs[i]
		switch attr.Name {
		case "inline":
			ac.checkInline(attr, expr.Span, target)
		case "repr":
			ac.emitReprError(attr.Span, expr.Span,
				"attribute should not be applied to an expression",
				"not defining a struct, enum or union")
		}
	}
}
