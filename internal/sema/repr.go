package sema

import (
	"ember/internal/diag"
	"ember/internal/hir"
	"ember/internal/source"
)

// intReprHints перечисляет примитивные хинты дискриминанта внутри @repr.
var intReprHints = map[string]struct{}{
	"i8": {}, "u8": {}, "i16": {}, "u16": {},
	"i32": {}, "u32": {}, "i64": {}, "u64": {},
	"isize": {}, "usize": {},
}

// checkRepr validates each hint of every @repr list on the declaration,
// then cross-checks the combination of hints.
func (ac *attrChecker) checkRepr(item *hir.Item, target Target) {
	// Хинты собираются из всех списковых @repr на элементе; формы @repr и
	// @repr = "..." хинтов не несут. Пример: @repr(foo) и @repr(bar, align(8))
	// дают [foo, bar, align].
	var hints []hir.MetaItem
	for i := range item.Attrs {
		attr := item.Attrs[i]
		if attr.Name != "repr" || attr.Kind != hir.AttrList {
			continue
		}
		hints = append(hints, attr.Items...)
	}

	intReprs := 0
	isC := false
	isSimd := false
	isTransparent := false

	for _, hint := range hints {
		if hint.Name == "" {
			// Безымянный хинт вида @repr(42): о нём сообщает более ранняя
			// фаза, но в проверках комбинаций ниже он всё равно участвует.
			continue
		}

		var article, allowed string
		switch hint.Name {
		case "C":
			isC = true
			if target == TargetStruct || target == TargetUnion || target == TargetEnum {
				continue
			}
			article, allowed = "a", "struct, enum or union"
		case "packed":
			if target == TargetStruct || target == TargetUnion {
				continue
			}
			article, allowed = "a", "struct or union"
		case "simd":
			isSimd = true
			if target == TargetStruct {
				continue
			}
			article, allowed = "a", "struct"
		case "align":
			if target == TargetStruct || target == TargetUnion {
				continue
			}
			article, allowed = "a", "struct or union"
		case "transparent":
			isTransparent = true
			if target == TargetStruct {
				continue
			}
			article, allowed = "a", "struct"
		default:
			if _, ok := intReprHints[hint.Name]; !ok {
				// Неизвестное имя тоже пропускаем молча.
				continue
			}
			intReprs++
			if target == TargetEnum {
				continue
			}
			article, allowed = "an", "enum"
		}

		ac.emitReprError(hint.Span, item.Span,
			"attribute should be applied to "+allowed,
			"not "+article+" "+allowed)
	}

	// @repr(transparent) не уживается с другими хинтами.
	if isTransparent && len(hints) > 1 {
		ac.reportHints(diag.SemaAttrReprTransparent, diag.SevError, hints,
			"transparent struct cannot have other repr hints")
	}

	// Подозрительные сочетания: больше одного int-хинта, simd вместе с C,
	// а также C с одним int-хинтом на простом enum.
	if intReprs > 1 ||
		(isSimd && isC) ||
		(intReprs == 1 && isC && isPlainEnum(item)) {
		ac.reportHints(diag.SemaAttrReprConflict, diag.SevWarning, hints,
			"conflicting representation hints")
	}
}

// emitReprError reports a misplaced hint: primary span on the hint itself,
// note on the construct it is attached to.
func (ac *attrChecker) emitReprError(hintSpan, labelSpan source.Span, msg, label string) {
	ac.reportWithNote(diag.SemaAttrReprTarget, hintSpan, msg, labelSpan, label)
}

// reportHints emits one diagnostic whose primary span covers every hint,
// with a note per hint. Точно выделить виновные хинты сложно, поэтому
// показываются все.
func (ac *attrChecker) reportHints(code diag.Code, sev diag.Severity, hints []hir.MetaItem, msg string) {
	if ac.reporter == nil || len(hints) == 0 {
		return
	}
	primary := hints[0].Span
	for _, hint := range hints[1:] {
		primary = primary.Cover(hint.Span)
	}
	b := diag.NewReportBuilder(ac.reporter, sev, code, primary, msg)
	for _, hint := range hints {
		b.WithNote(hint.Span, "repr hint here")
	}
	b.Emit()
}

// isPlainEnum reports whether the item is an enum made of unit variants
// only. Explicit discriminant values do not change the answer, and an
// empty tuple variant A() still disqualifies the enum.
func isPlainEnum(item *hir.Item) bool {
	if item == nil || item.Kind != hir.ItemEnum {
		return false
	}
	decl, ok := item.Data.(hir.EnumDecl)
	if !ok {
		return false
	}
	for i := range decl.Variants {
		if decl.Variants[i].Form != hir.VariantUnit {
			return false
		}
	}
	return true
}
