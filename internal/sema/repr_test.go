package sema

import (
	"reflect"
	"testing"

	"ember/internal/diag"
	"ember/internal/hir"
)

func TestReprPlacement(t *testing.T) {
	hintSpan := sp(6, 12)
	attrSpan := sp(0, 14)
	reprWith := func(item *hir.Item, hints ...hir.MetaItem) *hir.Item {
		item.Attrs = append(item.Attrs, attrList("repr", attrSpan, hints...))
		return item
	}

	tests := []struct {
		name     string
		item     *hir.Item
		wantMsg  string
		wantNote string
	}{
		{"C on struct", reprWith(structItem(sp(0, 40)), metaWord("C", hintSpan)), "", ""},
		{"C on union", reprWith(unionItem(sp(0, 40)), metaWord("C", hintSpan)), "", ""},
		{"C on enum", reprWith(enumItem(sp(0, 40), nil), metaWord("C", hintSpan)), "", ""},
		{
			"C on function",
			reprWith(fnItem(sp(0, 40)), metaWord("C", hintSpan)),
			"attribute should be applied to a struct, enum or union",
			"not a struct, enum or union",
		},
		{"packed on struct", reprWith(structItem(sp(0, 40)), metaWord("packed", hintSpan)), "", ""},
		{"packed on union", reprWith(unionItem(sp(0, 40)), metaWord("packed", hintSpan)), "", ""},
		{
			"packed on enum",
			reprWith(enumItem(sp(0, 40), nil), metaWord("packed", hintSpan)),
			"attribute should be applied to a struct or union",
			"not a struct or union",
		},
		{"simd on struct", reprWith(structItem(sp(0, 40)), metaWord("simd", hintSpan)), "", ""},
		{
			"simd on enum",
			reprWith(enumItem(sp(0, 40), nil), metaWord("simd", hintSpan)),
			"attribute should be applied to a struct",
			"not a struct",
		},
		{
			"simd on union",
			reprWith(unionItem(sp(0, 40)), metaWord("simd", hintSpan)),
			"attribute should be applied to a struct",
			"not a struct",
		},
		{"align on struct", reprWith(structItem(sp(0, 40)), metaList("align", hintSpan, metaInt(8, sp(8, 9)))), "", ""},
		{"align on union", reprWith(unionItem(sp(0, 40)), metaList("align", hintSpan, metaInt(8, sp(8, 9)))), "", ""},
		{
			"align on function",
			reprWith(fnItem(sp(0, 40)), metaList("align", hintSpan, metaInt(8, sp(8, 9)))),
			"attribute should be applied to a struct or union",
			"not a struct or union",
		},
		{"transparent on struct", reprWith(structItem(sp(0, 40)), metaWord("transparent", hintSpan)), "", ""},
		{
			"transparent on enum",
			reprWith(enumItem(sp(0, 40), nil), metaWord("transparent", hintSpan)),
			"attribute should be applied to a struct",
			"not a struct",
		},
		{"u8 on enum", reprWith(enumItem(sp(0, 40), nil), metaWord("u8", hintSpan)), "", ""},
		{
			"u8 on struct",
			reprWith(structItem(sp(0, 40)), metaWord("u8", hintSpan)),
			"attribute should be applied to an enum",
			"not an enum",
		},
		{
			"isize on static",
			reprWith(staticItem(sp(0, 40)), metaWord("isize", hintSpan)),
			"attribute should be applied to an enum",
			"not an enum",
		},
		{
			"u64 on function",
			reprWith(fnItem(sp(0, 40)), metaWord("u64", hintSpan)),
			"attribute should be applied to an enum",
			"not an enum",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag := runCheck(modOf(tt.item), Options{})
			if tt.wantMsg == "" {
				if bag.Len() != 0 {
					t.Fatalf("unexpected diagnostics: %v", bag.Items())
				}
				return
			}
			if bag.Len() != 1 {
				t.Fatalf("diagnostics = %d, want 1", bag.Len())
			}
			d := bag.Items()[0]
			if d.Code != diag.SemaAttrReprTarget {
				t.Errorf("code = %v, want %v", d.Code, diag.SemaAttrReprTarget)
			}
			if d.Severity != diag.SevError {
				t.Errorf("severity = %v, want error", d.Severity)
			}
			if d.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", d.Message, tt.wantMsg)
			}
			if d.Primary != hintSpan {
				t.Errorf("primary = %v, want hint span %v", d.Primary, hintSpan)
			}
			if len(d.Notes) != 1 || d.Notes[0].Msg != tt.wantNote || d.Notes[0].Span != tt.item.Span {
				t.Fatalf("notes = %v, want %q at %v", d.Notes, tt.wantNote, tt.item.Span)
			}
		})
	}
}

func TestReprIgnoresNonListForms(t *testing.T) {
	tests := []struct {
		name string
		item *hir.Item
	}{
		{"bare word on struct", structItem(sp(0, 30), attrWord("repr", sp(0, 5)))},
		{"bare word on function", fnItem(sp(0, 30), attrWord("repr", sp(0, 5)))},
		{"name value on function", fnItem(sp(0, 30), attrStr("repr", "C", sp(0, 10)))},
		{"unknown hint on struct", structItem(sp(0, 30), attrList("repr", sp(0, 14), metaWord("packed2", sp(6, 13))))},
		{"unknown hint on function", fnItem(sp(0, 30), attrList("repr", sp(0, 14), metaWord("packed2", sp(6, 13))))},
		{"nameless literal on function", fnItem(sp(0, 30), attrList("repr", sp(0, 9), metaInt(42, sp(6, 8))))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag := runCheck(modOf(tt.item), Options{})
			if bag.Len() != 0 {
				t.Fatalf("unexpected diagnostics: %v", bag.Items())
			}
		})
	}
}

func TestReprTransparentConflicts(t *testing.T) {
	t.Run("transparent alone stays quiet", func(t *testing.T) {
		item := structItem(sp(0, 40), attrList("repr", sp(0, 19), metaWord("transparent", sp(6, 17))))
		bag := runCheck(modOf(item), Options{})
		if bag.Len() != 0 {
			t.Fatalf("unexpected diagnostics: %v", bag.Items())
		}
	})

	t.Run("transparent with C", func(t *testing.T) {
		transparentSpan := sp(6, 17)
		cSpan := sp(19, 20)
		item := structItem(sp(0, 40), attrList("repr", sp(0, 22),
			metaWord("transparent", transparentSpan), metaWord("C", cSpan)))
		bag := runCheck(modOf(item), Options{})
		if bag.Len() != 1 {
			t.Fatalf("diagnostics = %d, want 1: %v", bag.Len(), bag.Items())
		}
		d := bag.Items()[0]
		if d.Code != diag.SemaAttrReprTransparent {
			t.Errorf("code = %v", d.Code)
		}
		if d.Severity != diag.SevError {
			t.Errorf("severity = %v, want error", d.Severity)
		}
		if d.Message != "transparent struct cannot have other repr hints" {
			t.Errorf("message = %q", d.Message)
		}
		if d.Primary != transparentSpan.Cover(cSpan) {
			t.Errorf("primary = %v, want cover of both hints", d.Primary)
		}
		if len(d.Notes) != 2 {
			t.Fatalf("notes = %v, want one per hint", d.Notes)
		}
		if d.Notes[0].Span != transparentSpan || d.Notes[1].Span != cSpan {
			t.Errorf("note spans = %v/%v", d.Notes[0].Span, d.Notes[1].Span)
		}
		for _, n := range d.Notes {
			if n.Msg != "repr hint here" {
				t.Errorf("note msg = %q", n.Msg)
			}
		}
	})

	t.Run("hints across separate attributes", func(t *testing.T) {
		item := structItem(sp(0, 60),
			attrList("repr", sp(0, 19), metaWord("transparent", sp(6, 17))),
			attrList("repr", sp(20, 28), metaWord("C", sp(26, 27))),
		)
		bag := runCheck(modOf(item), Options{})
		if got := codesOf(bag); !reflect.DeepEqual(got, []diag.Code{diag.SemaAttrReprTransparent}) {
			t.Fatalf("codes = %v", got)
		}
	})

	t.Run("nameless literal counts as a hint", func(t *testing.T) {
		item := structItem(sp(0, 40), attrList("repr", sp(0, 22),
			metaWord("transparent", sp(6, 17)), metaInt(42, sp(19, 21))))
		bag := runCheck(modOf(item), Options{})
		if got := codesOf(bag); !reflect.DeepEqual(got, []diag.Code{diag.SemaAttrReprTransparent}) {
			t.Fatalf("codes = %v", got)
		}
		if notes := bag.Items()[0].Notes; len(notes) != 2 {
			t.Fatalf("notes = %v, want the literal hint included", notes)
		}
	})

	t.Run("unknown hint counts as a hint", func(t *testing.T) {
		item := structItem(sp(0, 40), attrList("repr", sp(0, 28),
			metaWord("transparent", sp(6, 17)), metaWord("packed2", sp(19, 26))))
		bag := runCheck(modOf(item), Options{})
		if got := codesOf(bag); !reflect.DeepEqual(got, []diag.Code{diag.SemaAttrReprTransparent}) {
			t.Fatalf("codes = %v", got)
		}
	})

	t.Run("misplaced transparent still combines", func(t *testing.T) {
		item := enumItem(sp(0, 40), nil, attrList("repr", sp(0, 22),
			metaWord("transparent", sp(6, 17)), metaWord("C", sp(19, 20))))
		bag := runCheck(modOf(item), Options{})
		want := []diag.Code{diag.SemaAttrReprTarget, diag.SemaAttrReprTransparent}
		if got := codesOf(bag); !reflect.DeepEqual(got, want) {
			t.Fatalf("codes = %v, want %v", got, want)
		}
	})
}

func TestReprConflictWarnings(t *testing.T) {
	unitVariants := []hir.Variant{
		{Name: "A", Form: hir.VariantUnit, Span: sp(30, 31)},
		{Name: "B", Form: hir.VariantUnit, Span: sp(33, 34)},
	}
	dataVariants := []hir.Variant{
		{Name: "A", Form: hir.VariantUnit, Span: sp(30, 31)},
		{Name: "B", Form: hir.VariantTuple, Fields: []hir.Field{{TypeName: "i32", Span: sp(35, 38)}}, Span: sp(33, 39)},
	}
	emptyTupleVariants := []hir.Variant{
		{Name: "A", Form: hir.VariantTuple, Span: sp(30, 33)},
	}
	discrVariants := []hir.Variant{
		{Name: "A", Form: hir.VariantUnit, Discr: &hir.Expr{Kind: hir.ExprLiteral, Span: sp(34, 35), Data: hir.LiteralData{}}, Span: sp(30, 35)},
		{Name: "B", Form: hir.VariantUnit, Span: sp(37, 38)},
	}

	tests := []struct {
		name      string
		item      *hir.Item
		wantCodes []diag.Code
	}{
		{
			"two int hints",
			enumItem(sp(0, 60), unitVariants, attrList("repr", sp(0, 14), metaWord("u8", sp(6, 8)), metaWord("u16", sp(10, 13)))),
			[]diag.Code{diag.SemaAttrReprConflict},
		},
		{
			"three int hints one warning",
			enumItem(sp(0, 60), unitVariants, attrList("repr", sp(0, 19), metaWord("u8", sp(6, 8)), metaWord("u16", sp(10, 13)), metaWord("u32", sp(15, 18)))),
			[]diag.Code{diag.SemaAttrReprConflict},
		},
		{
			"int hints across attributes",
			enumItem(sp(0, 60), unitVariants,
				attrList("repr", sp(0, 9), metaWord("u8", sp(6, 8))),
				attrList("repr", sp(10, 20), metaWord("u16", sp(16, 19)))),
			[]diag.Code{diag.SemaAttrReprConflict},
		},
		{
			"simd with C",
			structItem(sp(0, 60), attrList("repr", sp(0, 15), metaWord("C", sp(6, 7)), metaWord("simd", sp(9, 13)))),
			[]diag.Code{diag.SemaAttrReprConflict},
		},
		{
			"C with int on plain enum",
			enumItem(sp(0, 60), unitVariants, attrList("repr", sp(0, 13), metaWord("C", sp(6, 7)), metaWord("u8", sp(9, 11)))),
			[]diag.Code{diag.SemaAttrReprConflict},
		},
		{
			"C with int on plain enum with discriminants",
			enumItem(sp(0, 60), discrVariants, attrList("repr", sp(0, 13), metaWord("C", sp(6, 7)), metaWord("u8", sp(9, 11)))),
			[]diag.Code{diag.SemaAttrReprConflict},
		},
		{
			"C with int on data-carrying enum",
			enumItem(sp(0, 60), dataVariants, attrList("repr", sp(0, 13), metaWord("C", sp(6, 7)), metaWord("u8", sp(9, 11)))),
			nil,
		},
		{
			"C with int on empty tuple variant enum",
			enumItem(sp(0, 60), emptyTupleVariants, attrList("repr", sp(0, 13), metaWord("C", sp(6, 7)), metaWord("u8", sp(9, 11)))),
			nil,
		},
		{
			"C alone on plain enum",
			enumItem(sp(0, 60), unitVariants, attrList("repr", sp(0, 8), metaWord("C", sp(6, 7)))),
			nil,
		},
		{
			"misplaced int hints still conflict",
			structItem(sp(0, 60), attrList("repr", sp(0, 14), metaWord("u8", sp(6, 8)), metaWord("u16", sp(10, 13)))),
			[]diag.Code{diag.SemaAttrReprTarget, diag.SemaAttrReprTarget, diag.SemaAttrReprConflict},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag := runCheck(modOf(tt.item), Options{})
			if got := codesOf(bag); !reflect.DeepEqual(got, tt.wantCodes) {
				t.Fatalf("codes = %v, want %v", got, tt.wantCodes)
			}
			for _, d := range bag.Items() {
				if d.Code == diag.SemaAttrReprConflict && d.Severity != diag.SevWarning {
					t.Errorf("conflict severity = %v, want warning", d.Severity)
				}
			}
		})
	}
}

func TestReprConflictSpansCoverAllHints(t *testing.T) {
	u8Span := sp(6, 8)
	u16Span := sp(10, 13)
	item := enumItem(sp(0, 60), nil, attrList("repr", sp(0, 14), metaWord("u8", u8Span), metaWord("u16", u16Span)))
	bag := runCheck(modOf(item), Options{})
	if bag.Len() != 1 {
		t.Fatalf("diagnostics = %d, want 1", bag.Len())
	}
	d := bag.Items()[0]
	if d.Message != "conflicting representation hints" {
		t.Errorf("message = %q", d.Message)
	}
	if d.Primary != u8Span.Cover(u16Span) {
		t.Errorf("primary = %v, want cover of both hints", d.Primary)
	}
	if len(d.Notes) != 2 || d.Notes[0].Span != u8Span || d.Notes[1].Span != u16Span {
		t.Fatalf("notes = %v", d.Notes)
	}
}

func TestIsPlainEnum(t *testing.T) {
	unit := hir.Variant{Name: "A", Form: hir.VariantUnit, Span: sp(0, 1)}
	unitWithDiscr := hir.Variant{
		Name:  "B",
		Form:  hir.VariantUnit,
		Discr: &hir.Expr{Kind: hir.ExprLiteral, Span: sp(4, 5), Data: hir.LiteralData{}},
		Span:  sp(2, 5),
	}
	tuple := hir.Variant{Name: "C", Form: hir.VariantTuple, Span: sp(6, 10)}
	structForm := hir.Variant{Name: "D", Form: hir.VariantStruct, Span: sp(11, 20)}

	tests := []struct {
		name string
		item *hir.Item
		want bool
	}{
		{"no variants", enumItem(sp(0, 10), nil), true},
		{"all unit", enumItem(sp(0, 10), []hir.Variant{unit, unitWithDiscr}), true},
		{"contains tuple", enumItem(sp(0, 10), []hir.Variant{unit, tuple}), false},
		{"contains struct form", enumItem(sp(0, 10), []hir.Variant{unit, structForm}), false},
		{"empty tuple variant", enumItem(sp(0, 10), []hir.Variant{{Name: "A", Form: hir.VariantTuple, Span: sp(0, 3)}}), false},
		{"not an enum", structItem(sp(0, 10)), false},
		{"nil item", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isPlainEnum(tt.item); got != tt.want {
				t.Errorf("isPlainEnum = %v, want %v", got, tt.want)
			}
		})
	}
}
