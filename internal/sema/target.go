package sema

import "ember/internal/hir"

// Target classifies the HIR node an attribute is attached to. Placement
// rules are written against this classification, not against raw kinds.
type Target uint8

const (
	// TargetFn is a function declaration, including nested functions
	// introduced by item statements.
	TargetFn Target = iota
	// TargetStruct is a struct declaration.
	TargetStruct
	// TargetUnion is a union declaration.
	TargetUnion
	// TargetEnum is an enum declaration.
	TargetEnum
	// TargetConst is a compile-time constant.
	TargetConst
	// TargetForeignMod is an extern block. Declarations inside the block
	// are part of its payload and get no classification of their own.
	TargetForeignMod
	// TargetExpression is any expression except a closure literal.
	TargetExpression
	// TargetStatement is a declaration statement.
	TargetStatement
	// TargetClosure is a closure literal.
	TargetClosure
	// TargetStatic is a static variable.
	TargetStatic
	// TargetOther covers item kinds no placement rule cares about,
	// such as type aliases and imports.
	TargetOther
)

// String возвращает человекочитаемое имя цели.
func (t Target) String() string {
	switch t {
	case TargetFn:
		return "function"
	case TargetStruct:
		return "struct"
	case TargetUnion:
		return "union"
	case TargetEnum:
		return "enum"
	case TargetConst:
		return "constant"
	case TargetForeignMod:
		return "foreign module"
	case TargetExpression:
		return "expression"
	case TargetStatement:
		return "statement"
	case TargetClosure:
		return "closure"
	case TargetStatic:
		return "static"
	case TargetOther:
		return "item"
	default:
		return "unknown"
	}
}

// TargetForItem maps a declaration to its placement target.
func TargetForItem(item *hir.Item) Target {
	if item == nil {
		return TargetOther
	}
	switch item.Kind {
	case hir.ItemFn:
		return TargetFn
	case hir.ItemStruct:
		return TargetStruct
	case hir.ItemUnion:
		return TargetUnion
	case hir.ItemEnum:
		return TargetEnum
	case hir.ItemConst:
		return TargetConst
	case hir.ItemStatic:
		return TargetStatic
	case hir.ItemForeignMod:
		return TargetForeignMod
	default:
		return TargetOther
	}
}

// TargetForExpr maps an expression to its placement target.
func TargetForExpr(expr *hir.Expr) Target {
	if expr != nil && expr.Kind == hir.ExprClosure {
		return TargetClosure
	}
	return TargetExpression
}
