package hir

import (
	"ember/internal/source"
)

// AttrKind enumerates the syntactic shapes an attribute can take.
type AttrKind uint8

const (
	// AttrWord is the bare form: @name.
	AttrWord AttrKind = iota
	// AttrNameValue is the assignment form: @name = "literal".
	AttrNameValue
	// AttrList is the list form: @name(item, ...). The list may be empty.
	AttrList
)

// String returns a human-readable name for the attribute kind.
func (k AttrKind) String() string {
	switch k {
	case AttrWord:
		return "Word"
	case AttrNameValue:
		return "NameValue"
	case AttrList:
		return "List"
	default:
		return "Unknown"
	}
}

// Attr описывает атрибут вида `@name`, `@name = "..."` или `@name(...)`.
type Attr struct {
	Name  string
	Kind  AttrKind
	Value *Literal   // AttrNameValue payload, nil otherwise
	Items []MetaItem // AttrList payload; non-nil (possibly empty) for AttrList
	Span  source.Span
}

// ValueStr returns the attribute value when it is a string literal.
func (a *Attr) ValueStr() (string, bool) {
	if a.Kind != AttrNameValue || a.Value == nil || a.Value.Kind != LitString {
		return "", false
	}
	return a.Value.Str, true
}

// MetaItemKind enumerates the shapes of sub-items inside @name(...).
type MetaItemKind uint8

const (
	// MetaWord is a bare identifier: C, packed, transparent.
	MetaWord MetaItemKind = iota
	// MetaNameValue is an assignment: name = "literal".
	MetaNameValue
	// MetaList is a nested list: align(8).
	MetaList
	// MetaLit is a bare literal with no name: 42, "text".
	MetaLit
)

// String returns a human-readable name for the meta item kind.
func (k MetaItemKind) String() string {
	switch k {
	case MetaWord:
		return "Word"
	case MetaNameValue:
		return "NameValue"
	case MetaList:
		return "List"
	case MetaLit:
		return "Lit"
	default:
		return "Unknown"
	}
}

// MetaItem is one sub-item of a list-form attribute. Nameless literal
// sub-items keep Name empty.
type MetaItem struct {
	Kind  MetaItemKind
	Name  string
	Value *Literal   // MetaNameValue / MetaLit payload
	Items []MetaItem // MetaList payload
	Span  source.Span
}

// LitKind enumerates literal kinds appearing inside attributes.
type LitKind uint8

const (
	// LitString is a quoted string literal.
	LitString LitKind = iota
	// LitInt is an integer literal.
	LitInt
	// LitBool is true/false.
	LitBool
	// LitFloat is a floating point literal.
	LitFloat
)

// String returns a human-readable name for the literal kind.
func (k LitKind) String() string {
	switch k {
	case LitString:
		return "String"
	case LitInt:
		return "Int"
	case LitBool:
		return "Bool"
	case LitFloat:
		return "Float"
	default:
		return "Unknown"
	}
}

// Literal is a literal value carried by an attribute or meta item.
type Literal struct {
	Kind  LitKind
	Str   string // LitString payload, also raw text for other kinds
	Int   int64
	Bool  bool
	Float float64
	Span  source.Span
}
