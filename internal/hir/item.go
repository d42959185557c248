package hir

import (
	"ember/internal/source"
)

// ItemKind enumerates HIR top-level declaration kinds.
type ItemKind uint8

const (
	// ItemFn represents a function declaration.
	ItemFn ItemKind = iota
	// ItemStruct represents a struct declaration.
	ItemStruct
	// ItemUnion represents a union declaration.
	ItemUnion
	// ItemEnum represents an enum declaration.
	ItemEnum
	// ItemConst represents a compile-time constant.
	ItemConst
	// ItemStatic represents a static variable.
	ItemStatic
	// ItemForeignMod represents an extern block of foreign declarations.
	ItemForeignMod
	// ItemTypeAlias represents a type alias.
	ItemTypeAlias
	// ItemUse represents an import.
	ItemUse
)

// String returns a human-readable name for the item kind.
func (k ItemKind) String() string {
	switch k {
	case ItemFn:
		return "Fn"
	case ItemStruct:
		return "Struct"
	case ItemUnion:
		return "Union"
	case ItemEnum:
		return "Enum"
	case ItemConst:
		return "Const"
	case ItemStatic:
		return "Static"
	case ItemForeignMod:
		return "ForeignMod"
	case ItemTypeAlias:
		return "TypeAlias"
	case ItemUse:
		return "Use"
	default:
		return "Unknown"
	}
}

// Item represents an HIR declaration.
type Item struct {
	Kind  ItemKind
	Name  string // empty for foreign mods and imports
	Span  source.Span
	Attrs []Attr
	Data  ItemData // Kind-specific payload
}

// ItemData is the interface for declaration-specific data.
type ItemData interface {
	itemData()
}

// Param is a function parameter.
type Param struct {
	Name     string
	TypeName string
	Span     source.Span
}

// Field is a struct or union field.
type Field struct {
	Name     string
	TypeName string
	Span     source.Span
}

// FnDecl holds data for ItemFn.
type FnDecl struct {
	Params []Param
	Ret    string // empty when the function returns nothing
	Body   *Block // nil for bodyless declarations
}

func (FnDecl) itemData() {}

// StructDecl holds data for ItemStruct.
type StructDecl struct {
	Fields []Field
}

func (StructDecl) itemData() {}

// UnionDecl holds data for ItemUnion.
type UnionDecl struct {
	Fields []Field
}

func (UnionDecl) itemData() {}

// VariantForm distinguishes enum variant shapes.
type VariantForm uint8

const (
	// VariantUnit is a bare variant: A.
	VariantUnit VariantForm = iota
	// VariantTuple is a tuple variant: A(T1, T2). An empty tuple
	// variant A() is still VariantTuple, not VariantUnit.
	VariantTuple
	// VariantStruct is a struct variant: A { x: T }.
	VariantStruct
)

// String returns a human-readable name for the variant form.
func (f VariantForm) String() string {
	switch f {
	case VariantUnit:
		return "Unit"
	case VariantTuple:
		return "Tuple"
	case VariantStruct:
		return "Struct"
	default:
		return "Unknown"
	}
}

// Variant is one enum variant.
type Variant struct {
	Name   string
	Form   VariantForm
	Fields []Field // tuple/struct payload fields
	Discr  *Expr   // explicit discriminant, nil if none
	Span   source.Span
}

// EnumDecl holds data for ItemEnum.
type EnumDecl struct {
	Variants []Variant
}

func (EnumDecl) itemData() {}

// ConstDecl holds data for ItemConst.
type ConstDecl struct {
	TypeName string
	Value    *Expr
}

func (ConstDecl) itemData() {}

// StaticDecl holds data for ItemStatic.
type StaticDecl struct {
	TypeName string
	Mut      bool
	Value    *Expr // nil inside foreign mods
}

func (StaticDecl) itemData() {}

// ForeignDeclKind distinguishes declarations inside an extern block.
type ForeignDeclKind uint8

const (
	// ForeignFn is a function declared in an extern block.
	ForeignFn ForeignDeclKind = iota
	// ForeignStatic is a static declared in an extern block.
	ForeignStatic
)

// ForeignDecl is a single declaration inside an extern block. Foreign
// declarations are not free-standing items; the checker classifies only
// the enclosing block.
type ForeignDecl struct {
	Kind ForeignDeclKind
	Name string
	Span source.Span
}

// ForeignModDecl holds data for ItemForeignMod.
type ForeignModDecl struct {
	ABI   string
	Decls []ForeignDecl
}

func (ForeignModDecl) itemData() {}

// TypeAliasDecl holds data for ItemTypeAlias.
type TypeAliasDecl struct {
	Aliased string
}

func (TypeAliasDecl) itemData() {}

// UseDecl holds data for ItemUse.
type UseDecl struct {
	Path string
}

func (UseDecl) itemData() {}
