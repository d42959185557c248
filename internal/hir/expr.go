package hir

import (
	"ember/internal/source"
)

// ExprKind enumerates HIR expression kinds.
// These map closely to the surface syntax with minimal desugaring.
type ExprKind uint8

const (
	// ExprLiteral represents literals (int, float, bool, string).
	ExprLiteral ExprKind = iota
	// ExprPath represents a reference to a named value.
	ExprPath
	// ExprUnary represents unary operators (-, !, &).
	ExprUnary
	// ExprBinary represents binary operators (+, -, *, /, ==, etc.).
	ExprBinary
	// ExprCall represents function or method calls.
	ExprCall
	// ExprField represents field access (expr.field).
	ExprField
	// ExprIndex represents indexing (expr[index]).
	ExprIndex
	// ExprArray represents array literals ([a, b, c]).
	ExprArray
	// ExprIf represents a conditional expression.
	ExprIf
	// ExprBlock represents a block expression { ... }.
	ExprBlock
	// ExprClosure represents an anonymous function literal.
	ExprClosure
	// ExprCast represents type cast (expr as Type).
	ExprCast
)

// String returns a human-readable name for the expression kind.
func (k ExprKind) String() string {
	switch k {
	case ExprLiteral:
		return "Literal"
	case ExprPath:
		return "Path"
	case ExprUnary:
		return "Unary"
	case ExprBinary:
		return "Binary"
	case ExprCall:
		return "Call"
	case ExprField:
		return "Field"
	case ExprIndex:
		return "Index"
	case ExprArray:
		return "Array"
	case ExprIf:
		return "If"
	case ExprBlock:
		return "Block"
	case ExprClosure:
		return "Closure"
	case ExprCast:
		return "Cast"
	default:
		return "Unknown"
	}
}

// Expr represents an HIR expression.
type Expr struct {
	Kind  ExprKind
	Span  source.Span
	Attrs []Attr
	Data  ExprData // Kind-specific payload
}

// ExprData is the interface for expression-specific data.
type ExprData interface {
	exprData()
}

// LiteralData holds data for ExprLiteral.
type LiteralData struct {
	Lit Literal
}

func (LiteralData) exprData() {}

// PathData holds data for ExprPath.
type PathData struct {
	Name string
}

func (PathData) exprData() {}

// UnaryData holds data for ExprUnary.
type UnaryData struct {
	Op      string
	Operand *Expr
}

func (UnaryData) exprData() {}

// BinaryData holds data for ExprBinary.
type BinaryData struct {
	Op    string
	Left  *Expr
	Right *Expr
}

func (BinaryData) exprData() {}

// CallData holds data for ExprCall.
type CallData struct {
	Callee *Expr
	Args   []*Expr
}

func (CallData) exprData() {}

// FieldData holds data for ExprField.
type FieldData struct {
	Recv  *Expr
	Field string
}

func (FieldData) exprData() {}

// IndexData holds data for ExprIndex.
type IndexData struct {
	Recv  *Expr
	Index *Expr
}

func (IndexData) exprData() {}

// ArrayData holds data for ExprArray.
type ArrayData struct {
	Elems []*Expr
}

func (ArrayData) exprData() {}

// IfData holds data for ExprIf.
type IfData struct {
	Cond *Expr
	Then *Block
	Else *Block // nil if no else branch
}

func (IfData) exprData() {}

// BlockData holds data for ExprBlock.
type BlockData struct {
	Block *Block
}

func (BlockData) exprData() {}

// ClosureData holds data for ExprClosure.
type ClosureData struct {
	Params []Param
	Ret    string
	Body   *Block
}

func (ClosureData) exprData() {}

// CastData holds data for ExprCast.
type CastData struct {
	Operand  *Expr
	TypeName string
}

func (CastData) exprData() {}
