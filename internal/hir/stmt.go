package hir

import (
	"ember/internal/source"
)

// StmtKind enumerates HIR statement kinds.
type StmtKind uint8

const (
	// StmtLet represents variable declaration (let x = ...).
	StmtLet StmtKind = iota
	// StmtItem represents a nested declaration inside a block.
	StmtItem
	// StmtExpr represents a trailing expression statement whose value is used.
	StmtExpr
	// StmtSemi represents an expression statement terminated by ';'.
	StmtSemi
	// StmtAssign represents assignment (lhs = rhs).
	StmtAssign
	// StmtReturn represents return statement.
	StmtReturn
	// StmtWhile represents while loop.
	StmtWhile
	// StmtFor represents for-in loop.
	StmtFor
	// StmtBreak represents break statement.
	StmtBreak
	// StmtContinue represents continue statement.
	StmtContinue
)

// String returns a human-readable name for the statement kind.
func (k StmtKind) String() string {
	switch k {
	case StmtLet:
		return "Let"
	case StmtItem:
		return "Item"
	case StmtExpr:
		return "Expr"
	case StmtSemi:
		return "Semi"
	case StmtAssign:
		return "Assign"
	case StmtReturn:
		return "Return"
	case StmtWhile:
		return "While"
	case StmtFor:
		return "For"
	case StmtBreak:
		return "Break"
	case StmtContinue:
		return "Continue"
	default:
		return "Unknown"
	}
}

// Stmt represents an HIR statement.
type Stmt struct {
	Kind  StmtKind
	Span  source.Span
	Attrs []Attr
	Data  StmtData // Kind-specific payload
}

// IsDecl reports whether the statement introduces a declaration
// (a let binding or a nested item).
func (s *Stmt) IsDecl() bool {
	return s.Kind == StmtLet || s.Kind == StmtItem
}

// StmtData is the interface for statement-specific data.
type StmtData interface {
	stmtData()
}

// LetData holds data for StmtLet.
type LetData struct {
	Name     string
	TypeName string // declared type, empty when inferred
	Value    *Expr  // initializer, nil if none
	IsMut    bool
}

func (LetData) stmtData() {}

// ItemStmtData holds data for StmtItem.
type ItemStmtData struct {
	Item *Item
}

func (ItemStmtData) stmtData() {}

// ExprStmtData holds data for StmtExpr and StmtSemi.
type ExprStmtData struct {
	Expr *Expr
}

func (ExprStmtData) stmtData() {}

// AssignData holds data for StmtAssign.
type AssignData struct {
	Target *Expr
	Value  *Expr
}

func (AssignData) stmtData() {}

// ReturnData holds data for StmtReturn.
type ReturnData struct {
	Value *Expr // nil for bare return
}

func (ReturnData) stmtData() {}

// WhileData holds data for StmtWhile.
type WhileData struct {
	Cond *Expr
	Body *Block
}

func (WhileData) stmtData() {}

// ForData holds data for StmtFor.
type ForData struct {
	VarName  string
	Iterable *Expr
	Body     *Block
}

func (ForData) stmtData() {}

// BreakData holds data for StmtBreak.
type BreakData struct{}

func (BreakData) stmtData() {}

// ContinueData holds data for StmtContinue.
type ContinueData struct{}

func (ContinueData) stmtData() {}

// Block is a braced sequence of statements.
type Block struct {
	Stmts []*Stmt
	Span  source.Span
}
