package hir

// Visitor receives every node reached by Walk.
type Visitor interface {
	VisitItem(item *Item)
	VisitStmt(stmt *Stmt)
	VisitExpr(expr *Expr)
}

// Walk traverses the module depth-first in source order and invokes the
// visitor exactly once per declaration, statement, and expression.
// Declarations inside extern blocks belong to the block payload and are
// not visited as free-standing items.
func Walk(v Visitor, mod *Module) {
	for _, item := range mod.Items {
		WalkItem(v, item)
	}
}

// WalkItem visits the item, then its children.
func WalkItem(v Visitor, item *Item) {
	if item == nil {
		return
	}
	v.VisitItem(item)
	switch data := item.Data.(type) {
	case FnDecl:
		WalkBlock(v, data.Body)
	case EnumDecl:
		for i := range data.Variants {
			WalkExpr(v, data.Variants[i].Discr)
		}
	case ConstDecl:
		WalkExpr(v, data.Value)
	case StaticDecl:
		WalkExpr(v, data.Value)
	}
}

// WalkBlock walks the statements of a block in order.
func WalkBlock(v Visitor, block *Block) {
	if block == nil {
		return
	}
	for _, stmt := range block.Stmts {
		WalkStmt(v, stmt)
	}
}

// WalkStmt visits the statement, then its children.
func WalkStmt(v Visitor, stmt *Stmt) {
	if stmt == nil {
		return
	}
	v.VisitStmt(stmt)
	switch data := stmt.Data.(type) {
	case LetData:
		WalkExpr(v, data.Value)
	case ItemStmtData:
		WalkItem(v, data.Item)
	case ExprStmtData:
		WalkExpr(v, data.Expr)
	case AssignData:
		WalkExpr(v, data.Target)
		WalkExpr(v, data.Value)
	case ReturnData:
		WalkExpr(v, data.Value)
	case WhileData:
		WalkExpr(v, data.Cond)
		WalkBlock(v, data.Body)
	case ForData:
		WalkExpr(v, data.Iterable)
		WalkBlock(v, data.Body)
	}
}

// WalkExpr visits the expression, then its children in syntactic order.
func WalkExpr(v Visitor, expr *Expr) {
	if expr == nil {
		return
	}
	v.VisitExpr(expr)
	switch data := expr.Data.(type) {
	case UnaryData:
		WalkExpr(v, data.Operand)
	case BinaryData:
		WalkExpr(v, data.Left)
		WalkExpr(v, data.Right)
	case CallData:
		WalkExpr(v, data.Callee)
		for _, arg := range data.Args {
			WalkExpr(v, arg)
		}
	case FieldData:
		WalkExpr(v, data.Recv)
	case IndexData:
		WalkExpr(v, data.Recv)
		WalkExpr(v, data.Index)
	case ArrayData:
		for _, el := range data.Elems {
			WalkExpr(v, el)
		}
	case IfData:
		WalkExpr(v, data.Cond)
		WalkBlock(v, data.Then)
		WalkBlock(v, data.Else)
	case BlockData:
		WalkBlock(v, data.Block)
	case ClosureData:
		WalkBlock(v, data.Body)
	case CastData:
		WalkExpr(v, data.Operand)
	}
}
