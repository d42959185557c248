package hirjson

import (
	"ember/internal/hir"
)

func (d *decoder) decodeBlock(node map[string]any) (*hir.Block, error) {
	span, err := d.span(node, "block")
	if err != nil {
		return nil, err
	}
	rawList, _ := node["stmts"].([]any)
	stmts := make([]*hir.Stmt, 0, len(rawList))
	for _, raw := range rawList {
		snode, ok := raw.(map[string]any)
		if !ok {
			return nil, d.errf("statement entry is not an object")
		}
		stmt, err := d.decodeStmt(snode)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return &hir.Block{Stmts: stmts, Span: span}, nil
}

func (d *decoder) decodeStmt(node map[string]any) (*hir.Stmt, error) {
	kind, _ := node["kind"].(string)
	what := "statement " + kind
	span, err := d.span(node, what)
	if err != nil {
		return nil, err
	}
	attrs, err := d.decodeAttrs(node)
	if err != nil {
		return nil, err
	}

	stmt := &hir.Stmt{Span: span, Attrs: attrs}
	switch kind {
	case "let":
		name, _ := node["name"].(string)
		typeName, _ := node["type"].(string)
		mut, _ := node["mut"].(bool)
		value, err := d.decodeOptionalExpr(node, "value")
		if err != nil {
			return nil, err
		}
		stmt.Kind = hir.StmtLet
		stmt.Data = hir.LetData{Name: name, TypeName: typeName, Value: value, IsMut: mut}
	case "item":
		inner, ok := node["item"].(map[string]any)
		if !ok {
			return nil, d.errf("%s: missing nested item", what)
		}
		nested, err := d.decodeItem(inner)
		if err != nil {
			return nil, err
		}
		stmt.Kind = hir.StmtItem
		stmt.Data = hir.ItemStmtData{Item: nested}
	case "expr", "semi":
		expr, err := d.decodeRequiredExpr(node, "expr", what)
		if err != nil {
			return nil, err
		}
		if kind == "expr" {
			stmt.Kind = hir.StmtExpr
		} else {
			stmt.Kind = hir.StmtSemi
		}
		stmt.Data = hir.ExprStmtData{Expr: expr}
	case "assign":
		target, err := d.decodeRequiredExpr(node, "target", what)
		if err != nil {
			return nil, err
		}
		value, err := d.decodeRequiredExpr(node, "value", what)
		if err != nil {
			return nil, err
		}
		stmt.Kind = hir.StmtAssign
		stmt.Data = hir.AssignData{Target: target, Value: value}
	case "return":
		value, err := d.decodeOptionalExpr(node, "value")
		if err != nil {
			return nil, err
		}
		stmt.Kind = hir.StmtReturn
		stmt.Data = hir.ReturnData{Value: value}
	case "while":
		cond, err := d.decodeRequiredExpr(node, "cond", what)
		if err != nil {
			return nil, err
		}
		body, err := d.decodeRequiredBlock(node, "body", what)
		if err != nil {
			return nil, err
		}
		stmt.Kind = hir.StmtWhile
		stmt.Data = hir.WhileData{Cond: cond, Body: body}
	case "for":
		varName, _ := node["var"].(string)
		iterable, err := d.decodeRequiredExpr(node, "iterable", what)
		if err != nil {
			return nil, err
		}
		body, err := d.decodeRequiredBlock(node, "body", what)
		if err != nil {
			return nil, err
		}
		stmt.Kind = hir.StmtFor
		stmt.Data = hir.ForData{VarName: varName, Iterable: iterable, Body: body}
	case "break":
		stmt.Kind = hir.StmtBreak
		stmt.Data = hir.BreakData{}
	case "continue":
		stmt.Kind = hir.StmtContinue
		stmt.Data = hir.ContinueData{}
	default:
		return nil, d.errf("unknown statement kind %q", kind)
	}
	return stmt, nil
}

func (d *decoder) decodeExpr(node map[string]any) (*hir.Expr, error) {
	kind, _ := node["kind"].(string)
	what := "expression " + kind
	span, err := d.span(node, what)
	if err != nil {
		return nil, err
	}
	attrs, err := d.decodeAttrs(node)
	if err != nil {
		return nil, err
	}

	expr := &hir.Expr{Span: span, Attrs: attrs}
	switch kind {
	case "literal":
		lit, err := d.decodeLiteral(node["lit"], what)
		if err != nil {
			return nil, err
		}
		expr.Kind = hir.ExprLiteral
		expr.Data = hir.LiteralData{Lit: lit}
	case "path":
		name, _ := node["name"].(string)
		expr.Kind = hir.ExprPath
		expr.Data = hir.PathData{Name: name}
	case "unary":
		op, _ := node["op"].(string)
		operand, err := d.decodeRequiredExpr(node, "operand", what)
		if err != nil {
			return nil, err
		}
		expr.Kind = hir.ExprUnary
		expr.Data = hir.UnaryData{Op: op, Operand: operand}
	case "binary":
		op, _ := node["op"].(string)
		left, err := d.decodeRequiredExpr(node, "left", what)
		if err != nil {
			return nil, err
		}
		right, err := d.decodeRequiredExpr(node, "right", what)
		if err != nil {
			return nil, err
		}
		expr.Kind = hir.ExprBinary
		expr.Data = hir.BinaryData{Op: op, Left: left, Right: right}
	case "call":
		callee, err := d.decodeRequiredExpr(node, "callee", what)
		if err != nil {
			return nil, err
		}
		args, err := d.decodeExprList(node, "args", what)
		if err != nil {
			return nil, err
		}
		expr.Kind = hir.ExprCall
		expr.Data = hir.CallData{Callee: callee, Args: args}
	case "field":
		recv, err := d.decodeRequiredExpr(node, "recv", what)
		if err != nil {
			return nil, err
		}
		field, _ := node["field"].(string)
		expr.Kind = hir.ExprField
		expr.Data = hir.FieldData{Recv: recv, Field: field}
	case "index":
		recv, err := d.decodeRequiredExpr(node, "recv", what)
		if err != nil {
			return nil, err
		}
		index, err := d.decodeRequiredExpr(node, "index", what)
		if err != nil {
			return nil, err
		}
		expr.Kind = hir.ExprIndex
		expr.Data = hir.IndexData{Recv: recv, Index: index}
	case "array":
		elems, err := d.decodeExprList(node, "elems", what)
		if err != nil {
			return nil, err
		}
		expr.Kind = hir.ExprArray
		expr.Data = hir.ArrayData{Elems: elems}
	case "if":
		cond, err := d.decodeRequiredExpr(node, "cond", what)
		if err != nil {
			return nil, err
		}
		then, err := d.decodeRequiredBlock(node, "then", what)
		if err != nil {
			return nil, err
		}
		var otherwise *hir.Block
		if raw, ok := node["else"].(map[string]any); ok {
			otherwise, err = d.decodeBlock(raw)
			if err != nil {
				return nil, err
			}
		}
		expr.Kind = hir.ExprIf
		expr.Data = hir.IfData{Cond: cond, Then: then, Else: otherwise}
	case "block":
		block, err := d.decodeRequiredBlock(node, "block", what)
		if err != nil {
			return nil, err
		}
		expr.Kind = hir.ExprBlock
		expr.Data = hir.BlockData{Block: block}
	case "closure":
		params, err := d.decodeParams(node)
		if err != nil {
			return nil, err
		}
		ret, _ := node["ret"].(string)
		var body *hir.Block
		if raw, ok := node["body"].(map[string]any); ok {
			body, err = d.decodeBlock(raw)
			if err != nil {
				return nil, err
			}
		}
		expr.Kind = hir.ExprClosure
		expr.Data = hir.ClosureData{Params: params, Ret: ret, Body: body}
	case "cast":
		operand, err := d.decodeRequiredExpr(node, "operand", what)
		if err != nil {
			return nil, err
		}
		typeName, _ := node["type"].(string)
		expr.Kind = hir.ExprCast
		expr.Data = hir.CastData{Operand: operand, TypeName: typeName}
	default:
		return nil, d.errf("unknown expression kind %q", kind)
	}
	return expr, nil
}

func (d *decoder) decodeOptionalExpr(node map[string]any, key string) (*hir.Expr, error) {
	raw, ok := node[key].(map[string]any)
	if !ok {
		return nil, nil
	}
	return d.decodeExpr(raw)
}

func (d *decoder) decodeRequiredExpr(node map[string]any, key, what string) (*hir.Expr, error) {
	raw, ok := node[key].(map[string]any)
	if !ok {
		return nil, d.errf("%s: missing %s", what, key)
	}
	return d.decodeExpr(raw)
}

func (d *decoder) decodeRequiredBlock(node map[string]any, key, what string) (*hir.Block, error) {
	raw, ok := node[key].(map[string]any)
	if !ok {
		return nil, d.errf("%s: missing %s", what, key)
	}
	return d.decodeBlock(raw)
}

func (d *decoder) decodeExprList(node map[string]any, key, what string) ([]*hir.Expr, error) {
	rawList, _ := node[key].([]any)
	if len(rawList) == 0 {
		return nil, nil
	}
	exprs := make([]*hir.Expr, 0, len(rawList))
	for _, raw := range rawList {
		enode, ok := raw.(map[string]any)
		if !ok {
			return nil, d.errf("%s: %s entry is not an object", what, key)
		}
		expr, err := d.decodeExpr(enode)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}
