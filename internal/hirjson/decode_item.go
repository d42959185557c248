package hirjson

import (
	"strconv"

	"fortio.org/safecast"

	"ember/internal/hir"
)

func (d *decoder) decodeItem(node map[string]any) (*hir.Item, error) {
	kind, _ := node["kind"].(string)
	name, _ := node["name"].(string)
	what := "item " + strconv.Quote(name)
	span, err := d.span(node, what)
	if err != nil {
		return nil, err
	}
	attrs, err := d.decodeAttrs(node)
	if err != nil {
		return nil, err
	}

	item := &hir.Item{Name: name, Span: span, Attrs: attrs}
	switch kind {
	case "fn":
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
		item.Kind = hir.ItemFn
		item.Data = hir.FnDecl{Params: params, Ret: ret, Body: body}
	case "struct":
		fields, err := d.decodeFields(node)
		if err != nil {
			return nil, err
		}
		item.Kind = hir.ItemStruct
		item.Data = hir.StructDecl{Fields: fields}
	case "union":
		fields, err := d.decodeFields(node)
		if err != nil {
			return nil, err
		}
		item.Kind = hir.ItemUnion
		item.Data = hir.UnionDecl{Fields: fields}
	case "enum":
		variants, err := d.decodeVariants(node)
		if err != nil {
			return nil, err
		}
		item.Kind = hir.ItemEnum
		item.Data = hir.EnumDecl{Variants: variants}
	case "const":
		typeName, _ := node["type"].(string)
		value, err := d.decodeOptionalExpr(node, "value")
		if err != nil {
			return nil, err
		}
		item.Kind = hir.ItemConst
		item.Data = hir.ConstDecl{TypeName: typeName, Value: value}
	case "static":
		typeName, _ := node["type"].(string)
		mut, _ := node["mut"].(bool)
		value, err := d.decodeOptionalExpr(node, "value")
		if err != nil {
			return nil, err
		}
		item.Kind = hir.ItemStatic
		item.Data = hir.StaticDecl{TypeName: typeName, Mut: mut, Value: value}
	case "foreign_mod":
		abi, _ := node["abi"].(string)
		decls, err := d.decodeForeignDecls(node)
		if err != nil {
			return nil, err
		}
		item.Kind = hir.ItemForeignMod
		item.Data = hir.ForeignModDecl{ABI: abi, Decls: decls}
	case "type_alias":
		aliased, _ := node["aliased"].(string)
		item.Kind = hir.ItemTypeAlias
		item.Data = hir.TypeAliasDecl{Aliased: aliased}
	case "use":
		path, _ := node["path"].(string)
		item.Kind = hir.ItemUse
		item.Data = hir.UseDecl{Path: path}
	default:
		return nil, d.errf("%s: unknown kind %q", what, kind)
	}
	return item, nil
}

func (d *decoder) decodeParams(node map[string]any) ([]hir.Param, error) {
	rawList, _ := node["params"].([]any)
	if len(rawList) == 0 {
		return nil, nil
	}
	params := make([]hir.Param, 0, len(rawList))
	for _, raw := range rawList {
		pnode, ok := raw.(map[string]any)
		if !ok {
			return nil, d.errf("param entry is not an object")
		}
		span, err := d.span(pnode, "param")
		if err != nil {
			return nil, err
		}
		name, _ := pnode["name"].(string)
		typeName, _ := pnode["type"].(string)
		params = append(params, hir.Param{Name: name, TypeName: typeName, Span: span})
	}
	return params, nil
}

func (d *decoder) decodeFields(node map[string]any) ([]hir.Field, error) {
	rawList, _ := node["fields"].([]any)
	if len(rawList) == 0 {
		return nil, nil
	}
	fields := make([]hir.Field, 0, len(rawList))
	for _, raw := range rawList {
		fnode, ok := raw.(map[string]any)
		if !ok {
			return nil, d.errf("field entry is not an object")
		}
		span, err := d.span(fnode, "field")
		if err != nil {
			return nil, err
		}
		name, _ := fnode["name"].(string)
		typeName, _ := fnode["type"].(string)
		fields = append(fields, hir.Field{Name: name, TypeName: typeName, Span: span})
	}
	return fields, nil
}

func (d *decoder) decodeVariants(node map[string]any) ([]hir.Variant, error) {
	rawList, _ := node["variants"].([]any)
	if len(rawList) == 0 {
		return nil, nil
	}
	variants := make([]hir.Variant, 0, len(rawList))
	for _, raw := range rawList {
		vnode, ok := raw.(map[string]any)
		if !ok {
			return nil, d.errf("variant entry is not an object")
		}
		name, _ := vnode["name"].(string)
		what := "variant " + strconv.Quote(name)
		span, err := d.span(vnode, what)
		if err != nil {
			return nil, err
		}
		form, err := d.variantForm(vnode, what)
		if err != nil {
			return nil, err
		}
		fields, err := d.decodeFields(vnode)
		if err != nil {
			return nil, err
		}
		discr, err := d.decodeOptionalExpr(vnode, "discr")
		if err != nil {
			return nil, err
		}
		variants = append(variants, hir.Variant{
			Name:   name,
			Form:   form,
			Fields: fields,
			Discr:  discr,
			Span:   span,
		})
	}
	return variants, nil
}

// variantForm reads the "form" field. Вариант без формы считается unit.
func (d *decoder) variantForm(node map[string]any, what string) (hir.VariantForm, error) {
	raw, ok := node["form"]
	if !ok {
		return hir.VariantUnit, nil
	}
	form, _ := raw.(string)
	switch form {
	case "unit":
		return hir.VariantUnit, nil
	case "tuple":
		return hir.VariantTuple, nil
	case "struct":
		return hir.VariantStruct, nil
	}
	return 0, d.errf("%s: unknown form %q", what, form)
}

func (d *decoder) decodeForeignDecls(node map[string]any) ([]hir.ForeignDecl, error) {
	rawList, _ := node["decls"].([]any)
	if len(rawList) == 0 {
		return nil, nil
	}
	decls := make([]hir.ForeignDecl, 0, len(rawList))
	for _, raw := range rawList {
		dnode, ok := raw.(map[string]any)
		if !ok {
			return nil, d.errf("foreign decl entry is not an object")
		}
		name, _ := dnode["name"].(string)
		what := "foreign decl " + strconv.Quote(name)
		span, err := d.span(dnode, what)
		if err != nil {
			return nil, err
		}
		var kind hir.ForeignDeclKind
		switch k, _ := dnode["kind"].(string); k {
		case "fn":
			kind = hir.ForeignFn
		case "static":
			kind = hir.ForeignStatic
		default:
			return nil, d.errf("%s: unknown kind %q", what, dnode["kind"])
		}
		decls = append(decls, hir.ForeignDecl{Kind: kind, Name: name, Span: span})
	}
	return decls, nil
}

func (d *decoder) decodeAttrs(node map[string]any) ([]hir.Attr, error) {
	rawList, _ := node["attrs"].([]any)
	if len(rawList) == 0 {
		return nil, nil
	}
	attrs := make([]hir.Attr, 0, len(rawList))
	for _, raw := range rawList {
		anode, ok := raw.(map[string]any)
		if !ok {
			return nil, d.errf("attribute entry is not an object")
		}
		attr, err := d.decodeAttr(anode)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, attr)
	}
	return attrs, nil
}

// decodeAttr infers the attribute form from the fields present: "value"
// makes it @name = lit, "items" makes it @name(...), otherwise bare @name.
// Пустой список items - это всё ещё форма списка, не голое слово.
func (d *decoder) decodeAttr(node map[string]any) (hir.Attr, error) {
	name, ok := node["name"].(string)
	if !ok || name == "" {
		return hir.Attr{}, d.errf("attribute without a name")
	}
	what := "attribute @" + name
	span, err := d.span(node, what)
	if err != nil {
		return hir.Attr{}, err
	}

	rawValue, hasValue := node["value"]
	rawItems, hasItems := node["items"]
	if hasValue && hasItems {
		return hir.Attr{}, d.errf("%s carries both value and items", what)
	}

	attr := hir.Attr{Name: name, Kind: hir.AttrWord, Span: span}
	switch {
	case hasValue:
		lit, err := d.decodeLiteral(rawValue, what)
		if err != nil {
			return hir.Attr{}, err
		}
		attr.Kind = hir.AttrNameValue
		attr.Value = &lit
	case hasItems:
		items, err := d.decodeMetaItems(rawItems, what)
		if err != nil {
			return hir.Attr{}, err
		}
		attr.Kind = hir.AttrList
		attr.Items = items
	}
	return attr, nil
}

func (d *decoder) decodeMetaItems(raw any, what string) ([]hir.MetaItem, error) {
	rawList, ok := raw.([]any)
	if !ok {
		return nil, d.errf("%s: items is not a list", what)
	}
	items := make([]hir.MetaItem, 0, len(rawList))
	for _, rawItem := range rawList {
		node, ok := rawItem.(map[string]any)
		if !ok {
			return nil, d.errf("%s: item entry is not an object", what)
		}
		item, err := d.decodeMetaItem(node, what)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (d *decoder) decodeMetaItem(node map[string]any, what string) (hir.MetaItem, error) {
	span, err := d.span(node, what+" item")
	if err != nil {
		return hir.MetaItem{}, err
	}
	name, _ := node["name"].(string)
	rawValue, hasValue := node["value"]
	rawItems, hasItems := node["items"]

	switch {
	case hasValue && hasItems:
		return hir.MetaItem{}, d.errf("%s: item %q carries both value and items", what, name)
	case name == "" && hasValue:
		// Безымянный литерал вида @repr(42).
		lit, err := d.decodeLiteral(rawValue, what)
		if err != nil {
			return hir.MetaItem{}, err
		}
		return hir.MetaItem{Kind: hir.MetaLit, Value: &lit, Span: span}, nil
	case name == "":
		return hir.MetaItem{}, d.errf("%s: item without name or value", what)
	case hasValue:
		lit, err := d.decodeLiteral(rawValue, what)
		if err != nil {
			return hir.MetaItem{}, err
		}
		return hir.MetaItem{Kind: hir.MetaNameValue, Name: name, Value: &lit, Span: span}, nil
	case hasItems:
		items, err := d.decodeMetaItems(rawItems, what+" "+name)
		if err != nil {
			return hir.MetaItem{}, err
		}
		return hir.MetaItem{Kind: hir.MetaList, Name: name, Items: items, Span: span}, nil
	default:
		return hir.MetaItem{Kind: hir.MetaWord, Name: name, Span: span}, nil
	}
}

func (d *decoder) decodeLiteral(raw any, what string) (hir.Literal, error) {
	node, ok := raw.(map[string]any)
	if !ok {
		return hir.Literal{}, d.errf("%s: literal is not an object", what)
	}
	span, err := d.span(node, what+" literal")
	if err != nil {
		return hir.Literal{}, err
	}
	kind, _ := node["kind"].(string)
	switch kind {
	case "string":
		s, ok := node["value"].(string)
		if !ok {
			return hir.Literal{}, d.errf("%s: string literal without string value", what)
		}
		return hir.Literal{Kind: hir.LitString, Str: s, Span: span}, nil
	case "int":
		f, ok := node["value"].(float64)
		if !ok {
			return hir.Literal{}, d.errf("%s: int literal without numeric value", what)
		}
		v, err := safecast.Convert[int64](f)
		if err != nil {
			return hir.Literal{}, d.errf("%s: int literal: %v", what, err)
		}
		return hir.Literal{Kind: hir.LitInt, Int: v, Str: strconv.FormatInt(v, 10), Span: span}, nil
	case "bool":
		b, ok := node["value"].(bool)
		if !ok {
			return hir.Literal{}, d.errf("%s: bool literal without bool value", what)
		}
		return hir.Literal{Kind: hir.LitBool, Bool: b, Str: strconv.FormatBool(b), Span: span}, nil
	case "float":
		f, ok := node["value"].(float64)
		if !ok {
			return hir.Literal{}, d.errf("%s: float literal without numeric value", what)
		}
		return hir.Literal{Kind: hir.LitFloat, Float: f, Str: strconv.FormatFloat(f, 'g', -1, 64), Span: span}, nil
	}
	return hir.Literal{}, d.errf("%s: unknown literal kind %q", what, kind)
}
