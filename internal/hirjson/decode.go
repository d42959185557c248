// Package hirjson decodes HIR dumps produced by the upstream ember front
// end.
//
// Дамп - это JSON-файл *.hir.json: заголовок модуля, встроенный текст
// исходника и дерево элементов. Все span-поля в дампе - байтовые смещения
// внутри встроенного текста; при декодировании они получают FileID, под
// которым текст регистрируется в FileSet. Сам файл дампа пакет не
// регистрирует: это делает вызывающая сторона, когда ей нужно показать
// ошибку декодирования.
package hirjson

import (
	"encoding/json"
	"errors"
	"fmt"

	"fortio.org/safecast"

	"ember/internal/hir"
	"ember/internal/source"
)

// Format is the dump schema version this package understands.
const Format = 1

// DecodeError describes a dump that could not be decoded.
type DecodeError struct {
	Path   string
	Offset int64 // byte offset in the dump when known, otherwise 0
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("%s: offset %d: %v", e.Path, e.Offset, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Decode parses dump bytes, registers the embedded source in the FileSet
// and returns the module together with the FileID of that source.
func Decode(fileSet *source.FileSet, path string, data []byte) (*hir.Module, source.FileID, error) {
	var root map[string]any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, 0, &DecodeError{Path: path, Offset: jsonErrorOffset(err), Err: err}
	}

	d := decoder{path: path}

	format, ok := root["format"].(float64)
	if !ok || int(format) != Format {
		return nil, 0, d.errf("unsupported dump format %v, want %d", root["format"], Format)
	}
	modNode, ok := root["module"].(map[string]any)
	if !ok {
		return nil, 0, d.errf("missing module header")
	}
	srcPath, ok := modNode["path"].(string)
	if !ok || srcPath == "" {
		return nil, 0, d.errf("module header lacks a source path")
	}
	src, ok := root["source"].(string)
	if !ok {
		return nil, 0, d.errf("missing embedded source")
	}
	name, _ := modNode["name"].(string)

	d.file = fileSet.AddVirtual(srcPath, []byte(src))

	rawItems, _ := root["items"].([]any)
	items := make([]*hir.Item, 0, len(rawItems))
	for i, raw := range rawItems {
		node, ok := raw.(map[string]any)
		if !ok {
			return nil, 0, d.errf("item %d is not an object", i)
		}
		item, err := d.decodeItem(node)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}

	return &hir.Module{Name: name, Path: srcPath, Items: items}, d.file, nil
}

type decoder struct {
	path string
	file source.FileID
}

func (d *decoder) errf(format string, args ...any) error {
	return &DecodeError{Path: d.path, Err: fmt.Errorf(format, args...)}
}

// span reads the "span" object of a node. Смещения проверяются на
// переполнение uint32 и на инверсию, но не на выход за конец исходника.
func (d *decoder) span(node map[string]any, what string) (source.Span, error) {
	raw, ok := node["span"].(map[string]any)
	if !ok {
		return source.Span{}, d.errf("%s: missing span", what)
	}
	start, err := d.offset(raw, "start", what)
	if err != nil {
		return source.Span{}, err
	}
	end, err := d.offset(raw, "end", what)
	if err != nil {
		return source.Span{}, err
	}
	if end < start {
		return source.Span{}, d.errf("%s: inverted span %d-%d", what, start, end)
	}
	return source.Span{File: d.file, Start: start, End: end}, nil
}

func (d *decoder) offset(node map[string]any, key, what string) (uint32, error) {
	f, ok := node[key].(float64)
	if !ok {
		return 0, d.errf("%s: span %s is not a number", what, key)
	}
	v, err := safecast.Convert[uint32](f)
	if err != nil {
		return 0, d.errf("%s: span %s: %v", what, key, err)
	}
	return v, nil
}

func jsonErrorOffset(err error) int64 {
	var syn *json.SyntaxError
	if errors.As(err, &syn) {
		return syn.Offset
	}
	var typ *json.UnmarshalTypeError
	if errors.As(err, &typ) {
		return typ.Offset
	}
	return 0
}
