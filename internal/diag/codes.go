package diag

import (
	"fmt"
	"sort"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Семантические: валидация атрибутов
	SemaInfo                    Code = 3000
	SemaAttrInlineTarget        Code = 3001
	SemaAttrNonExhaustiveTarget Code = 3002
	SemaAttrNonExhaustiveShape  Code = 3003
	SemaAttrWasmImportForm      Code = 3004
	SemaAttrWasmImportTarget    Code = 3005
	SemaAttrWasmImportMissing   Code = 3006
	SemaAttrWasmSectionTarget   Code = 3007
	SemaAttrUsedTarget          Code = 3008
	SemaAttrTargetFeatureTarget Code = 3009
	SemaAttrReprTarget          Code = 3010
	SemaAttrReprTransparent     Code = 3011
	SemaAttrReprConflict        Code = 3012

	// Ошибки I/O
	IOLoadFileError Code = 4001
	IOBadDump       Code = 4002

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var ( // todo расширить описания и использовать как notes
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		SemaInfo:                    "Semantic information",
		SemaAttrInlineTarget:        "@inline must target a function or closure",
		SemaAttrNonExhaustiveTarget: "@non_exhaustive must target a struct or enum",
		SemaAttrNonExhaustiveShape:  "@non_exhaustive takes no arguments",
		SemaAttrWasmImportForm:      "@wasm_import_module requires a string value",
		SemaAttrWasmImportTarget:    "@wasm_import_module must target a foreign module",
		SemaAttrWasmImportMissing:   "foreign module lacks @wasm_import_module",
		SemaAttrWasmSectionTarget:   "@wasm_custom_section must target a const",
		SemaAttrUsedTarget:          "@used must target a static",
		SemaAttrTargetFeatureTarget: "@target_feature must target a function",
		SemaAttrReprTarget:          "repr hint not applicable to its target",
		SemaAttrReprTransparent:     "transparent cannot mix with other repr hints",
		SemaAttrReprConflict:        "conflicting representation hints",
		IOLoadFileError:             "I/O load file error",
		IOBadDump:                   "Malformed HIR dump",
		ObsInfo:                     "Observability information",
		ObsTimings:                  "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// AllCodes возвращает все зарегистрированные коды по возрастанию.
func AllCodes() []Code {
	out := make([]Code, 0, len(codeDescription))
	for c := range codeDescription {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
