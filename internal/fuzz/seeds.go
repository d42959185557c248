package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // ограничение для тестового корпуса
)

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	addBuiltinSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.hir.json файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, ".hir.json") {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

// addBuiltinSeeds закладывает минимальный корпус на случай пустого testdata:
// пустой вход, усечённый JSON и корректные дампы всех трёх форм атрибутов.
func addBuiltinSeeds(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte(`{"format": 1}`))
	f.Add([]byte(`{"format": `))
	seeds := []string{
		`{"format":1,"module":{"name":"m","path":"src/m.em"},"source":"@inline\nfn f() {}\n","items":[{"kind":"fn","name":"f","span":{"start":8,"end":17},"attrs":[{"name":"inline","span":{"start":0,"end":7}}]}]}`,
		`{"format":1,"module":{"name":"w","path":"src/w.em"},"source":"@wasm_import_module = \"env\"\nextern \"C\" {}\n","items":[{"kind":"foreign_mod","abi":"C","span":{"start":28,"end":41},"attrs":[{"name":"wasm_import_module","span":{"start":0,"end":27},"value":{"kind":"string","value":"env","span":{"start":22,"end":27}}}],"decls":[]}]}`,
		`{"format":1,"module":{"name":"e","path":"src/e.em"},"source":"@repr(u8)\nenum E { A }\n","items":[{"kind":"enum","name":"E","span":{"start":10,"end":22},"attrs":[{"name":"repr","span":{"start":0,"end":9},"items":[{"name":"u8","span":{"start":6,"end":8}}]}],"variants":[{"name":"A","span":{"start":19,"end":20}}]}]}`,
	}
	for _, dump := range seeds {
		f.Add([]byte(dump))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
