package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"ember/internal/diag"
	"ember/internal/project"
	"ember/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит результаты проверки дампов на диске между запусками.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload stores one checked dump: the embedded source needed to rebuild
// the FileSet and the raw diagnostics the pass produced.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	// Заголовок дампа
	ModName string
	SrcPath string

	// Встроенный исходник: спаны диагностик — байтовые смещения в нём.
	Source []byte

	// Status
	Broken bool

	// Диагностики в порядке эмиссии, до фильтров и таймингов
	Diags []diag.Diagnostic
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// OpenDiskCacheAt returns a disk cache rooted at an explicit directory.
// Тесты и --cache-dir пользуются этим вместо XDG-пути.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Для удобства читаемости/очистки — подкаталог "dumps".
	return filepath.Join(c.dir, "dumps", hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) error {
	if c == nil || payload == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	// Атомарная замена
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// Get reads and deserializes a payload from the disk cache.
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	p := c.pathFor(key)
	f, err := os.Open(p) // #nosec G304 -- путь собран из hex-дайджеста
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		_ = f.Close()
	}()
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, err
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим целиком
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

// cacheKey смешивает дайджест байтов дампа с дайджестом конфигурации:
// смена target или правил прохода инвалидирует запись.
func cacheKey(data []byte, opts Options) project.Digest {
	desc := fmt.Sprintf("triple=%s;require_wasm_import_module=%t;max=%d",
		opts.targetSpec().Triple,
		opts.Config.RequireWasmImportModule,
		opts.maxDiagnostics())
	return project.Combine(project.DigestOf(data), project.DigestOf([]byte(desc)))
}

// payloadForResult converts a fresh check result to a DiskPayload.
func payloadForResult(res *Result) *DiskPayload {
	if res == nil || res.Module == nil {
		return nil
	}
	file, ok := res.FileSet.GetByPath(res.Module.Path)
	if !ok {
		return nil
	}

	items := res.Bag.Items()
	diags := make([]diag.Diagnostic, len(items))
	copy(diags, items)

	return &DiskPayload{
		Schema:  diskCacheSchemaVersion,
		ModName: res.Module.Name,
		SrcPath: res.Module.Path,
		Source:  file.Content,
		Broken:  res.Bag.HasErrors(),
		Diags:   diags,
	}
}

// lookupCached restores a Result from the disk cache. Возвращает nil при
// промахе, ошибке чтения или несовпадении схемы: всё это эквивалент miss.
func lookupCached(cache *DiskCache, key project.Digest, path string, maxDiag int) *Result {
	var payload DiskPayload
	hit, err := cache.Get(key, &payload)
	if err != nil || !hit {
		return nil
	}
	if payload.Schema != diskCacheSchemaVersion {
		return nil
	}

	// Свежий FileSet с тем же порядком регистрации воспроизводит FileID,
	// под которыми были выданы кэшированные спаны.
	fileSet := source.NewFileSet()
	fileSet.AddVirtual(payload.SrcPath, payload.Source)

	bag := diag.NewBag(maxDiag)
	for _, d := range payload.Diags {
		bag.Add(d)
	}

	return &Result{
		Path:      path,
		FileSet:   fileSet,
		Bag:       bag,
		FromCache: true,
	}
}
