package driver

import (
	"reflect"
	"testing"

	"ember/internal/diag"
	"ember/internal/project"
	"ember/internal/source"
	"ember/internal/target"
)

func samplePayload() *DiskPayload {
	return &DiskPayload{
		Schema:  diskCacheSchemaVersion,
		ModName: "demo",
		SrcPath: "src/demo.em",
		Source:  []byte("@inline\nstruct Point { x: i32 }\n"),
		Broken:  true,
		Diags: []diag.Diagnostic{
			{
				Severity: diag.SevError,
				Code:     diag.SemaAttrInlineTarget,
				Message:  "attribute should be applied to function or closure",
				Primary:  source.Span{File: 0, Start: 0, End: 7},
				Notes: []diag.Note{
					{Span: source.Span{File: 0, Start: 8, End: 31}, Msg: "not a function or closure"},
				},
				Fixes: []diag.Fix{
					{
						Title: "remove the attribute",
						Edits: []diag.FixEdit{{Span: source.Span{File: 0, Start: 0, End: 7}, NewText: ""}},
					},
				},
			},
		},
	}
}

func TestDiskCachePutGet(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	key := project.DigestOf([]byte("dump-bytes"))
	want := samplePayload()

	if err := cache.Put(key, want); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var got DiskPayload
	hit, err := cache.Get(key, &got)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !hit {
		t.Fatal("expected a cache hit")
	}
	if !reflect.DeepEqual(&got, want) {
		t.Errorf("payload mismatch:\ngot:  %+v\nwant: %+v", &got, want)
	}
}

func TestDiskCacheMiss(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}

	var out DiskPayload
	hit, err := cache.Get(project.DigestOf([]byte("never stored")), &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if hit {
		t.Fatal("expected a miss")
	}
}

func TestDiskCacheNilReceiver(t *testing.T) {
	var cache *DiskCache

	if err := cache.Put(project.Digest{}, samplePayload()); err != nil {
		t.Errorf("nil Put: %v", err)
	}
	var out DiskPayload
	hit, err := cache.Get(project.Digest{}, &out)
	if err != nil || hit {
		t.Errorf("nil Get = (%v, %v)", hit, err)
	}
	if err := cache.DropAll(); err != nil {
		t.Errorf("nil DropAll: %v", err)
	}
}

func TestDiskCacheDropAll(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	key := project.DigestOf([]byte("dump"))
	if err := cache.Put(key, samplePayload()); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}

	var out DiskPayload
	hit, err := cache.Get(key, &out)
	if hit {
		t.Error("expected a miss after DropAll")
	}
	if err != nil {
		t.Errorf("Get after DropAll: %v", err)
	}
}

func TestLookupCachedRejectsOtherSchema(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	key := project.DigestOf([]byte("dump"))

	stale := samplePayload()
	stale.Schema = diskCacheSchemaVersion + 1
	if err := cache.Put(key, stale); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if res := lookupCached(cache, key, "dump.hir.json", 16); res != nil {
		t.Error("payload with a foreign schema must read as a miss")
	}
}

func TestCacheKeyVariesWithInput(t *testing.T) {
	data := []byte("dump bytes")
	base := cacheKey(data, Options{})

	if cacheKey([]byte("other bytes"), Options{}) == base {
		t.Error("different dump bytes must change the key")
	}
	if cacheKey(data, Options{MaxDiagnostics: 7}) == base {
		t.Error("different diagnostics limit must change the key")
	}
	if cacheKey(data, Options{Target: target.Wasm32Unknown()}) == base {
		t.Error("different target must change the key")
	}
}
