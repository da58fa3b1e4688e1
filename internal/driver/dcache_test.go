package driver

import (
	"crypto/sha256"
	"os"
	"path/filepath"
	"testing"

	"ledge/internal/source"
)

func testCache(t *testing.T) *DiskCache {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenDiskCache("ledge-test")
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}
	return cache
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache := testCache(t)
	key := sha256.Sum256([]byte("content"))

	payload := &DiskPayload{
		Schema:    diskCacheSchemaVersion,
		Path:      "mod.lg",
		DeclCount: 3,
		Diagnostics: []CachedDiagnostic{
			{
				Severity: 1,
				Code:     3001,
				Message:  "deprecated modifier",
				Span: source.Span{
					File:  "mod.lg",
					Start: source.LineCol{Line: 1, Col: 1},
					End:   source.LineCol{Line: 1, Col: 7},
				},
			},
		},
	}
	if err := cache.Put(key, payload); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var out DiskPayload
	hit, err := cache.Get(key, &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !hit {
		t.Fatal("stored payload must be found")
	}
	if out.Path != "mod.lg" || out.DeclCount != 3 {
		t.Errorf("payload = %+v", out)
	}
	if len(out.Diagnostics) != 1 || out.Diagnostics[0].Span.End.Col != 7 {
		t.Errorf("diagnostics = %+v", out.Diagnostics)
	}
}

func TestDiskCacheMiss(t *testing.T) {
	cache := testCache(t)
	var out DiskPayload
	hit, err := cache.Get(sha256.Sum256([]byte("absent")), &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if hit {
		t.Fatal("unexpected hit")
	}
}

func TestDiskCacheSchemaMismatch(t *testing.T) {
	cache := testCache(t)
	key := sha256.Sum256([]byte("old"))
	if err := cache.Put(key, &DiskPayload{Schema: diskCacheSchemaVersion + 1}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var out DiskPayload
	hit, err := cache.Get(key, &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if hit {
		t.Fatal("a payload from another schema version is a miss")
	}
}

func TestDiskCacheNilIsNoop(t *testing.T) {
	var cache *DiskCache
	key := sha256.Sum256([]byte("x"))
	if err := cache.Put(key, &DiskPayload{Schema: diskCacheSchemaVersion}); err != nil {
		t.Errorf("Put on nil cache: %v", err)
	}
	var out DiskPayload
	if hit, err := cache.Get(key, &out); hit || err != nil {
		t.Errorf("Get on nil cache: %v %v", hit, err)
	}
	if err := cache.DropAll(); err != nil {
		t.Errorf("DropAll on nil cache: %v", err)
	}
}

func TestDiskCacheDropAll(t *testing.T) {
	cache := testCache(t)
	key := sha256.Sum256([]byte("y"))
	if err := cache.Put(key, &DiskPayload{Schema: diskCacheSchemaVersion}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}

	var out DiskPayload
	hit, err := cache.Get(key, &out)
	if hit {
		t.Fatal("DropAll must discard stored payloads")
	}
	if err != nil {
		t.Fatalf("Get after DropAll: %v", err)
	}
	// The cache directory itself may be gone; a later Put recreates it.
	if err := cache.Put(key, &DiskPayload{Schema: diskCacheSchemaVersion}); err != nil {
		t.Fatalf("Put after DropAll: %v", err)
	}
	if _, err := os.Stat(filepath.Dir(cache.pathFor(key))); err != nil {
		t.Fatalf("cache dir not recreated: %v", err)
	}
}
