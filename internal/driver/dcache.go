package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"ledge/internal/diag"
	"ledge/internal/source"
)

// diskCacheSchemaVersion invalidates stored payloads when the format
// changes. Increment on any DiskPayload change.
const diskCacheSchemaVersion uint16 = 1

// Digest keys the cache by source content hash.
type Digest = [32]byte

// DiskCache stores per-file parse artifacts keyed by content digest.
// A nil *DiskCache is a valid no-op cache. Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedDiagnostic is the flattened form of a diagnostic stored on disk.
type CachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Span     source.Span
}

// DiskPayload holds everything a diagnostics-only run needs, so clean
// reruns skip reparsing unchanged files.
type DiskPayload struct {
	Schema      uint16
	Path        string
	DeclCount   int
	Diagnostics []CachedDiagnostic
}

// Valid reports whether the payload matches the current schema.
func (p *DiskPayload) Valid() bool {
	return p != nil && p.Schema == diskCacheSchemaVersion
}

// OpenDiskCache initializes a disk cache at the standard XDG location.
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

func (c *DiskCache) pathFor(key Digest) string {
	// A "parse" subdirectory keeps the cache easy to inspect and clear.
	return filepath.Join(c.dir, "parse", hex.EncodeToString(key[:])+".mp")
}

// Put serializes a payload and installs it with an atomic rename.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) error {
	if c == nil {
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
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a payload. The first result is false on a miss or when the
// stored payload predates the current schema.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return out.Valid(), nil
}

// DropAll invalidates the whole cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

// cacheDiagnostics flattens a bag for storage.
func cacheDiagnostics(bag *diag.Bag) []CachedDiagnostic {
	items := bag.Items()
	out := make([]CachedDiagnostic, 0, len(items))
	for _, d := range items {
		out = append(out, CachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Span:     d.Primary,
		})
	}
	return out
}

// restoreDiagnostics refills a bag from a stored payload.
func restoreDiagnostics(bag *diag.Bag, cached []CachedDiagnostic) {
	for _, d := range cached {
		bag.Add(diag.Diagnostic{
			Severity: diag.Severity(d.Severity),
			Code:     diag.Code(d.Code),
			Message:  d.Message,
			Primary:  d.Span,
		})
	}
}
