package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"ledge/internal/diag"
)

func TestListSourceFiles(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "b.lg", "x : Nat\n")
	writeSource(t, dir, "a.lg", "y : Nat\n")
	writeSource(t, dir, "notes.txt", "ignored")
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writeSource(t, sub, "c.lg", "z : Nat\n")

	files, err := ListSourceFiles(dir)
	if err != nil {
		t.Fatalf("ListSourceFiles: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("files = %v", files)
	}
	if filepath.Base(files[0]) != "a.lg" || filepath.Base(files[1]) != "b.lg" {
		t.Errorf("not sorted: %v", files)
	}
}

func TestTokenizeDir(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.lg", "f : Nat\n")
	writeSource(t, dir, "b.lg", "g = \x01\n")

	fs, results, err := TokenizeDir(context.Background(), dir, DirOptions{Jobs: 2})
	if err != nil {
		t.Fatalf("TokenizeDir: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d", len(results))
	}
	if results[0].Path != filepath.Join(dir, "a.lg") {
		t.Errorf("results out of order: %+v", results)
	}
	if len(results[0].Tokens) == 0 || results[0].Bag.HasErrors() {
		t.Errorf("a.lg = %+v", results[0])
	}
	if !results[1].Bag.HasErrors() {
		t.Errorf("b.lg must report its invalid token")
	}
	if _, ok := fs.GetByPath(results[0].Path); !ok {
		t.Error("files must be registered in the shared FileSet")
	}
}

func TestParseDir(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.lg", "f : Nat\nf = one\n")
	writeSource(t, dir, "b.lg", ") broken\n")

	_, results, err := ParseDir(context.Background(), dir, DirOptions{})
	if err != nil {
		t.Fatalf("ParseDir: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d", len(results))
	}
	if len(results[0].Decls) != 2 || results[0].Bag.HasErrors() {
		t.Errorf("a.lg = %+v", results[0])
	}
	if !results[1].Bag.HasErrors() {
		t.Error("b.lg must fail to parse")
	}
	if results[0].Session == nil {
		t.Error("uncached results carry their session")
	}
}

func TestParseDirEmptyDirectory(t *testing.T) {
	fs, results, err := ParseDir(context.Background(), t.TempDir(), DirOptions{})
	if err != nil {
		t.Fatalf("ParseDir: %v", err)
	}
	if fs == nil || results != nil {
		t.Errorf("fs = %v, results = %v", fs, results)
	}
}

func TestParseDirEvents(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.lg", "f : Nat\n")

	events := make(chan Event, 8)
	_, _, err := ParseDir(context.Background(), dir, DirOptions{Events: events})
	if err != nil {
		t.Fatalf("ParseDir: %v", err)
	}
	close(events)

	var got []Event
	for ev := range events {
		got = append(got, ev)
	}
	if len(got) != 2 {
		t.Fatalf("events = %+v", got)
	}
	if got[0].Status != StatusWorking || got[1].Status != StatusDone {
		t.Errorf("events = %+v", got)
	}
	if got[0].Stage != StageParse {
		t.Errorf("stage = %v", got[0].Stage)
	}
}

func TestParseDirCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenDiskCache("ledge-test")
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}

	dir := t.TempDir()
	writeSource(t, dir, "a.lg", "public\nf : Nat\n")

	_, first, err := ParseDir(context.Background(), dir, DirOptions{Cache: cache})
	if err != nil {
		t.Fatalf("first ParseDir: %v", err)
	}
	if first[0].Cached {
		t.Fatal("first run must parse for real")
	}
	if !first[0].Bag.HasWarnings() {
		t.Fatalf("bag = %+v", first[0].Bag.Items())
	}

	_, second, err := ParseDir(context.Background(), dir, DirOptions{Cache: cache})
	if err != nil {
		t.Fatalf("second ParseDir: %v", err)
	}
	if !second[0].Cached {
		t.Fatal("unchanged file must be served from the cache")
	}
	if second[0].Decls != nil {
		t.Error("cached results carry no declarations")
	}
	if second[0].Bag.Len() != first[0].Bag.Len() {
		t.Errorf("cached diagnostics differ: %d vs %d", second[0].Bag.Len(), first[0].Bag.Len())
	}
	if got := second[0].Bag.Items()[0].Code; got != diag.AccDeprecatedPublic {
		t.Errorf("restored code = %v", got)
	}

	// Changing the content invalidates the entry.
	writeSource(t, dir, "a.lg", "f : Nat\n")
	_, third, err := ParseDir(context.Background(), dir, DirOptions{Cache: cache})
	if err != nil {
		t.Fatalf("third ParseDir: %v", err)
	}
	if third[0].Cached {
		t.Fatal("changed content must reparse")
	}
	if third[0].Bag.Len() != 0 {
		t.Errorf("bag = %+v", third[0].Bag.Items())
	}
}

func TestParseDirCanceledContext(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.lg", "f : Nat\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := ParseDir(ctx, dir, DirOptions{})
	if err == nil {
		t.Fatal("canceled context must surface as an error")
	}
}
