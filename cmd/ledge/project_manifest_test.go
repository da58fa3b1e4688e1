package main

import (
	"os"
	"path/filepath"
	"testing"

	"ledge/internal/ast"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "ledge.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestFindLedgeTomlWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"demo\"\n")
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	path, ok, err := findLedgeToml(nested)
	if err != nil {
		t.Fatalf("findLedgeToml: %v", err)
	}
	if !ok || filepath.Dir(path) != root {
		t.Errorf("path = %q, ok = %v", path, ok)
	}
}

func TestFindLedgeTomlMissing(t *testing.T) {
	_, ok, err := findLedgeToml(t.TempDir())
	if err != nil {
		t.Fatalf("findLedgeToml: %v", err)
	}
	if ok {
		t.Error("no manifest expected in an empty tree")
	}
}

func TestLoadProjectConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `[package]
name = "demo"

[parser]
default_accessibility = "export"
suppress_deprecations = true
reserved = ["guard", "rule"]

[aliases]
L = "Data.List"
`)

	cfg, err := loadProjectConfig(path)
	if err != nil {
		t.Fatalf("loadProjectConfig: %v", err)
	}
	if cfg.Package.Name != "demo" {
		t.Errorf("name = %q", cfg.Package.Name)
	}
	if cfg.Aliases["L"] != "Data.List" {
		t.Errorf("aliases = %v", cfg.Aliases)
	}

	opts := (&projectManifest{Config: cfg}).sessionOptions()
	if opts.DefaultAcc != ast.AccFrozen {
		t.Errorf("default acc = %v", opts.DefaultAcc)
	}
	if !opts.SuppressDeprecations {
		t.Error("suppress_deprecations not carried over")
	}
	if len(opts.ExtraReserved) != 2 || opts.ExtraReserved[0] != "guard" {
		t.Errorf("reserved = %v", opts.ExtraReserved)
	}
}

func TestLoadProjectConfigValidation(t *testing.T) {
	dir := t.TempDir()

	path := writeManifest(t, dir, "[parser]\nreserved = []\n")
	if _, err := loadProjectConfig(path); err == nil {
		t.Error("missing [package] must fail")
	}

	path = writeManifest(t, dir, "[package]\nname = \"x\"\n\n[parser]\ndefault_accessibility = \"secret\"\n")
	if _, err := loadProjectConfig(path); err == nil {
		t.Error("bad accessibility must fail")
	}
}

func TestParseAccessibility(t *testing.T) {
	cases := []struct {
		in   string
		want ast.Accessibility
	}{
		{"", ast.AccPublic},
		{"public", ast.AccPublic},
		{"export", ast.AccFrozen},
		{"private", ast.AccPrivate},
	}
	for _, tc := range cases {
		got, err := parseAccessibility(tc.in)
		if err != nil || got != tc.want {
			t.Errorf("parseAccessibility(%q) = %v, %v", tc.in, got, err)
		}
	}
	if _, err := parseAccessibility("frozen"); err == nil {
		t.Error("unknown value must fail")
	}
}

func TestSessionOptionsForWithoutManifest(t *testing.T) {
	opts, err := sessionOptionsFor(t.TempDir())
	if err != nil {
		t.Fatalf("sessionOptionsFor: %v", err)
	}
	if opts.DefaultAcc != ast.AccPublic || len(opts.ExtraReserved) != 0 {
		t.Errorf("opts = %+v", opts)
	}
}
