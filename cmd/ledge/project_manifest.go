package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"ledge/internal/ast"
	"ledge/internal/parser"
)

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Package packageConfig     `toml:"package"`
	Parser  parserConfig      `toml:"parser"`
	Aliases map[string]string `toml:"aliases"`
}

type packageConfig struct {
	Name string `toml:"name"`
}

type parserConfig struct {
	DefaultAccessibility string   `toml:"default_accessibility"`
	SuppressDeprecations bool     `toml:"suppress_deprecations"`
	Reserved             []string `toml:"reserved"`
}

// findLedgeToml walks up from startDir looking for a ledge.toml.
func findLedgeToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "ledge.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findLedgeToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProjectConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return projectConfig{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return projectConfig{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if _, err := parseAccessibility(cfg.Parser.DefaultAccessibility); err != nil {
		return projectConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func parseAccessibility(value string) (ast.Accessibility, error) {
	switch strings.TrimSpace(value) {
	case "", "public":
		return ast.AccPublic, nil
	case "export":
		return ast.AccFrozen, nil
	case "private":
		return ast.AccPrivate, nil
	default:
		return 0, fmt.Errorf("invalid [parser].default_accessibility %q (expected public|export|private)", value)
	}
}

// sessionOptions translates the manifest into parser session settings.
func (m *projectManifest) sessionOptions() parser.SessionOptions {
	if m == nil {
		return parser.SessionOptions{}
	}
	acc, _ := parseAccessibility(m.Config.Parser.DefaultAccessibility)
	return parser.SessionOptions{
		ExtraReserved:        m.Config.Parser.Reserved,
		Aliases:              m.Config.Aliases,
		DefaultAcc:           acc,
		SuppressDeprecations: m.Config.Parser.SuppressDeprecations,
	}
}

// sessionOptionsFor resolves the session settings that govern a path,
// from the nearest manifest above it. No manifest means defaults.
func sessionOptionsFor(path string) (parser.SessionOptions, error) {
	dir := path
	if st, err := os.Stat(path); err == nil && !st.IsDir() {
		dir = filepath.Dir(path)
	}
	manifest, ok, err := loadProjectManifest(dir)
	if err != nil {
		return parser.SessionOptions{}, err
	}
	if !ok {
		return parser.SessionOptions{}, nil
	}
	return manifest.sessionOptions(), nil
}
