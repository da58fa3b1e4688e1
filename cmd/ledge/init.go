package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new ledge project",
	Long: `Initialize a new ledge project by creating a project manifest (ledge.toml)
and a hello-world entry point (Main.lg). If [path|name] is omitted, initializes
the current directory. If a non-existing name is provided, a directory will be
created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else {
		arg := args[0]
		if !filepath.IsAbs(arg) {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			target = filepath.Join(wd, arg)
		} else {
			target = arg
		}
	}

	if st, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err = os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", target, err)
			}
		} else {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	// Project name comes from the directory basename.
	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "ledge-project"
	}

	manifestPath := filepath.Join(target, "ledge.toml")
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}

	manifest := buildDefaultManifest(name)
	if err := os.WriteFile(manifestPath, []byte(manifest), os.FileMode(0o600)); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	mainPath := filepath.Join(target, "Main.lg")
	createdMain := false
	if _, err := os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(mainPath, []byte(defaultMainLG()), 0o600); err != nil {
			return fmt.Errorf("failed to write Main.lg: %w", err)
		}
		createdMain = true
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, target); err2 == nil {
			rel = r
		}
	}
	fmt.Fprintf(os.Stdout, "Initialized ledge project in %s\n", rel)
	fmt.Fprintf(os.Stdout, "  - ledge.toml\n")
	if createdMain {
		fmt.Fprintf(os.Stdout, "  - Main.lg\n")
	} else {
		fmt.Fprintf(os.Stdout, "  - Main.lg (existing)\n")
	}
	return nil
}

// buildDefaultManifest returns a minimal TOML manifest used as the
// project marker and as the source of parser session settings.
func buildDefaultManifest(name string) string {
	return fmt.Sprintf(`# Ledge project manifest
[package]
name = "%s"
version = "0.1.0"

[parser]
default_accessibility = "private"
suppress_deprecations = false
`, name)
}

func defaultMainLG() string {
	return `-- Ledge hello world (placeholder)

||| Greets whoever runs the program.
public export
greeting : String
greeting = "Hello, Ledge!"

main : IO Unit
main = putStrLn greeting
`
}
