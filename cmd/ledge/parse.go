package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ledge/internal/diagfmt"
	"ledge/internal/driver"
	"ledge/internal/parser"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.lg|directory>",
	Short: "Parse a ledge source file or directory and print declarations",
	Long:  `Parse analyzes a ledge source file or all *.lg files in a directory and prints the declaration trees`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	parseCmd.Flags().Bool("highlights", false, "also print semantic highlight spans")
	parseCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	showHighlights, err := cmd.Flags().GetBool("highlights")
	if err != nil {
		return fmt.Errorf("failed to get highlights flag: %w", err)
	}
	maxDiag, err := maxDiagnostics(cmd)
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	session, err := sessionOptionsFor(filePath)
	if err != nil {
		return err
	}

	st, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}
	if !st.IsDir() {
		return parseSingleFile(cmd, filePath, format, showHighlights, maxDiag, session)
	}
	return parseDirectory(cmd, filePath, format, maxDiag, session)
}

func parseSingleFile(cmd *cobra.Command, filePath, format string, showHighlights bool, maxDiag int, session parser.SessionOptions) error {
	observer, timings := timingObserver(cmd)
	result, err := driver.Parse(filePath, driver.Options{
		MaxDiagnostics: maxDiag,
		Session:        session,
		Observer:       observer,
	})
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	if result.Bag.HasErrors() || result.Bag.HasWarnings() {
		result.Bag.Sort()
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, prettyOptsFor(cmd, os.Stderr))
	}
	timings.print(os.Stderr)

	switch format {
	case "pretty":
		if err := diagfmt.FormatDeclsPretty(os.Stdout, result.Decls); err != nil {
			return err
		}
		if showHighlights {
			return diagfmt.FormatHighlightsPretty(os.Stdout, result.Session.Highlights())
		}
		return nil
	case "json":
		if showHighlights {
			if err := diagfmt.FormatDeclsJSON(os.Stdout, result.Decls, diagfmt.JSONOpts{}); err != nil {
				return err
			}
			return diagfmt.FormatHighlightsJSON(os.Stdout, result.Session.Highlights(), diagfmt.JSONOpts{})
		}
		return diagfmt.FormatDeclsJSON(os.Stdout, result.Decls, diagfmt.JSONOpts{})
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func parseDirectory(cmd *cobra.Command, dir, format string, maxDiag int, session parser.SessionOptions) error {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	observer, timings := timingObserver(cmd)

	fs, results, err := driver.ParseDir(cmd.Context(), dir, driver.DirOptions{
		MaxDiagnostics: maxDiag,
		Jobs:           jobs,
		Session:        session,
		Observer:       observer,
	})
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	prettyOpts := prettyOptsFor(cmd, os.Stderr)
	for _, r := range results {
		if r.Bag.HasErrors() || r.Bag.HasWarnings() {
			r.Bag.Sort()
			diagfmt.Pretty(os.Stderr, r.Bag, fs, prettyOpts)
		}
	}
	timings.print(os.Stderr)

	quiet := quietMode(cmd)
	switch format {
	case "pretty":
		for idx, r := range results {
			if !quiet {
				fmt.Fprintf(os.Stdout, "== %s ==\n", r.Path)
			}
			if err := diagfmt.FormatDeclsPretty(os.Stdout, r.Decls); err != nil {
				return err
			}
			if !quiet && idx < len(results)-1 {
				fmt.Fprintln(os.Stdout)
			}
		}
		return nil
	case "json":
		output := make(map[string][]diagfmt.DeclNodeOutput, len(results))
		for _, r := range results {
			output[r.Path] = diagfmt.BuildDeclNodes(r.Decls, diagfmt.JSONOpts{})
		}
		return writeJSON(os.Stdout, output)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
