package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ledge/internal/diagfmt"
	"ledge/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [directory]",
	Short: "Check every ledge source file under a directory",
	Long: `Check parses all *.lg files under a directory and reports diagnostics.
Unchanged files are answered from the on-disk parse cache.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	checkCmd.Flags().Bool("no-cache", false, "disable the on-disk parse cache")
	checkCmd.Flags().String("ui", "auto", "progress display (auto|on|off)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	maxDiag, err := maxDiagnostics(cmd)
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	session, err := sessionOptionsFor(dir)
	if err != nil {
		return err
	}

	var cache *driver.DiskCache
	if !noCache {
		cache, err = driver.OpenDiskCache("ledge")
		if err != nil {
			// A broken cache dir degrades to plain reparsing.
			fmt.Fprintf(os.Stderr, "warning: parse cache unavailable: %v\n", err)
		}
	}

	observer, timings := timingObserver(cmd)
	opts := driver.DirOptions{
		MaxDiagnostics: maxDiag,
		Jobs:           jobs,
		Session:        session,
		Cache:          cache,
		Observer:       observer,
	}

	files, err := driver.ListSourceFiles(dir)
	if err != nil {
		return err
	}

	fileSet, results, err := runCheckPipeline(cmd, dir, files, opts, mode)
	if err != nil {
		return err
	}

	prettyOpts := prettyOptsFor(cmd, os.Stderr)
	errorCount, warningCount, cachedCount := 0, 0, 0
	for _, r := range results {
		if r.Cached {
			cachedCount++
		}
		if r.Bag.HasErrors() {
			errorCount++
		} else if r.Bag.HasWarnings() {
			warningCount++
		}
		if r.Bag.Len() > 0 {
			r.Bag.Sort()
			diagfmt.Pretty(os.Stderr, r.Bag, fileSet, prettyOpts)
		}
	}
	timings.print(os.Stderr)

	if !quietMode(cmd) {
		fmt.Fprintf(os.Stdout, "checked %d files: %d with errors, %d with warnings (%d cached)\n",
			len(results), errorCount, warningCount, cachedCount)
	}
	if errorCount > 0 {
		return fmt.Errorf("%d files failed to parse", errorCount)
	}
	return nil
}
