package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ledge/internal/diagfmt"
	"ledge/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.lg",
	Short: "Tokenize a ledge source file",
	Long:  `Tokenize breaks down a ledge source file into its constituent tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiag, err := maxDiagnostics(cmd)
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	session, err := sessionOptionsFor(filePath)
	if err != nil {
		return err
	}
	observer, timings := timingObserver(cmd)

	result, err := driver.Tokenize(filePath, driver.Options{
		MaxDiagnostics: maxDiag,
		Session:        session,
		Observer:       observer,
	})
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	if result.Bag.HasErrors() || result.Bag.HasWarnings() {
		result.Bag.Sort()
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, prettyOptsFor(cmd, os.Stderr))
	}
	timings.print(os.Stderr)

	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(os.Stdout, result.Tokens, diagfmt.PrettyOpts{})
	case "json":
		return diagfmt.FormatTokensJSON(os.Stdout, result.Tokens, diagfmt.JSONOpts{})
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
