package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"ledge/internal/driver"
	"ledge/internal/source"
	"ledge/internal/ui"
)

type checkOutcome struct {
	fileSet *source.FileSet
	results []driver.ParseDirResult
	err     error
}

// runCheckPipeline parses the directory, with a live progress display
// when the UI mode allows one.
func runCheckPipeline(cmd *cobra.Command, dir string, files []string, opts driver.DirOptions, mode uiMode) (*source.FileSet, []driver.ParseDirResult, error) {
	if !shouldUseTUI(mode) || len(files) == 0 {
		fileSet, results, err := driver.ParseDir(cmd.Context(), dir, opts)
		return fileSet, results, err
	}

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Events = events
		fileSet, results, err := driver.ParseDir(cmd.Context(), dir, optsCopy)
		outcomeCh <- checkOutcome{fileSet: fileSet, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("checking "+dir, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}
