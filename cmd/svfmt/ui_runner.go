package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"svfmt/internal/driver"
	"svfmt/internal/ui"
)

type formatOutcome struct {
	results []driver.FormatResult
	err     error
}

// runFormatWithUI drives a batch run while a Bubble Tea model renders the
// per-file progress. The event channel is closed when the batch finishes,
// which tells the model to quit.
func runFormatWithUI(ctx context.Context, title string, files []string, opts driver.FormatOptions) ([]driver.FormatResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan formatOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Events = events
		results, err := driver.FormatPaths(ctx, files, optsCopy)
		outcomeCh <- formatOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
