package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"mirdata/internal/importer"
	"mirdata/internal/ui"
)

// runImportWithUI runs the sequential import loop in a goroutine while the
// foreground renders its progress events. The core stays single-threaded; the
// UI only consumes the event channel.
func runImportWithUI(ctx context.Context, title string, files []string, req *importer.Request) (importer.Result, error) {
	events := make(chan importer.Event, 256)
	var res importer.Result

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(events)
		reqCopy := *req
		reqCopy.Progress = importer.ChannelSink{Ch: events}
		r, err := importer.Run(ctx, &reqCopy)
		res = r
		return err
	})

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	err := g.Wait()
	if uiErr != nil {
		return res, uiErr
	}
	return res, err
}
