package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"lcc/internal/driver"
	"lcc/internal/ui"
)

type checkDirOutcome struct {
	result *driver.DirResult
	err    error
}

func runCheckDirWithUI(ctx context.Context, title, dir string, opts driver.Options, jobs int) (*driver.DirResult, error) {
	files, err := driver.ListFiles(dir)
	if err != nil {
		return nil, err
	}
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkDirOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.CheckDir(ctx, dir, optsCopy, jobs)
		outcomeCh <- checkDirOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	// если UI завершился раньше, дочитываем события, чтобы воркеры не встали
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
