package main

import (
	"context"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"setlint/internal/driver"
	"setlint/internal/ui"
)

type checkOutcome struct {
	result *driver.CheckResult
	err    error
}

func runCheckWithUI(ctx context.Context, title string, targets []string, opts driver.Options) (*driver.CheckResult, error) {
	var files []string
	for _, target := range targets {
		listed, err := driver.ListFiles(target, opts.Exclude)
		if err != nil {
			return nil, err
		}
		for _, f := range listed {
			files = append(files, filepath.ToSlash(filepath.Clean(f)))
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		runOpts := opts
		runOpts.Sink = driver.ChannelSink{Ch: events}
		res, err := driver.Check(ctx, targets, runOpts)
		outcomeCh <- checkOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()

	// ctrl+c: UI закрыта раньше драйвера. Отменяем и вычитываем события,
	// чтобы ChannelSink не заблокировал воркеры.
	cancel()
	for range events {
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
