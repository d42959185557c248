package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"ember/internal/driver"
	"ember/internal/ui"
)

type checkOutcome struct {
	results []driver.Result
	err     error
}

// runCheckDirWithUI запускает проверку каталога параллельно с TUI-моделью:
// драйвер шлёт события прогресса в канал, модель их отрисовывает, результаты
// возвращаются после завершения обоих.
func runCheckDirWithUI(ctx context.Context, title, dir string, files []string, opts driver.Options) ([]driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		results, err := driver.CheckDir(ctx, dir, optsCopy)
		outcomeCh <- checkOutcome{results: results, err: err}
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
