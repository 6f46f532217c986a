// Package ui implements an interactive command-line browser for search
// results using [tea]. Results are pulled from their source only as far as
// the user scrolls, so quitting early leaves the rest of the search undone.
package ui

import (
	"context"
	"fmt"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertwitch/gofs/internal/finder"
)

type matchSource interface {
	Next() bool
	Match() finder.Match
	Err() error
}

// Describer renders a single [finder.Match] as one line of the browser.
type Describer func(m finder.Match) string

// Handler is the principal implementation of a user interface [Handler].
type Handler struct {
	program *tea.Program

	LogWriter *TeaLogWriter

	Ready  atomic.Bool
	Failed atomic.Bool
}

// NewHandler returns a pointer to a new user interface [Handler], browsing
// the matches of a source. Cancelling through the user interface (ctrl+c)
// calls cancel.
func NewHandler(ctx context.Context, cancel context.CancelFunc, title string, source matchSource, describe Describer, opts ...tea.ProgramOption) *Handler {
	handler := &Handler{}

	model := NewTeaModel(handler, title, source, describe, cancel)

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	handler.program = tea.NewProgram(model, opts...)
	handler.LogWriter = NewTeaLogWriter(handler.program)

	return handler
}

// Launch starts the command-line user interface (the [tea.Program]) and
// returns the error of the browsed source, if any.
func (uiHandler *Handler) Launch() error {
	defer uiHandler.LogWriter.Stop()

	final, err := uiHandler.program.Run()
	if err != nil {
		uiHandler.Failed.Store(true)

		return fmt.Errorf("(ui) %w", err)
	}

	if model, ok := final.(TeaModel); ok && model.err != nil {
		return model.err
	}

	return nil
}
