package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/desertwitch/gofs"
	"github.com/desertwitch/gofs/internal/ui"
	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

var errNotTerminal = errors.New("interactive mode needs a terminal")

// browse shows the matches of a sequence in the interactive user interface.
// While it runs, logs are shown inside of the user interface.
func (a *app) browse(ctx context.Context, title string, seq *gofs.Sequence, long bool) error {
	out, ok := a.stdout.(*os.File)
	if !ok || !term.IsTerminal(int(out.Fd())) {
		return errNotTerminal
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	describe := func(m gofs.Match) string {
		return m.Path
	}
	if long {
		describe = a.describeLong
	}

	uiHandler := ui.NewHandler(ctx, cancel, title, seq, describe)

	prev := slog.Default()
	slog.SetDefault(slog.New(
		tint.NewHandler(uiHandler.LogWriter, &tint.Options{
			Level:      a.config.LogLevel,
			TimeFormat: time.Kitchen,
			NoColor:    true,
		}),
	))
	defer slog.SetDefault(prev)

	return uiHandler.Launch()
}
