package tui

import (
	"context"
	"io"
	"os"
	"sync/atomic"
	"time"

	"nathanbeddoewebdev/wanddns/internal/retry"

	"github.com/charmbracelet/huh/spinner"
)

// Countdown waits for d, or until ctx ends. When interactive is set a
// spinner titled title is drawn on w while waiting. It returns ctx.Err() or
// context.Canceled if the wait was cut short, including by the user
// aborting the spinner.
func Countdown(ctx context.Context, w io.Writer, interactive bool, title string, d time.Duration) error {
	if !interactive {
		if !retry.Sleep(ctx, d) {
			return ctx.Err()
		}
		return nil
	}

	var finished atomic.Bool
	spinErr := spinner.New().
		Title(title).
		Accessible(os.Getenv("ACCESSIBLE") != "").
		Output(w).
		Context(ctx).
		Action(func() {
			finished.Store(retry.Sleep(ctx, d))
		}).
		Run()

	switch {
	case finished.Load():
		return nil
	case ctx.Err() != nil:
		return ctx.Err()
	case spinErr != nil:
		return spinErr
	}
	return context.Canceled
}
