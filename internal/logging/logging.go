// Package logging builds the slog.Logger used by the CLI.
package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"nathanbeddoewebdev/wanddns/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// Supported values for the log-format setting.
const (
	FormatHuman = "human"
	FormatText  = "text"
	FormatJSON  = "json"
)

// Formats lists the accepted log formats.
var Formats = []string{FormatHuman, FormatText, FormatJSON}

const timestampLayout = "2006-01-02 15:04:05"

// New constructs a logger of the given format (human|text|json) writing to w.
// An empty format means human.
func New(format string, level slog.Leveler, w io.Writer) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{Level: level}
	switch format {
	case "", FormatHuman:
		return slog.New(newHumanHandler(w, level)), nil
	case FormatText:
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case FormatJSON:
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, errors.New("unsupported log format: " + format)
	}
}

// ParseLevel maps debug|info|warn|error onto a slog.Level. An empty string
// means info.
func ParseLevel(s string) (slog.Level, error) {
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("unsupported log level: %s", s)
	}
	return level, nil
}

// humanHandler prints "<timestamp> <LEVEL> <message>" lines. Attributes are
// dropped; use the text or json format to see them.
type humanHandler struct {
	mu     *sync.Mutex
	w      io.Writer
	level  slog.Leveler
	levels map[slog.Level]lipgloss.Style
	now    func() time.Time
}

func newHumanHandler(w io.Writer, level slog.Leveler) *humanHandler {
	r := lipgloss.NewRenderer(w)
	return &humanHandler{
		mu:    &sync.Mutex{},
		w:     w,
		level: level,
		levels: map[slog.Level]lipgloss.Style{
			slog.LevelDebug: r.NewStyle().Foreground(styles.Muted),
			slog.LevelInfo:  r.NewStyle().Foreground(styles.Blue),
			slog.LevelWarn:  r.NewStyle().Foreground(styles.Yellow).Bold(true),
			slog.LevelError: r.NewStyle().Foreground(styles.Red).Bold(true),
		},
		now: time.Now,
	}
}

func (h *humanHandler) Enabled(_ context.Context, l slog.Level) bool {
	threshold := slog.LevelInfo
	if h.level != nil {
		threshold = h.level.Level()
	}
	return l >= threshold
}

func (h *humanHandler) Handle(_ context.Context, r slog.Record) error {
	ts := r.Time
	if ts.IsZero() {
		ts = h.now()
	}

	label := fmt.Sprintf("%-5s", r.Level.String())
	if style, ok := h.levels[nearestLevel(r.Level)]; ok {
		label = style.Render(label)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintf(h.w, "%s %s %s\n", ts.Format(timestampLayout), label, r.Message)
	return err
}

func (h *humanHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *humanHandler) WithGroup(string) slog.Handler      { return h }

func nearestLevel(l slog.Level) slog.Level {
	switch {
	case l >= slog.LevelError:
		return slog.LevelError
	case l >= slog.LevelWarn:
		return slog.LevelWarn
	case l >= slog.LevelInfo:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}
