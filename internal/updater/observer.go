package updater

import (
	"context"
	"log/slog"
)

// LogObserver writes events to a slog.Logger, one record per event.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver returns an Observer backed by logger.
func NewLogObserver(logger *slog.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

// Observe implements Observer.
func (o *LogObserver) Observe(ctx context.Context, e Event) {
	o.logger.Log(ctx, e.Level, e.Message, eventAttrs(e)...)
}

func eventAttrs(e Event) []any {
	var attrs []any
	switch e.Kind {
	case EventAddressResolved:
		attrs = append(attrs,
			slog.String("address", e.Address.String()),
			slog.String("type", string(e.Address.Type)),
			slog.String("source", e.Address.Source),
		)
	case EventResult:
		r := e.Result
		attrs = append(attrs,
			slog.String("fqdn", r.FQDN),
			slog.String("status", r.Status.String()),
		)
		if r.Domain != "" {
			attrs = append(attrs, slog.String("domain", r.Domain))
		}
		if r.Record != nil {
			attrs = append(attrs, slog.Int("record_id", r.Record.ID))
		}
		if r.Err != nil {
			attrs = append(attrs, slog.String("error", r.Err.Error()))
		}
	case EventRetrying:
		attrs = append(attrs,
			slog.String("error", e.Err.Error()),
			slog.Duration("retry_in", e.Delay),
		)
	case EventNextCycle:
		attrs = append(attrs, slog.Time("next", e.Next))
	}
	return attrs
}
