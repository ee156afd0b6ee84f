package notify

import (
	"context"
	"log/slog"

	"station/internal/core/ports"
)

// Fanout delivers each notification to every sink in order. A failing sink is logged
// and does not stop delivery to the others; Notify itself never fails.
type Fanout struct {
	sinks  []ports.Notifier
	logger *slog.Logger
}

func NewFanout(logger *slog.Logger, sinks ...ports.Notifier) *Fanout {
	return &Fanout{
		sinks:  sinks,
		logger: logger.With("component", "notify_fanout"),
	}
}

func (f *Fanout) Notify(ctx context.Context, n ports.Notification) error {
	for _, sink := range f.sinks {
		if err := sink.Notify(ctx, n); err != nil {
			f.logger.WarnContext(ctx, "notification sink failed",
				"event", n.Event,
				"error", err,
			)
		}
	}
	return nil
}
