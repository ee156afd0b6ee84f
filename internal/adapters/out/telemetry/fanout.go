package telemetry

import (
	"context"
	"log/slog"

	"station/internal/core/ports"
)

// Fanout hands every sample to all configured publishers and logs their failures.
type Fanout struct {
	publishers []ports.TelemetryPublisher
	logger     *slog.Logger
}

func NewFanout(logger *slog.Logger, publishers ...ports.TelemetryPublisher) *Fanout {
	return &Fanout{
		publishers: publishers,
		logger:     logger.With("component", "telemetry"),
	}
}

// PublishLocation never fails; a publisher error only produces a warning.
func (f *Fanout) PublishLocation(ctx context.Context, sample ports.LocationSample) error {
	for _, p := range f.publishers {
		if err := p.PublishLocation(ctx, sample); err != nil {
			f.logger.WarnContext(ctx, "failed to publish location",
				"order_id", sample.OrderID.String(),
				"error", err,
			)
		}
	}
	return nil
}
