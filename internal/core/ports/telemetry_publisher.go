package ports

import (
	"context"
	"time"

	"station/internal/core/domain/model/kernel"
)

// LocationSample is a live position of an in-transit order, published after the
// position was committed.
type LocationSample struct {
	OrderID         kernel.UUID
	PONumber        string
	TruckID         *kernel.UUID
	Position        kernel.Coordinate
	ProgressPercent float64
	Arrived         bool
	At              time.Time
}

// TelemetryPublisher pushes live positions to dashboards and external trackers.
type TelemetryPublisher interface {
	PublishLocation(ctx context.Context, sample LocationSample) error
}
