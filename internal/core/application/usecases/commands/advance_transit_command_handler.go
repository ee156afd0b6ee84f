package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"station/internal/core/domain/model/kernel"
	"station/internal/core/domain/model/order"
	"station/internal/core/domain/services"
	"station/internal/core/ports"
	"station/internal/pkg/errs"
)

// AdvanceTransitResult counts what one tick did.
type AdvanceTransitResult struct {
	InTransit int
	Moved     int
	Arrived   int
	Skipped   int
	Failed    int
}

// AdvanceTransitCommandHandler moves every in-transit order one step toward its destination.
//
// Each order is advanced in its own transaction with its row locked, so one failing
// order neither blocks nor rolls back the others; failures are logged and counted.
// When the assigned truck carries an enabled GPS unit its location follows the order.
// Positions are published to telemetry only after they were committed.
//
// Example:
//
//	handler := NewAdvanceTransitCommandHandler(uowFactory, simulator, telemetry, logger)
//	result, err := handler.Handle(ctx, NewAdvanceTransitCommand())
//	if err == nil && result.InTransit == 0 {
//	    // nothing to simulate, the scheduler may pause
//	}
type AdvanceTransitCommandHandler struct {
	uowFactory UoWFactory
	simulator  *services.TransitSimulator
	telemetry  ports.TelemetryPublisher
	logger     *slog.Logger
}

// NewAdvanceTransitCommandHandler creates the handler. telemetry may be nil.
func NewAdvanceTransitCommandHandler(
	uowFactory UoWFactory,
	simulator *services.TransitSimulator,
	telemetry ports.TelemetryPublisher,
	logger *slog.Logger,
) AdvanceTransitCommandHandler {
	return AdvanceTransitCommandHandler{
		uowFactory: uowFactory,
		simulator:  simulator,
		telemetry:  telemetry,
		logger:     logger.With("component", "advance_transit"),
	}
}

// Handle runs one simulation tick. Only a failure to list the in-transit orders is
// returned as an error.
func (h *AdvanceTransitCommandHandler) Handle(
	ctx context.Context,
	cmd AdvanceTransitCommand,
) (AdvanceTransitResult, error) {
	if err := cmd.Validate(); err != nil {
		return AdvanceTransitResult{}, err
	}

	ids, err := h.listInTransit(ctx)
	if err != nil {
		return AdvanceTransitResult{}, err
	}

	result := AdvanceTransitResult{InTransit: len(ids)}
	for _, id := range ids {
		sample, step, advanceErr := h.advance(ctx, id)
		if advanceErr != nil {
			result.Failed++
			h.logger.ErrorContext(ctx, "Failed to advance order", "orderId", id.String(), "error", advanceErr)
			continue
		}

		switch step {
		case services.TransitMoved:
			result.Moved++
		case services.TransitArrived:
			result.Arrived++
		case services.TransitSkipped:
			result.Skipped++
		}

		if sample != nil {
			h.publish(ctx, *sample)
		}
	}

	return result, nil
}

func (h *AdvanceTransitCommandHandler) listInTransit(ctx context.Context) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ids, err := uow.OrderRepository().ListIDsByStatus(ctx, order.InTransit)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return ids, nil
}

// advance moves one order. The order may have left transit or been deleted since it
// was listed; it is then skipped.
func (h *AdvanceTransitCommandHandler) advance(
	ctx context.Context,
	orderID kernel.UUID,
) (*ports.LocationSample, services.TransitStep, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, services.TransitSkipped, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, orderID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, services.TransitSkipped, nil
	}
	if err != nil {
		return nil, services.TransitSkipped, err
	}

	now := time.Now().UTC()
	outcome, err := h.simulator.Advance(o, now)
	if err != nil {
		return nil, services.TransitSkipped, err
	}

	switch outcome.Step {
	case services.TransitSkipped:
		return nil, outcome.Step, nil
	case services.TransitArrived:
		return newLocationSample(o, true, now), outcome.Step, nil
	case services.TransitMoved:
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, outcome.Step, err
	}

	if err = h.mirrorTruckGPS(ctx, uow, o); err != nil {
		return nil, outcome.Step, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, outcome.Step, err
	}

	return newLocationSample(o, false, now), outcome.Step, nil
}

// mirrorTruckGPS copies the order position to the GPS unit of its truck, if any.
func (h *AdvanceTransitCommandHandler) mirrorTruckGPS(ctx context.Context, uow UoW, o *order.Order) error {
	if o.TruckID() == nil || o.CurrentLocation() == nil {
		return nil
	}

	truckRepo := uow.TruckRepository()
	truck, err := truckRepo.Get(ctx, *o.TruckID())
	if err != nil {
		return err
	}

	if !truck.ReportLocation(*o.CurrentLocation()) {
		return nil
	}
	return truckRepo.Update(ctx, truck)
}

func (h *AdvanceTransitCommandHandler) publish(ctx context.Context, sample ports.LocationSample) {
	if h.telemetry == nil {
		return
	}

	if err := h.telemetry.PublishLocation(ctx, sample); err != nil {
		h.logger.WarnContext(ctx, "Failed to publish location", "orderId", sample.OrderID.String(), "error", err)
	}
}

func newLocationSample(o *order.Order, arrived bool, at time.Time) *ports.LocationSample {
	return &ports.LocationSample{
		OrderID:         o.ID(),
		PONumber:        o.PONumber(),
		TruckID:         o.TruckID(),
		Position:        *o.CurrentLocation(),
		ProgressPercent: kernel.ProgressAlongRoute(o.Origin(), o.Destination(), o.CurrentLocation()),
		Arrived:         arrived,
		At:              at,
	}
}
