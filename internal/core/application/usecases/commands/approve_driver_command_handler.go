package commands

import (
	"context"

	"station/internal/core/domain/model/fleet"
	"station/internal/core/domain/model/kernel"
	"station/internal/core/ports"
)

// ApproveDriverCommandHandler moves a driver from pending-approval to approved.
type ApproveDriverCommandHandler struct {
	uowFactory DriverUoWFactory
	notifier   ports.Notifier
}

func NewApproveDriverCommandHandler(uowFactory DriverUoWFactory, notifier ports.Notifier) ApproveDriverCommandHandler {
	return ApproveDriverCommandHandler{uowFactory: uowFactory, notifier: notifier}
}

func (h *ApproveDriverCommandHandler) Handle(ctx context.Context, cmd ApproveDriverCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	driver, err := changeDriver(ctx, h.uowFactory, cmd.DriverID(), (*fleet.Driver).Approve)
	if err != nil {
		notifyFailure(ctx, h.notifier, ports.EventDriverChanged, nil, err)
		return err
	}

	notifyFleet(ctx, h.notifier, ports.EventDriverChanged, driver.Status().String(),
		"Driver "+driver.Name()+" approved")
	return nil
}

// SetDriverAvailabilityCommandHandler applies availability changes reported by drivers.
type SetDriverAvailabilityCommandHandler struct {
	uowFactory DriverUoWFactory
	notifier   ports.Notifier
}

func NewSetDriverAvailabilityCommandHandler(
	uowFactory DriverUoWFactory,
	notifier ports.Notifier,
) SetDriverAvailabilityCommandHandler {
	return SetDriverAvailabilityCommandHandler{uowFactory: uowFactory, notifier: notifier}
}

func (h *SetDriverAvailabilityCommandHandler) Handle(ctx context.Context, cmd SetDriverAvailabilityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	driver, err := changeDriver(ctx, h.uowFactory, cmd.DriverID(), func(d *fleet.Driver) error {
		return d.SetAvailability(cmd.Status())
	})
	if err != nil {
		notifyFailure(ctx, h.notifier, ports.EventDriverChanged, nil, err)
		return err
	}

	notifyFleet(ctx, h.notifier, ports.EventDriverChanged, driver.Status().String(),
		"Driver "+driver.Name()+" is now "+driver.Status().String())
	return nil
}

// changeDriver loads a driver with its row locked, applies change and saves it.
func changeDriver(
	ctx context.Context,
	uowFactory DriverUoWFactory,
	driverID kernel.UUID,
	change func(*fleet.Driver) error,
) (*fleet.Driver, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DriverRepository()
	driver, err := repo.Get(ctx, driverID)
	if err != nil {
		return nil, err
	}

	if err = change(driver); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, driver); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return driver, nil
}
