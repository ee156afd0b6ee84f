package commands

import (
	"context"

	"station/internal/core/domain/model/fleet"
	"station/internal/core/ports"
)

// CreateDriverCommandHandler registers new drivers in pending-approval status.
type CreateDriverCommandHandler struct {
	uowFactory DriverUoWFactory
	notifier   ports.Notifier
}

func NewCreateDriverCommandHandler(uowFactory DriverUoWFactory, notifier ports.Notifier) CreateDriverCommandHandler {
	return CreateDriverCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the driver registration command.
func (h *CreateDriverCommandHandler) Handle(ctx context.Context, cmd CreateDriverCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	driver, err := fleet.NewDriver(cmd.DriverID(), cmd.Name(), cmd.LicenseNumber(), cmd.Phone(), cmd.Email())
	if err != nil {
		notifyFailure(ctx, h.notifier, ports.EventDriverChanged, nil, err)
		return err
	}

	if err = h.add(ctx, driver); err != nil {
		notifyFailure(ctx, h.notifier, ports.EventDriverChanged, nil, err)
		return err
	}

	notifyFleet(ctx, h.notifier, ports.EventDriverChanged, driver.Status().String(),
		"Driver "+driver.Name()+" registered")
	return nil
}

func (h *CreateDriverCommandHandler) add(ctx context.Context, driver *fleet.Driver) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.DriverRepository().Add(ctx, driver); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
