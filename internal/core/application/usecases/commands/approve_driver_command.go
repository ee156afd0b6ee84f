package commands

import (
	"errors"

	"station/internal/core/domain/model/fleet"
	"station/internal/core/domain/model/kernel"
	"station/internal/pkg/errs"
	"station/internal/pkg/guard"
)

var (
	ErrApproveDriverCommandIsNotConstructed = errors.New(
		"ApproveDriverCommand must be created via NewApproveDriverCommand constructor",
	)
	ErrSetDriverAvailabilityCommandIsNotConstructed = errors.New(
		"SetDriverAvailabilityCommand must be created via NewSetDriverAvailabilityCommand constructor",
	)
)

// ApproveDriverCommand clears a newly registered driver for dispatch.
type ApproveDriverCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

func NewApproveDriverCommand(driverID kernel.UUID) (ApproveDriverCommand, error) {
	if err := driverID.Validate(); err != nil {
		return ApproveDriverCommand{}, err
	}

	return ApproveDriverCommand{driverID: driverID, guard: guard.NewConstructorGuard()}, nil
}

func (c ApproveDriverCommand) Validate() error {
	return c.guard.Validate(ErrApproveDriverCommandIsNotConstructed)
}

func (c ApproveDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}

// SetDriverAvailabilityCommand switches a driver who is not on duty between available
// and off-duty.
type SetDriverAvailabilityCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID
	status   fleet.DriverStatus

	guard guard.ConstructorGuard
}

// NewSetDriverAvailabilityCommand accepts "available" and "off-duty".
func NewSetDriverAvailabilityCommand(driverID kernel.UUID, status string) (SetDriverAvailabilityCommand, error) {
	parsed, statusErr := fleet.ParseDriverStatus(status)
	if statusErr == nil && parsed != fleet.DriverAvailable && parsed != fleet.DriverOffDuty {
		statusErr = errs.NewValueIsInvalidError("status")
	}

	if err := errors.Join(driverID.Validate(), statusErr); err != nil {
		return SetDriverAvailabilityCommand{}, err
	}

	return SetDriverAvailabilityCommand{
		driverID: driverID,
		status:   parsed,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c SetDriverAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetDriverAvailabilityCommandIsNotConstructed)
}

func (c SetDriverAvailabilityCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c SetDriverAvailabilityCommand) Status() fleet.DriverStatus {
	return c.status
}
