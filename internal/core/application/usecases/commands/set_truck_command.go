package commands

import (
	"errors"
	"strings"

	"station/internal/core/domain/model/fleet"
	"station/internal/core/domain/model/kernel"
	"station/internal/pkg/errs"
	"station/internal/pkg/guard"
)

var (
	ErrSetTruckGPSCommandIsNotConstructed = errors.New(
		"SetTruckGPSCommand must be created via NewSetTruckGPSCommand constructor",
	)
	ErrSetTruckStatusCommandIsNotConstructed = errors.New(
		"SetTruckStatusCommand must be created via NewSetTruckStatusCommand constructor",
	)
)

// SetTruckGPSCommand enables or disables the tracking unit of a truck.
type SetTruckGPSCommand struct { //nolint:recvcheck //using for validation
	truckID kernel.UUID
	enabled bool
	gpsID   string

	guard guard.ConstructorGuard
}

// NewSetTruckGPSCommand requires gpsID when enabling. It is ignored when disabling.
func NewSetTruckGPSCommand(truckID kernel.UUID, enabled bool, gpsID string) (SetTruckGPSCommand, error) {
	gpsID = strings.TrimSpace(gpsID)

	var gpsErr error
	if enabled && gpsID == "" {
		gpsErr = errs.NewValueIsRequiredError("gpsId")
	}
	if err := errors.Join(truckID.Validate(), gpsErr); err != nil {
		return SetTruckGPSCommand{}, err
	}
	if !enabled {
		gpsID = ""
	}

	return SetTruckGPSCommand{
		truckID: truckID,
		enabled: enabled,
		gpsID:   gpsID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c SetTruckGPSCommand) Validate() error {
	return c.guard.Validate(ErrSetTruckGPSCommandIsNotConstructed)
}

func (c SetTruckGPSCommand) TruckID() kernel.UUID {
	return c.truckID
}

func (c SetTruckGPSCommand) Enabled() bool {
	return c.enabled
}

func (c SetTruckGPSCommand) GPSID() string {
	return c.gpsID
}

// SetTruckStatusCommand takes an idle truck in or out of service.
type SetTruckStatusCommand struct { //nolint:recvcheck //using for validation
	truckID kernel.UUID
	status  fleet.TruckStatus

	guard guard.ConstructorGuard
}

// NewSetTruckStatusCommand accepts "available", "maintenance" and "out-of-service".
func NewSetTruckStatusCommand(truckID kernel.UUID, status string) (SetTruckStatusCommand, error) {
	parsed, statusErr := fleet.ParseTruckStatus(status)
	if statusErr == nil && parsed.IsBusy() {
		statusErr = errs.NewValueIsInvalidError("status")
	}

	if err := errors.Join(truckID.Validate(), statusErr); err != nil {
		return SetTruckStatusCommand{}, err
	}

	return SetTruckStatusCommand{
		truckID: truckID,
		status:  parsed,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c SetTruckStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetTruckStatusCommandIsNotConstructed)
}

func (c SetTruckStatusCommand) TruckID() kernel.UUID {
	return c.truckID
}

func (c SetTruckStatusCommand) Status() fleet.TruckStatus {
	return c.status
}
