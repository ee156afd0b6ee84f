package commands

import (
	"errors"
	"strings"

	"station/internal/core/domain/model/kernel"
	"station/internal/pkg/errs"
	"station/internal/pkg/guard"
)

var ErrCreateTruckCommandIsNotConstructed = errors.New(
	"CreateTruckCommand must be created via NewCreateTruckCommand constructor",
)

// CreateTruckCommand registers a tanker truck. Capacities are whole litres.
type CreateTruckCommand struct { //nolint:recvcheck //using for validation
	truckID      kernel.UUID
	plateNumber  string
	model        string
	capacity     int
	fuelCapacity int

	guard guard.ConstructorGuard
}

// NewCreateTruckCommand requires a plate number and a positive tank capacity.
func NewCreateTruckCommand(
	truckID kernel.UUID,
	plateNumber, model string,
	capacity, fuelCapacity int,
) (CreateTruckCommand, error) {
	plateNumber = strings.TrimSpace(plateNumber)

	var plateErr, capacityErr error
	if plateNumber == "" {
		plateErr = errs.NewValueIsRequiredError("plateNumber")
	}
	if capacity <= 0 {
		capacityErr = errs.NewValueIsOutOfRangeError("capacity", capacity, 1, "unbounded")
	}
	if err := errors.Join(truckID.Validate(), plateErr, capacityErr); err != nil {
		return CreateTruckCommand{}, err
	}

	return CreateTruckCommand{
		truckID:      truckID,
		plateNumber:  plateNumber,
		model:        strings.TrimSpace(model),
		capacity:     capacity,
		fuelCapacity: fuelCapacity,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c CreateTruckCommand) Validate() error {
	return c.guard.Validate(ErrCreateTruckCommandIsNotConstructed)
}

func (c CreateTruckCommand) TruckID() kernel.UUID {
	return c.truckID
}

func (c CreateTruckCommand) PlateNumber() string {
	return c.plateNumber
}

func (c CreateTruckCommand) Model() string {
	return c.model
}

func (c CreateTruckCommand) Capacity() int {
	return c.capacity
}

func (c CreateTruckCommand) FuelCapacity() int {
	return c.fuelCapacity
}
