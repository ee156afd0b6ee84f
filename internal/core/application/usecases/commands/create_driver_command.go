package commands

import (
	"errors"
	"strings"

	"station/internal/core/domain/model/kernel"
	"station/internal/pkg/errs"
	"station/internal/pkg/guard"
)

var ErrCreateDriverCommandIsNotConstructed = errors.New(
	"CreateDriverCommand must be created via NewCreateDriverCommand constructor",
)

// CreateDriverCommand registers a driver. New drivers wait for approval before they can
// be dispatched.
type CreateDriverCommand struct { //nolint:recvcheck //using for validation
	driverID      kernel.UUID
	name          string
	licenseNumber string
	phone         string
	email         string

	guard guard.ConstructorGuard
}

// NewCreateDriverCommand requires a name and a license number; phone and email are optional.
func NewCreateDriverCommand(
	driverID kernel.UUID,
	name, licenseNumber, phone, email string,
) (CreateDriverCommand, error) {
	name, licenseNumber = strings.TrimSpace(name), strings.TrimSpace(licenseNumber)

	var nameErr, licenseErr error
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}
	if licenseNumber == "" {
		licenseErr = errs.NewValueIsRequiredError("licenseNumber")
	}
	if err := errors.Join(driverID.Validate(), nameErr, licenseErr); err != nil {
		return CreateDriverCommand{}, err
	}

	return CreateDriverCommand{
		driverID:      driverID,
		name:          name,
		licenseNumber: licenseNumber,
		phone:         strings.TrimSpace(phone),
		email:         strings.TrimSpace(email),
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c CreateDriverCommand) Validate() error {
	return c.guard.Validate(ErrCreateDriverCommandIsNotConstructed)
}

func (c CreateDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c CreateDriverCommand) Name() string {
	return c.name
}

func (c CreateDriverCommand) LicenseNumber() string {
	return c.licenseNumber
}

func (c CreateDriverCommand) Phone() string {
	return c.phone
}

func (c CreateDriverCommand) Email() string {
	return c.email
}
