package fleet

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"station/internal/core/domain/model/kernel"
	"station/internal/pkg/errs"
	"station/internal/pkg/guard"
)

var (
	// ErrDriverIsNotConstructed is returned when using an improperly initialized Driver.
	ErrDriverIsNotConstructed = errors.New("driver must be created via NewDriver or RestoreDriver")
	// ErrDriverNotAssignable is returned when a driver cannot be put on duty.
	ErrDriverNotAssignable = errors.New("driver is not assignable")
)

// DriverState is the persisted state of a driver, used by repositories with RestoreDriver.
type DriverState struct {
	ID              kernel.UUID
	Name            string
	LicenseNumber   string
	Phone           string
	Email           string
	Status          DriverStatus
	AssignedTruckID *kernel.UUID
	LastTrip        *time.Time
}

// Driver is a registered tanker driver.
//
// Business rules:
//   - Name and license number are required; email, when given, must be a valid address
//   - New drivers wait for approval before they can be assigned
//   - A truck is bound to the driver exactly while the driver is on duty
//
// Example:
//
//	d, err := fleet.NewDriver(kernel.NewUUID(), "Adaeze Okafor", "LAG-123-XY", "+2348000000000", "")
//	if err != nil {
//	    return err
//	}
//	_ = d.Approve()
type Driver struct {
	id              kernel.UUID
	name            string
	licenseNumber   string
	phone           string
	email           string
	status          DriverStatus
	assignedTruckID *kernel.UUID
	lastTrip        *time.Time
	guard           guard.ConstructorGuard
}

// NewDriver registers a driver in PendingApproval status.
func NewDriver(id kernel.UUID, name, licenseNumber, phone, email string) (*Driver, error) {
	d := &Driver{
		status: DriverPendingApproval,
		phone:  strings.TrimSpace(phone),
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
		d.setLicenseNumber(licenseNumber),
		d.setEmail(email),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDriver reconstructs a Driver from persistent storage.
func RestoreDriver(state DriverState) (*Driver, error) {
	d := &Driver{
		phone:           state.Phone,
		assignedTruckID: state.AssignedTruckID,
		lastTrip:        state.LastTrip,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(state.ID),
		d.setName(state.Name),
		d.setLicenseNumber(state.LicenseNumber),
		d.setEmail(state.Email),
		d.setStatus(state.Status),
	); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

func (d *Driver) ID() kernel.UUID {
	return d.id
}

func (d *Driver) Name() string {
	return d.name
}

func (d *Driver) LicenseNumber() string {
	return d.licenseNumber
}

func (d *Driver) Phone() string {
	return d.phone
}

func (d *Driver) Email() string {
	return d.email
}

func (d *Driver) Status() DriverStatus {
	return d.status
}

// AssignedTruckID returns the truck bound to the driver, or nil when not on duty.
func (d *Driver) AssignedTruckID() *kernel.UUID {
	return d.assignedTruckID
}

// LastTrip returns the date of the last completed delivery.
func (d *Driver) LastTrip() *time.Time {
	return d.lastTrip
}

// Approve moves a newly registered driver to Approved.
func (d *Driver) Approve() error {
	if d.status != DriverPendingApproval {
		return errs.NewValueIsInvalidErrorWithCause(
			"driver status is invalid", fmt.Errorf("%s driver cannot be approved", d.status))
	}
	d.status = DriverApproved
	return nil
}

// SetAvailability switches an approved driver that is not on duty between
// Available and OffDuty.
func (d *Driver) SetAvailability(status DriverStatus) error {
	if status != DriverAvailable && status != DriverOffDuty {
		return errs.NewValueIsInvalidErrorWithCause(
			"driver status is invalid", fmt.Errorf("%s is not an availability status", status))
	}
	if d.status == DriverOnDuty || d.status == DriverPendingApproval {
		return errs.NewValueIsInvalidErrorWithCause(
			"driver status is invalid", fmt.Errorf("%s driver cannot change availability", d.status))
	}
	d.status = status
	return nil
}

// ValidateAssignable checks that the driver can be put on duty with a truck.
func (d *Driver) ValidateAssignable() error {
	if !d.status.IsAssignable() {
		return errs.NewValueIsInvalidErrorWithCause(
			"driverId", fmt.Errorf("%w: status is %s", ErrDriverNotAssignable, d.status))
	}
	if d.assignedTruckID != nil {
		return errs.NewValueIsInvalidErrorWithCause(
			"driverId", fmt.Errorf("%w: already bound to truck %s", ErrDriverNotAssignable, d.assignedTruckID))
	}
	return nil
}

// GoOnDuty binds the truck and moves the driver to OnDuty.
func (d *Driver) GoOnDuty(truckID kernel.UUID) error {
	if err := errors.Join(truckID.Validate(), d.ValidateAssignable()); err != nil {
		return err
	}
	d.status = DriverOnDuty
	d.assignedTruckID = &truckID
	return nil
}

// Release unbinds the truck and makes the driver available again.
func (d *Driver) Release() {
	d.status = DriverAvailable
	d.assignedTruckID = nil
}

// EndTrip releases the driver after a finished delivery and records the trip date.
func (d *Driver) EndTrip(at time.Time) {
	d.Release()
	y, m, day := at.Date()
	trip := time.Date(y, m, day, 0, 0, 0, 0, at.Location())
	d.lastTrip = &trip
}

func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Driver) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	d.name = name
	return nil
}

func (d *Driver) setLicenseNumber(licenseNumber string) error {
	licenseNumber = strings.TrimSpace(licenseNumber)
	if licenseNumber == "" {
		return errs.NewValueIsRequiredError("licenseNumber")
	}
	d.licenseNumber = licenseNumber
	return nil
}

func (d *Driver) setEmail(email string) error {
	email = strings.TrimSpace(email)
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("email", err)
		}
	}
	d.email = email
	return nil
}

func (d *Driver) setStatus(status DriverStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if (status == DriverOnDuty) != (d.assignedTruckID != nil) {
		return errs.NewValueIsInvalidErrorWithCause(
			"driver status is invalid",
			fmt.Errorf("%s driver with assigned truck %t is inconsistent", status, d.assignedTruckID != nil))
	}
	d.status = status
	return nil
}
