package fleet

import (
	"errors"
	"fmt"
	"strings"

	"station/internal/core/domain/model/kernel"
	"station/internal/pkg/errs"
	"station/internal/pkg/guard"
)

var (
	// ErrTruckIsNotConstructed is returned when using an improperly initialized Truck.
	ErrTruckIsNotConstructed = errors.New("truck must be created via NewTruck or RestoreTruck")
	// ErrTruckNotAssignable is returned when a truck cannot be bound to a driver.
	ErrTruckNotAssignable = errors.New("truck is not assignable")
)

// GPS is the tracking unit of a truck. A truck without GPS has a nil *GPS, so the
// unit id and its last location can only exist while tracking is enabled.
type GPS struct {
	id       string
	location *kernel.Coordinate
}

// NewGPS creates an enabled GPS unit without a known location.
func NewGPS(id string) (*GPS, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errs.NewValueIsRequiredError("gpsId")
	}
	return &GPS{id: id}, nil
}

// RestoreGPS rebuilds a GPS unit with its last known location.
func RestoreGPS(id string, location *kernel.Coordinate) (*GPS, error) {
	g, err := NewGPS(id)
	if err != nil {
		return nil, err
	}
	g.location = location
	return g, nil
}

func (g *GPS) ID() string {
	return g.id
}

// Location returns the last reported position, or nil when none was reported.
func (g *GPS) Location() *kernel.Coordinate {
	return g.location
}

// TruckState is the persisted state of a truck, used by repositories with RestoreTruck.
type TruckState struct {
	ID               kernel.UUID
	PlateNumber      string
	Model            string
	Capacity         int
	FuelCapacity     int
	Status           TruckStatus
	GPS              *GPS
	AssignedDriverID *kernel.UUID
}

// Truck is a fuel tanker of the station fleet.
//
// Business rules:
//   - Plate number is required and unique; capacity and fuel capacity are positive litres
//   - A driver is bound to the truck exactly while it is in use or in transit
//   - Maintenance and out-of-service can only be set while no driver is bound
type Truck struct {
	id               kernel.UUID
	plateNumber      string
	model            string
	capacity         int
	fuelCapacity     int
	status           TruckStatus
	gps              *GPS
	assignedDriverID *kernel.UUID
	guard            guard.ConstructorGuard
}

// NewTruck registers an available truck with GPS disabled.
func NewTruck(id kernel.UUID, plateNumber, model string, capacity, fuelCapacity int) (*Truck, error) {
	t := &Truck{
		model:  strings.TrimSpace(model),
		status: TruckAvailable,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		t.setID(id),
		t.setPlateNumber(plateNumber),
		t.setCapacity(capacity, fuelCapacity),
	); err != nil {
		return nil, err
	}

	return t, nil
}

// RestoreTruck reconstructs a Truck from persistent storage.
func RestoreTruck(state TruckState) (*Truck, error) {
	t := &Truck{
		model:            state.Model,
		gps:              state.GPS,
		assignedDriverID: state.AssignedDriverID,
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		t.setID(state.ID),
		t.setPlateNumber(state.PlateNumber),
		t.setCapacity(state.Capacity, state.FuelCapacity),
		t.setStatus(state.Status),
	); err != nil {
		return nil, err
	}

	return t, nil
}

func (t *Truck) Validate() error {
	if t == nil {
		return ErrTruckIsNotConstructed
	}
	return t.guard.Validate(ErrTruckIsNotConstructed)
}

func (t *Truck) ID() kernel.UUID {
	return t.id
}

func (t *Truck) PlateNumber() string {
	return t.plateNumber
}

func (t *Truck) Model() string {
	return t.model
}

// Capacity is the cargo tank capacity in litres.
func (t *Truck) Capacity() int {
	return t.capacity
}

// FuelCapacity is the truck's own fuel tank capacity in litres.
func (t *Truck) FuelCapacity() int {
	return t.fuelCapacity
}

func (t *Truck) Status() TruckStatus {
	return t.status
}

// GPS returns the tracking unit, or nil when GPS is disabled.
func (t *Truck) GPS() *GPS {
	return t.gps
}

func (t *Truck) AssignedDriverID() *kernel.UUID {
	return t.assignedDriverID
}

// EnableGPS installs a tracking unit. Re-enabling with another id resets the location.
func (t *Truck) EnableGPS(gpsID string) error {
	g, err := NewGPS(gpsID)
	if err != nil {
		return err
	}
	if t.gps != nil && t.gps.id == g.id {
		return nil
	}
	t.gps = g
	return nil
}

// DisableGPS removes the tracking unit together with its last location.
func (t *Truck) DisableGPS() {
	t.gps = nil
}

// ReportLocation stores the position of an enabled GPS unit. It reports false when
// GPS is disabled.
func (t *Truck) ReportLocation(point kernel.Coordinate) bool {
	if t.gps == nil || point.Validate() != nil {
		return false
	}
	t.gps.location = &point
	return true
}

// SetStatus applies a manual status change. Only Available, Maintenance and
// OutOfService can be set, and only while no driver is bound.
func (t *Truck) SetStatus(status TruckStatus) error {
	if status != TruckAvailable && status != TruckMaintenance && status != TruckOutOfService {
		return errs.NewValueIsInvalidErrorWithCause(
			"truck status is invalid", fmt.Errorf("%s cannot be set manually", status))
	}
	if t.assignedDriverID != nil || t.status.IsBusy() {
		return errs.NewValueIsInvalidErrorWithCause(
			"truck status is invalid", fmt.Errorf("%s truck is bound to a driver", t.status))
	}
	t.status = status
	return nil
}

// ValidateAssignable checks that the truck can be bound to a driver.
func (t *Truck) ValidateAssignable() error {
	if t.status != TruckAvailable {
		return errs.NewValueIsInvalidErrorWithCause(
			"truckId", fmt.Errorf("%w: status is %s", ErrTruckNotAssignable, t.status))
	}
	if t.assignedDriverID != nil {
		return errs.NewValueIsInvalidErrorWithCause(
			"truckId", fmt.Errorf("%w: already bound to driver %s", ErrTruckNotAssignable, t.assignedDriverID))
	}
	return nil
}

// AssignDriver binds the driver and moves the truck to InUse.
func (t *Truck) AssignDriver(driverID kernel.UUID) error {
	if err := errors.Join(driverID.Validate(), t.ValidateAssignable()); err != nil {
		return err
	}
	t.status = TruckInUse
	t.assignedDriverID = &driverID
	return nil
}

// ValidateDeparture checks that the truck is in use by a driver.
func (t *Truck) ValidateDeparture() error {
	if t.status != TruckInUse || t.assignedDriverID == nil {
		return errs.NewValueIsInvalidErrorWithCause(
			"truck status is invalid", fmt.Errorf("%s truck cannot depart", t.status))
	}
	return nil
}

// Depart moves an in-use truck to InTransit.
func (t *Truck) Depart() error {
	if err := t.ValidateDeparture(); err != nil {
		return err
	}
	t.status = TruckInTransit
	return nil
}

// Release unbinds the driver and makes the truck available again.
func (t *Truck) Release() {
	t.status = TruckAvailable
	t.assignedDriverID = nil
}

func (t *Truck) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Truck) setPlateNumber(plateNumber string) error {
	plateNumber = strings.ToUpper(strings.TrimSpace(plateNumber))
	if plateNumber == "" {
		return errs.NewValueIsRequiredError("plateNumber")
	}
	t.plateNumber = plateNumber
	return nil
}

func (t *Truck) setCapacity(capacity, fuelCapacity int) error {
	var capacityErr, fuelErr error
	if capacity <= 0 {
		capacityErr = errs.NewValueIsInvalidErrorWithCause(
			"capacity", fmt.Errorf("%d is not greater than 0", capacity))
	}
	if fuelCapacity <= 0 {
		fuelErr = errs.NewValueIsInvalidErrorWithCause(
			"fuelCapacity", fmt.Errorf("%d is not greater than 0", fuelCapacity))
	}
	if err := errors.Join(capacityErr, fuelErr); err != nil {
		return err
	}
	t.capacity = capacity
	t.fuelCapacity = fuelCapacity
	return nil
}

func (t *Truck) setStatus(status TruckStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if status.IsBusy() != (t.assignedDriverID != nil) {
		return errs.NewValueIsInvalidErrorWithCause(
			"truck status is invalid",
			fmt.Errorf("%s truck with assigned driver %t is inconsistent", status, t.assignedDriverID != nil))
	}
	t.status = status
	return nil
}
