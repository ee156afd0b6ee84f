package queries

import (
	"errors"
	"time"

	"station/internal/core/domain/model/kernel"
	"station/internal/pkg/guard"
)

var (
	ErrGetDriversQueryIsNotConstructed = errors.New(
		"GetDriversQuery must be created via NewGetDriversQuery constructor",
	)
	ErrGetTrucksQueryIsNotConstructed = errors.New(
		"GetTrucksQuery must be created via NewGetTrucksQuery constructor",
	)
)

// GetDriversQuery retrieves every registered driver ordered by name.
type GetDriversQuery struct {
	guard guard.ConstructorGuard
}

func NewGetDriversQuery() GetDriversQuery {
	return GetDriversQuery{guard: guard.NewConstructorGuard()}
}

func (q GetDriversQuery) Validate() error {
	return q.guard.Validate(ErrGetDriversQueryIsNotConstructed)
}

// GetDriversQueryResponse is the read snapshot of one driver.
type GetDriversQueryResponse struct {
	ID              kernel.UUID  `json:"id"`
	Name            string       `json:"name"`
	LicenseNumber   string       `json:"licenseNumber"`
	Phone           string       `json:"phone"`
	Email           string       `json:"email"`
	Status          string       `json:"status"`
	AssignedTruckID *kernel.UUID `json:"assignedTruckId"`
	LastTrip        *time.Time   `json:"lastTrip"`
}

// GetTrucksQuery retrieves every truck ordered by plate number.
type GetTrucksQuery struct {
	guard guard.ConstructorGuard
}

func NewGetTrucksQuery() GetTrucksQuery {
	return GetTrucksQuery{guard: guard.NewConstructorGuard()}
}

func (q GetTrucksQuery) Validate() error {
	return q.guard.Validate(ErrGetTrucksQueryIsNotConstructed)
}

// GetTrucksQueryResponse is the read snapshot of one truck. GPSID and GPSLocation are
// only set while GPS is enabled.
type GetTrucksQueryResponse struct {
	ID               kernel.UUID        `json:"id"`
	PlateNumber      string             `json:"plateNumber"`
	Model            string             `json:"model"`
	Capacity         int                `json:"capacity"`
	FuelCapacity     int                `json:"fuelCapacity"`
	Status           string             `json:"status"`
	GPSEnabled       bool               `json:"gpsEnabled"`
	GPSID            string             `json:"gpsId,omitempty"`
	GPSLocation      *kernel.Coordinate `json:"gpsLocation"`
	AssignedDriverID *kernel.UUID       `json:"assignedDriverId"`
}
