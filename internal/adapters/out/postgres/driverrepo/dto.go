// Package driverrepo persists driver aggregates in PostgreSQL.
package driverrepo

import (
	"time"

	"station/internal/core/domain/model/fleet"
	"station/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DriverDTO represents the database structure for persisting driver aggregates.
type DriverDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name            string    `gorm:"not null"`
	LicenseNumber   string    `gorm:"not null"`
	Phone           string
	Email           string
	Status          string     `gorm:"index;not null"`
	AssignedTruckID *uuid.UUID `gorm:"type:uuid"`
	LastTrip        *time.Time
}

func (DriverDTO) TableName() string {
	return "drivers"
}

func fromDomain(d *fleet.Driver) DriverDTO {
	var truckID *uuid.UUID
	if id := d.AssignedTruckID(); id != nil {
		raw := id.Bytes()
		truckID = &raw
	}

	return DriverDTO{
		ID:              d.ID().Bytes(),
		Name:            d.Name(),
		LicenseNumber:   d.LicenseNumber(),
		Phone:           d.Phone(),
		Email:           d.Email(),
		Status:          d.Status().String(),
		AssignedTruckID: truckID,
		LastTrip:        d.LastTrip(),
	}
}

func toDomain(dto DriverDTO) (*fleet.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := fleet.ParseDriverStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var truckID *kernel.UUID
	if dto.AssignedTruckID != nil {
		parsed, err := kernel.UUIDFromBytes(dto.AssignedTruckID[:])
		if err != nil {
			return nil, err
		}
		truckID = &parsed
	}

	var lastTrip *time.Time
	if dto.LastTrip != nil {
		utc := dto.LastTrip.UTC()
		lastTrip = &utc
	}

	return fleet.RestoreDriver(fleet.DriverState{
		ID:              id,
		Name:            dto.Name,
		LicenseNumber:   dto.LicenseNumber,
		Phone:           dto.Phone,
		Email:           dto.Email,
		Status:          status,
		AssignedTruckID: truckID,
		LastTrip:        lastTrip,
	})
}
