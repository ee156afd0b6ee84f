// Package truckrepo persists truck aggregates in PostgreSQL.
package truckrepo

import (
	"station/internal/adapters/out/postgres/pgtypes"
	"station/internal/core/domain/model/fleet"
	"station/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// TruckDTO represents the database structure for persisting truck aggregates.
// The GPS unit is flattened into gps_enabled, gps_id and gps_location.
type TruckDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	PlateNumber      string    `gorm:"uniqueIndex;not null"`
	Model            string
	Capacity         int    `gorm:"not null"`
	FuelCapacity     int    `gorm:"not null"`
	Status           string `gorm:"index;not null"`
	GPSEnabled       bool   `gorm:"column:gps_enabled;not null"`
	GPSID            string `gorm:"column:gps_id"`
	GPSLocation      pgtypes.Point
	AssignedDriverID *uuid.UUID `gorm:"type:uuid"`
}

func (TruckDTO) TableName() string {
	return "trucks"
}

func fromDomain(t *fleet.Truck) TruckDTO {
	dto := TruckDTO{
		ID:           t.ID().Bytes(),
		PlateNumber:  t.PlateNumber(),
		Model:        t.Model(),
		Capacity:     t.Capacity(),
		FuelCapacity: t.FuelCapacity(),
		Status:       t.Status().String(),
	}

	if gps := t.GPS(); gps != nil {
		dto.GPSEnabled = true
		dto.GPSID = gps.ID()
		dto.GPSLocation = pgtypes.NewPoint(gps.Location())
	}

	if id := t.AssignedDriverID(); id != nil {
		raw := id.Bytes()
		dto.AssignedDriverID = &raw
	}

	return dto
}

func toDomain(dto TruckDTO) (*fleet.Truck, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := fleet.ParseTruckStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var gps *fleet.GPS
	if dto.GPSEnabled {
		gps, err = fleet.RestoreGPS(dto.GPSID, dto.GPSLocation.Ptr())
		if err != nil {
			return nil, err
		}
	}

	var driverID *kernel.UUID
	if dto.AssignedDriverID != nil {
		parsed, err := kernel.UUIDFromBytes(dto.AssignedDriverID[:])
		if err != nil {
			return nil, err
		}
		driverID = &parsed
	}

	return fleet.RestoreTruck(fleet.TruckState{
		ID:               id,
		PlateNumber:      dto.PlateNumber,
		Model:            dto.Model,
		Capacity:         dto.Capacity,
		FuelCapacity:     dto.FuelCapacity,
		Status:           status,
		GPS:              gps,
		AssignedDriverID: driverID,
	})
}
