package queries

import (
	"context"

	"station/internal/core/domain/model/kernel"
	"station/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetDriversQueryHandler struct {
	db *gorm.DB
}

func NewGetDriversQueryHandler(db *gorm.DB) GetDriversQueryHandler {
	return GetDriversQueryHandler{db: db}
}

func (h GetDriversQueryHandler) Handle(ctx context.Context, query GetDriversQuery) ([]GetDriversQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			license_number,
			phone,
			email,
			status,
			assigned_truck_id,
			last_trip
		FROM drivers
		ORDER BY name, id
	`).Rows()
	if err != nil {
		return nil, errs.NewPersistenceError("drivers.query", err)
	}
	defer rows.Close()

	drivers := make([]GetDriversQueryResponse, 0)
	for rows.Next() {
		var (
			d       GetDriversQueryResponse
			id      uuid.UUID
			truckID uuid.NullUUID
		)

		err = rows.Scan(&id, &d.Name, &d.LicenseNumber, &d.Phone, &d.Email, &d.Status, &truckID, &d.LastTrip)
		if err != nil {
			return nil, errs.NewPersistenceError("drivers.scan", err)
		}

		if d.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if d.AssignedTruckID, err = optionalID(truckID); err != nil {
			return nil, err
		}
		d.LastTrip = utc(d.LastTrip)

		drivers = append(drivers, d)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewPersistenceError("drivers.query", err)
	}

	return drivers, nil
}

type GetTrucksQueryHandler struct {
	db *gorm.DB
}

func NewGetTrucksQueryHandler(db *gorm.DB) GetTrucksQueryHandler {
	return GetTrucksQueryHandler{db: db}
}

func (h GetTrucksQueryHandler) Handle(ctx context.Context, query GetTrucksQuery) ([]GetTrucksQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			plate_number,
			model,
			capacity,
			fuel_capacity,
			status,
			gps_enabled,
			gps_id,
			gps_location::text,
			assigned_driver_id
		FROM trucks
		ORDER BY plate_number
	`).Rows()
	if err != nil {
		return nil, errs.NewPersistenceError("trucks.query", err)
	}
	defer rows.Close()

	trucks := make([]GetTrucksQueryResponse, 0)
	for rows.Next() {
		var (
			t        GetTrucksQueryResponse
			id       uuid.UUID
			gpsID    *string
			location *string
			driverID uuid.NullUUID
		)

		err = rows.Scan(&id, &t.PlateNumber, &t.Model, &t.Capacity, &t.FuelCapacity, &t.Status,
			&t.GPSEnabled, &gpsID, &location, &driverID)
		if err != nil {
			return nil, errs.NewPersistenceError("trucks.scan", err)
		}

		if t.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if t.AssignedDriverID, err = optionalID(driverID); err != nil {
			return nil, err
		}
		if t.GPSEnabled {
			if gpsID != nil {
				t.GPSID = *gpsID
			}
			t.GPSLocation = optionalPoint(location)
		}

		trucks = append(trucks, t)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewPersistenceError("trucks.query", err)
	}

	return trucks, nil
}
