// Package orderrepo persists order aggregates and their append-only history in PostgreSQL.
// Orders live in the orders table; location updates and journey entries live in their
// own tables keyed by order_id and are only ever inserted.
package orderrepo

import (
	"time"

	"station/internal/adapters/out/postgres/pgtypes"
	"station/internal/core/domain/model/kernel"
	"station/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status is stored by its string form so that ad-hoc queries and reports stay readable.
type OrderDTO struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey"`
	PONumber         string         `gorm:"column:po_number;uniqueIndex;not null"`
	ProductType      string         `gorm:"not null"`
	Quantity         string         `gorm:"not null"`
	PricePerLitre    string         `gorm:"column:price_per_litre"`
	TotalAmount      string
	PaymentType      string
	PaymentReference string
	PaymentDate      *time.Time
	PaymentAmount    string
	Origin           pgtypes.Point
	Destination      pgtypes.Point
	CurrentLocation  pgtypes.Point
	DriverID         *uuid.UUID `gorm:"type:uuid;index"`
	TruckID          *uuid.UUID `gorm:"type:uuid;index"`
	Status           string     `gorm:"index;not null"`
	VolumeAtLoading  *float64
	VolumeAtDelivery *float64
	DeliveryDate     *time.Time
	Notes            string
	CreatedAt        time.Time `gorm:"index;not null"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// LocationUpdateDTO is one stored position sample of an order.
type LocationUpdateDTO struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID     `gorm:"type:uuid;index;not null"`
	Location  pgtypes.Point `gorm:"not null"`
	Timestamp time.Time     `gorm:"not null"`
}

func (LocationUpdateDTO) TableName() string {
	return "location_updates"
}

// JourneyInfoDTO is one stored journey log entry of an order.
type JourneyInfoDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Type      string    `gorm:"not null"`
	Message   string
	Timestamp time.Time `gorm:"not null"`
}

func (JourneyInfoDTO) TableName() string {
	return "journey_info"
}

// Models lists every DTO owned by this package, in migration order.
func Models() []any {
	return []any{&OrderDTO{}, &LocationUpdateDTO{}, &JourneyInfoDTO{}}
}

func fromDomain(o *order.Order) OrderDTO {
	terms := o.Terms()

	return OrderDTO{
		ID:               o.ID().Bytes(),
		PONumber:         o.PONumber(),
		ProductType:      terms.ProductType,
		Quantity:         terms.Quantity,
		PricePerLitre:    terms.PricePerLitre,
		TotalAmount:      terms.TotalAmount,
		PaymentType:      terms.PaymentType,
		PaymentReference: o.PaymentReference(),
		PaymentDate:      o.PaymentDate(),
		PaymentAmount:    o.PaymentAmount(),
		Origin:           pgtypes.NewPoint(o.Origin()),
		Destination:      pgtypes.NewPoint(o.Destination()),
		CurrentLocation:  pgtypes.NewPoint(o.CurrentLocation()),
		DriverID:         rawID(o.DriverID()),
		TruckID:          rawID(o.TruckID()),
		Status:           o.Status().String(),
		VolumeAtLoading:  o.VolumeAtLoading(),
		VolumeAtDelivery: o.VolumeAtDelivery(),
		DeliveryDate:     o.DeliveryDate(),
		Notes:            o.Notes(),
		CreatedAt:        o.CreatedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	driverID, err := domainID(dto.DriverID)
	if err != nil {
		return nil, err
	}

	truckID, err := domainID(dto.TruckID)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.State{
		ID:       id,
		PONumber: dto.PONumber,
		Terms: order.Terms{
			ProductType:   dto.ProductType,
			Quantity:      dto.Quantity,
			PricePerLitre: dto.PricePerLitre,
			TotalAmount:   dto.TotalAmount,
			PaymentType:   dto.PaymentType,
		},
		PaymentReference: dto.PaymentReference,
		PaymentDate:      utcPtr(dto.PaymentDate),
		PaymentAmount:    dto.PaymentAmount,
		Origin:           dto.Origin.Ptr(),
		Destination:      dto.Destination.Ptr(),
		CurrentLocation:  dto.CurrentLocation.Ptr(),
		DriverID:         driverID,
		TruckID:          truckID,
		Status:           status,
		VolumeAtLoading:  dto.VolumeAtLoading,
		VolumeAtDelivery: dto.VolumeAtDelivery,
		DeliveryDate:     utcPtr(dto.DeliveryDate),
		Notes:            dto.Notes,
		CreatedAt:        dto.CreatedAt.UTC(),
	})
}

func locationUpdateFromDomain(orderID kernel.UUID, u order.LocationUpdate) LocationUpdateDTO {
	point := u.Point()
	return LocationUpdateDTO{
		ID:        u.ID().Bytes(),
		OrderID:   orderID.Bytes(),
		Location:  pgtypes.NewPoint(&point),
		Timestamp: u.At(),
	}
}

func journeyInfoFromDomain(orderID kernel.UUID, j order.JourneyInfo) JourneyInfoDTO {
	return JourneyInfoDTO{
		ID:        j.ID().Bytes(),
		OrderID:   orderID.Bytes(),
		Type:      string(j.Kind()),
		Message:   j.Message(),
		Timestamp: j.At(),
	}
}

func rawID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func domainID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil //nolint:nilnil // unassigned
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}
