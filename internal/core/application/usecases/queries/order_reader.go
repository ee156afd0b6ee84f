package queries

import (
	"context"
	"database/sql"
	"time"

	"station/internal/core/domain/model/kernel"
	"station/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// orderReader loads order snapshots for GetOrders and GetOrder.
type orderReader struct {
	db *gorm.DB
}

// read returns the orders matching id (all orders when id is nil), newest first, with
// their history attached.
func (r orderReader) read(ctx context.Context, id *kernel.UUID) ([]OrderResponse, error) {
	q := r.db.WithContext(ctx).
		Table("orders").
		Select(`id, po_number, product_type, quantity, price_per_litre, total_amount,
			payment_type, payment_reference, payment_date, payment_amount,
			origin::text, destination::text, current_location::text,
			driver_id, truck_id, status, volume_at_loading, volume_at_delivery,
			delivery_date, notes, created_at`).
		Order("created_at DESC, id")
	if id != nil {
		q = q.Where("id = ?", id.Bytes())
	}

	rows, err := q.Rows()
	if err != nil {
		return nil, errs.NewPersistenceError("orders.query", err)
	}
	defer rows.Close()

	orders := make([]OrderResponse, 0)
	index := make(map[uuid.UUID]int)

	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		index[o.ID.Bytes()] = len(orders)
		orders = append(orders, o)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewPersistenceError("orders.query", err)
	}

	if len(orders) == 0 {
		return orders, nil
	}

	if err = r.attachLocationUpdates(ctx, id, orders, index); err != nil {
		return nil, err
	}
	if err = r.attachJourney(ctx, id, orders, index); err != nil {
		return nil, err
	}

	return orders, nil
}

func scanOrder(rows *sql.Rows) (OrderResponse, error) {
	var (
		o                                OrderResponse
		id                               uuid.UUID
		driverID, truckID                uuid.NullUUID
		origin, destination, current *string
	)

	err := rows.Scan(
		&id, &o.PONumber, &o.ProductType, &o.Quantity, &o.PricePerLitre, &o.TotalAmount,
		&o.PaymentType, &o.PaymentReference, &o.PaymentDate, &o.PaymentAmount,
		&origin, &destination, &current,
		&driverID, &truckID, &o.Status, &o.VolumeAtLoading, &o.VolumeAtDelivery,
		&o.DeliveryDate, &o.Notes, &o.CreatedAt,
	)
	if err != nil {
		return OrderResponse{}, errs.NewPersistenceError("orders.scan", err)
	}

	if o.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return OrderResponse{}, err
	}
	if o.DriverID, err = optionalID(driverID); err != nil {
		return OrderResponse{}, err
	}
	if o.TruckID, err = optionalID(truckID); err != nil {
		return OrderResponse{}, err
	}

	o.Origin = optionalPoint(origin)
	o.Destination = optionalPoint(destination)
	o.CurrentLocation = optionalPoint(current)
	o.ProgressPercent = kernel.ProgressAlongRoute(o.Origin, o.Destination, o.CurrentLocation)
	o.PaymentDate = utc(o.PaymentDate)
	o.DeliveryDate = utc(o.DeliveryDate)
	o.CreatedAt = o.CreatedAt.UTC()
	o.LocationUpdates = make([]LocationUpdateResponse, 0)
	o.JourneyInfo = make([]JourneyInfoResponse, 0)

	return o, nil
}

func (r orderReader) attachLocationUpdates(
	ctx context.Context,
	id *kernel.UUID,
	orders []OrderResponse,
	index map[uuid.UUID]int,
) error {
	q := r.db.WithContext(ctx).
		Table("location_updates").
		Select("order_id, location::text, timestamp").
		Order("timestamp DESC, id")
	if id != nil {
		q = q.Where("order_id = ?", id.Bytes())
	}

	rows, err := q.Rows()
	if err != nil {
		return errs.NewPersistenceError("location_updates.query", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID  uuid.UUID
			location *string
			at       time.Time
		)
		if err = rows.Scan(&orderID, &location, &at); err != nil {
			return errs.NewPersistenceError("location_updates.scan", err)
		}

		point := optionalPoint(location)
		i, ok := index[orderID]
		if !ok || point == nil {
			continue
		}
		orders[i].LocationUpdates = append(orders[i].LocationUpdates, LocationUpdateResponse{
			Location:  *point,
			Timestamp: at.UTC(),
		})
	}

	if err = rows.Err(); err != nil {
		return errs.NewPersistenceError("location_updates.query", err)
	}
	return nil
}

func (r orderReader) attachJourney(
	ctx context.Context,
	id *kernel.UUID,
	orders []OrderResponse,
	index map[uuid.UUID]int,
) error {
	q := r.db.WithContext(ctx).
		Table("journey_info").
		Select("order_id, type, message, timestamp").
		Order("timestamp DESC, id")
	if id != nil {
		q = q.Where("order_id = ?", id.Bytes())
	}

	rows, err := q.Rows()
	if err != nil {
		return errs.NewPersistenceError("journey_info.query", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID uuid.UUID
			entry   JourneyInfoResponse
		)
		if err = rows.Scan(&orderID, &entry.Type, &entry.Message, &entry.Timestamp); err != nil {
			return errs.NewPersistenceError("journey_info.scan", err)
		}

		i, ok := index[orderID]
		if !ok {
			continue
		}
		entry.Timestamp = entry.Timestamp.UTC()
		orders[i].JourneyInfo = append(orders[i].JourneyInfo, entry)
	}

	if err = rows.Err(); err != nil {
		return errs.NewPersistenceError("journey_info.query", err)
	}
	return nil
}

func optionalID(raw uuid.NullUUID) (*kernel.UUID, error) {
	if !raw.Valid {
		return nil, nil //nolint:nilnil // NULL column
	}
	id, err := kernel.UUIDFromBytes(raw.UUID[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// optionalPoint parses a point column selected as text; malformed values read as absent.
func optionalPoint(raw *string) *kernel.Coordinate {
	if raw == nil {
		return nil
	}
	c, ok := kernel.ParseCoordinate(*raw)
	if !ok {
		return nil
	}
	return &c
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
