package orderrepo

import (
	"context"
	"fmt"

	"station/internal/adapters/out/postgres/pgtypes"
	"station/internal/core/domain/model/kernel"
	"station/internal/core/domain/model/order"
	"station/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository bound to db, which is
// usually the transaction of a unit of work.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order and the history it recorded.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgtypes.IsUniqueViolation(err) {
			return errs.NewValueIsInvalidErrorWithCause("poNumber",
				fmt.Errorf("purchase order %s already exists", aggregate.PONumber()))
		}
		return errs.NewPersistenceError("order.add", err)
	}

	return r.appendHistory(ctx, aggregate)
}

// Update saves every scalar field of an existing order, including cleared ones, and
// appends its new history.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		if pgtypes.IsUniqueViolation(result.Error) {
			return errs.NewValueIsInvalidErrorWithCause("poNumber", result.Error)
		}
		return errs.NewPersistenceError("order.update", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	return r.appendHistory(ctx, aggregate)
}

// Get retrieves an order by ID and locks its row for the rest of the transaction.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		return nil, pgtypes.NotFoundOr("order.get", "order", id, err)
	}

	return toDomain(dto)
}

// Delete removes an order and its history. A missing order is reported as not found.
func (r *GormOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	db := r.db.WithContext(ctx)

	if err := db.Where("order_id = ?", id.Bytes()).Delete(&LocationUpdateDTO{}).Error; err != nil {
		return errs.NewPersistenceError("order.delete", err)
	}
	if err := db.Where("order_id = ?", id.Bytes()).Delete(&JourneyInfoDTO{}).Error; err != nil {
		return errs.NewPersistenceError("order.delete", err)
	}

	result := db.Where("id = ?", id.Bytes()).Delete(&OrderDTO{})
	if result.Error != nil {
		return errs.NewPersistenceError("order.delete", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}

	return nil
}

// ListIDsByStatus returns the identifiers of orders in status, oldest first.
func (r *GormOrderRepository) ListIDsByStatus(ctx context.Context, status order.Status) ([]kernel.UUID, error) {
	var raw []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("status = ?", status.String()).
		Order("created_at").
		Pluck("id", &raw).Error
	if err != nil {
		return nil, errs.NewPersistenceError("order.list_ids", err)
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, value := range raw {
		id, err := kernel.UUIDFromBytes(value[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// AppendLocationUpdate stores one position sample. Appending the same sample twice
// is a no-op.
func (r *GormOrderRepository) AppendLocationUpdate(
	ctx context.Context,
	orderID kernel.UUID,
	update order.LocationUpdate,
) error {
	dto := locationUpdateFromDomain(orderID, update)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&dto).Error
	if err != nil {
		return errs.NewPersistenceError("order.append_location", err)
	}
	return nil
}

// AppendJourneyInfo stores one journey log entry. Appending the same entry twice is a no-op.
func (r *GormOrderRepository) AppendJourneyInfo(ctx context.Context, orderID kernel.UUID, entry order.JourneyInfo) error {
	dto := journeyInfoFromDomain(orderID, entry)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&dto).Error
	if err != nil {
		return errs.NewPersistenceError("order.append_journey", err)
	}
	return nil
}

func (r *GormOrderRepository) appendHistory(ctx context.Context, aggregate *order.Order) error {
	for _, update := range aggregate.NewLocationUpdates() {
		if err := r.AppendLocationUpdate(ctx, aggregate.ID(), update); err != nil {
			return err
		}
	}

	for _, entry := range aggregate.NewJourney() {
		if err := r.AppendJourneyInfo(ctx, aggregate.ID(), entry); err != nil {
			return err
		}
	}

	return nil
}
