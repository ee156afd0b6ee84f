package truckrepo

import (
	"context"
	"fmt"

	"station/internal/adapters/out/postgres/pgtypes"
	"station/internal/core/domain/model/fleet"
	"station/internal/core/domain/model/kernel"
	"station/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTruckRepository implements ports.TruckRepository using GORM.
type GormTruckRepository struct {
	db *gorm.DB
}

func NewGormTruckRepository(db *gorm.DB) *GormTruckRepository {
	return &GormTruckRepository{db: db}
}

// Add saves a new truck. A duplicate plate number is reported as a validation error.
func (r *GormTruckRepository) Add(ctx context.Context, truck *fleet.Truck) error {
	if err := truck.Validate(); err != nil {
		return err
	}

	dto := fromDomain(truck)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgtypes.IsUniqueViolation(err) {
			return duplicatePlate(truck.PlateNumber())
		}
		return errs.NewPersistenceError("truck.add", err)
	}

	return nil
}

// Update saves every field of an existing truck, including cleared ones.
func (r *GormTruckRepository) Update(ctx context.Context, truck *fleet.Truck) error {
	if err := truck.Validate(); err != nil {
		return err
	}

	dto := fromDomain(truck)
	result := r.db.WithContext(ctx).Model(&TruckDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		if pgtypes.IsUniqueViolation(result.Error) {
			return duplicatePlate(truck.PlateNumber())
		}
		return errs.NewPersistenceError("truck.update", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("truck", truck.ID().String())
	}

	return nil
}

// Get retrieves a truck by ID and locks its row for the rest of the transaction.
func (r *GormTruckRepository) Get(ctx context.Context, id kernel.UUID) (*fleet.Truck, error) {
	var dto TruckDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		return nil, pgtypes.NotFoundOr("truck.get", "truck", id, err)
	}

	return toDomain(dto)
}

func duplicatePlate(plate string) error {
	return errs.NewValueIsInvalidErrorWithCause("plateNumber", fmt.Errorf("truck %s already exists", plate))
}
