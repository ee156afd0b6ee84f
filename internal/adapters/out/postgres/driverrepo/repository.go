package driverrepo

import (
	"context"

	"station/internal/adapters/out/postgres/pgtypes"
	"station/internal/core/domain/model/fleet"
	"station/internal/core/domain/model/kernel"
	"station/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDriverRepository implements ports.DriverRepository using GORM.
type GormDriverRepository struct {
	db *gorm.DB
}

func NewGormDriverRepository(db *gorm.DB) *GormDriverRepository {
	return &GormDriverRepository{db: db}
}

// Add saves a new driver to the database.
func (r *GormDriverRepository) Add(ctx context.Context, driver *fleet.Driver) error {
	if err := driver.Validate(); err != nil {
		return err
	}

	dto := fromDomain(driver)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgtypes.IsUniqueViolation(err) {
			return errs.NewValueIsInvalidErrorWithCause("driverId", err)
		}
		return errs.NewPersistenceError("driver.add", err)
	}

	return nil
}

// Update saves every field of an existing driver, including cleared ones.
func (r *GormDriverRepository) Update(ctx context.Context, driver *fleet.Driver) error {
	if err := driver.Validate(); err != nil {
		return err
	}

	dto := fromDomain(driver)
	result := r.db.WithContext(ctx).Model(&DriverDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return errs.NewPersistenceError("driver.update", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("driver", driver.ID().String())
	}

	return nil
}

// Get retrieves a driver by ID and locks its row for the rest of the transaction.
func (r *GormDriverRepository) Get(ctx context.Context, id kernel.UUID) (*fleet.Driver, error) {
	var dto DriverDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		return nil, pgtypes.NotFoundOr("driver.get", "driver", id, err)
	}

	return toDomain(dto)
}
