package postgres

import (
	"context"

	"station/internal/adapters/out/postgres/driverrepo"
	"station/internal/adapters/out/postgres/orderrepo"
	"station/internal/adapters/out/postgres/truckrepo"
	"station/internal/pkg/errs"

	"gorm.io/gorm"
)

// Models returns every table model of the station in migration order.
func Models() []any {
	models := orderrepo.Models()
	return append(models, &driverrepo.DriverDTO{}, &truckrepo.TruckDTO{})
}

// Migrate creates or updates the station schema.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return errs.NewPersistenceError("schema.migrate", err)
	}
	return nil
}
