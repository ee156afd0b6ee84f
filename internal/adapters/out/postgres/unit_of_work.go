// Package postgres provides the GORM-based Unit of Work and the schema of the station.
//
// A unit of work groups the order, driver and truck repositories under one
// transaction. Units of work created by the same factory are serialized: Begin waits
// until the previous unit of work committed or rolled back, so lifecycle commands and
// transit ticks never interleave their writes.
//
// Usage:
//
//	factory := postgres.NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	o, err := uow.OrderRepository().Get(ctx, id)
//	if err != nil {
//	    return err
//	}
//	// ... mutate o
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Rollback after a successful Commit returns gorm.ErrInvalidTransaction and is safe to
// defer unconditionally.
package postgres

import (
	"context"

	"station/internal/adapters/out/postgres/driverrepo"
	"station/internal/adapters/out/postgres/orderrepo"
	"station/internal/adapters/out/postgres/truckrepo"
	"station/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one database connection
// and one write slot.
type GormUnitOfWorkFactory struct {
	db   *gorm.DB
	slot chan struct{}
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db)
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{
		db:   db,
		slot: make(chan struct{}, 1),
	}
}

// Create produces a new UnitOfWork instance. The instance holds no transaction until
// Begin is called.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:   f.db,
		slot: f.slot,
	}
}

// GormUnitOfWork coordinates one database transaction across the station repositories.
// An instance must not be shared between goroutines.
type GormUnitOfWork struct {
	db   *gorm.DB
	tx   *gorm.DB
	slot chan struct{}
}

// Begin waits for the write slot and starts a transaction. Calling Begin on an
// instance with an open transaction is a no-op. Cancelling ctx while waiting returns
// the context error without starting a transaction.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	select {
	case uow.slot <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		<-uow.slot
		return tx.Error
	}

	uow.tx = tx
	return nil
}

// Commit finalizes the transaction and frees the write slot.
// Returns gorm.ErrInvalidTransaction if no transaction is open.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.release()
	return err
}

// Rollback discards the transaction and frees the write slot.
// Returns gorm.ErrInvalidTransaction if no transaction is open.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.release()
	return err
}

// OrderRepository returns an order repository bound to the open transaction, or to the
// plain connection when no transaction is open.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

// DriverRepository returns a driver repository bound like OrderRepository.
func (uow *GormUnitOfWork) DriverRepository() ports.DriverRepository {
	return driverrepo.NewGormDriverRepository(uow.conn())
}

// TruckRepository returns a truck repository bound like OrderRepository.
func (uow *GormUnitOfWork) TruckRepository() ports.TruckRepository {
	return truckrepo.NewGormTruckRepository(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) release() {
	uow.tx = nil
	<-uow.slot
}
