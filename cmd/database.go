package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"station/internal/adapters/out/postgres"

	_ "github.com/lib/pq" // registers the "postgres" database/sql driver
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDatabase connects to PostgreSQL through lib/pq, wraps the pool in gorm and
// migrates the schema.
func OpenDatabase(ctx context.Context, config Config) (*gorm.DB, error) {
	sqlDB, err := sql.Open("postgres", config.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	sqlDB.SetMaxOpenConns(config.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(config.DBMaxOpenConns)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err = sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to reach database %s:%s: %w", config.DBHost, config.DBPort, err)
	}

	gormDB, err := gorm.Open(postgresdriver.New(postgresdriver.Config{Conn: sqlDB}), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to initialise gorm: %w", err)
	}

	if err = postgres.Migrate(ctx, gormDB); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return gormDB, nil
}
