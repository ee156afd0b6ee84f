package driverrepo_test

import (
	"context"
	"testing"
	"time"

	"station/internal/adapters/out/postgres/driverrepo"
	"station/internal/core/domain/model/fleet"
	"station/internal/core/domain/model/kernel"
	"station/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DriverRepositoryIntegrationTestSuite verifies driver persistence against a real PostgreSQL.
type DriverRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *driverrepo.GormDriverRepository
}

func (suite *DriverRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&driverrepo.DriverDTO{}))
}

func (suite *DriverRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE drivers").Error)
	suite.repository = driverrepo.NewGormDriverRepository(suite.db)
}

func (suite *DriverRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *DriverRepositoryIntegrationTestSuite) TestAdd_Get_RoundTrip() {
	ctx := context.Background()
	d, err := fleet.NewDriver(kernel.NewUUID(), "Adaeze Okafor", "LAG-123", "+2348000000000", "ada@example.com")
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Add(ctx, d))
	retrieved, err := suite.repository.Get(ctx, d.ID())

	suite.Require().NoError(err)
	suite.Equal(d.ID(), retrieved.ID())
	suite.Equal("Adaeze Okafor", retrieved.Name())
	suite.Equal("LAG-123", retrieved.LicenseNumber())
	suite.Equal("ada@example.com", retrieved.Email())
	suite.Equal(fleet.DriverPendingApproval, retrieved.Status())
	suite.Nil(retrieved.AssignedTruckID())
}

func (suite *DriverRepositoryIntegrationTestSuite) TestAdd_DuplicateID_ReturnsValidationError() {
	ctx := context.Background()
	d, err := fleet.NewDriver(kernel.NewUUID(), "A", "L1", "", "")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, d))

	err = suite.repository.Add(ctx, d)

	suite.Require().ErrorIs(err, errs.ErrValueIsInvalid)
}

func (suite *DriverRepositoryIntegrationTestSuite) TestUpdate_ClearsAssignedTruck() {
	ctx := context.Background()
	d, err := fleet.NewDriver(kernel.NewUUID(), "A", "L1", "", "")
	suite.Require().NoError(err)
	suite.Require().NoError(d.Approve())
	suite.Require().NoError(d.GoOnDuty(kernel.NewUUID()))
	suite.Require().NoError(suite.repository.Add(ctx, d))

	tripEnd := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	d.EndTrip(tripEnd)
	suite.Require().NoError(suite.repository.Update(ctx, d))

	retrieved, err := suite.repository.Get(ctx, d.ID())
	suite.Require().NoError(err)
	suite.Equal(fleet.DriverAvailable, retrieved.Status())
	suite.Nil(retrieved.AssignedTruckID())
	suite.Require().NotNil(retrieved.LastTrip())
	suite.True(d.LastTrip().Equal(*retrieved.LastTrip()))
}

func (suite *DriverRepositoryIntegrationTestSuite) TestUpdate_NonExistentDriver_ReturnsNotFoundError() {
	d, err := fleet.NewDriver(kernel.NewUUID(), "A", "L1", "", "")
	suite.Require().NoError(err)

	err = suite.repository.Update(context.Background(), d)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *DriverRepositoryIntegrationTestSuite) TestGet_NonExistentDriver_ReturnsNotFoundError() {
	retrieved, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Nil(retrieved)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func TestDriverRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(DriverRepositoryIntegrationTestSuite))
}
