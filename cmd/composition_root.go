package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	httpadapter "station/internal/adapters/in/http"
	"station/internal/adapters/out/journey"
	"station/internal/adapters/out/notify"
	"station/internal/adapters/out/postgres"
	"station/internal/adapters/out/telemetry"
	"station/internal/core/application/usecases/commands"
	"station/internal/core/application/usecases/queries"
	"station/internal/core/domain/services"
	"station/internal/core/ports"
	"station/internal/jobs"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config      Config
	logger      *slog.Logger
	gormDB      *gorm.DB
	uowFactory  *postgres.GormUnitOfWorkFactory
	coordinator services.DeliveryCoordinator
	simulator   *services.TransitSimulator

	hub       *notify.Hub
	notifier  ports.Notifier
	telemetry ports.TelemetryPublisher

	jobManager *jobs.JobManager
	closers    []func() error
}

// NewCompositionRoot wires the adapters around gormDB. Kafka, Redis and MQTT are
// connected only when configured; a configured sink that cannot be reached fails
// the start-up.
func NewCompositionRoot(ctx context.Context, config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	coordinator, err := services.NewDeliveryCoordinator(config.Depot, config.Customer)
	if err != nil {
		return nil, err
	}

	catalog, err := journey.NewRandomCatalog(
		config.JourneyEventProbability,
		uint64(time.Now().UnixNano()), //nolint:gosec // seed only
		journey.DefaultCatalog(),
	)
	if err != nil {
		return nil, err
	}
	simulator, err := services.NewTransitSimulator(catalog, config.TransitStepFraction, config.TransitArrivalEpsilon)
	if err != nil {
		return nil, err
	}

	c := &CompositionRoot{
		config:      config,
		logger:      logger,
		gormDB:      gormDB,
		uowFactory:  postgres.NewGormUnitOfWorkFactory(gormDB),
		coordinator: coordinator,
		simulator:   simulator,
		hub:         notify.NewHub(notify.DefaultSubscriptionBuffer),
	}

	if err = c.connectNotifiers(); err != nil {
		_ = c.Close()
		return nil, err
	}
	if err = c.connectTelemetry(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}

	advance := c.CreateAdvanceTransitCommandHandler()
	c.jobManager = jobs.NewJobManager(&advance, config.TransitTickInterval, logger)

	return c, nil
}

func (c *CompositionRoot) connectNotifiers() error {
	sinks := []ports.Notifier{c.hub, notify.NewLogNotifier(c.logger)}

	if brokers := c.config.KafkaBrokers(); len(brokers) > 0 {
		producer, err := notify.NewKafkaProducer(brokers)
		if err != nil {
			return err
		}
		kafka := notify.NewKafkaNotifier(producer, c.config.KafkaOrderChangedTopic)
		c.closers = append(c.closers, kafka.Close)
		sinks = append(sinks, kafka)
		c.logger.Info("Kafka notifications enabled", "topic", c.config.KafkaOrderChangedTopic)
	}

	c.notifier = notify.NewFanout(c.logger, sinks...)
	return nil
}

func (c *CompositionRoot) connectTelemetry(ctx context.Context) error {
	var publishers []ports.TelemetryPublisher

	if c.config.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     c.config.RedisAddr,
			Password: c.config.RedisPassword,
			DB:       c.config.RedisDB,
		})
		c.closers = append(c.closers, rdb.Close)
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to connect to redis %s: %w", c.config.RedisAddr, err)
		}
		publishers = append(publishers, telemetry.NewRedisPublisher(rdb, telemetry.DefaultLocationTTL))
		c.logger.Info("Redis telemetry enabled", "addr", c.config.RedisAddr)
	}

	if c.config.MQTTBrokerURL != "" {
		client, err := telemetry.NewMQTTClient(c.config.MQTTBrokerURL, c.config.MQTTClientID)
		if err != nil {
			return err
		}
		c.closers = append(c.closers, func() error {
			client.Disconnect(250)
			return nil
		})
		publishers = append(publishers, telemetry.NewMQTTPublisher(client))
		c.logger.Info("MQTT telemetry enabled", "broker", c.config.MQTTBrokerURL)
	}

	if len(publishers) > 0 {
		c.telemetry = telemetry.NewFanout(c.logger, publishers...)
	}
	return nil
}

// Close releases the external connections. The database is owned by the caller.
func (c *CompositionRoot) Close() error {
	var closeErrs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		closeErrs = append(closeErrs, c.closers[i]())
	}
	c.closers = nil
	return errors.Join(closeErrs...)
}

func (c *CompositionRoot) JobManager() *jobs.JobManager {
	return c.jobManager
}

func (c *CompositionRoot) Hub() *notify.Hub {
	return c.hub
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) driverUoWFactory() commands.DriverUoWFactory {
	return FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) truckUoWFactory() commands.TruckUoWFactory {
	return FuncTruckUoWFactory(func() commands.TruckUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateMarkOrderPaidCommandHandler() commands.MarkOrderPaidCommandHandler {
	return commands.NewMarkOrderPaidCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateAssignDriverAndTruckCommandHandler() commands.AssignDriverAndTruckCommandHandler {
	return commands.NewAssignDriverAndTruckCommandHandler(c.fullUoWFactory(), c.coordinator, c.notifier)
}

func (c *CompositionRoot) CreateStartDeliveryCommandHandler() commands.StartDeliveryCommandHandler {
	return commands.NewStartDeliveryCommandHandler(c.fullUoWFactory(), c.coordinator, c.waker(), c.notifier)
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	return commands.NewCompleteDeliveryCommandHandler(c.fullUoWFactory(), c.coordinator, c.notifier)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.fullUoWFactory(), c.coordinator, c.waker(), c.notifier)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.fullUoWFactory(), c.coordinator, c.notifier)
}

func (c *CompositionRoot) CreateAdvanceTransitCommandHandler() commands.AdvanceTransitCommandHandler {
	return commands.NewAdvanceTransitCommandHandler(c.fullUoWFactory(), c.simulator, c.telemetry, c.logger)
}

func (c *CompositionRoot) CreateCreateDriverCommandHandler() commands.CreateDriverCommandHandler {
	return commands.NewCreateDriverCommandHandler(c.driverUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateApproveDriverCommandHandler() commands.ApproveDriverCommandHandler {
	return commands.NewApproveDriverCommandHandler(c.driverUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateSetDriverAvailabilityCommandHandler() commands.SetDriverAvailabilityCommandHandler {
	return commands.NewSetDriverAvailabilityCommandHandler(c.driverUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateCreateTruckCommandHandler() commands.CreateTruckCommandHandler {
	return commands.NewCreateTruckCommandHandler(c.truckUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateSetTruckGPSCommandHandler() commands.SetTruckGPSCommandHandler {
	return commands.NewSetTruckGPSCommandHandler(c.truckUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateSetTruckStatusCommandHandler() commands.SetTruckStatusCommandHandler {
	return commands.NewSetTruckStatusCommandHandler(c.truckUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDriversQueryHandler() queries.GetDriversQueryHandler {
	return queries.NewGetDriversQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetTrucksQueryHandler() queries.GetTrucksQueryHandler {
	return queries.NewGetTrucksQueryHandler(c.gormDB)
}

// CreateHTTPServer builds the HTTP adapter with every use case.
func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	createOrder := c.CreateCreateOrderCommandHandler()
	markOrderPaid := c.CreateMarkOrderPaidCommandHandler()
	assign := c.CreateAssignDriverAndTruckCommandHandler()
	startDelivery := c.CreateStartDeliveryCommandHandler()
	completeDelivery := c.CreateCompleteDeliveryCommandHandler()
	updateStatus := c.CreateUpdateOrderStatusCommandHandler()
	deleteOrder := c.CreateDeleteOrderCommandHandler()
	createDriver := c.CreateCreateDriverCommandHandler()
	approveDriver := c.CreateApproveDriverCommandHandler()
	setAvailability := c.CreateSetDriverAvailabilityCommandHandler()
	createTruck := c.CreateCreateTruckCommandHandler()
	setGPS := c.CreateSetTruckGPSCommandHandler()
	setTruckStatus := c.CreateSetTruckStatusCommandHandler()

	return httpadapter.NewServer(httpadapter.Handlers{
		CreateOrder:           &createOrder,
		MarkOrderPaid:         &markOrderPaid,
		AssignDriverTruck:     &assign,
		StartDelivery:         &startDelivery,
		CompleteDelivery:      &completeDelivery,
		UpdateOrderStatus:     &updateStatus,
		DeleteOrder:           &deleteOrder,
		CreateDriver:          &createDriver,
		ApproveDriver:         &approveDriver,
		SetDriverAvailability: &setAvailability,
		CreateTruck:           &createTruck,
		SetTruckGPS:           &setGPS,
		SetTruckStatus:        &setTruckStatus,
		GetOrders:             c.CreateGetOrdersQueryHandler(),
		GetOrder:              c.CreateGetOrderQueryHandler(),
		GetDrivers:            c.CreateGetDriversQueryHandler(),
		GetTrucks:             c.CreateGetTrucksQueryHandler(),
	}, c.hub, c.logger)
}

// waker returns the transit job, or nil while the job manager is being built.
func (c *CompositionRoot) waker() commands.TransitWaker {
	if c.jobManager == nil {
		return nil
	}
	return c.jobManager.Transit()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDriverUoWFactory func() commands.DriverUoW

func (f FuncDriverUoWFactory) Create() commands.DriverUoW {
	return f()
}

type FuncTruckUoWFactory func() commands.TruckUoW

func (f FuncTruckUoWFactory) Create() commands.TruckUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
