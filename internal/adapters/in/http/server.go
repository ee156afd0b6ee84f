package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"station/internal/adapters/out/notify"
	"station/internal/core/application/usecases/commands"
	"station/internal/core/application/usecases/queries"
	"station/internal/core/domain/model/kernel"
	"station/internal/core/domain/model/order"
	"station/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

const apiBaseURL = "/api/v1"

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	hub      *notify.Hub
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
// hub feeds the notification stream.
func NewServer(handlers Handlers, hub *notify.Hub, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		hub:      hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: logger.With("component", "http"),
	}
}

// Register mounts the health check, the Swagger UI and the validated API on e.
func (s *Server) Register(ctx context.Context, e *echo.Echo) error {
	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return err
	}
	validator, err := requestValidator(doc)
	if err != nil {
		return err
	}
	if err = registerSwagger(doc); err != nil {
		return err
	}

	e.HTTPErrorHandler = s.handleHTTPError

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	RegisterHandlersWithBaseURL(e.Group(apiBaseURL, validator), s, "")
	return nil
}

type newOrderRequest struct {
	PONumber      string             `json:"poNumber"`
	ProductType   string             `json:"productType"`
	Quantity      string             `json:"quantity"`
	PricePerLitre string             `json:"pricePerLitre"`
	TotalAmount   string             `json:"totalAmount"`
	PaymentType   string             `json:"paymentType"`
	Origin        *kernel.Coordinate `json:"origin"`
	Destination   *kernel.Coordinate `json:"destination"`
}

type orderCreatedResponse struct {
	ID       kernel.UUID `json:"id"`
	PONumber string      `json:"poNumber"`
}

type createdResponse struct {
	ID kernel.UUID `json:"id"`
}

type paymentRequest struct {
	PaymentReference string `json:"paymentReference"`
}

type assignmentRequest struct {
	DriverID uuid.UUID `json:"driverId"`
	TruckID  uuid.UUID `json:"truckId"`
}

type completionRequest struct {
	VolumeDelivered string `json:"volumeDelivered"`
}

type reconciliationResponse struct {
	VolumeAtLoading  float64 `json:"volumeAtLoading"`
	VolumeAtDelivery float64 `json:"volumeAtDelivery"`
	DiffPercent      float64 `json:"diffPercent"`
	Flagged          bool    `json:"flagged"`
	Note             string  `json:"note"`
}

type statusRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes"`
}

type newDriverRequest struct {
	Name          string `json:"name"`
	LicenseNumber string `json:"licenseNumber"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
}

type newTruckRequest struct {
	PlateNumber  string `json:"plateNumber"`
	Model        string `json:"model"`
	Capacity     int    `json:"capacity"`
	FuelCapacity int    `json:"fuelCapacity"`
}

type gpsRequest struct {
	Enabled bool   `json:"enabled"`
	GPSID   string `json:"gpsId"`
}

// GetOrders handles GET /api/v1/orders - retrieves every order, newest first.
func (s *Server) GetOrders(ctx echo.Context) error {
	orders, err := s.handlers.GetOrders.Handle(ctx.Request().Context(), queries.NewGetOrdersQuery())
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orders)
}

// CreateOrder handles POST /api/v1/orders - registers a pending order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body newOrderRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), body.PONumber, order.Terms{
		ProductType:   body.ProductType,
		Quantity:      body.Quantity,
		PricePerLitre: body.PricePerLitre,
		TotalAmount:   body.TotalAmount,
		PaymentType:   body.PaymentType,
	}, body.Origin, body.Destination)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderCreatedResponse{ID: cmd.OrderID(), PONumber: cmd.PONumber()})
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderID uuid.UUID) error {
	id, err := toID("orderId", orderID)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	o, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, o)
}

// DeleteOrder handles DELETE /api/v1/orders/{orderId} - removes the order and
// releases its fleet.
func (s *Server) DeleteOrder(ctx echo.Context, orderID uuid.UUID) error {
	id, err := toID("orderId", orderID)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewDeleteOrderCommand(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.DeleteOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// MarkOrderPaid handles POST /api/v1/orders/{orderId}/payment.
func (s *Server) MarkOrderPaid(ctx echo.Context, orderID uuid.UUID) error {
	var body paymentRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, err := toID("orderId", orderID)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewMarkOrderPaidCommand(id, body.PaymentReference)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.MarkOrderPaid.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// AssignDriverAndTruck handles POST /api/v1/orders/{orderId}/assignment.
func (s *Server) AssignDriverAndTruck(ctx echo.Context, orderID uuid.UUID) error {
	var body assignmentRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	oid, oidErr := toID("orderId", orderID)
	did, didErr := toID("driverId", body.DriverID)
	tid, tidErr := toID("truckId", body.TruckID)
	for _, err := range []error{oidErr, didErr, tidErr} {
		if err != nil {
			return s.fail(ctx, err)
		}
	}

	cmd, err := commands.NewAssignDriverAndTruckCommand(oid, did, tid)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.AssignDriverTruck.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// StartDelivery handles POST /api/v1/orders/{orderId}/departure.
func (s *Server) StartDelivery(ctx echo.Context, orderID uuid.UUID) error {
	id, err := toID("orderId", orderID)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewStartDeliveryCommand(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.StartDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CompleteDelivery handles POST /api/v1/orders/{orderId}/completion and returns
// the volume reconciliation.
func (s *Server) CompleteDelivery(ctx echo.Context, orderID uuid.UUID) error {
	var body completionRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, err := toID("orderId", orderID)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewCompleteDeliveryCommand(id, body.VolumeDelivered)
	if err != nil {
		return s.fail(ctx, err)
	}

	r, err := s.handlers.CompleteDelivery.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, reconciliationResponse{
		VolumeAtLoading:  r.VolumeAtLoading,
		VolumeAtDelivery: r.VolumeAtDelivery,
		DiffPercent:      r.DiffPercent,
		Flagged:          r.Flagged,
		Note:             r.Note,
	})
}

// UpdateOrderStatus handles PUT /api/v1/orders/{orderId}/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context, orderID uuid.UUID) error {
	var body statusRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, err := toID("orderId", orderID)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewUpdateOrderStatusCommand(id, body.Status, body.Notes)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.UpdateOrderStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetDrivers handles GET /api/v1/drivers.
func (s *Server) GetDrivers(ctx echo.Context) error {
	drivers, err := s.handlers.GetDrivers.Handle(ctx.Request().Context(), queries.NewGetDriversQuery())
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, drivers)
}

// CreateDriver handles POST /api/v1/drivers.
func (s *Server) CreateDriver(ctx echo.Context) error {
	var body newDriverRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreateDriverCommand(kernel.NewUUID(), body.Name, body.LicenseNumber, body.Phone, body.Email)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.CreateDriver.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, createdResponse{ID: cmd.DriverID()})
}

// ApproveDriver handles POST /api/v1/drivers/{driverId}/approval.
func (s *Server) ApproveDriver(ctx echo.Context, driverID uuid.UUID) error {
	id, err := toID("driverId", driverID)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewApproveDriverCommand(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.ApproveDriver.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// SetDriverAvailability handles PUT /api/v1/drivers/{driverId}/availability.
func (s *Server) SetDriverAvailability(ctx echo.Context, driverID uuid.UUID) error {
	var body statusRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, err := toID("driverId", driverID)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewSetDriverAvailabilityCommand(id, body.Status)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.SetDriverAvailability.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetTrucks handles GET /api/v1/trucks.
func (s *Server) GetTrucks(ctx echo.Context) error {
	trucks, err := s.handlers.GetTrucks.Handle(ctx.Request().Context(), queries.NewGetTrucksQuery())
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, trucks)
}

// CreateTruck handles POST /api/v1/trucks.
func (s *Server) CreateTruck(ctx echo.Context) error {
	var body newTruckRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreateTruckCommand(kernel.NewUUID(), body.PlateNumber, body.Model, body.Capacity, body.FuelCapacity)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.CreateTruck.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, createdResponse{ID: cmd.TruckID()})
}

// SetTruckGPS handles PUT /api/v1/trucks/{truckId}/gps.
func (s *Server) SetTruckGPS(ctx echo.Context, truckID uuid.UUID) error {
	var body gpsRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, err := toID("truckId", truckID)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewSetTruckGPSCommand(id, body.Enabled, body.GPSID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.SetTruckGPS.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// SetTruckStatus handles PUT /api/v1/trucks/{truckId}/status.
func (s *Server) SetTruckStatus(ctx echo.Context, truckID uuid.UUID) error {
	var body statusRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, err := toID("truckId", truckID)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewSetTruckStatusCommand(id, body.Status)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.SetTruckStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func toID(param string, id uuid.UUID) (kernel.UUID, error) {
	parsed, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%s: %w", id, err))
	}
	return parsed, nil
}
