package http

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface lists the operations of openapi.yml served under /api/v1.
type ServerInterface interface {
	// (GET /orders)
	GetOrders(ctx echo.Context) error
	// (POST /orders)
	CreateOrder(ctx echo.Context) error
	// (GET /orders/{orderId})
	GetOrder(ctx echo.Context, orderID uuid.UUID) error
	// (DELETE /orders/{orderId})
	DeleteOrder(ctx echo.Context, orderID uuid.UUID) error
	// (POST /orders/{orderId}/payment)
	MarkOrderPaid(ctx echo.Context, orderID uuid.UUID) error
	// (POST /orders/{orderId}/assignment)
	AssignDriverAndTruck(ctx echo.Context, orderID uuid.UUID) error
	// (POST /orders/{orderId}/departure)
	StartDelivery(ctx echo.Context, orderID uuid.UUID) error
	// (POST /orders/{orderId}/completion)
	CompleteDelivery(ctx echo.Context, orderID uuid.UUID) error
	// (PUT /orders/{orderId}/status)
	UpdateOrderStatus(ctx echo.Context, orderID uuid.UUID) error
	// (GET /drivers)
	GetDrivers(ctx echo.Context) error
	// (POST /drivers)
	CreateDriver(ctx echo.Context) error
	// (POST /drivers/{driverId}/approval)
	ApproveDriver(ctx echo.Context, driverID uuid.UUID) error
	// (PUT /drivers/{driverId}/availability)
	SetDriverAvailability(ctx echo.Context, driverID uuid.UUID) error
	// (GET /trucks)
	GetTrucks(ctx echo.Context) error
	// (POST /trucks)
	CreateTruck(ctx echo.Context) error
	// (PUT /trucks/{truckId}/gps)
	SetTruckGPS(ctx echo.Context, truckID uuid.UUID) error
	// (PUT /trucks/{truckId}/status)
	SetTruckStatus(ctx echo.Context, truckID uuid.UUID) error
	// (GET /notifications)
	StreamNotifications(ctx echo.Context, params StreamNotificationsParams) error
}

// StreamNotificationsParams defines parameters for StreamNotifications.
type StreamNotificationsParams struct {
	// OrderID restricts the stream to one order.
	OrderID *uuid.UUID
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

type idOperation func(ctx echo.Context, id uuid.UUID) error

// withPathID binds the uuid path parameter name and calls op with it.
func (w *ServerInterfaceWrapper) withPathID(name string, op idOperation) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		var id uuid.UUID

		err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id, runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
		}

		return op(ctx, id)
	}
}

// StreamNotifications converts echo context to params.
func (w *ServerInterfaceWrapper) StreamNotifications(ctx echo.Context) error {
	var params StreamNotificationsParams

	err := runtime.BindQueryParameter("form", true, false, "orderId", ctx.QueryParams(), &params.OrderID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}

	return w.Handler.StreamNotifications(ctx, params)
}

// EchoRouter is the subset of echo routing used to register the operations.
// Both *echo.Echo and *echo.Group satisfy it.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlersWithBaseURL adds each operation to the router under baseURL.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	w := ServerInterfaceWrapper{Handler: si}

	router.GET(baseURL+"/orders", si.GetOrders)
	router.POST(baseURL+"/orders", si.CreateOrder)
	router.GET(baseURL+"/orders/:orderId", w.withPathID("orderId", si.GetOrder))
	router.DELETE(baseURL+"/orders/:orderId", w.withPathID("orderId", si.DeleteOrder))
	router.POST(baseURL+"/orders/:orderId/payment", w.withPathID("orderId", si.MarkOrderPaid))
	router.POST(baseURL+"/orders/:orderId/assignment", w.withPathID("orderId", si.AssignDriverAndTruck))
	router.POST(baseURL+"/orders/:orderId/departure", w.withPathID("orderId", si.StartDelivery))
	router.POST(baseURL+"/orders/:orderId/completion", w.withPathID("orderId", si.CompleteDelivery))
	router.PUT(baseURL+"/orders/:orderId/status", w.withPathID("orderId", si.UpdateOrderStatus))

	router.GET(baseURL+"/drivers", si.GetDrivers)
	router.POST(baseURL+"/drivers", si.CreateDriver)
	router.POST(baseURL+"/drivers/:driverId/approval", w.withPathID("driverId", si.ApproveDriver))
	router.PUT(baseURL+"/drivers/:driverId/availability", w.withPathID("driverId", si.SetDriverAvailability))

	router.GET(baseURL+"/trucks", si.GetTrucks)
	router.POST(baseURL+"/trucks", si.CreateTruck)
	router.PUT(baseURL+"/trucks/:truckId/gps", w.withPathID("truckId", si.SetTruckGPS))
	router.PUT(baseURL+"/trucks/:truckId/status", w.withPathID("truckId", si.SetTruckStatus))

	router.GET(baseURL+"/notifications", w.StreamNotifications)
}
