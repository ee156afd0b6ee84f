package queries

import (
	"time"

	"station/internal/core/domain/model/kernel"
)

// OrderResponse is the read snapshot of one order with its full history, newest
// entries first.
type OrderResponse struct {
	ID               kernel.UUID        `json:"id"`
	PONumber         string             `json:"poNumber"`
	ProductType      string             `json:"productType"`
	Quantity         string             `json:"quantity"`
	PricePerLitre    string             `json:"pricePerLitre"`
	TotalAmount      string             `json:"totalAmount"`
	PaymentType      string             `json:"paymentType"`
	PaymentReference string             `json:"paymentReference"`
	PaymentDate      *time.Time         `json:"paymentDate"`
	PaymentAmount    string             `json:"paymentAmount"`
	Origin           *kernel.Coordinate `json:"origin"`
	Destination      *kernel.Coordinate `json:"destination"`
	CurrentLocation  *kernel.Coordinate `json:"currentLocation"`
	DriverID         *kernel.UUID       `json:"driverId"`
	TruckID          *kernel.UUID       `json:"truckId"`
	Status           string             `json:"status"`
	VolumeAtLoading  *float64           `json:"volumeAtLoading"`
	VolumeAtDelivery *float64           `json:"volumeAtDelivery"`
	DeliveryDate     *time.Time         `json:"deliveryDate"`
	Notes            string             `json:"notes"`
	CreatedAt        time.Time          `json:"createdAt"`
	ProgressPercent  float64            `json:"progressPercent"`

	LocationUpdates []LocationUpdateResponse `json:"locationUpdates"`
	JourneyInfo     []JourneyInfoResponse    `json:"journeyInfo"`
}

type LocationUpdateResponse struct {
	Location  kernel.Coordinate `json:"location"`
	Timestamp time.Time         `json:"timestamp"`
}

type JourneyInfoResponse struct {
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
