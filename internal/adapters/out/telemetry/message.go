// Package telemetry publishes live positions of in-transit orders to Redis and MQTT.
// Publishers are optional and their failures never affect the transit tick.
package telemetry

import (
	"time"

	"station/internal/core/ports"
)

// LocationMessage is the JSON document published for every position sample.
type LocationMessage struct {
	OrderID         string    `json:"orderId"`
	PONumber        string    `json:"poNumber"`
	TruckID         string    `json:"truckId,omitempty"`
	Lng             float64   `json:"lng"`
	Lat             float64   `json:"lat"`
	ProgressPercent float64   `json:"progressPercent"`
	Arrived         bool      `json:"arrived"`
	At              time.Time `json:"at"`
}

// NewLocationMessage converts a sample into its published form.
func NewLocationMessage(s ports.LocationSample) LocationMessage {
	m := LocationMessage{
		OrderID:         s.OrderID.String(),
		PONumber:        s.PONumber,
		Lng:             s.Position.Lng(),
		Lat:             s.Position.Lat(),
		ProgressPercent: s.ProgressPercent,
		Arrived:         s.Arrived,
		At:              s.At.UTC(),
	}
	if s.TruckID != nil {
		m.TruckID = s.TruckID.String()
	}
	return m
}
