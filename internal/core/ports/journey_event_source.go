package ports

import (
	"station/internal/core/domain/model/order"
)

// JourneyEventSource supplies the optional cosmetic journey events emitted while an
// order is in transit. Next is called once per moved order and tick; ok is false when
// nothing happens on this tick.
type JourneyEventSource interface {
	Next() (kind order.JourneyKind, message string, ok bool)
}
