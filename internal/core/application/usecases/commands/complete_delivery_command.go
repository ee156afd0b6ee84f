package commands

import (
	"errors"
	"strings"

	"station/internal/core/domain/model/kernel"
	"station/internal/core/domain/model/order"
	"station/internal/pkg/guard"
)

var ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
	"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
)

// CompleteDeliveryCommand carries the volume measured at the customer site.
// The volume is kept as entered ("32,700") and parsed again during reconciliation.
type CompleteDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	volumeDelivered string

	guard guard.ConstructorGuard
}

// NewCompleteDeliveryCommand validates the order ID and that volumeDelivered parses as
// a volume once thousands separators are stripped.
func NewCompleteDeliveryCommand(orderID kernel.UUID, volumeDelivered string) (CompleteDeliveryCommand, error) {
	volumeDelivered = strings.TrimSpace(volumeDelivered)
	_, volumeErr := order.ParseVolume(volumeDelivered)

	if err := errors.Join(orderID.Validate(), volumeErr); err != nil {
		return CompleteDeliveryCommand{}, err
	}

	return CompleteDeliveryCommand{
		orderID:         orderID,
		volumeDelivered: volumeDelivered,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}

func (c CompleteDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CompleteDeliveryCommand) VolumeDelivered() string {
	return c.volumeDelivered
}
