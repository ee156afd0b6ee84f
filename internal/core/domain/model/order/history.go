package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"station/internal/core/domain/model/kernel"
	"station/internal/pkg/errs"
)

// JourneyKind classifies an entry of the journey log.
type JourneyKind string

const (
	JourneyInfoKind   JourneyKind = "info"
	JourneyAssignment JourneyKind = "assignment"
	JourneyPayment    JourneyKind = "payment"
	JourneyTraffic    JourneyKind = "traffic"
	JourneyWeather    JourneyKind = "weather"
	JourneyStop       JourneyKind = "stop"
	JourneyRoadWork   JourneyKind = "road-work"
	JourneyActive     JourneyKind = "active"
	JourneyInTransit  JourneyKind = "in-transit"
	JourneyCompleted  JourneyKind = "completed"
	JourneyFlagged    JourneyKind = "flagged"
)

// JourneyKindForStatus returns the kind used when an order enters s.
func JourneyKindForStatus(s Status) JourneyKind {
	return JourneyKind(s.String())
}

// Validate rejects empty kinds and kinds containing whitespace.
func (k JourneyKind) Validate() error {
	if k == "" {
		return errs.NewValueIsRequiredError("journey kind")
	}
	if strings.ContainsAny(string(k), " \t\n") {
		return errs.NewValueIsInvalidErrorWithCause("journey kind", fmt.Errorf("%q contains whitespace", k))
	}
	return nil
}

// JourneyInfo is a timestamped, typed event describing a delivery-progress occurrence.
// Entries are immutable once recorded.
type JourneyInfo struct {
	id      kernel.UUID
	kind    JourneyKind
	message string
	at      time.Time
}

// NewJourneyInfo creates a journey log entry with a fresh identifier.
func NewJourneyInfo(kind JourneyKind, message string, at time.Time) (JourneyInfo, error) {
	return RestoreJourneyInfo(kernel.NewUUID(), kind, message, at)
}

// RestoreJourneyInfo rebuilds a stored journey log entry.
func RestoreJourneyInfo(id kernel.UUID, kind JourneyKind, message string, at time.Time) (JourneyInfo, error) {
	var atErr error
	if at.IsZero() {
		atErr = errs.NewValueIsRequiredError("journey timestamp")
	}
	if err := errors.Join(id.Validate(), kind.Validate(), atErr); err != nil {
		return JourneyInfo{}, err
	}

	return JourneyInfo{
		id:      id,
		kind:    kind,
		message: message,
		at:      at,
	}, nil
}

func (j JourneyInfo) ID() kernel.UUID {
	return j.id
}

func (j JourneyInfo) Kind() JourneyKind {
	return j.kind
}

func (j JourneyInfo) Message() string {
	return j.message
}

func (j JourneyInfo) At() time.Time {
	return j.at
}

// LocationUpdate is a timestamped position sample for an in-transit order.
type LocationUpdate struct {
	id    kernel.UUID
	point kernel.Coordinate
	at    time.Time
}

// NewLocationUpdate creates a position sample with a fresh identifier.
func NewLocationUpdate(point kernel.Coordinate, at time.Time) (LocationUpdate, error) {
	return RestoreLocationUpdate(kernel.NewUUID(), point, at)
}

// RestoreLocationUpdate rebuilds a stored position sample.
func RestoreLocationUpdate(id kernel.UUID, point kernel.Coordinate, at time.Time) (LocationUpdate, error) {
	var atErr error
	if at.IsZero() {
		atErr = errs.NewValueIsRequiredError("location timestamp")
	}
	if err := errors.Join(id.Validate(), point.Validate(), atErr); err != nil {
		return LocationUpdate{}, err
	}

	return LocationUpdate{
		id:    id,
		point: point,
		at:    at,
	}, nil
}

func (l LocationUpdate) ID() kernel.UUID {
	return l.id
}

func (l LocationUpdate) Point() kernel.Coordinate {
	return l.point
}

func (l LocationUpdate) At() time.Time {
	return l.at
}
