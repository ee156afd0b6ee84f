package services

import (
	"errors"
	"time"

	"station/internal/core/domain/model/kernel"
	"station/internal/core/domain/model/order"
	"station/internal/core/ports"
	"station/internal/pkg/errs"
)

const (
	// DefaultStepFraction is the share of the remaining distance covered per tick.
	DefaultStepFraction = 0.05
	// DefaultArrivalEpsilon is the per-component distance in degrees under which an
	// order counts as arrived.
	DefaultArrivalEpsilon = 0.001
)

// TransitStep is the outcome of advancing one order by one tick.
type TransitStep int

const (
	// TransitSkipped means the order is not in transit or lacks a route.
	TransitSkipped TransitStep = iota
	// TransitArrived means the order is within the arrival band; nothing was changed.
	TransitArrived
	// TransitMoved means a new position was recorded.
	TransitMoved
)

func (s TransitStep) String() string {
	switch s {
	case TransitSkipped:
		return "skipped"
	case TransitArrived:
		return "arrived"
	case TransitMoved:
		return "moved"
	default:
		return "unknown"
	}
}

// TransitOutcome describes what one tick did to one order.
type TransitOutcome struct {
	Step     TransitStep
	Position *kernel.Coordinate
	// Event is set when the event source produced a journey entry on this tick.
	Event *order.JourneyInfo
}

// TransitSimulator is a domain service that advances in-transit orders toward their
// destination.
//
// Each tick moves the current location by a fixed fraction of the remaining vector,
// which converges on the destination without reaching it exactly. Once both remaining
// components are within the arrival epsilon the order is left alone; completion stays
// a user action. Journey events come from a pluggable source and never affect arrival.
//
// Example usage:
//
//	sim, _ := services.NewTransitSimulator(events, services.DefaultStepFraction, services.DefaultArrivalEpsilon)
//	outcome, err := sim.Advance(o, time.Now())
//	if outcome.Step == services.TransitMoved {
//	    // persist o and publish outcome.Position
//	}
type TransitSimulator struct {
	events       ports.JourneyEventSource
	stepFraction float64
	epsilon      float64
}

// NewTransitSimulator validates the movement parameters. stepFraction must be in (0, 1]
// and epsilon must be positive.
func NewTransitSimulator(
	events ports.JourneyEventSource,
	stepFraction, epsilon float64,
) (*TransitSimulator, error) {
	var eventsErr, fractionErr, epsilonErr error
	if events == nil {
		eventsErr = errs.NewValueIsRequiredError("journey event source")
	}
	if !(stepFraction > 0 && stepFraction <= 1) {
		fractionErr = errs.NewValueIsOutOfRangeError("stepFraction", stepFraction, 0, 1)
	}
	if !(epsilon > 0) {
		epsilonErr = errs.NewValueIsInvalidError("arrivalEpsilon")
	}
	if err := errors.Join(eventsErr, fractionErr, epsilonErr); err != nil {
		return nil, err
	}

	return &TransitSimulator{
		events:       events,
		stepFraction: stepFraction,
		epsilon:      epsilon,
	}, nil
}

// Advance moves o by one tick at time now.
//
// Returns:
//   - TransitSkipped when o is not in transit or misses origin, destination or current location
//   - TransitArrived when o is within the arrival band (no mutation, no location update)
//   - TransitMoved with the new position otherwise
func (s *TransitSimulator) Advance(o *order.Order, now time.Time) (TransitOutcome, error) {
	if err := o.Validate(); err != nil {
		return TransitOutcome{}, err
	}
	if o.Status() != order.InTransit {
		return TransitOutcome{Step: TransitSkipped}, nil
	}

	current, destination := o.CurrentLocation(), o.Destination()
	if o.Origin() == nil || destination == nil || current == nil {
		return TransitOutcome{Step: TransitSkipped}, nil
	}

	if s.HasArrived(*current, *destination) {
		return TransitOutcome{Step: TransitArrived, Position: current}, nil
	}

	next, err := current.MoveToward(*destination, s.stepFraction)
	if err != nil {
		return TransitOutcome{}, err
	}
	if err = o.RecordPosition(next, now); err != nil {
		return TransitOutcome{}, err
	}

	outcome := TransitOutcome{Step: TransitMoved, Position: &next}

	if kind, message, ok := s.events.Next(); ok {
		if err = o.RecordJourney(kind, message, now); err != nil {
			return TransitOutcome{}, err
		}
		journey := o.NewJourney()
		outcome.Event = &journey[len(journey)-1]
	}

	return outcome, nil
}

// HasArrived reports whether current is within the arrival band around destination.
func (s *TransitSimulator) HasArrived(current, destination kernel.Coordinate) bool {
	return current.IsWithin(destination, s.epsilon)
}
