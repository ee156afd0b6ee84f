package order

import (
	"fmt"

	"station/internal/pkg/errs"
)

// Status represents the lifecycle state of a fuel purchase order.
// It implements a closed state machine; every transition method returns the
// next status or a validation error, so no code path can set an arbitrary value.
//
// State transitions:
//
//	Pending ──> Active ──> InTransit ──┬──> Completed
//	  (paid)   (assigned)  (departed)  │
//	                                   └──> Flagged
//
// Completed and Flagged are final. Assignment of a driver and truck happens while
// the order is Active and does not change the status.
//
// Status is persisted by its string value ("pending", "active", "in-transit",
// "completed", "flagged").
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values and is never persisted.
	Unknown Status = iota

	// Pending is the initial status of an order waiting for payment.
	Pending

	// Active indicates that payment was verified. Driver and truck are assigned
	// while the order is in this status.
	Active

	// InTransit indicates that the truck left the depot. The transit simulator
	// advances the current location of orders in this status.
	InTransit

	// Completed indicates that the delivered volume matched the loaded volume
	// within tolerance. This is a final state.
	Completed

	// Flagged indicates a delivery with a volume shortage of 3% or more.
	// This is a final state.
	Flagged
)

// getStatusStrings returns the persisted representation of every valid status.
func getStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "pending",
		Active:    "active",
		InTransit: "in-transit",
		Completed: "completed",
		Flagged:   "flagged",
	}
}

// transitions lists the legal edges of the lifecycle graph.
func transitions() map[Status][]Status {
	//nolint:exhaustive // final and unknown statuses have no outgoing edges
	return map[Status][]Status{
		Pending:   {Active},
		Active:    {InTransit},
		InTransit: {Completed, Flagged},
	}
}

// AllStatuses returns every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, Active, InTransit, Completed, Flagged}
}

// ParseStatus converts the persisted string form back into a Status.
//
// Returns:
//   - the matching Status
//   - ValueIsInvalidError for any string outside the closed set
//
// Example:
//
//	s, err := order.ParseStatus("in-transit") // order.InTransit, nil
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate checks if the Status value is one of the known statuses.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted name of the status, or "unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsFinal reports whether no further transitions are possible.
func (s Status) IsFinal() bool {
	return s == Completed || s == Flagged
}

// HoldsFleet reports whether an order in this status may keep a driver and truck bound.
func (s Status) HoldsFleet() bool {
	return s == Active || s == InTransit
}

// CanTransitionTo reports whether target is a legal successor of s.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range transitions()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo validates the edge s -> target.
//
// Returns:
//   - (target, nil) when the edge exists in the lifecycle graph
//   - (Unknown, error) for unknown targets or illegal edges
//
// Example:
//
//	next, err := order.Active.TransitionTo(order.Completed)
//	// err: active cannot transition to completed
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(target) {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s cannot transition to %s", s, target),
		)
	}
	return target, nil
}

// MarkPaid transitions Pending -> Active.
func (s Status) MarkPaid() (Status, error) {
	if s != Pending {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to mark as paid", s),
		)
	}
	return Active, nil
}

// ValidateAssign checks that a driver and truck may be assigned in this status.
func (s Status) ValidateAssign() error {
	if s != Active {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to assign a driver and truck", s),
		)
	}
	return nil
}

// Depart transitions Active -> InTransit.
func (s Status) Depart() (Status, error) {
	if s != Active {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to start delivery", s),
		)
	}
	return InTransit, nil
}

// Settle transitions InTransit to Completed or Flagged depending on the
// reconciliation outcome.
func (s Status) Settle(flagged bool) (Status, error) {
	if s != InTransit {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to complete delivery", s),
		)
	}
	if flagged {
		return Flagged, nil
	}
	return Completed, nil
}
