package fleet

import (
	"fmt"

	"station/internal/pkg/errs"
)

// DriverStatus represents the approval and duty state of a driver.
//
// State transitions:
//
//	PendingApproval ──> Approved ──┬──> OnDuty ──> Available
//	                               │
//	                               └──> Available <──> OffDuty
//
// Available and Approved drivers may go on duty; OnDuty drivers return to
// Available when their delivery ends.
type DriverStatus int

const (
	DriverStatusUnknown DriverStatus = iota
	DriverPendingApproval
	DriverApproved
	DriverAvailable
	DriverOnDuty
	DriverOffDuty
)

func driverStatusStrings() map[DriverStatus]string {
	//nolint:exhaustive // unknown is never persisted
	return map[DriverStatus]string{
		DriverPendingApproval: "pending-approval",
		DriverApproved:        "approved",
		DriverAvailable:       "available",
		DriverOnDuty:          "on-duty",
		DriverOffDuty:         "off-duty",
	}
}

// ParseDriverStatus converts the persisted string form back into a DriverStatus.
func ParseDriverStatus(s string) (DriverStatus, error) {
	for status, str := range driverStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return DriverStatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"driver status is invalid", fmt.Errorf("%q is not a valid driver status", s))
}

func (s DriverStatus) String() string {
	if str, ok := driverStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

func (s DriverStatus) Validate() error {
	if _, ok := driverStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"driver status is invalid", fmt.Errorf("%d is not a valid driver status", s))
	}
	return nil
}

// IsAssignable reports whether a driver in this status may be put on duty.
func (s DriverStatus) IsAssignable() bool {
	return s == DriverApproved || s == DriverAvailable
}

// TruckStatus represents the operational state of a truck.
//
// State transitions:
//
//	Available ──> InUse ──> InTransit ──> Available
//	    ^
//	    └──> Maintenance | OutOfService (only while no driver is bound)
type TruckStatus int

const (
	TruckStatusUnknown TruckStatus = iota
	TruckAvailable
	TruckInUse
	TruckInTransit
	TruckMaintenance
	TruckOutOfService
)

func truckStatusStrings() map[TruckStatus]string {
	//nolint:exhaustive // unknown is never persisted
	return map[TruckStatus]string{
		TruckAvailable:    "available",
		TruckInUse:        "in-use",
		TruckInTransit:    "in-transit",
		TruckMaintenance:  "maintenance",
		TruckOutOfService: "out-of-service",
	}
}

// ParseTruckStatus converts the persisted string form back into a TruckStatus.
func ParseTruckStatus(s string) (TruckStatus, error) {
	for status, str := range truckStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return TruckStatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"truck status is invalid", fmt.Errorf("%q is not a valid truck status", s))
}

func (s TruckStatus) String() string {
	if str, ok := truckStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

func (s TruckStatus) Validate() error {
	if _, ok := truckStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"truck status is invalid", fmt.Errorf("%d is not a valid truck status", s))
	}
	return nil
}

// IsBusy reports whether the truck is bound to a delivery.
func (s TruckStatus) IsBusy() bool {
	return s == TruckInUse || s == TruckInTransit
}
