package order

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"station/internal/core/domain/model/kernel"
	"station/internal/pkg/errs"
	"station/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("order must be created via NewOrder or RestoreOrder")

	// ErrOrderAlreadyAssigned is returned when a driver and truck are assigned twice.
	ErrOrderAlreadyAssigned = errs.NewValueIsInvalidErrorWithCause(
		"order", errors.New("driver and truck are already assigned"))

	// ErrOrderNotAssigned is returned when a delivery starts without driver and truck.
	ErrOrderNotAssigned = errs.NewValueIsInvalidErrorWithCause(
		"order", errors.New("driver and truck must be assigned before departure"))
)

const poAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Terms are the commercial fields supplied by the order creation flow.
// Quantity, PricePerLitre and TotalAmount are textual decimals; TotalAmount is
// computed as Quantity × PricePerLitre when left empty.
type Terms struct {
	ProductType   string
	Quantity      string
	PricePerLitre string
	TotalAmount   string
	PaymentType   string
}

// State is the full persisted state of an order, used by repositories to rebuild
// the aggregate through RestoreOrder.
type State struct {
	ID               kernel.UUID
	PONumber         string
	Terms            Terms
	PaymentReference string
	PaymentDate      *time.Time
	PaymentAmount    string
	Origin           *kernel.Coordinate
	Destination      *kernel.Coordinate
	CurrentLocation  *kernel.Coordinate
	DriverID         *kernel.UUID
	TruckID          *kernel.UUID
	Status           Status
	VolumeAtLoading  *float64
	VolumeAtDelivery *float64
	DeliveryDate     *time.Time
	Notes            string
	CreatedAt        time.Time
}

// Order represents a fuel purchase order. It is the aggregate root that manages the
// order lifecycle from creation through payment, dispatch and transit to reconciliation.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a non-empty PO number
//   - Quantity must parse as a positive volume
//   - Driver and truck are assigned together, once, while the order is Active
//   - Status only changes along the lifecycle graph (see Status)
//   - Can only be created through NewOrder or RestoreOrder
//
// The history (location updates and journey log) is append-only. The aggregate only
// carries the entries recorded since it was loaded; repositories append them on save.
type Order struct {
	id       kernel.UUID
	poNumber string
	terms    Terms

	paymentReference string
	paymentDate      *time.Time
	paymentAmount    string

	origin          *kernel.Coordinate
	destination     *kernel.Coordinate
	currentLocation *kernel.Coordinate

	driverID *kernel.UUID
	truckID  *kernel.UUID

	status Status

	volumeAtLoading  *float64
	volumeAtDelivery *float64
	deliveryDate     *time.Time
	notes            string

	createdAt time.Time

	newLocationUpdates []LocationUpdate
	newJourney         []JourneyInfo

	guard guard.ConstructorGuard
}

// NewOrder creates a pending order with validation. This is the only way to create
// a new Order, ensuring all business invariants are maintained.
//
// Parameters:
//   - id: unique identifier for the order
//   - poNumber: human readable purchase order number (see GeneratePONumber)
//   - terms: commercial fields; quantity must be positive
//   - createdAt: creation timestamp
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), order.GeneratePONumber(now), order.Terms{
//	    ProductType:   "PMS",
//	    Quantity:      "33,000",
//	    PricePerLitre: "617.50",
//	}, now)
func NewOrder(id kernel.UUID, poNumber string, terms Terms, createdAt time.Time) (*Order, error) {
	o := &Order{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setPONumber(poNumber),
		o.setTerms(terms),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order from persisted state. Besides the constructor checks
// it verifies that the stored status is valid and consistent with the assignment.
func RestoreOrder(state State) (*Order, error) {
	o := &Order{
		paymentReference: state.PaymentReference,
		paymentDate:      state.PaymentDate,
		paymentAmount:    state.PaymentAmount,
		origin:           state.Origin,
		destination:      state.Destination,
		currentLocation:  state.CurrentLocation,
		driverID:         state.DriverID,
		truckID:          state.TruckID,
		volumeAtLoading:  state.VolumeAtLoading,
		volumeAtDelivery: state.VolumeAtDelivery,
		deliveryDate:     state.DeliveryDate,
		notes:            state.Notes,
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(state.ID),
		o.setPONumber(state.PONumber),
		o.setTerms(state.Terms),
		o.setCreatedAt(state.CreatedAt),
		o.setStatus(state.Status),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// GeneratePONumber returns a purchase order number of the form PO-YYYYMMDD-XXXXXX.
func GeneratePONumber(now time.Time) string {
	var suffix strings.Builder
	for range 6 {
		suffix.WriteByte(poAlphabet[rand.IntN(len(poAlphabet))]) //nolint:gosec // not security sensitive
	}
	return fmt.Sprintf("PO-%s-%s", now.UTC().Format("20060102"), suffix.String())
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) PONumber() string {
	return o.poNumber
}

func (o *Order) Terms() Terms {
	return o.terms
}

func (o *Order) PaymentReference() string {
	return o.paymentReference
}

func (o *Order) PaymentDate() *time.Time {
	return o.paymentDate
}

func (o *Order) PaymentAmount() string {
	return o.paymentAmount
}

func (o *Order) Origin() *kernel.Coordinate {
	return o.origin
}

func (o *Order) Destination() *kernel.Coordinate {
	return o.destination
}

func (o *Order) CurrentLocation() *kernel.Coordinate {
	return o.currentLocation
}

// DriverID returns the assigned driver, or nil before assignment.
func (o *Order) DriverID() *kernel.UUID {
	return o.driverID
}

// TruckID returns the assigned truck, or nil before assignment.
func (o *Order) TruckID() *kernel.UUID {
	return o.truckID
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) VolumeAtLoading() *float64 {
	return o.volumeAtLoading
}

func (o *Order) VolumeAtDelivery() *float64 {
	return o.volumeAtDelivery
}

func (o *Order) DeliveryDate() *time.Time {
	return o.deliveryDate
}

func (o *Order) Notes() string {
	return o.notes
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// IsAssigned reports whether driver and truck are bound to the order.
func (o *Order) IsAssigned() bool {
	return o.driverID != nil && o.truckID != nil
}

// HoldsFleet reports whether the assigned driver and truck are still bound to this order.
func (o *Order) HoldsFleet() bool {
	return o.IsAssigned() && o.status.HoldsFleet()
}

// NewLocationUpdates returns the position samples recorded since the order was loaded.
func (o *Order) NewLocationUpdates() []LocationUpdate {
	return append([]LocationUpdate(nil), o.newLocationUpdates...)
}

// NewJourney returns the journey entries recorded since the order was loaded.
func (o *Order) NewJourney() []JourneyInfo {
	return append([]JourneyInfo(nil), o.newJourney...)
}

// MarkPaid transitions a pending order to Active and records the payment.
// An empty reference keeps the reference supplied at creation; the payment amount
// defaults to the order total.
//
// Calling MarkPaid on an order that is not pending is a guard failure.
func (o *Order) MarkPaid(reference string, at time.Time) error {
	newStatus, err := o.status.MarkPaid()
	if err != nil {
		return err
	}

	o.status = newStatus
	if reference != "" {
		o.paymentReference = reference
	}
	if o.paymentAmount == "" {
		o.paymentAmount = o.terms.TotalAmount
	}
	paidAt := at
	o.paymentDate = &paidAt

	return o.RecordJourney(JourneyPayment, "Payment verified", at)
}

// Assign binds a driver and a truck to an active order. The status stays Active.
//
// This method enforces the following business rules:
//   - Both identifiers must be valid
//   - The order must be Active
//   - The order must not be assigned yet (assignment is one-shot)
func (o *Order) Assign(driverID, truckID kernel.UUID, at time.Time) error {
	if err := errors.Join(
		wrapRequired("driverId", driverID.Validate()),
		wrapRequired("truckId", truckID.Validate()),
	); err != nil {
		return err
	}
	if err := o.status.ValidateAssign(); err != nil {
		return err
	}
	if o.driverID != nil || o.truckID != nil {
		return ErrOrderAlreadyAssigned
	}

	o.driverID = &driverID
	o.truckID = &truckID

	return o.RecordJourney(JourneyAssignment, "Driver and truck assigned", at)
}

// Depart starts the delivery: Active -> InTransit.
//
// Origin and destination default to depot and customer when absent, and the current
// location is reset to the origin.
func (o *Order) Depart(depot, customer kernel.Coordinate, at time.Time) error {
	newStatus, err := o.status.Depart()
	if err != nil {
		return err
	}
	if !o.IsAssigned() {
		return ErrOrderNotAssigned
	}
	if err = errors.Join(depot.Validate(), customer.Validate()); err != nil {
		return err
	}

	if o.origin == nil {
		o.origin = &depot
	}
	if o.destination == nil {
		o.destination = &customer
	}
	current := *o.origin
	o.currentLocation = &current
	o.status = newStatus

	return o.RecordJourney(JourneyInfoKind, "Departed from depot", at)
}

// Complete reconciles the delivered volume against the ordered quantity and moves the
// order to Completed or Flagged. Volumes, delivery date and the reconciliation note
// are recorded.
//
// Example:
//
//	r, err := o.Complete("32,000", now) // quantity "33,000"
//	o.Status() // order.Flagged
func (o *Order) Complete(volumeDelivered string, at time.Time) (Reconciliation, error) {
	if _, err := o.status.Settle(false); err != nil {
		return Reconciliation{}, err
	}

	r, err := Reconcile(o.terms.Quantity, volumeDelivered)
	if err != nil {
		return Reconciliation{}, err
	}

	newStatus, err := o.status.Settle(r.Flagged)
	if err != nil {
		return Reconciliation{}, err
	}

	loading, delivered, deliveredAt := r.VolumeAtLoading, r.VolumeAtDelivery, at
	o.volumeAtLoading = &loading
	o.volumeAtDelivery = &delivered
	o.deliveryDate = &deliveredAt
	o.notes = r.Note
	o.status = newStatus

	if err = o.RecordJourney(JourneyKindForStatus(newStatus), r.Note, at); err != nil {
		return Reconciliation{}, err
	}
	return r, nil
}

// Close ends an in-transit delivery with an explicit final status and no volume
// reconciliation. Only Completed and Flagged are accepted.
func (o *Order) Close(target Status, at time.Time) error {
	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}
	if !newStatus.IsFinal() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid", fmt.Errorf("%s is not a final status", newStatus))
	}

	deliveredAt := at
	o.deliveryDate = &deliveredAt
	o.status = newStatus

	return o.RecordJourney(JourneyKindForStatus(newStatus), "Status set to "+newStatus.String(), at)
}

// PlanRoute stores the origin and destination of a delivery that has not departed yet.
// Nil arguments leave the stored value unchanged; Depart fills the remaining gaps with
// the depot and customer defaults.
func (o *Order) PlanRoute(origin, destination *kernel.Coordinate) error {
	if o.status != Pending && o.status != Active {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid", fmt.Errorf("route of a %s order cannot change", o.status))
	}

	var originErr, destinationErr error
	if origin != nil {
		originErr = wrapRequired("origin", origin.Validate())
	}
	if destination != nil {
		destinationErr = wrapRequired("destination", destination.Validate())
	}
	if err := errors.Join(originErr, destinationErr); err != nil {
		return err
	}

	if origin != nil {
		point := *origin
		o.origin = &point
	}
	if destination != nil {
		point := *destination
		o.destination = &point
	}
	return nil
}

// AttachNotes replaces the order notes.
func (o *Order) AttachNotes(notes string) {
	o.notes = notes
}

// RecordPosition moves an in-transit order and appends a LocationUpdate.
func (o *Order) RecordPosition(point kernel.Coordinate, at time.Time) error {
	if o.status != InTransit {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid", fmt.Errorf("%s is not a valid status to move", o.status))
	}

	update, err := NewLocationUpdate(point, at)
	if err != nil {
		return err
	}

	o.currentLocation = &point
	o.newLocationUpdates = append(o.newLocationUpdates, update)
	return nil
}

// RecordJourney appends an entry to the journey log.
func (o *Order) RecordJourney(kind JourneyKind, message string, at time.Time) error {
	entry, err := NewJourneyInfo(kind, message, at)
	if err != nil {
		return err
	}
	o.newJourney = append(o.newJourney, entry)
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setPONumber(poNumber string) error {
	poNumber = strings.TrimSpace(poNumber)
	if poNumber == "" {
		return errs.NewValueIsRequiredError("poNumber")
	}
	o.poNumber = poNumber
	return nil
}

func (o *Order) setTerms(terms Terms) error {
	terms.ProductType = strings.TrimSpace(terms.ProductType)

	var productErr error
	if terms.ProductType == "" {
		productErr = errs.NewValueIsRequiredError("productType")
	}

	quantity, quantityErr := ParseVolume(terms.Quantity)
	if quantityErr == nil && quantity <= 0 {
		quantityErr = errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%q is not greater than 0", terms.Quantity))
	}

	_, priceErr := ParseAmount("pricePerLitre", terms.PricePerLitre)

	var totalErr error
	switch {
	case terms.TotalAmount != "":
		_, totalErr = ParseAmount("totalAmount", terms.TotalAmount)
	case quantityErr == nil && priceErr == nil:
		terms.TotalAmount, totalErr = ComputeTotal(terms.Quantity, terms.PricePerLitre)
	}

	if err := errors.Join(productErr, quantityErr, priceErr, totalErr); err != nil {
		return err
	}
	o.terms = terms
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = createdAt
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	assigned := o.driverID != nil || o.truckID != nil
	if assigned && (o.driverID == nil || o.truckID == nil) {
		return errs.NewValueIsInvalidErrorWithCause(
			"order", errors.New("driver and truck must be assigned together"))
	}
	if status == InTransit && !assigned {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid", fmt.Errorf("%s requires driver and truck", status))
	}
	if status == Pending && assigned {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid", fmt.Errorf("%s cannot have driver and truck", status))
	}

	o.status = status
	return nil
}

func wrapRequired(paramName string, err error) error {
	if err == nil {
		return nil
	}
	return errs.NewValueIsRequiredErrorWithCause(paramName, err)
}
