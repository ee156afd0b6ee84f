// Package order provides the fuel purchase order aggregate and its lifecycle rules.
//
// The package includes:
//   - Order: the aggregate root holding commercial terms, routing, assignment and reconciliation
//   - Status: the closed state machine pending -> active -> in-transit -> completed | flagged
//   - LocationUpdate and JourneyInfo: the append-only delivery history
//   - Reconcile: the volume shortage rule applied when a delivery completes
//
// Key business rules:
//   - Orders start pending and are paid, assigned, dispatched and reconciled in that order
//   - A driver and a truck are assigned together, once, while the order is active
//   - A shortage of 3% or more between loaded and delivered volume flags the delivery;
//     a surplus never does
//
// Fleet side effects of a transition (driver and truck status) are not handled here;
// see services.DeliveryCoordinator.
package order
