// Package fleet provides the Driver and Truck aggregates of the station's fleet registry.
//
// The package includes:
//   - Driver: a registered driver with an approval and duty workflow
//   - Truck: a fuel truck with capacity, an optional GPS unit and a duty workflow
//   - DriverStatus and TruckStatus: closed status sets persisted by their string values
//
// Key business rules:
//   - A driver is on duty exactly when a truck is bound to it
//   - A truck is bound to a driver exactly while it is in use or in transit
//   - Only approved or available drivers and available trucks can be assigned,
//     and never when already bound to another party
//   - Disabling GPS clears the GPS id and its last location together
//
// Pairing a driver with a truck for an order is orchestrated by
// services.DeliveryCoordinator, which keeps both sides consistent.
package fleet
