// Package services provides domain services that orchestrate business operations
// across several aggregates of the station.
//
// The package includes:
//   - DeliveryCoordinator: applies order transitions together with their driver and
//     truck side effects, checking every guard before mutating anything
//   - TransitSimulator: advances in-transit orders toward their destination one tick at a time
//
// Neither service performs I/O; command handlers load the aggregates, call the
// service and persist the result in one unit of work.
package services
