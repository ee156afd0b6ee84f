// Package kernel provides the shared value objects of the station domain.
//
// The package includes:
//   - UUID: identifiers for orders, drivers, trucks and history entries
//   - Coordinate: a (longitude, latitude) point in decimal degrees, its tolerant
//     parsing from storage/transport shapes, the canonical "(lng,lat)" literal and the
//     planar route progress approximation used by the dashboard
//
// Values are immutable and safe for concurrent use. Zero values are invalid and fail
// Validate; use the constructors.
package kernel
