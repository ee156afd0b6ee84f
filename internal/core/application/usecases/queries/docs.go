// Package queries implements the read side of the station: order, driver and truck
// snapshots read straight from PostgreSQL without loading aggregates.
//
// Every query is a value built by its NewXxxQuery constructor and handled by a
// handler holding a *gorm.DB. Snapshots carry JSON tags and are served as-is by the
// HTTP adapter.
package queries
