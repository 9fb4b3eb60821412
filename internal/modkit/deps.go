// Package modkit provides module wiring and core deps
package modkit

import (
	"potholes/internal/platform/config"
	"potholes/internal/platform/logger"
	"potholes/internal/platform/metrics"
	"potholes/internal/platform/store"

	"go.mongodb.org/mongo-driver/mongo"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log     logger.Logger
	Cfg     config.Conf
	Store   *store.Store
	Metrics *metrics.Metrics
}

// Collection returns a handle on name in the configured database, or nil when no store is wired
func (d Deps) Collection(name string) *mongo.Collection {
	if d.Store == nil || d.Store.Mongo == nil || d.Store.Mongo.DB == nil {
		return nil
	}
	return d.Store.Mongo.Collection(name)
}

// Pinger returns the store as a readiness probe, or nil when no store is wired
func (d Deps) Pinger() store.Pinger {
	if d.Store == nil {
		return nil
	}
	return d.Store
}
