// Package store owns the process wide storage connections
package store

import (
	"context"
	"errors"
	"time"

	"potholes/internal/platform/logger"
	mongox "potholes/internal/platform/store/mongo"
)

// Store is the facade over the document store client
// zero value is safe but does nothing
type Store struct {
	// Log is the logger used by subclients
	// zero means a no op zerolog logger
	Log logger.Logger

	// Mongo is the document store client, nil when not opened
	Mongo *mongox.Client
}

// Pinger is any seam that can report readiness
type Pinger interface{ Ping(context.Context) error }

// Open connects the configured backends; a failed connect or ping is returned as is
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	s.Log.Info().
		Str("uri", mongox.RedactURI(cfg.Mongo.URI)).
		Str("db", cfg.Mongo.DB).
		Msg("mongo connecting")

	c, err := mongox.Open(ctx, mongox.Config{
		URI:            cfg.Mongo.URI,
		DB:             cfg.Mongo.DB,
		AppName:        cfg.AppName,
		ConnectTimeout: cfg.Mongo.ConnectTimeout,
	})
	if err != nil {
		return nil, err
	}
	s.Mongo = c

	s.Log.Info().Dur("elapsed", time.Since(start).Round(time.Millisecond)).Msg("mongo connected")
	return s, nil
}

// Guard verifies all configured seams the Store knows about
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	if s.Mongo == nil {
		return errors.New("mongo: not connected")
	}
	return s.Mongo.Ping(ctx)
}

// Ping lets the store stand in as a readiness Pinger
func (s *Store) Ping(ctx context.Context) error { return s.Guard(ctx) }

// Close closes all initialized backends gracefully
// nil backends are ignored
func (s *Store) Close(ctx context.Context) error {
	if s == nil {
		return nil
	}
	return s.Mongo.Close(ctx)
}
