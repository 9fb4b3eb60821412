// Package mongo provides a MongoDB client with connect + ping on open and index bootstrap
package mongo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Config configures the client
type Config struct {
	URI            string
	DB             string
	AppName        string
	ConnectTimeout time.Duration // bounds connect + ping, default 10s
}

// Client owns one driver client and the selected database
type Client struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// ErrNoURI is returned when Open is called without a connection string
var ErrNoURI = errors.New("mongo: connection string is required")

var connect = mongo.Connect // seam

// Open connects and pings within cfg.ConnectTimeout; a failed ping disconnects before returning
func Open(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.URI) == "" {
		return nil, ErrNoURI
	}
	if cfg.DB == "" {
		return nil, errors.New("mongo: database name is required")
	}
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)
	if cfg.AppName != "" {
		opts.SetAppName(cfg.AppName)
	}

	dctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	c, err := connect(dctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect %s: %w", RedactURI(cfg.URI), err)
	}
	if err := c.Ping(dctx, readpref.Primary()); err != nil {
		_ = c.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping %s: %w", RedactURI(cfg.URI), err)
	}
	return &Client{Client: c, DB: c.Database(cfg.DB)}, nil
}

// Collection returns a handle to name in the selected database
func (c *Client) Collection(name string) *mongo.Collection { return c.DB.Collection(name) }

// Ping checks the primary is reachable
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.Client == nil {
		return errors.New("mongo: not connected")
	}
	return c.Client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client; safe on nil
func (c *Client) Close(ctx context.Context) error {
	if c == nil || c.Client == nil {
		return nil
	}
	return c.Client.Disconnect(ctx)
}

// Index names one index to create by key order
type Index struct {
	Name string
	Keys bson.D
}

// EnsureIndexes creates each index, collecting failures rather than stopping at the first
func EnsureIndexes(ctx context.Context, col *mongo.Collection, idx ...Index) error {
	var errs []error
	for _, ix := range idx {
		model := mongo.IndexModel{Keys: ix.Keys}
		if ix.Name != "" {
			model.Options = options.Index().SetName(ix.Name)
		}
		if _, err := col.Indexes().CreateOne(ctx, model); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", ix.Name, err))
		}
	}
	return errors.Join(errs...)
}

// RedactURI masks credentials in a connection string for logging
func RedactURI(raw string) string {
	if raw == "" || !strings.Contains(raw, "://") {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "<unparseable uri>"
	}
	if u.User != nil {
		u.User = url.UserPassword("****", "****")
	}
	return u.String()
}
