package store

import (
	"time"

	"potholes/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	AppName string

	Mongo MongoConfig
}

// MongoConfig configures document store connectivity
type MongoConfig struct {
	URI            string
	DB             string
	ConnectTimeout time.Duration
}

// ConfigFromEnv reads MONGO_* keys under cfg; MONGO_URI is required and panics when missing
func ConfigFromEnv(cfg config.Conf, appName string) Config {
	m := cfg.Prefix("MONGO_")
	return Config{
		AppName: appName,
		Mongo: MongoConfig{
			URI:            m.MustString("URI"),
			DB:             m.MayString("DB", "road_monitoring"),
			ConnectTimeout: m.MayDuration("CONNECT_TIMEOUT", 10*time.Second),
		},
	}
}
