package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"potholes/internal/platform/config"
	"potholes/internal/platform/logger"
	"potholes/internal/platform/metrics"
	phttp "potholes/internal/platform/net/http"
	"potholes/internal/platform/store"

	"potholes/internal/services/api"

	"github.com/joho/godotenv"
)

// closeTimeout bounds the store teardown after the server stops
const closeTimeout = 5 * time.Second

func main() {
	// .env is optional; real env always wins
	envErr := godotenv.Load()

	// bring up logging early
	logger.Init(logger.FromEnv())
	l := logger.Get()
	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		l.Warn().Err(envErr).Msg(".env not loaded")
	}

	root := config.New()
	apiCfg := root.Prefix("API_")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// storage must be reachable before the listener opens
	st, err := store.Open(ctx, store.ConfigFromEnv(root, "potholes-api"), store.WithLogger(*l))
	if err != nil {
		l.Fatal().Err(err).Msg("store.Open failed")
	}
	defer func() {
		cctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		defer cancel()
		if err := st.Close(cctx); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// http server (reads PORT)
	srv := phttp.NewServer(root)

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Logger:         l,
			Metrics:        metrics.New(),
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
			CORSOrigins:    apiCfg.MayCSV("CORS_ORIGINS", []string{"*"}),
		},
	)

	if err := srv.Run(ctx); err != nil {
		l.Error().Err(err).Msg("http server stopped")
	}
}
