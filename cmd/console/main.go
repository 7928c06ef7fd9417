// Command console serves the single-operator admin console for the LLM
// benchmarking backend. It restores the persisted session before accepting
// its first request, so route-guard decisions never observe a half-restored
// state.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/llmbench/console/internal/api"
	"github.com/llmbench/console/internal/core/ports"
	"github.com/llmbench/console/internal/core/service"
	"github.com/llmbench/console/internal/infrastructure/backend"
	"github.com/llmbench/console/internal/infrastructure/config"
	"github.com/llmbench/console/internal/infrastructure/session"
	"github.com/llmbench/console/pkg/logger"
)

const restoreTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Session store ---
	var (
		store ports.SessionStore
		rdb   *redis.Client
	)
	switch cfg.Session.Backend {
	case "redis":
		var err error
		rdb, err = session.Connect(context.Background(), session.RedisConfig{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer rdb.Close()
		store = session.NewRedisStore(rdb)
	case "file":
		store = session.NewFileStore(cfg.Session.StatePath)
	default:
		log.Fatal().Str("backend", cfg.Session.Backend).Msg("unknown session backend")
	}

	// --- Backend client and services ---
	client := backend.New(cfg.API.BaseURL, cfg.API.Timeout, store, log)
	authManager := service.NewAuthManager(store, client, client, log)
	provisioner := service.NewProvisioner(client, authManager, cfg.API.ServiceEndpoint, log)

	// The guard must never render before restoration settles.
	restoreCtx, cancel := context.WithTimeout(context.Background(), restoreTimeout)
	if err := authManager.Restore(restoreCtx); err != nil {
		log.Warn().Err(err).Msg("session restoration failed, starting anonymous")
	}
	cancel()

	e := api.NewRouter(api.Deps{
		Auth:        authManager,
		Provisioner: provisioner,
		Catalog:     client,
		Users:       client,
		Profile:     client,
		TestBank:    client,
		Results:     client,
		Backend:     client,
		Store:       store,
		Log:         log,
	})

	// --- Graceful shutdown ---
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Info().Msg("shutting down console")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	log.Info().
		Str("port", cfg.Port).
		Str("backend", cfg.API.BaseURL).
		Str("session_backend", cfg.Session.Backend).
		Msg("console listening")

	if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
