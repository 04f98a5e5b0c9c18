// fitbrain - Adaptive Fitness Feedback & Inference Engine
// Copyright 2026 J. Carmona
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jcarmona/fitbrain

// Command server runs the fitbrain HTTP API: an adaptive feedback and
// inference engine for personalized fitness and nutrition plans.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jcarmona/fitbrain/internal/api"
	"github.com/jcarmona/fitbrain/internal/config"
	"github.com/jcarmona/fitbrain/internal/detection"
	"github.com/jcarmona/fitbrain/internal/engine"
	"github.com/jcarmona/fitbrain/internal/logging"
	"github.com/jcarmona/fitbrain/internal/store"
	"github.com/jcarmona/fitbrain/internal/supervisor"
	"github.com/jcarmona/fitbrain/internal/supervisor/services"
)

func main() {
	if err := run(); err != nil && !errors.Is(err, context.Canceled) {
		logging.Fatal().Err(err).Msg("server exited")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	log := logging.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tree := supervisor.NewTree(
		logging.NewSlogLogger(log),
		supervisor.TreeConfig{ShutdownTimeout: cfg.Server.ShutdownTimeout},
	)

	var st engine.Store
	switch cfg.Storage.Backend {
	case "badger":
		bs, err := store.NewBadgerStore(cfg.Storage.Path, log)
		if err != nil {
			return err
		}
		defer bs.Close()
		tree.AddStorageService(services.NewGCService(bs, cfg.Storage.GCInterval, log))
		st = bs
	default:
		fs, err := store.NewFileStore(cfg.Storage.Path, log)
		if err != nil {
			return err
		}
		st = fs
	}

	eng, err := engine.New(ctx, st, log,
		engine.WithRecencyGrace(cfg.Engine.RecencyGraceDays))
	if err != nil {
		return err
	}
	det := detection.NewEngine(log)

	handler := api.NewHandler(eng, det, log)
	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      api.NewRouter(handler, cfg.API),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	tree.AddAPIService(services.NewHTTPService(server, cfg.Server.ShutdownTimeout))

	log.Info().
		Str("addr", cfg.Addr()).
		Str("storage", cfg.Storage.Backend).
		Msg("starting server")

	return tree.Serve(ctx)
}
