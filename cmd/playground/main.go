package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dmitrymomot/reactkit/internal/playground"
	"github.com/dmitrymomot/reactkit/pkg/config"
	"github.com/dmitrymomot/reactkit/pkg/httpserver"
	"github.com/dmitrymomot/reactkit/pkg/logger"
)

func main() {
	var cfg playground.Config
	config.MustLoad(&cfg)

	opts := []logger.Option{
		logger.WithEnvironment(cfg.Env, cfg.Service),
		logger.WithContextExtractors(playground.RequestIDExtractor),
	}
	if cfg.LogLevel != "" {
		level, err := logger.ParseLevel(cfg.LogLevel)
		if err != nil {
			panic(err)
		}
		opts = append(opts, logger.WithLevel(level))
	}
	log := logger.New(opts...)
	logger.SetAsDefault(log)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	h, err := playground.NewHandlers(cfg, log, reg)
	if err != nil {
		log.Error("failed to build handlers", logger.Error(err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	if err := srv.Run(ctx, h.Router()); err != nil {
		log.Error("server stopped", logger.Error(err))
		os.Exit(1)
	}
}
