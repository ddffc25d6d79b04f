package main

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/adarsh20n06-web/vetra-server/internal/config"
	"github.com/adarsh20n06-web/vetra-server/internal/infrastructure/logger"
	"github.com/adarsh20n06-web/vetra-server/internal/infrastructure/observability"
	"github.com/adarsh20n06-web/vetra-server/internal/interfaces/httpserver"

	_ "net/http/pprof"
)

type Application struct {
	httpServer *httpserver.HTTPServer
}

func init() {
	logger.GetLogger()
}

func (application *Application) Start() {
	var eg errgroup.Group
	eg.Go(func() error {
		return http.ListenAndServe("0.0.0.0:6060", nil)
	})
	eg.Go(func() error {
		return application.httpServer.Run()
	})

	if err := eg.Wait(); err != nil {
		panic(err)
	}
}

func main() {
	ctx := context.Background()
	log := logger.GetLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	if _, err := logger.New(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatal().Err(err).Msg("configure logger")
	}

	application, err := CreateApplication()
	if err != nil {
		log.Fatal().Err(err).Msg("create application")
	}

	otelShutdown, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("initialize observability")
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := otelShutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("shutdown telemetry")
			}
		}()
	}

	application.Start()
}
