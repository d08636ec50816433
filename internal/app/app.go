package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-fridge-tracker/internal/config"
	"go-fridge-tracker/internal/event"
	"go-fridge-tracker/internal/handler"
	"go-fridge-tracker/internal/metrics"
	"go-fridge-tracker/internal/middleware"
	"go-fridge-tracker/internal/router"
	"go-fridge-tracker/internal/service"
	"go-fridge-tracker/internal/websocket"
)

type App struct {
	server       *http.Server
	logger       *slog.Logger
	cleanupFuncs []func()
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	docs, closeDocs, err := OpenDocstore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	blobs, photos, err := OpenBlobStore(ctx, cfg, logger)
	if err != nil {
		closeDocs()
		return nil, err
	}

	m := metrics.New()
	bus := event.NewBus()
	services := NewServices(cfg, docs, blobs, bus, m, logger)

	hubCtx, stopHub := context.WithCancel(context.Background())
	hub := websocket.NewHub(bus, logger.With("component", "change_feed"))
	go hub.Run(hubCtx)

	actorMiddleware := middleware.NewActorMiddleware(service.NewAuthService(cfg.JWTSecret))
	appRouter := router.New(cfg, logger, m, actorMiddleware, router.Handlers{
		ItemTypes:  handler.NewItemTypeHandler(services.ItemTypes, services.Query, cfg.MaxUploadSize),
		Fridge:     handler.NewFridgeHandler(services.Fridge, services.Cart, services.Query, cfg.MaxUploadSize),
		Cart:       handler.NewCartHandler(services.Cart, services.Query),
		Stats:      handler.NewStatsHandler(services.Stats, services.Query),
		System:     handler.NewSystemHandler(docs.Driver(), blobs.Driver()),
		ChangeFeed: websocket.NewHandler(hub, cfg.CORSOrigins, logger),
		Photos:     photos,
	})

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{
		server: server,
		logger: logger,
		cleanupFuncs: []func(){
			stopHub,
			closeDocs,
			func() {
				if dropped := bus.Dropped(); dropped > 0 {
					logger.Warn("events dropped for slow subscribers", "count", dropped)
				}
			},
		},
	}, nil
}

func (a *App) Run() error {
	serveErr := make(chan error, 1)
	go func() {
		a.logger.Info("server starting", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case <-stop:
	case err := <-serveErr:
		runErr = fmt.Errorf("server failed: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil && runErr == nil {
		runErr = fmt.Errorf("graceful shutdown failed: %w", err)
	}

	for _, cleanup := range a.cleanupFuncs {
		cleanup()
	}

	a.logger.Info("server stopped")
	return runErr
}
