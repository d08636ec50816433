package app

import (
	"log/slog"

	"go-fridge-tracker/internal/asset"
	"go-fridge-tracker/internal/blob"
	"go-fridge-tracker/internal/changelog"
	"go-fridge-tracker/internal/config"
	"go-fridge-tracker/internal/docstore"
	"go-fridge-tracker/internal/event"
	"go-fridge-tracker/internal/metrics"
	"go-fridge-tracker/internal/repository"
	"go-fridge-tracker/internal/service"
)

// Services is the domain layer shared by the HTTP server and the CLI.
type Services struct {
	ItemTypes *service.ItemTypeService
	Fridge    *service.FridgeService
	Cart      *service.CartService
	Stats     *service.StatsService
	Query     *service.QueryService
}

func NewServices(cfg *config.Config, docs docstore.Store, blobs blob.Store, bus event.Bus, m *metrics.Metrics, logger *slog.Logger) *Services {
	types := repository.NewItemTypeRepository(docs)
	fridge := repository.NewFridgeRepository(docs)
	cart := repository.NewCartRepository(docs)
	log := repository.NewChangeLogRepository(docs)

	assets := asset.NewManager(blobs, asset.Options{
		AllowedMIMETypes: cfg.AllowedMIMETypes,
		MaxSize:          cfg.MaxUploadSize,
		MaxDimension:     cfg.PhotoMaxDimension,
	}, logger.With("component", "asset"))
	recorder := changelog.NewRecorder(log, bus, m, logger.With("component", "changelog"))

	return &Services{
		ItemTypes: service.NewItemTypeService(types, assets, bus, m, logger),
		Fridge:    service.NewFridgeService(fridge, types, assets, recorder, m, logger),
		Cart:      service.NewCartService(cart, fridge, bus, m, logger),
		Stats:     service.NewStatsService(log, cfg.StatsDefaultWindow, nil, m, logger),
		Query:     service.NewQueryService(types, fridge, cart, log, cfg.StatsDefaultWindow, nil),
	}
}
