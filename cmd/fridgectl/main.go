package main

import (
	"context"
	"fmt"
	"os"

	"go-fridge-tracker/internal/app"
	"go-fridge-tracker/internal/cli"
	"go-fridge-tracker/internal/config"
	"go-fridge-tracker/internal/logger"
	"go-fridge-tracker/internal/repository"
	"go-fridge-tracker/internal/service"
)

func main() {
	cmd := cli.NewRootCommand(openBackend)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func openBackend(ctx context.Context) (cli.Backend, func(), error) {
	cfg, err := config.LoadStorage()
	if err != nil {
		return cli.Backend{}, nil, err
	}

	log := logger.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	docs, release, err := app.OpenDocstore(ctx, cfg, log)
	if err != nil {
		return cli.Backend{}, nil, err
	}

	changes := repository.NewChangeLogRepository(docs)
	return cli.Backend{
		Stats: service.NewStatsService(changes, cfg.StatsDefaultWindow, nil, nil, log),
		Query: service.NewQueryService(
			repository.NewItemTypeRepository(docs),
			repository.NewFridgeRepository(docs),
			repository.NewCartRepository(docs),
			changes,
			cfg.StatsDefaultWindow,
			nil,
		),
	}, release, nil
}
