package main

import (
	"context"
	"fmt"

	"github.com/quickflicks/quickflicks/internal/catalog"
	"github.com/quickflicks/quickflicks/internal/config"
	myHTTP "github.com/quickflicks/quickflicks/internal/handler/http"
	"github.com/quickflicks/quickflicks/internal/logger"
	"github.com/quickflicks/quickflicks/internal/server"
	"github.com/quickflicks/quickflicks/internal/service"
	"github.com/quickflicks/quickflicks/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("quickflicks-server")

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if closeErr := storages.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("error closing storages")
		}
	}()

	catalogClient := catalog.NewClient(cfg.Catalog, log)
	notifier := service.NewLogNotifier(log)

	services := service.NewServices(cfg.App, storages, catalogClient, notifier, log)

	handler := myHTTP.NewHandler(services, log)

	srv, err := server.NewServer(handler, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
