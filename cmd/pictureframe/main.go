package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/skjdghsdjgsdj/pyportal-titano-pictureframe/internal/adapter"
	"github.com/skjdghsdjgsdj/pyportal-titano-pictureframe/internal/client"
	"github.com/skjdghsdjgsdj/pyportal-titano-pictureframe/internal/config"
	"github.com/skjdghsdjgsdj/pyportal-titano-pictureframe/internal/logger"
	"github.com/skjdghsdjgsdj/pyportal-titano-pictureframe/internal/service"
	"github.com/skjdghsdjgsdj/pyportal-titano-pictureframe/internal/store"
	"github.com/skjdghsdjgsdj/pyportal-titano-pictureframe/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("pictureframe")
	cfg, err := config.GetFrameConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	frameServer, err := adapter.NewHTTPFrameServer(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating frame server adapter")
	}

	contentStore, err := store.NewContentStore(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating content store")
	}

	reclaimer, err := service.NewReclaimer(contentStore, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating space reclaimer")
	}

	syncRunner := service.NewSyncRunner(frameServer, contentStore, reclaimer, cfg, log)
	slideshow := service.NewSlideshow(contentStore, log)
	display := client.NewLogDisplay(log)

	app := client.NewApp(syncRunner, slideshow, display, cfg.Workers, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = workers.New(app).Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("frame run error")
	}
	log.Info().Msg("picture frame stopped")
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
