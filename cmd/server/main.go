package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/famsdev/fams_backend/internal/attendance"
	"github.com/famsdev/fams_backend/internal/config"
	"github.com/famsdev/fams_backend/internal/database"
	"github.com/famsdev/fams_backend/internal/routes"
	"github.com/famsdev/fams_backend/internal/services"
	"github.com/famsdev/fams_backend/internal/syncengine"
	"github.com/famsdev/fams_backend/internal/ws"
)

func main() {
	// Load .env (non-fatal if missing in production)
	_ = godotenv.Load()

	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()

	ctx := context.Background()

	stores, err := database.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("store setup failed")
	}
	defer stores.Close()

	registry := services.NewRegistry(stores.Active, log)
	machine := attendance.New(stores.Active, log)

	var engine *syncengine.Engine
	if stores.Remote != nil {
		engine = syncengine.New(stores.Local, stores.Remote, log)
		if cfg.HydrateOnBoot {
			bootCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
			if _, err := engine.FlushLogs(bootCtx); err != nil {
				log.Warn().Err(err).Msg("boot log flush failed")
			}
			if _, err := engine.FlushChanges(bootCtx); err != nil {
				log.Warn().Err(err).Msg("boot change flush failed")
			}
			if _, err := engine.Hydrate(bootCtx); err != nil {
				log.Warn().Err(err).Msg("boot hydration failed")
			}
			cancel()
		}
	}

	if err := database.SeedAdmin(ctx, registry.Users, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("admin seed failed")
	}
	if err := database.SeedSemesters(ctx, registry.Semesters, log); err != nil {
		log.Fatal().Err(err).Msg("semester seed failed")
	}

	hub := ws.NewLiveHub()
	go hub.Run()

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go machine.RunSweeper(sweepCtx, cfg.SweepInterval)

	r := gin.Default()
	routes.Register(r, routes.Deps{
		Cfg:      cfg,
		Registry: registry,
		Stores:   stores,
		Engine:   engine,
		Machine:  machine,
		Hub:      hub,
		Log:      log,
	})

	log.Info().Str("port", cfg.Port).Bool("offline", cfg.Offline).Msg("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
