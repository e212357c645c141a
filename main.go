package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"tripform/config"
	"tripform/database"
	"tripform/form"
	"tripform/handlers"
	"tripform/logger"
	"tripform/services"
	"tripform/sessions"
	"tripform/views"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	fallback, err := services.LoadFallbackContent(cfg.FallbackPlanPath)
	if err != nil {
		log.Error("failed to load fallback plan", "error", err)
		os.Exit(1)
	}

	planner := services.NewPlannerClient(cfg.PlannerURL, cfg.PlannerTimeout)
	log.Info("planning service configured", "url", cfg.PlannerURL, "timeout", cfg.PlannerTimeout.String())

	var archive database.Archive = database.NewMemoryArchive()
	if cfg.DatabaseDSN != "" {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		pg, err := database.Open(ctx, cfg.DatabaseDSN, log)
		cancel()
		if err != nil {
			log.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pg.Close()
		archive = pg
		log.Info("database connected and migrated")
	} else {
		log.Warn("no database configured, plans are archived in memory")
	}

	store := sessions.NewStore(cfg.SessionTTL, func() *form.Form {
		return form.New(planner, fallback, log)
	})

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), handlers.RequestLogger(log))
	r.SetHTMLTemplate(views.Templates())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	handlers.New(store, archive, log, cfg.SessionTTL).Register(r)

	log.Info("trip planner form starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
