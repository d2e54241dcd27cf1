package main

import (
	"os"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/picly/internal/logging"
	"github.com/anonto42/picly/internal/router"
	"github.com/anonto42/picly/pkg/config"
	"github.com/anonto42/picly/validators"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Error("failed to initialize databases", "error", err)
		os.Exit(1)
	}
	defer db.CloseDB()

	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()

	router.SetupMiddleware(e, logger)
	if err := router.SetupRoutes(e, db.Postgres, db.Mongo, cfg, logger); err != nil {
		logger.Error("failed to set up routes", "error", err)
		os.Exit(1)
	}

	logger.Info("starting store server", "port", cfg.StorePort)
	if err := e.Start(":" + cfg.StorePort); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
