package router

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/anonto42/picly/internal/handlers"
	"github.com/anonto42/picly/internal/middleware"
	"github.com/anonto42/picly/internal/models"
	"github.com/anonto42/picly/internal/repositories"
	"github.com/anonto42/picly/pkg/config"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, logger *slog.Logger) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(middleware.RequestLogger(logger))
	e.Use(middleware.RateLimit(middleware.NewIPRateLimiter(60, time.Minute, 20, 5*time.Minute)))
	logger.Info("global middleware configured")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, cfg *config.Config, logger *slog.Logger) error {
	if err := pgdb.AutoMigrate(&models.User{}); err != nil {
		return err
	}
	logger.Info("postgres auto-migration completed")

	mdb := mgClient.Database(cfg.MongoDatabase)

	userRepo := repositories.NewPostgresUserRepository(pgdb)
	photoRepo := repositories.NewMongoPhotoRepository(mdb)
	favoriteRepo := repositories.NewMongoFavoriteRepository(mdb)
	commentRepo := repositories.NewMongoCommentRepository(mdb)
	albumRepo := repositories.NewMongoAlbumRepository(mdb)

	e.GET("/health", handlers.HealthCheck)

	handlers.NewUserHandler(userRepo).RegisterUserRoutes(e)
	handlers.NewPhotoHandler(photoRepo).RegisterPhotoRoutes(e)
	handlers.NewFavoriteHandler(favoriteRepo, photoRepo).RegisterFavoriteRoutes(e)
	handlers.NewCommentHandler(commentRepo).RegisterCommentRoutes(e)
	handlers.NewAlbumHandler(albumRepo).RegisterAlbumRoutes(e)

	logger.Info("all routes configured")
	return nil
}
