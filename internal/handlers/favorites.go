package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/picly/internal/models"
	"github.com/anonto42/picly/internal/repositories"
)

// FavoriteHandler handles HTTP requests related to favorites
type FavoriteHandler struct {
	favoriteRepository repositories.FavoriteRepository
	photoRepository    repositories.PhotoRepository
}

// NewFavoriteHandler creates a new FavoriteHandler
func NewFavoriteHandler(favoriteRepo repositories.FavoriteRepository, photoRepo repositories.PhotoRepository) *FavoriteHandler {
	return &FavoriteHandler{favoriteRepository: favoriteRepo, photoRepository: photoRepo}
}

// RegisterFavoriteRoutes registers favorite-related routes
func (h *FavoriteHandler) RegisterFavoriteRoutes(e *echo.Echo) {
	e.GET("/favorites", h.ListFavorites)
	e.POST("/favorites", h.CreateFavorite)
	e.DELETE("/favorites/:id", h.DeleteFavorite)
}

// ListFavorites dispatches on the query parameters. With both photoId
// and userId it returns the raw matching records, which clients use as
// a membership check. With only userId it returns the user's favorites
// with each photoId field replaced by the full photo document.
func (h *FavoriteHandler) ListFavorites(c echo.Context) error {
	photoID := c.QueryParam("photoId")
	userID := c.QueryParam("userId")

	favorites, err := h.favoriteRepository.Find(c.Request().Context(), photoID, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if photoID != "" {
		return c.JSON(http.StatusOK, echo.Map{"data": favorites})
	}

	populated := make([]models.FavoriteWithPhoto, 0, len(favorites))
	for _, fav := range favorites {
		photo, err := h.photoRepository.GetPhotoByID(c.Request().Context(), fav.PhotoID)
		if err != nil {
			// The photo was deleted after it was favorited. Skip the
			// orphaned record rather than failing the whole listing.
			if errors.Is(err, repositories.ErrNotFound) {
				continue
			}
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		populated = append(populated, models.FavoriteWithPhoto{
			ID:        fav.ID,
			Photo:     *photo,
			UserID:    fav.UserID,
			CreatedAt: fav.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": populated})
}

// CreateFavorite marks a photo as favorited by a user
func (h *FavoriteHandler) CreateFavorite(c echo.Context) error {
	var req models.CreateFavoriteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	favorite := &models.Favorite{
		PhotoID: req.PhotoID,
		UserID:  req.UserID,
	}
	if err := h.favoriteRepository.CreateFavorite(c.Request().Context(), favorite); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, echo.Map{"data": favorite})
}

// DeleteFavorite removes a favorite record by its ID
func (h *FavoriteHandler) DeleteFavorite(c echo.Context) error {
	err := h.favoriteRepository.DeleteFavorite(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Favorite not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"data": echo.Map{"deleted": true}})
}
