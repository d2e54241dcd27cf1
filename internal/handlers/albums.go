package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/picly/internal/models"
	"github.com/anonto42/picly/internal/repositories"
)

// AlbumHandler handles HTTP requests related to albums
type AlbumHandler struct {
	albumRepository repositories.AlbumRepository
}

// NewAlbumHandler creates a new AlbumHandler
func NewAlbumHandler(albumRepo repositories.AlbumRepository) *AlbumHandler {
	return &AlbumHandler{albumRepository: albumRepo}
}

// RegisterAlbumRoutes registers album-related routes
func (h *AlbumHandler) RegisterAlbumRoutes(e *echo.Echo) {
	e.GET("/albums", h.ListAlbums)
	e.POST("/albums", h.CreateAlbum)
	e.PUT("/albums/:id/photos/:photoId", h.AddPhoto)
}

// ListAlbums returns a user's albums
func (h *AlbumHandler) ListAlbums(c echo.Context) error {
	userID := c.QueryParam("userId")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "userId query parameter is required")
	}

	albums, err := h.albumRepository.GetAlbumsByUserID(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"data": albums})
}

// CreateAlbum creates a new empty album
func (h *AlbumHandler) CreateAlbum(c echo.Context) error {
	var req models.CreateAlbumRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	album := &models.Album{
		Title:  req.Title,
		UserID: req.UserID,
	}
	if err := h.albumRepository.CreateAlbum(c.Request().Context(), album); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, echo.Map{"data": album})
}

// AddPhoto adds a photo to an album, ignoring duplicates
func (h *AlbumHandler) AddPhoto(c echo.Context) error {
	photoID := c.Param("photoId")
	if photoID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "photoId path parameter is required")
	}

	album, err := h.albumRepository.AddPhoto(c.Request().Context(), c.Param("id"), photoID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Album not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"data": album})
}
