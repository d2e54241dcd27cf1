package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/picly/internal/models"
	"github.com/anonto42/picly/internal/repositories"
)

// PhotoHandler handles HTTP requests related to photos
type PhotoHandler struct {
	photoRepository repositories.PhotoRepository
}

// NewPhotoHandler creates a new PhotoHandler
func NewPhotoHandler(photoRepo repositories.PhotoRepository) *PhotoHandler {
	return &PhotoHandler{photoRepository: photoRepo}
}

// RegisterPhotoRoutes registers photo-related routes
func (h *PhotoHandler) RegisterPhotoRoutes(e *echo.Echo) {
	e.GET("/photos", h.ListPhotos)
	e.POST("/photos", h.CreatePhoto)
	e.PUT("/photos/:id", h.UpdatePhoto)
	e.DELETE("/photos/:id", h.DeletePhoto)
}

// ListPhotos returns all photos, or a single user's photos when the
// userId query parameter is present.
func (h *PhotoHandler) ListPhotos(c echo.Context) error {
	var (
		photos []models.Photo
		err    error
	)
	if userID := c.QueryParam("userId"); userID != "" {
		photos, err = h.photoRepository.GetPhotosByUserID(c.Request().Context(), userID)
	} else {
		photos, err = h.photoRepository.GetPhotos(c.Request().Context())
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"data": photos})
}

// CreatePhoto records a newly posted photo
func (h *PhotoHandler) CreatePhoto(c echo.Context) error {
	var req models.CreatePhotoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	photo := &models.Photo{
		Title:    req.Title,
		Image:    req.Image,
		Location: req.Location,
		UserID:   req.UserID,
	}
	if err := h.photoRepository.CreatePhoto(c.Request().Context(), photo); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, echo.Map{"data": photo})
}

// UpdatePhoto edits an existing photo
func (h *PhotoHandler) UpdatePhoto(c echo.Context) error {
	photoID := c.Param("id")

	photo, err := h.photoRepository.GetPhotoByID(c.Request().Context(), photoID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Photo not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var req models.UpdatePhotoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.Title != "" {
		photo.Title = req.Title
	}
	if req.Location != nil {
		photo.Location = req.Location
	}

	if err := h.photoRepository.UpdatePhoto(c.Request().Context(), photoID, photo); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"data": photo})
}

// DeletePhoto removes a photo
func (h *PhotoHandler) DeletePhoto(c echo.Context) error {
	err := h.photoRepository.DeletePhoto(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Photo not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"data": echo.Map{"deleted": true}})
}
