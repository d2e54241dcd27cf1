package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/picly/internal/models"
	"github.com/anonto42/picly/internal/repositories"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository repositories.CommentRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository) *CommentHandler {
	return &CommentHandler{commentRepository: commentRepo}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(e *echo.Echo) {
	e.GET("/comments", h.ListComments)
	e.POST("/comments", h.CreateComment)
	e.DELETE("/comments/:id", h.DeleteComment)
}

// ListComments returns the comments on a photo, oldest first
func (h *CommentHandler) ListComments(c echo.Context) error {
	photoID := c.QueryParam("photoId")
	if photoID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "photoId query parameter is required")
	}

	comments, err := h.commentRepository.GetCommentsByPhotoID(c.Request().Context(), photoID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"data": comments})
}

// CreateComment records a new comment on a photo
func (h *CommentHandler) CreateComment(c echo.Context) error {
	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment := &models.Comment{
		PhotoID: req.PhotoID,
		UserID:  req.UserID,
		Text:    req.Text,
		Rate:    req.Rate,
	}
	if err := h.commentRepository.CreateComment(c.Request().Context(), comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, echo.Map{"data": comment})
}

// DeleteComment removes a comment
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	err := h.commentRepository.DeleteComment(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"data": echo.Map{"deleted": true}})
}
