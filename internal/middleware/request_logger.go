package middleware

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/anonto42/picly/internal/logging"
)

// RequestLogger decorates requests with structured logging metadata and
// logs one completion line per request.
func RequestLogger(base *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			requestID := uuid.NewString()

			req := c.Request()
			reqLogger := base.With(
				slog.String("request_id", requestID),
				slog.String("method", req.Method),
				slog.String("path", req.URL.Path),
				slog.String("remote_addr", c.RealIP()),
			)

			c.SetRequest(req.WithContext(logging.WithLogger(req.Context(), reqLogger)))

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			reqLogger.Info("request completed",
				slog.Int("status", c.Response().Status),
				slog.Duration("duration", time.Since(start)),
			)
			return err
		}
	}
}
