package http

import (
	"context"
	"net/http"
	"time"

	"wedding_memories/internal/lib/logger/sl"

	"github.com/labstack/echo/v4"
)

const apiVersion = "1.0.0"

// Root godoc
// @Summary Service banner
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func (r *Routers) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Wedding Memories API is running!",
		"version": apiVersion,
		"docs":    "/swagger/index.html",
	})
}

// Health godoc
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (r *Routers) Health(c echo.Context) error {
	services := []string{"api", "database", "storage", "moderation", "payments"}

	if r.health != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		if err := r.health.Ping(ctx); err != nil {
			r.log.Warn("health check failed", sl.Err(err))

			return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
				"status":   "unhealthy",
				"services": services,
				"error":    "database unreachable",
			})
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":   "healthy",
		"services": services,
	})
}
