package http

import (
	"log/slog"
	"net/http"

	"wedding_memories/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// Dashboard godoc
// @Summary Admin dashboard
// @Description Totals plus uploads and active uploaders over the last 7 days.
// @Tags admin
// @Produce json
// @Success 200 {object} response.Response{data=models.DashboardStats}
// @Failure 403 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /admin/dashboard [get]
func (r *Routers) Dashboard(c echo.Context) error {
	const op = "http.routers.Dashboard"

	log := r.log.With(
		slog.String("op", op),
	)

	stats, err := r.AdminService.Dashboard(c.Request().Context())
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(stats))
}

// Analytics godoc
// @Summary Upload analytics
// @Description Daily uploads over 30 days and media counts by type.
// @Tags admin
// @Produce json
// @Success 200 {object} response.Response{data=models.Analytics}
// @Failure 403 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /admin/analytics [get]
func (r *Routers) Analytics(c echo.Context) error {
	const op = "http.routers.Analytics"

	log := r.log.With(
		slog.String("op", op),
	)

	analytics, err := r.AdminService.Analytics(c.Request().Context())
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(analytics))
}
