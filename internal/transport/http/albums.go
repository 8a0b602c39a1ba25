package http

import (
	"log/slog"
	"net/http"

	"wedding_memories/internal/middleware"
	"wedding_memories/internal/transport/http/dto"
	"wedding_memories/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// CreateAlbum godoc
// @Summary Create an album
// @Description The caller becomes the album host.
// @Tags albums
// @Accept json
// @Produce json
// @Param request body dto.CreateAlbumRequest true "Album"
// @Success 201 {object} response.Response{data=models.Album}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /albums/ [post]
func (r *Routers) CreateAlbum(c echo.Context) error {
	const op = "http.routers.CreateAlbum"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.CreateAlbumRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	album, err := r.AlbumService.CreateAlbum(c.Request().Context(), middleware.Actor(c), req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(album))
}

// ListAlbums godoc
// @Summary List public albums
// @Tags albums
// @Produce json
// @Success 200 {object} response.Response{data=[]models.Album}
// @Router /albums/ [get]
func (r *Routers) ListAlbums(c echo.Context) error {
	const op = "http.routers.ListAlbums"

	log := r.log.With(
		slog.String("op", op),
	)

	albums, err := r.AlbumService.ListAlbums(c.Request().Context())
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(albums))
}

// GetAlbum godoc
// @Summary Get an album
// @Tags albums
// @Produce json
// @Param id path string true "Album ID" format(uuid)
// @Success 200 {object} response.Response{data=models.Album}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /albums/{id} [get]
func (r *Routers) GetAlbum(c echo.Context) error {
	const op = "http.routers.GetAlbum"

	log := r.log.With(
		slog.String("op", op),
	)

	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c)
	}

	album, err := r.AlbumService.GetAlbum(c.Request().Context(), id)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(album))
}

// UpdateAlbum godoc
// @Summary Update an album
// @Description Replaces the supplied fields. Host or admin only.
// @Tags albums
// @Accept json
// @Produce json
// @Param id path string true "Album ID" format(uuid)
// @Param request body dto.UpdateAlbumRequest true "Fields to replace"
// @Success 200 {object} response.Response{data=models.Album}
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /albums/{id} [put]
func (r *Routers) UpdateAlbum(c echo.Context) error {
	const op = "http.routers.UpdateAlbum"

	log := r.log.With(
		slog.String("op", op),
	)

	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c)
	}

	var req dto.UpdateAlbumRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	album, err := r.AlbumService.UpdateAlbum(c.Request().Context(), middleware.Actor(c), id, req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(album))
}

// DeleteAlbum godoc
// @Summary Delete an album
// @Tags albums
// @Produce json
// @Param id path string true "Album ID" format(uuid)
// @Success 200 {object} response.Response
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /albums/{id} [delete]
func (r *Routers) DeleteAlbum(c echo.Context) error {
	const op = "http.routers.DeleteAlbum"

	log := r.log.With(
		slog.String("op", op),
	)

	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c)
	}

	if err := r.AlbumService.DeleteAlbum(c.Request().Context(), middleware.Actor(c), id); err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.MessageResponse("Album deleted successfully"))
}
