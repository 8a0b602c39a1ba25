package http

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"wedding_memories/internal/lib/logger/sl"
	"wedding_memories/internal/middleware"
	"wedding_memories/internal/transport/http/dto"
	"wedding_memories/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// CreateMedia godoc
// @Summary Insert a media record
// @Description Stores a fully formed media record as sent. uploaded_at is not set.
// @Tags media
// @Accept json
// @Produce json
// @Param request body dto.CreateMediaRequest true "Media record"
// @Success 201 {object} response.Response{data=models.Media}
// @Failure 400 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /media/ [post]
func (r *Routers) CreateMedia(c echo.Context) error {
	const op = "http.routers.CreateMedia"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.CreateMediaRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	media, err := r.MediaService.CreateMedia(c.Request().Context(), middleware.Actor(c), req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(media))
}

// UploadMedia godoc
// @Summary Upload a photo or video
// @Description Images are moderated before storage; videos are always approved.
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image or video"
// @Param album_id formData string true "Album ID"
// @Param caption formData string false "Caption"
// @Success 201 {object} response.Response{data=models.Media}
// @Failure 400 {object} response.ErrorResponse "Missing file or unsupported type"
// @Failure 413 {object} response.ErrorResponse "File too large"
// @Failure 500 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /media/upload/ [post]
func (r *Routers) UploadMedia(c echo.Context) error {
	const op = "http.routers.UploadMedia"

	log := r.log.With(
		slog.String("op", op),
	)

	file, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.WithDetails(response.ErrInvalidRequestFormat, "File is required"))
	}

	if r.maxUploadSize > 0 && file.Size > r.maxUploadSize {
		return c.JSON(http.StatusRequestEntityTooLarge, response.ErrFileTooLarge)
	}

	src, err := file.Open()
	if err != nil {
		log.Error("failed to open upload", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.WithDetails(response.ErrInternal, "Failed to read file"))
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		log.Error("failed to read upload", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.WithDetails(response.ErrInternal, "Failed to read file"))
	}

	contentType := file.Header.Get(echo.HeaderContentType)
	if contentType == "" || contentType == echo.MIMEOctetStream {
		contentType = http.DetectContentType(data)
	}

	input := dto.MediaUploadInput{
		AlbumID:     strings.TrimSpace(c.FormValue("album_id")),
		UploadedBy:  middleware.Actor(c).UserID,
		Filename:    file.Filename,
		ContentType: contentType,
		Data:        data,
	}
	if caption := c.FormValue("caption"); caption != "" {
		input.Caption = &caption
	}

	if err := c.Validate(input); err != nil {
		return c.JSON(http.StatusBadRequest, response.WithDetails(response.ErrInvalidRequestFormat, err.Error()))
	}

	log.Debug("upload received",
		slog.String("filename", file.Filename),
		slog.Int64("size", file.Size),
		slog.String("content_type", contentType),
	)

	media, err := r.MediaService.UploadMedia(c.Request().Context(), input)
	if err != nil {
		return r.fail(c, log, err)
	}

	message := "Media uploaded successfully"
	if media.Flagged {
		message = "Media uploaded and held for review"
	}

	return c.JSON(http.StatusCreated, response.Response{
		Status:  "success",
		Data:    media,
		Message: message,
	})
}

// GetMedia godoc
// @Summary Get a media item
// @Tags media
// @Produce json
// @Param id path string true "Media ID" format(uuid)
// @Success 200 {object} response.Response{data=models.Media}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /media/{id} [get]
func (r *Routers) GetMedia(c echo.Context) error {
	const op = "http.routers.GetMedia"

	log := r.log.With(
		slog.String("op", op),
	)

	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c)
	}

	media, err := r.MediaService.GetMedia(c.Request().Context(), id)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(media))
}

// ListAlbumMedia godoc
// @Summary Active media of an album
// @Tags media
// @Produce json
// @Param album_id path string true "Album ID"
// @Success 200 {object} response.Response{data=[]models.Media}
// @Router /media/album/{album_id} [get]
func (r *Routers) ListAlbumMedia(c echo.Context) error {
	const op = "http.routers.ListAlbumMedia"

	log := r.log.With(
		slog.String("op", op),
	)

	media, err := r.MediaService.ListAlbumMedia(c.Request().Context(), c.Param("album_id"))
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(media))
}

// ListApprovedMedia godoc
// @Summary All approved media
// @Tags media
// @Produce json
// @Success 200 {object} response.Response{data=[]models.Media}
// @Router /media/all [get]
func (r *Routers) ListApprovedMedia(c echo.Context) error {
	const op = "http.routers.ListApprovedMedia"

	log := r.log.With(
		slog.String("op", op),
	)

	media, err := r.MediaService.ListApproved(c.Request().Context())
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(media))
}

// ListFlaggedMedia godoc
// @Summary Flagged media
// @Description Admins see every flagged item; hosts see the items in their albums.
// @Tags media
// @Produce json
// @Success 200 {object} response.Response{data=[]models.Media}
// @Failure 401 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /media/flagged [get]
func (r *Routers) ListFlaggedMedia(c echo.Context) error {
	const op = "http.routers.ListFlaggedMedia"

	log := r.log.With(
		slog.String("op", op),
	)

	media, err := r.MediaService.ListFlagged(c.Request().Context(), middleware.Actor(c))
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(media))
}

// ReportMedia godoc
// @Summary Report a media item
// @Description Flags the item for review regardless of its current state.
// @Tags media
// @Produce json
// @Param id path string true "Media ID" format(uuid)
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /media/report/{id} [post]
func (r *Routers) ReportMedia(c echo.Context) error {
	const op = "http.routers.ReportMedia"

	log := r.log.With(
		slog.String("op", op),
	)

	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c)
	}

	if err := r.MediaService.ReportMedia(c.Request().Context(), id); err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.MessageResponse("Media reported successfully"))
}

// ApproveMedia godoc
// @Summary Approve a media item
// @Tags media
// @Produce json
// @Param id path string true "Media ID" format(uuid)
// @Success 200 {object} response.Response{data=models.Media}
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /media/approve/{id} [patch]
func (r *Routers) ApproveMedia(c echo.Context) error {
	const op = "http.routers.ApproveMedia"

	log := r.log.With(
		slog.String("op", op),
	)

	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c)
	}

	media, err := r.MediaService.ApproveMedia(c.Request().Context(), middleware.Actor(c), id)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.Response{
		Status:  "success",
		Data:    media,
		Message: "Media approved successfully",
	})
}

// RejectMedia godoc
// @Summary Reject a media item
// @Description Deletes the record and the stored file.
// @Tags media
// @Produce json
// @Param id path string true "Media ID" format(uuid)
// @Success 200 {object} response.Response
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /media/reject/{id} [delete]
func (r *Routers) RejectMedia(c echo.Context) error {
	const op = "http.routers.RejectMedia"

	log := r.log.With(
		slog.String("op", op),
	)

	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c)
	}

	if err := r.MediaService.RejectMedia(c.Request().Context(), middleware.Actor(c), id); err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.MessageResponse("Media rejected and deleted"))
}
