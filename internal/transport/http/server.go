package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"wedding_memories/internal/domain/models"
	"wedding_memories/internal/lib/jwt"
	"wedding_memories/internal/lib/logger/sl"
	albumservice "wedding_memories/internal/services/album_service"
	mediaservice "wedding_memories/internal/services/media_service"
	paymentservice "wedding_memories/internal/services/payment_service"
	userservice "wedding_memories/internal/services/user_service"
	"wedding_memories/internal/transport/http/dto"
	"wedding_memories/internal/transport/http/dto/response"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type UserService interface {
	RegisterUser(ctx context.Context, input dto.UserRegisterInput) (*models.AuthResult, error)
	Login(ctx context.Context, email, password string) (*models.AuthResult, error)
	Logout(ctx context.Context, claims *jwt.Claims) error
	Profile(ctx context.Context, userID uuid.UUID) (models.User, error)
	ListUsers(ctx context.Context, limit int) ([]models.User, error)
}

type AlbumService interface {
	CreateAlbum(ctx context.Context, actor models.Actor, req dto.CreateAlbumRequest) (models.Album, error)
	ListAlbums(ctx context.Context) ([]models.Album, error)
	GetAlbum(ctx context.Context, id uuid.UUID) (models.Album, error)
	UpdateAlbum(ctx context.Context, actor models.Actor, id uuid.UUID, req dto.UpdateAlbumRequest) (models.Album, error)
	DeleteAlbum(ctx context.Context, actor models.Actor, id uuid.UUID) error
}

type MediaService interface {
	CreateMedia(ctx context.Context, actor models.Actor, req dto.CreateMediaRequest) (models.Media, error)
	UploadMedia(ctx context.Context, input dto.MediaUploadInput) (models.Media, error)
	GetMedia(ctx context.Context, id uuid.UUID) (models.Media, error)
	ListAlbumMedia(ctx context.Context, albumID string) ([]models.Media, error)
	ListApproved(ctx context.Context) ([]models.Media, error)
	ListFlagged(ctx context.Context, actor models.Actor) ([]models.Media, error)
	ReportMedia(ctx context.Context, id uuid.UUID) error
	ApproveMedia(ctx context.Context, actor models.Actor, id uuid.UUID) (models.Media, error)
	RejectMedia(ctx context.Context, actor models.Actor, id uuid.UUID) error
}

type PaymentService interface {
	CreateOrder(ctx context.Context, actor models.Actor, req dto.CreateOrderRequest) (models.Order, error)
	VerifyPayment(ctx context.Context, req dto.VerifyPaymentRequest) (bool, error)
	GetPayment(ctx context.Context, paymentID string) (models.PaymentDetails, error)
	UpgradePlan(ctx context.Context, actor models.Actor, req dto.UpgradePlanRequest) (models.PlanOrder, error)
}

type AdminService interface {
	Dashboard(ctx context.Context) (models.DashboardStats, error)
	Analytics(ctx context.Context) (models.Analytics, error)
}

// HealthChecker is pinged by the health endpoint when set.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Routers struct {
	log            *slog.Logger
	UserService    UserService
	AlbumService   AlbumService
	MediaService   MediaService
	PaymentService PaymentService
	AdminService   AdminService
	health         HealthChecker
	maxUploadSize  int64
}

func NewRouter(
	log *slog.Logger,
	userService UserService,
	albumService AlbumService,
	mediaService MediaService,
	paymentService PaymentService,
	adminService AdminService,
	health HealthChecker,
	maxUploadSize int64,
) *Routers {
	return &Routers{
		log:            log,
		UserService:    userService,
		AlbumService:   albumService,
		MediaService:   mediaService,
		PaymentService: paymentService,
		AdminService:   adminService,
		health:         health,
		maxUploadSize:  maxUploadSize,
	}
}

// bind decodes and validates the request body into dst. When it reports false the
// 400 response has already been written and err is what the handler returns.
func bind(c echo.Context, dst interface{}) (bool, error) {
	if err := c.Bind(dst); err != nil {
		return false, c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(dst); err != nil {
		return false, c.JSON(http.StatusBadRequest, response.WithDetails(response.ErrInvalidRequestFormat, err.Error()))
	}

	return true, nil
}

func parseID(c echo.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func invalidID(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, response.ErrInvalidID)
}

func queryLimit(c echo.Context) int {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil {
		return 0
	}
	return limit
}

// fail maps service errors onto the error envelope.
func (r *Routers) fail(c echo.Context, log *slog.Logger, err error) error {
	status, body := classify(err)

	if status >= http.StatusInternalServerError {
		log.Error("request failed", sl.Err(err))
	} else {
		log.Warn("request rejected", slog.Int("status", status), sl.Err(err))
	}

	return c.JSON(status, body)
}

func classify(err error) (int, response.ErrorResponse) {
	switch {
	case errors.Is(err, userservice.ErrUserExist):
		return http.StatusConflict, response.ErrUserAlreadyExists

	case errors.Is(err, userservice.ErrInvalidCredentials):
		return http.StatusUnauthorized, response.ErrAuthenticationFailed

	case errors.Is(err, userservice.ErrUserNotFound):
		return http.StatusNotFound, response.WithDetails(response.ErrNotFound, "User not found")
	case errors.Is(err, albumservice.ErrAlbumNotFound):
		return http.StatusNotFound, response.WithDetails(response.ErrNotFound, "Album not found")
	case errors.Is(err, mediaservice.ErrMediaNotFound):
		return http.StatusNotFound, response.WithDetails(response.ErrNotFound, "Media not found")

	case errors.Is(err, albumservice.ErrForbidden):
		return http.StatusForbidden, response.WithDetails(response.ErrForbidden, "Only the album host or an admin can do this")
	case errors.Is(err, mediaservice.ErrForbidden):
		return http.StatusForbidden, response.WithDetails(response.ErrForbidden, "Only the album host or an admin can do this")

	case errors.Is(err, mediaservice.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, response.ErrFileTooLarge

	case errors.Is(err, albumservice.ErrNothingToUpdate),
		errors.Is(err, mediaservice.ErrUnsupportedType),
		errors.Is(err, mediaservice.ErrEmptyFile),
		errors.Is(err, mediaservice.ErrMissingAlbumID),
		errors.Is(err, mediaservice.ErrMissingMediaRecord),
		errors.Is(err, paymentservice.ErrUnknownPlan):
		return http.StatusBadRequest, response.WithDetails(response.ErrInvalidRequestFormat, rootMessage(err))

	case errors.Is(err, paymentservice.ErrNotConfigured):
		return http.StatusBadRequest, response.WithDetails(response.ErrPaymentFailed, "Payment service not configured")
	case errors.Is(err, paymentservice.ErrOrderFailed),
		errors.Is(err, paymentservice.ErrPaymentLookup):
		return http.StatusBadRequest, response.WithDetails(response.ErrPaymentFailed, err.Error())

	default:
		return http.StatusInternalServerError, response.WithDetails(response.ErrInternal, err.Error())
	}
}

// rootMessage returns the message of the innermost wrapped error.
func rootMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
