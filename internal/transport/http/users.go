package http

import (
	"log/slog"
	"net/http"

	"wedding_memories/internal/middleware"
	"wedding_memories/internal/transport/http/dto"
	"wedding_memories/internal/transport/http/dto/request"
	"wedding_memories/internal/transport/http/dto/response"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Register godoc
// @Summary Register a new user
// @Description Creates a guest account and returns an access token.
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.UserRegisterInput true "Registration data"
// @Success 201 {object} response.Response{data=models.AuthResult}
// @Failure 400 {object} response.ErrorResponse "Invalid request"
// @Failure 409 {object} response.ErrorResponse "Email already registered"
// @Failure 500 {object} response.ErrorResponse
// @Router /users/register [post]
func (r *Routers) Register(c echo.Context) error {
	const op = "http.routers.Register"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.UserRegisterInput

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRegisterRequest)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.WithDetails(response.ErrInvalidRegisterRequest, err.Error()))
	}

	res, err := r.UserService.RegisterUser(c.Request().Context(), req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.Response{
		Status:  "success",
		Data:    res,
		Message: "User registered successfully",
	})
}

// Login godoc
// @Summary Log in
// @Description Authenticates by email and password and returns a bearer token.
// @Tags users
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Credentials"
// @Success 200 {object} response.Response{data=models.AuthResult}
// @Failure 400 {object} response.ErrorResponse "Invalid request"
// @Failure 401 {object} response.ErrorResponse "Invalid credentials"
// @Router /users/login [post]
func (r *Routers) Login(c echo.Context) error {
	const op = "http.routers.Login"

	log := r.log.With(
		slog.String("op", op),
	)

	var req request.LoginRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	res, err := r.UserService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(res))
}

// Logout godoc
// @Summary Log out
// @Description Acknowledges logout. Revokes the token when revocation is enabled.
// @Tags users
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /users/logout [post]
func (r *Routers) Logout(c echo.Context) error {
	const op = "http.routers.Logout"

	log := r.log.With(
		slog.String("op", op),
	)

	claims, _ := middleware.Claims(c)

	if err := r.UserService.Logout(c.Request().Context(), claims); err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.MessageResponse("Logged out successfully"))
}

// Profile godoc
// @Summary Current user
// @Tags users
// @Produce json
// @Success 200 {object} response.Response{data=models.User}
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /users/profile [get]
func (r *Routers) Profile(c echo.Context) error {
	const op = "http.routers.Profile"

	log := r.log.With(
		slog.String("op", op),
	)

	userID, err := uuid.Parse(middleware.Actor(c).UserID)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, response.ErrorResponseWithDetails("unauthorized", "Invalid token subject"))
	}

	user, err := r.UserService.Profile(c.Request().Context(), userID)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(user))
}

// ListUsers godoc
// @Summary List users
// @Description Admin only. At most 1000 users.
// @Tags users
// @Produce json
// @Param limit query int false "Maximum number of users"
// @Success 200 {object} response.Response{data=[]models.User}
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /users/ [get]
func (r *Routers) ListUsers(c echo.Context) error {
	const op = "http.routers.ListUsers"

	log := r.log.With(
		slog.String("op", op),
	)

	users, err := r.UserService.ListUsers(c.Request().Context(), queryLimit(c))
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(users))
}
