package httpapp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"wedding_memories/internal/config"
	appmiddleware "wedding_memories/internal/middleware"
	httprouters "wedding_memories/internal/transport/http"
	"wedding_memories/internal/transport/http/dto/response"

	"github.com/arl/statsviz"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "wedding_memories/docs"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// StaticDir serves locally stored media.
type StaticDir struct {
	Prefix string
	Dir    string
}

type Server struct {
	m       *http.ServeMux
	log     *slog.Logger
	e       *echo.Echo
	routers *httprouters.Routers
	tokens  appmiddleware.TokenParser
	cfg     config.HTTPConfig
	static  StaticDir
}

func New(log *slog.Logger, cfg config.HTTPConfig, routers *httprouters.Routers, tokens appmiddleware.TokenParser, static StaticDir) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout

	validate := validator.New()
	e.Validator = &CustomValidator{validator: validate}

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(middleware.Recover())
	e.Use(appmiddleware.PrometheusMetrics)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogRemoteIP:  true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote_ip", v.RemoteIP),
			)

			return nil
		},
	}))

	mux := http.NewServeMux()
	if err := statsviz.Register(mux); err != nil {
		log.Warn("statsviz registration failed", slog.String("error", err.Error()))
	}

	return &Server{
		m:       mux,
		log:     log,
		e:       e,
		routers: routers,
		tokens:  tokens,
		cfg:     cfg,
		static:  static,
	}
}

// Echo exposes the router for in-process tests.
func (s *Server) Echo() *echo.Echo {
	return s.e
}

func (s *Server) MustRun() {
	const op = "http.Server.MustRun"

	s.log.Info("starting http server", slog.String("op", op), slog.String("addr", s.addr()))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "http.Server.Start"

	if err := s.e.Start(s.addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s server stopped: %w", op, err)
	}

	return nil
}

func (s *Server) Stop() error {
	const op = "http.Server.Stop"

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	optCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.log.Info("stopping http server", slog.String("op", op))

	if err := s.e.Shutdown(optCtx); err != nil {
		return fmt.Errorf("%s could not shutdown server gracefully: %w", op, err)
	}

	return nil
}

func (s *Server) addr() string {
	return net.JoinHostPort(s.cfg.Host, s.cfg.Port)
}

// authLimiter throttles login and register per client IP. A zero rate disables it.
func (s *Server) authLimiter() echo.MiddlewareFunc {
	if s.cfg.AuthRateLimit <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(s.cfg.AuthRateLimit),
		Burst:     s.cfg.AuthBurst,
		ExpiresIn: 3 * time.Minute,
	})

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusForbidden, response.ErrorResponseWithDetails("forbidden", "Unable to identify client"))
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, response.ErrorResponseWithDetails("rate_limited", "Too many attempts, try again later"))
		},
	})
}

func (s *Server) BuildRouters() {
	auth := appmiddleware.JWT(s.tokens)
	admin := appmiddleware.RequireAdmin
	limiter := s.authLimiter()

	s.e.GET("/", s.routers.Root)
	s.e.GET("/health", s.routers.Health)
	s.e.GET("/metrics", echoprometheus.NewHandler())

	if s.static.Prefix != "" && s.static.Dir != "" {
		s.e.Static(s.static.Prefix, s.static.Dir)
	}

	debug := s.e.Group("/debug")
	{
		debug.GET("/statsviz/", echo.WrapHandler(s.m))
		debug.GET("/statsviz/*", echo.WrapHandler(s.m))
	}

	s.e.GET("/swagger/*", echoSwagger.WrapHandler)

	users := s.e.Group("/users")
	{
		users.POST("/register", s.routers.Register, limiter)
		users.POST("/login", s.routers.Login, limiter)
		users.POST("/logout", s.routers.Logout, auth)
		users.GET("/profile", s.routers.Profile, auth)
		users.GET("/", s.routers.ListUsers, auth, admin)
	}

	albums := s.e.Group("/albums")
	{
		albums.GET("/", s.routers.ListAlbums)
		albums.GET("/:id", s.routers.GetAlbum)
		albums.POST("/", s.routers.CreateAlbum, auth)
		albums.PUT("/:id", s.routers.UpdateAlbum, auth)
		albums.DELETE("/:id", s.routers.DeleteAlbum, auth)
	}

	media := s.e.Group("/media")
	{
		media.POST("/", s.routers.CreateMedia, auth)
		media.POST("/upload/", s.routers.UploadMedia, auth)
		media.GET("/all", s.routers.ListApprovedMedia)
		media.GET("/flagged", s.routers.ListFlaggedMedia, auth)
		media.GET("/album/:album_id", s.routers.ListAlbumMedia)
		media.POST("/report/:id", s.routers.ReportMedia, auth)
		media.PATCH("/approve/:id", s.routers.ApproveMedia, auth)
		media.DELETE("/reject/:id", s.routers.RejectMedia, auth)
		media.GET("/:id", s.routers.GetMedia)
	}

	payments := s.e.Group("/payments", auth)
	{
		payments.POST("/create-order", s.routers.CreateOrder)
		payments.POST("/verify-payment", s.routers.VerifyPayment)
		payments.POST("/upgrade-plan", s.routers.UpgradePlan)
		payments.GET("/payment/:payment_id", s.routers.GetPayment)
	}

	adminGroup := s.e.Group("/admin", auth, admin)
	{
		adminGroup.GET("/dashboard", s.routers.Dashboard)
		adminGroup.GET("/users", s.routers.ListUsers)
		adminGroup.GET("/flagged-media", s.routers.ListFlaggedMedia)
		adminGroup.GET("/analytics", s.routers.Analytics)
		adminGroup.PATCH("/approve-media/:id", s.routers.ApproveMedia)
		adminGroup.DELETE("/reject-media/:id", s.routers.RejectMedia)
	}
}
