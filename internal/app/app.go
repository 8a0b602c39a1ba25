package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	httpapp "wedding_memories/internal/app/http"
	"wedding_memories/internal/config"
	"wedding_memories/internal/lib/logger/sl"
	"wedding_memories/internal/metrics"
	"wedding_memories/internal/moderation"
	"wedding_memories/internal/payments"
	"wedding_memories/internal/repository"
	adminservice "wedding_memories/internal/services/admin_service"
	albumservice "wedding_memories/internal/services/album_service"
	mediaservice "wedding_memories/internal/services/media_service"
	paymentservice "wedding_memories/internal/services/payment_service"
	tokenservice "wedding_memories/internal/services/token_service"
	userservice "wedding_memories/internal/services/user_service"
	"wedding_memories/internal/storage/filestorage"
	"wedding_memories/internal/storage/postgresql"
	"wedding_memories/internal/storage/redis"
	httprouters "wedding_memories/internal/transport/http"
)

const memoryDenylistCleanup = 10 * time.Minute

type App struct {
	log        *slog.Logger
	HTTPServer *httpapp.Server
	storage    *postgresql.Storage
	files      *filestorage.Storage
	redis      *redis.Client
}

// New wires every component from cfg. Domain metrics are registered on reg.
func New(ctx context.Context, log *slog.Logger, cfg *config.Config, reg prometheus.Registerer) (*App, error) {
	const op = "app.New"

	oplog := log.With(slog.String("op", op))

	if cfg.Postgres.MigrateOnStart {
		dsn, err := postgresql.WithDatabase(cfg.Postgres.DSN, cfg.Postgres.Database)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err := postgresql.Migrate(dsn); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		oplog.Info("migrations applied")
	}

	storage, err := postgresql.New(ctx, cfg.Postgres.DSN, cfg.Postgres.Database)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	a := &App{log: log, storage: storage}

	repo := repository.NewRepository(storage.Pool())
	collector := metrics.NewCollector(reg)

	var denylist repository.TokenRepository
	if cfg.Auth.RevokeOnLogout {
		if cfg.Redis.RedisAddr != "" {
			client, err := redis.Connect(ctx, cfg.Redis)
			if err != nil {
				a.Stop()
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			a.redis = client
			denylist = repository.NewRedisTokenRepo(client)
		} else {
			oplog.Warn("revocation uses an in-process denylist; revoked tokens are forgotten on restart")
			denylist = repository.NewMemoryTokenRepo(memoryDenylistCleanup)
		}
	}

	tokens := tokenservice.NewTokenService(log, denylist, cfg.Auth.TokenSecret, cfg.Auth.TokenTTL)
	users := userservice.NewUserService(log, repo.User, tokens)
	albums := albumservice.NewAlbumService(log, repo.Album)

	files, err := filestorage.NewFromConfig(ctx, log, cfg, collector)
	if err != nil {
		a.Stop()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	a.files = files

	moderator := moderation.New(log, cfg.Moderation, collector)
	if !moderator.Enabled() {
		oplog.Warn("moderation endpoint not configured, every upload is treated as safe")
	}

	media := mediaservice.NewMediaService(log, repo.Media, repo.Album, files, moderator, cfg.FileStorage.MaxSize)

	var provider paymentservice.Provider
	stripe, err := payments.NewStripe(log, cfg.Payments, collector)
	switch {
	case errors.Is(err, payments.ErrNotConfigured):
		oplog.Warn("payments disabled, STRIPE_SECRET_KEY is not set")
	case err != nil:
		a.Stop()
		return nil, fmt.Errorf("%s: %w", op, err)
	default:
		provider = stripe
	}

	paymentSvc := paymentservice.NewPaymentService(log, provider, cfg.Payments.DefaultCurrency)
	admin := adminservice.NewAdminService(log, repo.Stats)

	routers := httprouters.NewRouter(
		log,
		users,
		albums,
		media,
		paymentSvc,
		admin,
		storage.Pool(),
		cfg.FileStorage.MaxSize,
	)

	a.HTTPServer = httpapp.New(log, cfg.HTTP, routers, tokens, httpapp.StaticDir{
		Prefix: cfg.FileStorage.PublicPrefix,
		Dir:    cfg.FileStorage.BaseDir,
	})

	return a, nil
}

// Stop shuts the HTTP server down first, then releases backing connections.
func (a *App) Stop() {
	if a.HTTPServer != nil {
		if err := a.HTTPServer.Stop(); err != nil {
			a.log.Error("http server shutdown", sl.Err(err))
		}
	}

	if a.files != nil {
		if err := a.files.Close(); err != nil {
			a.log.Error("close media storage", sl.Err(err))
		}
	}

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Error("close redis", sl.Err(err))
		}
	}

	if a.storage != nil {
		a.storage.Stop()
	}
}
