package repository

import (
	"context"
	"time"

	"wedding_memories/internal/domain/models"

	"github.com/google/uuid"
)

type UserRepository interface {
	SaveUser(ctx context.Context, user models.User) (models.User, error)
	UserByEmail(ctx context.Context, email string) (models.User, error)
	GetUserById(ctx context.Context, userID uuid.UUID) (models.User, error)
	ListUsers(ctx context.Context, limit uint64) ([]models.User, error)
}

type TokenRepository interface {
	RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type AlbumRepository interface {
	CreateAlbum(ctx context.Context, album models.Album) (models.Album, error)
	ListPublicAlbums(ctx context.Context, limit uint64) ([]models.Album, error)
	GetAlbumByID(ctx context.Context, id uuid.UUID) (models.Album, error)
	UpdateAlbum(ctx context.Context, id uuid.UUID, upd models.AlbumUpdate) (models.Album, error)
	DeleteAlbum(ctx context.Context, id uuid.UUID) error
}

type MediaRepository interface {
	CreateMedia(ctx context.Context, media models.Media) (models.Media, error)
	GetMediaByID(ctx context.Context, id uuid.UUID) (models.Media, error)
	ListActiveByAlbum(ctx context.Context, albumID string, limit uint64) ([]models.Media, error)
	ListApproved(ctx context.Context, limit uint64) ([]models.Media, error)
	ListFlagged(ctx context.Context, hostID string, limit uint64) ([]models.Media, error)
	FlagMedia(ctx context.Context, id uuid.UUID) error
	ApproveMedia(ctx context.Context, id uuid.UUID) (models.Media, error)
	DeleteMedia(ctx context.Context, id uuid.UUID) (models.Media, error)
}

type StatsRepository interface {
	Dashboard(ctx context.Context, recentSince time.Time) (models.DashboardStats, error)
	DailyUploads(ctx context.Context, since time.Time) ([]models.DailyCount, error)
	MediaByType(ctx context.Context, limit uint64) ([]models.TypeCount, error)
}
