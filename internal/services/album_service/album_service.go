package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"wedding_memories/internal/domain/models"
	"wedding_memories/internal/lib/logger/sl"
	"wedding_memories/internal/repository"
	"wedding_memories/internal/storage"
	"wedding_memories/internal/transport/http/dto"

	"github.com/google/uuid"
)

var (
	ErrAlbumNotFound   = errors.New("album not found")
	ErrForbidden       = errors.New("not allowed to modify this album")
	ErrNothingToUpdate = errors.New("no fields to update")
)

const maxAlbumLimit = 100

type AlbumService struct {
	log  *slog.Logger
	repo repository.AlbumRepository
}

func NewAlbumService(log *slog.Logger, repo repository.AlbumRepository) *AlbumService {
	return &AlbumService{
		log:  log,
		repo: repo,
	}
}

// CreateAlbum stores a new album hosted by the caller.
func (s *AlbumService) CreateAlbum(ctx context.Context, actor models.Actor, req dto.CreateAlbumRequest) (models.Album, error) {
	const op = "services.AlbumService.CreateAlbum"
	log := s.log.With(
		slog.String("op", op),
		slog.String("host_id", actor.UserID),
	)

	album, err := s.repo.CreateAlbum(ctx, req.ToDomain(actor.UserID))
	if err != nil {
		log.Error("failed to create album", sl.Err(err))
		return models.Album{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("album created", slog.String("album_id", album.ID.String()))
	return album, nil
}

// ListAlbums returns public albums, newest first.
func (s *AlbumService) ListAlbums(ctx context.Context) ([]models.Album, error) {
	const op = "services.AlbumService.ListAlbums"

	albums, err := s.repo.ListPublicAlbums(ctx, maxAlbumLimit)
	if err != nil {
		s.log.Error("failed to list albums", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return albums, nil
}

func (s *AlbumService) GetAlbum(ctx context.Context, id uuid.UUID) (models.Album, error) {
	const op = "services.AlbumService.GetAlbum"

	album, err := s.repo.GetAlbumByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrAlbumNotFound) {
			return models.Album{}, fmt.Errorf("%s: %w", op, ErrAlbumNotFound)
		}

		s.log.Error("failed to get album", slog.String("op", op), sl.Err(err))
		return models.Album{}, fmt.Errorf("%s: %w", op, err)
	}

	return album, nil
}

// UpdateAlbum replaces the supplied fields. Only the host or an admin may update.
func (s *AlbumService) UpdateAlbum(ctx context.Context, actor models.Actor, id uuid.UUID, req dto.UpdateAlbumRequest) (models.Album, error) {
	const op = "services.AlbumService.UpdateAlbum"
	log := s.log.With(
		slog.String("op", op),
		slog.String("album_id", id.String()),
	)

	if err := s.authorize(ctx, actor, id); err != nil {
		return models.Album{}, fmt.Errorf("%s: %w", op, err)
	}

	upd := req.ToDomain()
	if upd.IsEmpty() {
		return models.Album{}, fmt.Errorf("%s: %w", op, ErrNothingToUpdate)
	}

	album, err := s.repo.UpdateAlbum(ctx, id, upd)
	if err != nil {
		if errors.Is(err, storage.ErrAlbumNotFound) {
			return models.Album{}, fmt.Errorf("%s: %w", op, ErrAlbumNotFound)
		}

		log.Error("failed to update album", sl.Err(err))
		return models.Album{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("album updated")
	return album, nil
}

func (s *AlbumService) DeleteAlbum(ctx context.Context, actor models.Actor, id uuid.UUID) error {
	const op = "services.AlbumService.DeleteAlbum"
	log := s.log.With(
		slog.String("op", op),
		slog.String("album_id", id.String()),
	)

	if err := s.authorize(ctx, actor, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.DeleteAlbum(ctx, id); err != nil {
		if errors.Is(err, storage.ErrAlbumNotFound) {
			return fmt.Errorf("%s: %w", op, ErrAlbumNotFound)
		}

		log.Error("failed to delete album", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("album deleted")
	return nil
}

func (s *AlbumService) authorize(ctx context.Context, actor models.Actor, id uuid.UUID) error {
	album, err := s.repo.GetAlbumByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrAlbumNotFound) {
			return ErrAlbumNotFound
		}
		return err
	}

	if !actor.Owns(album.HostID) {
		s.log.Warn("album mutation denied",
			slog.String("album_id", id.String()),
			slog.String("user_id", actor.UserID),
		)
		return ErrForbidden
	}

	return nil
}
