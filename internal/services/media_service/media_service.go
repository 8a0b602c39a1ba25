package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"wedding_memories/internal/domain/models"
	"wedding_memories/internal/lib/logger/sl"
	"wedding_memories/internal/moderation"
	"wedding_memories/internal/repository"
	"wedding_memories/internal/storage"
	"wedding_memories/internal/transport/http/dto"

	"github.com/google/uuid"
)

var (
	ErrMediaNotFound      = errors.New("media not found")
	ErrForbidden          = errors.New("not allowed to moderate this media")
	ErrUnsupportedType    = errors.New("only image and video files are allowed")
	ErrFileTooLarge       = errors.New("file too large")
	ErrEmptyFile          = errors.New("empty file")
	ErrMissingAlbumID     = errors.New("album_id is required")
	ErrMissingMediaRecord = errors.New("album_id and url are required")
)

const (
	maxMediaLimit = 100
	defaultExt    = "jpg"
)

type FileStore interface {
	Upload(ctx context.Context, data []byte, filename, contentType string) (string, error)
	Delete(ctx context.Context, filename string) bool
}

type Moderator interface {
	Check(ctx context.Context, data []byte) moderation.Result
}

type AlbumReader interface {
	GetAlbumByID(ctx context.Context, id uuid.UUID) (models.Album, error)
}

type MediaService struct {
	log       *slog.Logger
	repo      repository.MediaRepository
	albums    AlbumReader
	files     FileStore
	moderator Moderator
	maxSize   int64
	now       func() time.Time
}

func NewMediaService(
	log *slog.Logger,
	repo repository.MediaRepository,
	albums AlbumReader,
	files FileStore,
	moderator Moderator,
	maxSize int64,
) *MediaService {
	return &MediaService{
		log:       log,
		repo:      repo,
		albums:    albums,
		files:     files,
		moderator: moderator,
		maxSize:   maxSize,
		now:       time.Now,
	}
}

// CreateMedia stores a caller-supplied record as is. uploaded_at stays empty on this path.
func (s *MediaService) CreateMedia(ctx context.Context, actor models.Actor, req dto.CreateMediaRequest) (models.Media, error) {
	const op = "services.MediaService.CreateMedia"
	log := s.log.With(
		slog.String("op", op),
		slog.String("album_id", req.AlbumID),
	)

	if req.AlbumID == "" || req.URL == "" {
		return models.Media{}, fmt.Errorf("%s: %w", op, ErrMissingMediaRecord)
	}

	media, err := s.repo.CreateMedia(ctx, req.ToDomain(actor.UserID))
	if err != nil {
		log.Error("failed to create media", sl.Err(err))
		return models.Media{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("media created", slog.String("media_id", media.ID.String()))
	return media, nil
}

// UploadMedia moderates images, stores the bytes and records the metadata.
// Videos skip moderation and are always approved.
func (s *MediaService) UploadMedia(ctx context.Context, input dto.MediaUploadInput) (models.Media, error) {
	const op = "services.MediaService.UploadMedia"

	log := s.log.With(
		slog.String("op", op),
		slog.String("album_id", input.AlbumID),
		slog.String("content_type", input.ContentType),
	)

	mediaType, err := classify(input.ContentType)
	if err != nil {
		return models.Media{}, fmt.Errorf("%s: %w", op, err)
	}

	switch {
	case input.AlbumID == "":
		return models.Media{}, fmt.Errorf("%s: %w", op, ErrMissingAlbumID)
	case len(input.Data) == 0:
		return models.Media{}, fmt.Errorf("%s: %w", op, ErrEmptyFile)
	case s.maxSize > 0 && int64(len(input.Data)) > s.maxSize:
		return models.Media{}, fmt.Errorf("%s: %w", op, ErrFileTooLarge)
	}

	safe := true
	if mediaType == models.MediaTypePhoto {
		res := s.moderator.Check(ctx, input.Data)
		safe = res.IsAppropriate()
		if !safe {
			log.Warn("image flagged by moderation", slog.Float64("confidence", res.Confidence))
		}
	}

	filename := StorageName(input.Filename)

	url, err := s.files.Upload(ctx, input.Data, filename, input.ContentType)
	if err != nil {
		log.Error("failed to store file", sl.Err(err))
		return models.Media{}, fmt.Errorf("%s: %w", op, err)
	}

	uploadedAt := s.now().UTC()

	media := models.Media{
		AlbumID:          input.AlbumID,
		UploadedBy:       input.UploadedBy,
		Type:             mediaType,
		URL:              url,
		Filename:         filename,
		OriginalFilename: input.Filename,
		Caption:          input.Caption,
		FileSize:         int64(len(input.Data)),
		Status:           models.MediaStatusActive,
		Approved:         true,
		UploadedAt:       &uploadedAt,
	}
	if !safe {
		media.Status = models.MediaStatusFlagged
		media.Approved = false
		media.Flagged = true
	}

	created, err := s.repo.CreateMedia(ctx, media)
	if err != nil {
		if !s.files.Delete(ctx, filename) {
			log.Warn("stored file left behind", slog.String("filename", filename))
		}
		log.Error("failed to save media", sl.Err(err))

		return models.Media{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("media uploaded",
		slog.String("media_id", created.ID.String()),
		slog.Bool("flagged", created.Flagged),
	)

	return created, nil
}

func (s *MediaService) GetMedia(ctx context.Context, id uuid.UUID) (models.Media, error) {
	const op = "services.MediaService.GetMedia"

	media, err := s.repo.GetMediaByID(ctx, id)
	if err != nil {
		return models.Media{}, fmt.Errorf("%s: %w", op, mapNotFound(err))
	}

	return media, nil
}

func (s *MediaService) ListAlbumMedia(ctx context.Context, albumID string) ([]models.Media, error) {
	const op = "services.MediaService.ListAlbumMedia"

	media, err := s.repo.ListActiveByAlbum(ctx, albumID, maxMediaLimit)
	if err != nil {
		s.log.Error("failed to list album media", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return media, nil
}

func (s *MediaService) ListApproved(ctx context.Context) ([]models.Media, error) {
	const op = "services.MediaService.ListApproved"

	media, err := s.repo.ListApproved(ctx, maxMediaLimit)
	if err != nil {
		s.log.Error("failed to list approved media", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return media, nil
}

// ListFlagged returns every flagged item for admins and only the caller's albums otherwise.
func (s *MediaService) ListFlagged(ctx context.Context, actor models.Actor) ([]models.Media, error) {
	const op = "services.MediaService.ListFlagged"

	hostID := ""
	if !actor.IsAdmin() {
		if actor.UserID == "" {
			return nil, fmt.Errorf("%s: %w", op, ErrForbidden)
		}
		hostID = actor.UserID
	}

	media, err := s.repo.ListFlagged(ctx, hostID, maxMediaLimit)
	if err != nil {
		s.log.Error("failed to list flagged media", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return media, nil
}

// ReportMedia flags an item regardless of its current state.
func (s *MediaService) ReportMedia(ctx context.Context, id uuid.UUID) error {
	const op = "services.MediaService.ReportMedia"

	if err := s.repo.FlagMedia(ctx, id); err != nil {
		if !errors.Is(err, storage.ErrMediaNotFound) {
			s.log.Error("failed to report media", slog.String("op", op), sl.Err(err))
		}
		return fmt.Errorf("%s: %w", op, mapNotFound(err))
	}

	s.log.Info("media reported", slog.String("op", op), slog.String("media_id", id.String()))
	return nil
}

func (s *MediaService) ApproveMedia(ctx context.Context, actor models.Actor, id uuid.UUID) (models.Media, error) {
	const op = "services.MediaService.ApproveMedia"

	if err := s.authorize(ctx, actor, id); err != nil {
		return models.Media{}, fmt.Errorf("%s: %w", op, err)
	}

	media, err := s.repo.ApproveMedia(ctx, id)
	if err != nil {
		return models.Media{}, fmt.Errorf("%s: %w", op, mapNotFound(err))
	}

	s.log.Info("media approved", slog.String("op", op), slog.String("media_id", id.String()))
	return media, nil
}

// RejectMedia deletes the record and then makes a best-effort attempt to remove the stored file.
func (s *MediaService) RejectMedia(ctx context.Context, actor models.Actor, id uuid.UUID) error {
	const op = "services.MediaService.RejectMedia"
	log := s.log.With(
		slog.String("op", op),
		slog.String("media_id", id.String()),
	)

	if err := s.authorize(ctx, actor, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	media, err := s.repo.DeleteMedia(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapNotFound(err))
	}

	if media.Filename != "" && !s.files.Delete(ctx, media.Filename) {
		log.Warn("stored file not removed", slog.String("filename", media.Filename))
	}

	log.Info("media rejected")
	return nil
}

// authorize allows admins, and the host of the album the media belongs to.
func (s *MediaService) authorize(ctx context.Context, actor models.Actor, id uuid.UUID) error {
	media, err := s.repo.GetMediaByID(ctx, id)
	if err != nil {
		return mapNotFound(err)
	}

	if actor.IsAdmin() {
		return nil
	}

	albumID, err := uuid.Parse(media.AlbumID)
	if err != nil {
		return ErrForbidden
	}

	album, err := s.albums.GetAlbumByID(ctx, albumID)
	if err != nil {
		if errors.Is(err, storage.ErrAlbumNotFound) {
			return ErrForbidden
		}
		return err
	}

	if !actor.Owns(album.HostID) {
		s.log.Warn("media moderation denied",
			slog.String("media_id", id.String()),
			slog.String("user_id", actor.UserID),
		)
		return ErrForbidden
	}

	return nil
}

// StorageName returns "<uuid>.<ext>" keeping the extension of original, "jpg" when it has none.
func StorageName(original string) string {
	ext := strings.TrimPrefix(filepath.Ext(original), ".")
	if ext == "" {
		ext = defaultExt
	}

	return uuid.NewString() + "." + strings.ToLower(ext)
}

func classify(contentType string) (models.MediaType, error) {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return models.MediaTypePhoto, nil
	case strings.HasPrefix(contentType, "video/"):
		return models.MediaTypeVideo, nil
	default:
		return "", ErrUnsupportedType
	}
}

func mapNotFound(err error) error {
	if errors.Is(err, storage.ErrMediaNotFound) {
		return ErrMediaNotFound
	}
	return err
}
