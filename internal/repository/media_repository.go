package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wedding_memories/internal/domain/models"
	"wedding_memories/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

var mediaColumns = []string{
	"id",
	"album_id",
	"uploaded_by",
	"type",
	"url",
	"filename",
	"original_filename",
	"caption",
	"file_size",
	"status",
	"approved",
	"flagged",
	"created_at",
	"uploaded_at",
}

type MediaRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewMediaRepository(db *pgxpool.Pool) *MediaRepo {
	return &MediaRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// CreateMedia stores media as given; only the id is assigned by the database.
func (r *MediaRepo) CreateMedia(ctx context.Context, media models.Media) (models.Media, error) {
	const op = "repository.MediaRepo.CreateMedia"

	createdAt := media.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	status := media.Status
	if status == "" {
		status = models.MediaStatusActive
	}

	mediaType := media.Type
	if mediaType == "" {
		mediaType = models.MediaTypePhoto
	}

	query, args, err := r.sb.Insert("media").
		Columns(
			"album_id",
			"uploaded_by",
			"type",
			"url",
			"filename",
			"original_filename",
			"caption",
			"file_size",
			"status",
			"approved",
			"flagged",
			"created_at",
			"uploaded_at",
		).
		Values(
			media.AlbumID,
			media.UploadedBy,
			mediaType,
			media.URL,
			media.Filename,
			media.OriginalFilename,
			media.Caption,
			media.FileSize,
			status,
			media.Approved,
			media.Flagged,
			createdAt,
			media.UploadedAt,
		).
		Suffix("RETURNING " + joinColumns(mediaColumns)).
		ToSql()
	if err != nil {
		return models.Media{}, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	created, err := scanMedia(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.Media{}, fmt.Errorf("%s: %w", op, err)
	}

	return created, nil
}

func (r *MediaRepo) GetMediaByID(ctx context.Context, id uuid.UUID) (models.Media, error) {
	const op = "repository.MediaRepo.GetMediaByID"

	query, args, err := r.sb.Select(mediaColumns...).
		From("media").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Media{}, fmt.Errorf("%s: %w", op, err)
	}

	media, err := scanMedia(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Media{}, fmt.Errorf("%s: %w", op, storage.ErrMediaNotFound)
		}
		return models.Media{}, fmt.Errorf("%s: %w", op, err)
	}

	return media, nil
}

func (r *MediaRepo) ListActiveByAlbum(ctx context.Context, albumID string, limit uint64) ([]models.Media, error) {
	const op = "repository.MediaRepo.ListActiveByAlbum"

	return r.list(ctx, op, sq.Eq{"album_id": albumID, "status": models.MediaStatusActive}, limit)
}

func (r *MediaRepo) ListApproved(ctx context.Context, limit uint64) ([]models.Media, error) {
	const op = "repository.MediaRepo.ListApproved"

	where := sq.And{
		sq.Eq{"approved": true, "flagged": false},
		sq.NotEq{"status": models.MediaStatusFlagged},
	}

	return r.list(ctx, op, where, limit)
}

// ListFlagged returns media with status flagged, restricted to albums hosted by hostID when it is not empty.
func (r *MediaRepo) ListFlagged(ctx context.Context, hostID string, limit uint64) ([]models.Media, error) {
	const op = "repository.MediaRepo.ListFlagged"

	where := sq.And{sq.Eq{"status": models.MediaStatusFlagged}}
	if hostID != "" {
		where = append(where, sq.Expr("album_id IN (SELECT id::text FROM albums WHERE host_id = ?)", hostID))
	}

	return r.list(ctx, op, where, limit)
}

// FlagMedia marks media as reported whatever its current state.
func (r *MediaRepo) FlagMedia(ctx context.Context, id uuid.UUID) error {
	const op = "repository.MediaRepo.FlagMedia"

	query, args, err := r.sb.Update("media").
		Set("status", models.MediaStatusFlagged).
		Set("flagged", true).
		Set("approved", false).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrMediaNotFound)
	}

	return nil
}

func (r *MediaRepo) ApproveMedia(ctx context.Context, id uuid.UUID) (models.Media, error) {
	const op = "repository.MediaRepo.ApproveMedia"

	query, args, err := r.sb.Update("media").
		Set("status", models.MediaStatusActive).
		Set("approved", true).
		Set("flagged", false).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(mediaColumns)).
		ToSql()
	if err != nil {
		return models.Media{}, fmt.Errorf("%s: %w", op, err)
	}

	media, err := scanMedia(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Media{}, fmt.Errorf("%s: %w", op, storage.ErrMediaNotFound)
		}
		return models.Media{}, fmt.Errorf("%s: %w", op, err)
	}

	return media, nil
}

// DeleteMedia removes the row and returns it so the caller can clean up the stored object.
func (r *MediaRepo) DeleteMedia(ctx context.Context, id uuid.UUID) (models.Media, error) {
	const op = "repository.MediaRepo.DeleteMedia"

	query, args, err := r.sb.Delete("media").
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(mediaColumns)).
		ToSql()
	if err != nil {
		return models.Media{}, fmt.Errorf("%s: %w", op, err)
	}

	media, err := scanMedia(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Media{}, fmt.Errorf("%s: %w", op, storage.ErrMediaNotFound)
		}
		return models.Media{}, fmt.Errorf("%s: %w", op, err)
	}

	return media, nil
}

func (r *MediaRepo) list(ctx context.Context, op string, where sq.Sqlizer, limit uint64) ([]models.Media, error) {
	query, args, err := r.sb.Select(mediaColumns...).
		From("media").
		Where(where).
		OrderBy("created_at DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	items := make([]models.Media, 0)
	for rows.Next() {
		media, err := scanMedia(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		items = append(items, media)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

func scanMedia(row rowScanner) (models.Media, error) {
	var media models.Media

	err := row.Scan(
		&media.ID,
		&media.AlbumID,
		&media.UploadedBy,
		&media.Type,
		&media.URL,
		&media.Filename,
		&media.OriginalFilename,
		&media.Caption,
		&media.FileSize,
		&media.Status,
		&media.Approved,
		&media.Flagged,
		&media.CreatedAt,
		&media.UploadedAt,
	)

	return media, err
}
