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

var albumColumns = []string{
	"id", "host_id", "title", "theme", "music_url", "cover_photo", "is_public", "expires_at", "created_at",
}

type AlbumRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewAlbumRepository(db *pgxpool.Pool) *AlbumRepo {
	return &AlbumRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *AlbumRepo) CreateAlbum(ctx context.Context, album models.Album) (models.Album, error) {
	const op = "repository.AlbumRepo.CreateAlbum"

	createdAt := album.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	query, args, err := r.sb.Insert("albums").
		Columns(
			"host_id",
			"title",
			"theme",
			"music_url",
			"cover_photo",
			"is_public",
			"expires_at",
			"created_at",
		).
		Values(
			album.HostID,
			album.Title,
			album.Theme,
			album.MusicURL,
			album.CoverPhoto,
			album.IsPublic,
			album.ExpiresAt,
			createdAt,
		).
		Suffix("RETURNING " + joinColumns(albumColumns)).
		ToSql()
	if err != nil {
		return models.Album{}, fmt.Errorf("%s: %w", op, err)
	}

	created, err := scanAlbum(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.Album{}, fmt.Errorf("%s: %w", op, err)
	}

	return created, nil
}

func (r *AlbumRepo) ListPublicAlbums(ctx context.Context, limit uint64) ([]models.Album, error) {
	const op = "repository.AlbumRepo.ListPublicAlbums"

	query, args, err := r.sb.Select(albumColumns...).
		From("albums").
		Where(sq.Eq{"is_public": true}).
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

	albums := make([]models.Album, 0)
	for rows.Next() {
		album, err := scanAlbum(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		albums = append(albums, album)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return albums, nil
}

func (r *AlbumRepo) GetAlbumByID(ctx context.Context, id uuid.UUID) (models.Album, error) {
	const op = "repository.AlbumRepo.GetAlbumByID"

	query, args, err := r.sb.Select(albumColumns...).
		From("albums").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Album{}, fmt.Errorf("%s: %w", op, err)
	}

	album, err := scanAlbum(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Album{}, fmt.Errorf("%s: %w", op, storage.ErrAlbumNotFound)
		}
		return models.Album{}, fmt.Errorf("%s: %w", op, err)
	}

	return album, nil
}

// UpdateAlbum overwrites the supplied fields and returns the stored row.
func (r *AlbumRepo) UpdateAlbum(ctx context.Context, id uuid.UUID, upd models.AlbumUpdate) (models.Album, error) {
	const op = "repository.AlbumRepo.UpdateAlbum"

	if upd.IsEmpty() {
		return models.Album{}, fmt.Errorf("%s: %w", op, storage.ErrNothingChanged)
	}

	builder := r.sb.Update("albums").Where(sq.Eq{"id": id})

	if upd.Title != nil {
		builder = builder.Set("title", *upd.Title)
	}
	if upd.Theme != nil {
		builder = builder.Set("theme", *upd.Theme)
	}
	if upd.MusicURL != nil {
		builder = builder.Set("music_url", *upd.MusicURL)
	}
	if upd.CoverPhoto != nil {
		builder = builder.Set("cover_photo", *upd.CoverPhoto)
	}
	if upd.IsPublic != nil {
		builder = builder.Set("is_public", *upd.IsPublic)
	}
	if upd.ExpiresAt != nil {
		builder = builder.Set("expires_at", *upd.ExpiresAt)
	}

	query, args, err := builder.Suffix("RETURNING " + joinColumns(albumColumns)).ToSql()
	if err != nil {
		return models.Album{}, fmt.Errorf("%s: %w", op, err)
	}

	album, err := scanAlbum(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Album{}, fmt.Errorf("%s: %w", op, storage.ErrAlbumNotFound)
		}
		return models.Album{}, fmt.Errorf("%s: %w", op, err)
	}

	return album, nil
}

func (r *AlbumRepo) DeleteAlbum(ctx context.Context, id uuid.UUID) error {
	const op = "repository.AlbumRepo.DeleteAlbum"

	query, args, err := r.sb.Delete("albums").
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
		return fmt.Errorf("%s: %w", op, storage.ErrAlbumNotFound)
	}

	return nil
}

func scanAlbum(row rowScanner) (models.Album, error) {
	var album models.Album

	err := row.Scan(
		&album.ID,
		&album.HostID,
		&album.Title,
		&album.Theme,
		&album.MusicURL,
		&album.CoverPhoto,
		&album.IsPublic,
		&album.ExpiresAt,
		&album.CreatedAt,
	)

	return album, err
}
