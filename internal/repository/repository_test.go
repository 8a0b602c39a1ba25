package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"wedding_memories/internal/domain/models"
	"wedding_memories/internal/repository"
	"wedding_memories/internal/storage"
	"wedding_memories/internal/storage/postgresql/pgtest"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testCtx = context.Background()
)

func truncate(t *testing.T, db *pgxpool.Pool) {
	t.Helper()

	_, err := db.Exec(testCtx, "TRUNCATE users, albums, media")
	require.NoError(t, err)
}

func strPtr(s string) *string { return &s }

func TestUserRepo(t *testing.T) {
	db := pgtest.Pool(t)
	repo := repository.NewUserRepository(db)

	email := gofakeit.Email()

	t.Run("save and load", func(t *testing.T) {
		saved, err := repo.SaveUser(testCtx, models.User{
			Name:         gofakeit.Name(),
			Email:        email,
			Phone:        strPtr("+15550001111"),
			PasswordHash: []byte("hash"),
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, saved.ID)
		assert.Equal(t, models.RoleGuest, saved.Role)
		assert.False(t, saved.CreatedAt.IsZero())

		byEmail, err := repo.UserByEmail(testCtx, email)
		require.NoError(t, err)
		assert.Equal(t, saved.ID, byEmail.ID)
		assert.Equal(t, []byte("hash"), byEmail.PasswordHash)

		byID, err := repo.GetUserById(testCtx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, email, byID.Email)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := repo.SaveUser(testCtx, models.User{
			Name:         "Other",
			Email:        email,
			PasswordHash: []byte("other"),
		})
		assert.ErrorIs(t, err, storage.ErrUserExists)

		// first account unchanged
		user, err := repo.UserByEmail(testCtx, email)
		require.NoError(t, err)
		assert.Equal(t, []byte("hash"), user.PasswordHash)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.UserByEmail(testCtx, "nobody@example.com")
		assert.ErrorIs(t, err, storage.ErrUserNotFound)

		_, err = repo.GetUserById(testCtx, uuid.New())
		assert.ErrorIs(t, err, storage.ErrUserNotFound)
	})

	t.Run("list respects limit", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			_, err := repo.SaveUser(testCtx, models.User{
				Name:         gofakeit.Name(),
				Email:        gofakeit.Email(),
				PasswordHash: []byte("x"),
			})
			require.NoError(t, err)
		}

		users, err := repo.ListUsers(testCtx, 2)
		require.NoError(t, err)
		assert.Len(t, users, 2)
	})
}

func TestAlbumRepo(t *testing.T) {
	db := pgtest.Pool(t)
	repo := repository.NewAlbumRepository(db)
	truncate(t, db)

	hostID := uuid.NewString()

	public, err := repo.CreateAlbum(testCtx, models.Album{
		HostID:   hostID,
		Title:    "Our Wedding",
		Theme:    strPtr("rustic"),
		IsPublic: true,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, public.ID)

	private, err := repo.CreateAlbum(testCtx, models.Album{HostID: hostID, Title: "Rehearsal"})
	require.NoError(t, err)

	t.Run("list only public", func(t *testing.T) {
		albums, err := repo.ListPublicAlbums(testCtx, 100)
		require.NoError(t, err)
		require.Len(t, albums, 1)
		assert.Equal(t, public.ID, albums[0].ID)
	})

	t.Run("update supplied fields", func(t *testing.T) {
		title := "Our Big Day"
		isPublic := true

		updated, err := repo.UpdateAlbum(testCtx, private.ID, models.AlbumUpdate{Title: &title, IsPublic: &isPublic})
		require.NoError(t, err)
		assert.Equal(t, title, updated.Title)
		assert.True(t, updated.IsPublic)
		assert.Equal(t, hostID, updated.HostID)
	})

	t.Run("update nothing", func(t *testing.T) {
		_, err := repo.UpdateAlbum(testCtx, private.ID, models.AlbumUpdate{})
		assert.ErrorIs(t, err, storage.ErrNothingChanged)
	})

	t.Run("update missing", func(t *testing.T) {
		title := "x"
		_, err := repo.UpdateAlbum(testCtx, uuid.New(), models.AlbumUpdate{Title: &title})
		assert.ErrorIs(t, err, storage.ErrAlbumNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.DeleteAlbum(testCtx, public.ID))

		_, err := repo.GetAlbumByID(testCtx, public.ID)
		assert.ErrorIs(t, err, storage.ErrAlbumNotFound)

		err = repo.DeleteAlbum(testCtx, public.ID)
		assert.ErrorIs(t, err, storage.ErrAlbumNotFound)
	})
}

func TestMediaRepo(t *testing.T) {
	db := pgtest.Pool(t)
	albums := repository.NewAlbumRepository(db)
	repo := repository.NewMediaRepository(db)
	truncate(t, db)

	hostID := uuid.NewString()
	album, err := albums.CreateAlbum(testCtx, models.Album{HostID: hostID, Title: "Wedding", IsPublic: true})
	require.NoError(t, err)
	albumID := album.ID.String()

	now := time.Now().UTC()

	active, err := repo.CreateMedia(testCtx, models.Media{
		AlbumID:    albumID,
		UploadedBy: "guest-1",
		Type:       models.MediaTypePhoto,
		URL:        "/media_storage/a.jpg",
		Filename:   "a.jpg",
		Status:     models.MediaStatusActive,
		Approved:   true,
		UploadedAt: &now,
	})
	require.NoError(t, err)

	flagged, err := repo.CreateMedia(testCtx, models.Media{
		AlbumID:    albumID,
		UploadedBy: "guest-2",
		Type:       models.MediaTypePhoto,
		URL:        "/media_storage/b.jpg",
		Status:     models.MediaStatusFlagged,
		Flagged:    true,
	})
	require.NoError(t, err)
	assert.Nil(t, flagged.UploadedAt)

	_, err = repo.CreateMedia(testCtx, models.Media{
		AlbumID:    "some-other-album",
		UploadedBy: "guest-3",
		URL:        "https://example.com/c.jpg",
		Status:     models.MediaStatusFlagged,
		Flagged:    true,
	})
	require.NoError(t, err)

	t.Run("list by album returns active only", func(t *testing.T) {
		items, err := repo.ListActiveByAlbum(testCtx, albumID, 100)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, active.ID, items[0].ID)
	})

	t.Run("list flagged for host", func(t *testing.T) {
		all, err := repo.ListFlagged(testCtx, "", 100)
		require.NoError(t, err)
		assert.Len(t, all, 2)

		hosted, err := repo.ListFlagged(testCtx, hostID, 100)
		require.NoError(t, err)
		require.Len(t, hosted, 1)
		assert.Equal(t, flagged.ID, hosted[0].ID)
	})

	t.Run("approve flagged then listed as approved", func(t *testing.T) {
		approved, err := repo.ApproveMedia(testCtx, flagged.ID)
		require.NoError(t, err)
		assert.Equal(t, models.MediaStatusActive, approved.Status)
		assert.True(t, approved.Approved)
		assert.False(t, approved.Flagged)

		items, err := repo.ListApproved(testCtx, 100)
		require.NoError(t, err)
		assert.Contains(t, mediaIDs(items), flagged.ID)
	})

	t.Run("report flags regardless of state", func(t *testing.T) {
		require.NoError(t, repo.FlagMedia(testCtx, active.ID))

		got, err := repo.GetMediaByID(testCtx, active.ID)
		require.NoError(t, err)
		assert.Equal(t, models.MediaStatusFlagged, got.Status)
		assert.True(t, got.Flagged)
		assert.False(t, got.Approved)

		assert.ErrorIs(t, repo.FlagMedia(testCtx, uuid.New()), storage.ErrMediaNotFound)
	})

	t.Run("delete then get is not found", func(t *testing.T) {
		deleted, err := repo.DeleteMedia(testCtx, active.ID)
		require.NoError(t, err)
		assert.Equal(t, "a.jpg", deleted.Filename)

		_, err = repo.GetMediaByID(testCtx, active.ID)
		assert.ErrorIs(t, err, storage.ErrMediaNotFound)

		_, err = repo.DeleteMedia(testCtx, active.ID)
		assert.ErrorIs(t, err, storage.ErrMediaNotFound)
	})

	t.Run("approve missing", func(t *testing.T) {
		_, err := repo.ApproveMedia(testCtx, uuid.New())
		assert.ErrorIs(t, err, storage.ErrMediaNotFound)
	})

	t.Run("flagged status alone queues for review", func(t *testing.T) {
		// stored verbatim: booleans disagree with the status
		held, err := repo.CreateMedia(testCtx, models.Media{
			AlbumID:    albumID,
			UploadedBy: "guest-4",
			URL:        "/media_storage/d.jpg",
			Status:     models.MediaStatusFlagged,
			Approved:   true,
		})
		require.NoError(t, err)
		assert.False(t, held.Flagged)

		queued, err := repo.ListFlagged(testCtx, hostID, 100)
		require.NoError(t, err)
		assert.Contains(t, mediaIDs(queued), held.ID)

		approved, err := repo.ListApproved(testCtx, 100)
		require.NoError(t, err)
		assert.NotContains(t, mediaIDs(approved), held.ID)
	})
}

func mediaIDs(items []models.Media) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(items))
	for _, m := range items {
		ids = append(ids, m.ID)
	}

	return ids
}

func TestStatsRepo(t *testing.T) {
	db := pgtest.Pool(t)
	truncate(t, db)

	users := repository.NewUserRepository(db)
	albums := repository.NewAlbumRepository(db)
	media := repository.NewMediaRepository(db)
	stats := repository.NewStatsRepository(db)

	_, err := users.SaveUser(testCtx, models.User{Name: "A", Email: gofakeit.Email(), PasswordHash: []byte("x")})
	require.NoError(t, err)
	_, err = albums.CreateAlbum(testCtx, models.Album{HostID: "h", Title: "T", IsPublic: true})
	require.NoError(t, err)

	now := time.Now().UTC()
	old := now.AddDate(0, 0, -40)
	yesterday := now.AddDate(0, 0, -1)

	seed := []models.Media{
		{AlbumID: "a", UploadedBy: "u1", Type: models.MediaTypePhoto, URL: "x", FileSize: 100, UploadedAt: &now},
		{AlbumID: "a", UploadedBy: "u1", Type: models.MediaTypeVideo, URL: "y", FileSize: 200, UploadedAt: &yesterday},
		{AlbumID: "a", UploadedBy: "u2", Type: models.MediaTypePhoto, URL: "z", FileSize: 50, UploadedAt: &old, Status: models.MediaStatusFlagged, Flagged: true},
		// flagged by status alone still counts
		{AlbumID: "a", UploadedBy: "u4", Type: models.MediaTypeVideo, URL: "v", Status: models.MediaStatusFlagged, Approved: true},
		// direct insert without uploaded_at is invisible to the time windows
		{AlbumID: "a", UploadedBy: "u3", Type: models.MediaTypePhoto, URL: "w"},
	}
	for _, m := range seed {
		_, err := media.CreateMedia(testCtx, m)
		require.NoError(t, err)
	}

	t.Run("dashboard", func(t *testing.T) {
		got, err := stats.Dashboard(testCtx, now.AddDate(0, 0, -7))
		require.NoError(t, err)

		assert.Equal(t, int64(1), got.TotalUsers)
		assert.Equal(t, int64(1), got.TotalAlbums)
		assert.Equal(t, int64(5), got.TotalMedia)
		assert.Equal(t, int64(2), got.FlaggedMedia)
		assert.Equal(t, int64(2), got.RecentUploads)
		assert.Equal(t, int64(350), got.StorageUsedBytes)
		assert.Equal(t, int64(1), got.ActiveUploaders)
	})

	t.Run("daily uploads", func(t *testing.T) {
		got, err := stats.DailyUploads(testCtx, now.AddDate(0, 0, -30))
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, yesterday.Format("2006-01-02"), got[0].Date)
		assert.Equal(t, now.Format("2006-01-02"), got[1].Date)
	})

	t.Run("media by type", func(t *testing.T) {
		got, err := stats.MediaByType(testCtx, 10)
		require.NoError(t, err)
		assert.Equal(t, []models.TypeCount{
			{Type: "photo", Count: 3},
			{Type: "video", Count: 2},
		}, got)
	})
}

func TestRedisTokenRepo(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := repository.NewRedisTokenRepo(client)

	t.Run("revoke", func(t *testing.T) {
		mock.ExpectSet("revoked:jti-1", "1", time.Hour).SetVal("OK")

		require.NoError(t, repo.RevokeToken(testCtx, "jti-1", time.Hour))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("expired token is not stored", func(t *testing.T) {
		require.NoError(t, repo.RevokeToken(testCtx, "jti-old", -time.Second))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("is revoked", func(t *testing.T) {
		mock.ExpectGet("revoked:jti-1").SetVal("1")

		revoked, err := repo.IsRevoked(testCtx, "jti-1")
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("unknown token", func(t *testing.T) {
		mock.ExpectGet("revoked:jti-2").RedisNil()

		revoked, err := repo.IsRevoked(testCtx, "jti-2")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("redis error", func(t *testing.T) {
		mock.ExpectGet("revoked:jti-3").SetErr(errors.New("connection refused"))

		_, err := repo.IsRevoked(testCtx, "jti-3")
		assert.Error(t, err)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMemoryTokenRepo(t *testing.T) {
	repo := repository.NewMemoryTokenRepo(time.Minute)

	require.NoError(t, repo.RevokeToken(testCtx, "jti-1", time.Hour))
	require.NoError(t, repo.RevokeToken(testCtx, "jti-short", 10*time.Millisecond))

	revoked, err := repo.IsRevoked(testCtx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = repo.IsRevoked(testCtx, "jti-unknown")
	require.NoError(t, err)
	assert.False(t, revoked)

	assert.Eventually(t, func() bool {
		revoked, _ := repo.IsRevoked(testCtx, "jti-short")
		return !revoked
	}, time.Second, 20*time.Millisecond)
}
