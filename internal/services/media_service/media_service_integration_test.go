package services

import (
	"os"
	"path/filepath"
	"testing"

	"wedding_memories/internal/domain/models"
	"wedding_memories/internal/lib/logger/handlers/slogdiscard"
	"wedding_memories/internal/moderation"
	"wedding_memories/internal/repository"
	"wedding_memories/internal/storage/filestorage"
	"wedding_memories/internal/storage/postgresql/pgtest"
	"wedding_memories/internal/transport/http/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaLifecycle_Postgres(t *testing.T) {
	pool := pgtest.Pool(t)
	repo := repository.NewRepository(pool)
	log := slogdiscard.NewDiscardLogger()

	dir := t.TempDir()
	local, err := filestorage.NewLocalFileStorage(dir, "/media_storage")
	require.NoError(t, err)
	files := filestorage.New(log, nil, local, true, nil)

	mod := &stubModerator{result: moderation.Result{IsSafe: false, Confidence: 0.97}}
	s := NewMediaService(log, repo.Media, repo.Album, files, mod, 1<<20)

	album, err := repo.Album.CreateAlbum(ctx, models.Album{HostID: hostID, Title: "Mehndi", IsPublic: true})
	require.NoError(t, err)

	flagged, err := s.UploadMedia(ctx, dto.MediaUploadInput{
		AlbumID:     album.ID.String(),
		UploadedBy:  visitor.UserID,
		Filename:    "dance.jpg",
		ContentType: "image/jpeg",
		Data:        []byte("jpeg bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.MediaStatusFlagged, flagged.Status)
	assert.True(t, flagged.Flagged)
	assert.False(t, flagged.Approved)
	assert.FileExists(t, filepath.Join(dir, flagged.Filename))

	video, err := s.UploadMedia(ctx, dto.MediaUploadInput{
		AlbumID:     album.ID.String(),
		UploadedBy:  visitor.UserID,
		Filename:    "vows.mp4",
		ContentType: "video/mp4",
		Data:        []byte("mp4 bytes"),
	})
	require.NoError(t, err)
	assert.True(t, video.Approved)
	assert.False(t, video.Flagged)

	hostFlagged, err := s.ListFlagged(ctx, host)
	require.NoError(t, err)
	require.Len(t, hostFlagged, 1)

	visitorFlagged, err := s.ListFlagged(ctx, visitor)
	require.NoError(t, err)
	assert.Empty(t, visitorFlagged)

	_, err = s.ApproveMedia(ctx, visitor, flagged.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	approved, err := s.ApproveMedia(ctx, host, flagged.ID)
	require.NoError(t, err)
	assert.True(t, approved.Approved)

	all, err := s.ListApproved(ctx)
	require.NoError(t, err)
	assert.True(t, containsMedia(all, flagged.ID.String()))

	require.NoError(t, s.ReportMedia(ctx, video.ID))
	reported, err := s.GetMedia(ctx, video.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MediaStatusFlagged, reported.Status)

	require.NoError(t, s.RejectMedia(ctx, admin, video.ID))
	_, err = s.GetMedia(ctx, video.ID)
	assert.ErrorIs(t, err, ErrMediaNotFound)

	_, err = os.Stat(filepath.Join(dir, video.Filename))
	assert.True(t, os.IsNotExist(err))

	assert.ErrorIs(t, s.RejectMedia(ctx, admin, video.ID), ErrMediaNotFound)
}

func containsMedia(list []models.Media, id string) bool {
	for _, m := range list {
		if m.ID.String() == id {
			return true
		}
	}
	return false
}
