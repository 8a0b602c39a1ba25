package tests

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedding_memories/internal/domain/models"
	"wedding_memories/tests/suite"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestAlbumMediaFlow(t *testing.T) {
	ctx, st := suite.New(t)

	host := registerAndLogin(t, st)
	guest := registerAndLogin(t, st)

	var album envelope[models.Album]
	code := st.Do(http.MethodPost, "/albums/", host, map[string]any{"title": gofakeit.Sentence(3)}, &album)
	require.Equal(t, http.StatusCreated, code)
	require.True(t, album.Data.IsPublic)
	albumID := album.Data.ID.String()

	// guests may upload into any album
	var uploaded envelope[models.Media]
	code = st.Send(uploadRequest(t, guest, albumID, "Dance.PNG", pngHeader), &uploaded)
	require.Equal(t, http.StatusCreated, code)

	media := uploaded.Data
	assert.Equal(t, models.MediaTypePhoto, media.Type)
	assert.Equal(t, models.MediaStatusActive, media.Status)
	assert.True(t, media.Approved)
	assert.Equal(t, "Dance.PNG", media.OriginalFilename)
	assert.Equal(t, ".png", filepath.Ext(media.Filename))
	require.NotNil(t, media.UploadedAt)

	stored := filepath.Join(st.Cfg.FileStorage.BaseDir, media.Filename)
	_, err := os.Stat(stored)
	require.NoError(t, err)

	var listed envelope[[]models.Media]
	require.Equal(t, http.StatusOK, st.Do(http.MethodGet, "/media/album/"+albumID, "", nil, &listed))
	require.Len(t, listed.Data, 1)

	// reporting hides the item from the album and the public feed
	require.Equal(t, http.StatusOK, st.Do(http.MethodPost, "/media/report/"+media.ID.String(), guest, nil, nil))
	require.Equal(t, http.StatusOK, st.Do(http.MethodGet, "/media/album/"+albumID, "", nil, &listed))
	assert.Empty(t, listed.Data)

	var flagged envelope[[]models.Media]
	require.Equal(t, http.StatusOK, st.Do(http.MethodGet, "/media/flagged", host, nil, &flagged))
	require.Len(t, flagged.Data, 1)

	require.Equal(t, http.StatusOK, st.Do(http.MethodGet, "/media/flagged", guest, nil, &flagged))
	assert.Empty(t, flagged.Data)

	// only the host moderates
	assert.Equal(t, http.StatusForbidden, st.Do(http.MethodPatch, "/media/approve/"+media.ID.String(), guest, nil, nil))

	var approved envelope[models.Media]
	require.Equal(t, http.StatusOK, st.Do(http.MethodPatch, "/media/approve/"+media.ID.String(), host, nil, &approved))
	assert.Equal(t, models.MediaStatusActive, approved.Data.Status)
	assert.False(t, approved.Data.Flagged)

	var feed envelope[[]models.Media]
	require.Equal(t, http.StatusOK, st.Do(http.MethodGet, "/media/all", "", nil, &feed))
	assert.Len(t, feed.Data, 1)

	require.Equal(t, http.StatusOK, st.Do(http.MethodDelete, "/media/reject/"+media.ID.String(), host, nil, nil))
	assert.Equal(t, http.StatusNotFound, st.Do(http.MethodGet, "/media/"+media.ID.String(), "", nil, nil))

	_, err = os.Stat(stored)
	assert.True(t, os.IsNotExist(err))

	// admin surface
	assert.Equal(t, http.StatusForbidden, st.Do(http.MethodGet, "/admin/dashboard", host, nil, nil))

	adminCreds := randomCredentials()
	require.Equal(t, http.StatusCreated, st.Do(http.MethodPost, "/users/register", "", adminCreds, nil))
	st.Promote(ctx, adminCreds.Email)

	var login envelope[models.AuthResult]
	require.Equal(t, http.StatusOK, st.Do(http.MethodPost, "/users/login", "", credentials{Email: adminCreds.Email, Password: adminCreds.Password}, &login))
	admin := login.Data.AccessToken

	var dashboard envelope[models.DashboardStats]
	require.Equal(t, http.StatusOK, st.Do(http.MethodGet, "/admin/dashboard", admin, nil, &dashboard))
	assert.EqualValues(t, 3, dashboard.Data.TotalUsers)
	assert.EqualValues(t, 1, dashboard.Data.TotalAlbums)
	assert.EqualValues(t, 0, dashboard.Data.TotalMedia)
}

func TestAlbumOwnership(t *testing.T) {
	_, st := suite.New(t)

	host := registerAndLogin(t, st)
	other := registerAndLogin(t, st)

	var album envelope[models.Album]
	require.Equal(t, http.StatusCreated, st.Do(http.MethodPost, "/albums/", host, map[string]any{"title": "Reception"}, &album))
	path := "/albums/" + album.Data.ID.String()

	assert.Equal(t, http.StatusForbidden, st.Do(http.MethodPut, path, other, map[string]any{"title": "Mine now"}, nil))
	assert.Equal(t, http.StatusForbidden, st.Do(http.MethodDelete, path, other, nil, nil))

	var updated envelope[models.Album]
	require.Equal(t, http.StatusOK, st.Do(http.MethodPut, path, host, map[string]any{"title": "After party"}, &updated))
	assert.Equal(t, "After party", updated.Data.Title)

	require.Equal(t, http.StatusOK, st.Do(http.MethodDelete, path, host, nil, nil))
	assert.Equal(t, http.StatusNotFound, st.Do(http.MethodGet, path, "", nil, nil))
	assert.Equal(t, http.StatusBadRequest, st.Do(http.MethodGet, "/albums/not-a-uuid", "", nil, nil))
}

func TestUpload_Rejections(t *testing.T) {
	_, st := suite.New(t)

	token := registerAndLogin(t, st)

	var album envelope[models.Album]
	require.Equal(t, http.StatusCreated, st.Do(http.MethodPost, "/albums/", token, map[string]any{"title": "Ceremony"}, &album))

	tests := []struct {
		name     string
		albumID  string
		filename string
		data     []byte
		wantCode int
	}{
		{
			name:     "Unsupported type",
			albumID:  album.Data.ID.String(),
			filename: "notes.txt",
			data:     []byte("plain text is neither photo nor video"),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "Missing album",
			filename: "photo.png",
			data:     pngHeader,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := st.Send(uploadRequest(t, token, tt.albumID, tt.filename, tt.data), nil)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestPayments_NotConfigured(t *testing.T) {
	_, st := suite.New(t)

	token := registerAndLogin(t, st)

	var resp envelope[any]
	code := st.Do(http.MethodPost, "/payments/upgrade-plan", token, map[string]string{"plan_type": "premium"}, &resp)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "payment_error", resp.Error)
	assert.Equal(t, "Payment service not configured", resp.Details)
}

func TestSystemRoutes(t *testing.T) {
	_, st := suite.New(t)

	var root envelope[any]
	require.Equal(t, http.StatusOK, st.Do(http.MethodGet, "/", "", nil, &root))
	assert.Equal(t, "Wedding Memories API is running!", root.Message)

	assert.Equal(t, http.StatusOK, st.Do(http.MethodGet, "/health", "", nil, nil))
}

func uploadRequest(t *testing.T, token, albumID, filename string, data []byte) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)

	if albumID != "" {
		require.NoError(t, w.WriteField("album_id", albumID))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/media/upload/", body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)

	return req
}
