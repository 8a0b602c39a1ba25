package suite

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"wedding_memories/internal/app"
	"wedding_memories/internal/config"
	"wedding_memories/internal/lib/logger/handlers/slogdiscard"
	"wedding_memories/internal/storage/postgresql"
	"wedding_memories/internal/storage/postgresql/pgtest"
)

const TokenSecret = "test-secret"

type Suite struct {
	*testing.T
	Cfg  *config.Config
	App  *app.App
	DB   *pgxpool.Pool
	echo *echo.Echo
}

// New boots the whole application against a fresh Postgres container. Routes are
// served in-process; nothing listens on a port.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	dsn := pgtest.Start(t)

	cfg := config.MustLoadEnv()
	cfg.Postgres.DSN = dsn
	cfg.Postgres.Database = ""
	cfg.Postgres.MigrateOnStart = false
	cfg.Auth.TokenSecret = TokenSecret
	cfg.Auth.TokenTTL = time.Hour
	cfg.Auth.RevokeOnLogout = true
	cfg.Redis.RedisAddr = ""
	cfg.HTTP.AuthRateLimit = 0
	cfg.FileStorage.BaseDir = t.TempDir()
	cfg.GCS = config.GCSConfig{}
	cfg.S3 = config.S3Config{}
	cfg.Payments.SecretKey = ""
	cfg.Moderation.APIURL = ""

	ctx, cancelCtx := context.WithTimeout(context.Background(), 5*time.Minute)

	log := slogdiscard.NewDiscardLogger()

	application, err := app.New(ctx, log, cfg, prometheus.NewRegistry())
	require.NoError(t, err)

	application.HTTPServer.BuildRouters()

	st, err := postgresql.New(ctx, dsn, "")
	require.NoError(t, err)

	t.Cleanup(func() {
		t.Helper()
		st.Stop()
		application.Stop()
		cancelCtx()
	})

	return ctx, &Suite{
		T:    t,
		Cfg:  cfg,
		App:  application,
		DB:   st.Pool(),
		echo: application.HTTPServer.Echo(),
	}
}

// Do sends a JSON request and decodes the response envelope into out when it is non-nil.
func (s *Suite) Do(method, path, token string, body any, out any) int {
	s.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.T, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	return s.Send(req, out)
}

// Send serves a prepared request.
func (s *Suite) Send(req *http.Request, out any) int {
	s.Helper()

	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	if out != nil && rec.Body.Len() > 0 {
		require.NoError(s.T, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}

	return rec.Code
}

// Promote makes the user with email an admin.
func (s *Suite) Promote(ctx context.Context, email string) {
	s.Helper()

	_, err := s.DB.Exec(ctx, `UPDATE users SET role = 'admin' WHERE email = $1`, email)
	require.NoError(s.T, err)
}
