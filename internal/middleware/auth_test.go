package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"wedding_memories/internal/domain/models"
	"wedding_memories/internal/lib/jwt"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

type stubParser struct {
	claims *jwt.Claims
	err    error
	got    string
}

func (p *stubParser) ParseToken(_ context.Context, token string) (*jwt.Claims, error) {
	p.got = token
	return p.claims, p.err
}

func newServer(parser TokenParser, admin bool) *echo.Echo {
	e := echo.New()

	handler := func(c echo.Context) error {
		return c.JSON(http.StatusOK, Actor(c))
	}

	mws := []echo.MiddlewareFunc{JWT(parser)}
	if admin {
		mws = append(mws, RequireAdmin)
	}
	e.GET("/private", handler, mws...)

	return e
}

func do(e *echo.Echo, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	if auth != "" {
		req.Header.Set(echo.HeaderAuthorization, auth)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWT(t *testing.T) {
	guest := &jwt.Claims{UserID: "u1", Role: models.RoleGuest}

	tests := []struct {
		name       string
		parser     *stubParser
		auth       string
		admin      bool
		wantStatus int
		wantBody   string
	}{
		{name: "missing header", parser: &stubParser{}, wantStatus: http.StatusUnauthorized, wantBody: "Missing bearer token"},
		{name: "rejected token", parser: &stubParser{err: errors.New("revoked")}, auth: "Bearer abc", wantStatus: http.StatusUnauthorized, wantBody: "unauthorized"},
		{name: "valid token", parser: &stubParser{claims: guest}, auth: "Bearer abc", wantStatus: http.StatusOK, wantBody: `"UserID":"u1"`},
		{name: "guest on admin route", parser: &stubParser{claims: guest}, auth: "Bearer abc", admin: true, wantStatus: http.StatusForbidden, wantBody: "forbidden"},
		{name: "admin on admin route", parser: &stubParser{claims: &jwt.Claims{UserID: "a1", Role: models.RoleAdmin}}, auth: "Bearer abc", admin: true, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(newServer(tt.parser, tt.admin), tt.auth)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			if tt.auth != "" {
				assert.Equal(t, "abc", tt.parser.got)
			}
		})
	}
}
