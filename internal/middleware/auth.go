package middleware

import (
	"context"
	"net/http"
	"strings"

	"wedding_memories/internal/domain/models"
	"wedding_memories/internal/lib/jwt"
	"wedding_memories/internal/transport/http/dto/response"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// claimsKey is where the validated *jwt.Claims are stored on the echo context.
const claimsKey = "user"

type TokenParser interface {
	ParseToken(ctx context.Context, token string) (*jwt.Claims, error)
}

// JWT validates the bearer token, rejects revoked ones and stores the claims on the context.
func JWT(parser TokenParser) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  claimsKey,
		TokenLookup: "header:Authorization:Bearer ",
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return parser.ParseToken(c.Request().Context(), strings.TrimSpace(auth))
		},
		ErrorHandler: func(c echo.Context, err error) error {
			details := "Invalid or expired token"
			if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
				details = "Missing bearer token"
			}

			return c.JSON(http.StatusUnauthorized, response.ErrorResponseWithDetails("unauthorized", details))
		},
	})
}

// RequireAdmin must run after JWT.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := Claims(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, response.ErrorResponseWithDetails("unauthorized", "Missing bearer token"))
		}

		if claims.Role != models.RoleAdmin {
			return c.JSON(http.StatusForbidden, response.ErrorResponseWithDetails("forbidden", "Admin access required"))
		}

		return next(c)
	}
}

func Claims(c echo.Context) (*jwt.Claims, bool) {
	claims, ok := c.Get(claimsKey).(*jwt.Claims)
	return claims, ok && claims != nil
}

// Actor is the authenticated caller; zero when the request carries no claims.
func Actor(c echo.Context) models.Actor {
	claims, ok := Claims(c)
	if !ok {
		return models.Actor{}
	}

	return models.Actor{UserID: claims.UserID, Role: claims.Role}
}
