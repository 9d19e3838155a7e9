package auth

import (
	"context"
	"net/http"
	"strings"

	"cloudstore/internal/domain/user"
	"cloudstore/pkg/apperrors"

	"github.com/labstack/echo/v4"
)

// UserResolver maps a verified token subject to the local user record.
type UserResolver interface {
	GetByExternalID(ctx context.Context, externalID string) (*user.User, error)
}

type Middleware struct {
	verifier Verifier
	users    UserResolver
}

func NewMiddleware(verifier Verifier, users UserResolver) *Middleware {
	return &Middleware{
		verifier: verifier,
		users:    users,
	}
}

func (m *Middleware) RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractBearerToken(c)
			if token == "" {
				return respondError(c, http.StatusUnauthorized, msgMissingAuthorization)
			}

			subject, err := m.verifier.Subject(token)
			if err != nil {
				return respondError(c, http.StatusUnauthorized, msgInvalidOrExpiredToken)
			}

			u, err := m.users.GetByExternalID(c.Request().Context(), subject)
			if err != nil {
				return respondError(c, http.StatusUnauthorized, msgUnknownUser)
			}

			c.Set(ContextKeyUserID, u.ID)
			c.Set(ContextKeyExternalID, u.ExternalID)

			return next(c)
		}
	}
}

func GetUserID(c echo.Context) (int64, error) {
	v := c.Get(ContextKeyUserID)
	if v == nil {
		return 0, apperrors.Unauthorized(msgUserNotAuthenticated)
	}

	id, ok := v.(int64)
	if !ok {
		return 0, apperrors.Unauthorized(msgInvalidUserIDCtx)
	}

	return id, nil
}

func extractBearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get(headerAuthorization)
	if authHeader == "" {
		return ""
	}

	parts := strings.Fields(authHeader)
	if len(parts) != authHeaderParts || strings.ToLower(parts[0]) != bearerScheme {
		return ""
	}

	return parts[1]
}

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{jsonKeyError: message})
}
