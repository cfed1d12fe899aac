package middleware

import (
	"errors"
	"strings"

	apierrors "finanzas-api/internal/errors"
	"finanzas-api/internal/handlers"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// UserIDContextKey is the context key holding the authenticated user's ID.
const UserIDContextKey = "user_id"

// RequireAuth creates a middleware that requires a valid HMAC-signed JWT and
// stores the authenticated user ID in the request context.
func RequireAuth(secret string, issuer string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return handlers.SendError(c, apierrors.AuthMissingToken)
			}

			token, err := extractBearerToken(authHeader)
			if err != nil {
				return handlers.SendError(c, apierrors.AuthInvalidTokenFormat)
			}

			claims := &jwt.RegisteredClaims{}
			parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.New("unexpected signing method")
				}
				return []byte(secret), nil
			}, jwt.WithIssuer(issuer))
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					return handlers.SendError(c, apierrors.AuthExpiredToken)
				}
				return handlers.SendError(c, apierrors.AuthInvalidTokenFormat)
			}
			if !parsed.Valid {
				return handlers.SendError(c, apierrors.AuthInvalidTokenFormat)
			}

			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				return handlers.SendError(c, apierrors.AuthInvalidTokenFormat, apierrors.WithDetails("Invalid user ID in token"))
			}

			c.Set(UserIDContextKey, userID)
			return next(c)
		}
	}
}

// GetUserID extracts the authenticated user ID from the Echo context.
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(UserIDContextKey).(uuid.UUID)
	return userID, ok
}

func extractBearerToken(header string) (string, error) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.New("malformed authorization header")
	}
	return parts[1], nil
}
