package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"paintrack/internal/presentation"
)

// Claims are the bearer token claims issued by the account service.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// AuthMiddleware accepts HS256 bearer tokens signed with secret and stores
// the caller's user id under presentation.OwnerIDKey.
func AuthMiddleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			authHeader := ctx.Request().Header.Get(presentation.AuthKey)
			if err := validateAuthHeader(authHeader); err != nil {
				return ctx.String(http.StatusUnauthorized, err.Error())
			}

			claims, err := parseToken(strings.TrimPrefix(authHeader, presentation.BearerPrefix), secret)
			if err != nil {
				return ctx.String(http.StatusUnauthorized, err.Error())
			}

			ctx.Set(presentation.OwnerIDKey, ownerID(claims))

			return next(ctx)
		}
	}
}

func validateAuthHeader(authHeader string) error {
	if authHeader == "" {
		return errors.New("missing Authorization header")
	}
	if !strings.HasPrefix(authHeader, presentation.BearerPrefix) {
		return errors.New("missing Bearer header prefix")
	}

	return nil
}

func parseToken(raw string, secret []byte) (*Claims, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.New("token expired")
		}

		return nil, errors.New("invalid token")
	}

	if ownerID(claims) == "" {
		return nil, errors.New("token has no user id")
	}
	if strings.Contains(ownerID(claims), "/") {
		return nil, errors.New("invalid user id")
	}

	return claims, nil
}

func ownerID(claims *Claims) string {
	if claims.UserID != "" {
		return claims.UserID
	}

	return claims.Subject
}

// NewToken signs a token for userID that expires after ttl.
func NewToken(secret []byte, userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}
