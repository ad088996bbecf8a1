package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pribylovaa/jwt-auth-demo/internal/models"
	"github.com/pribylovaa/jwt-auth-demo/pkg/log"
)

// accessClaims — клеймы access-токена.
// Роль едет в клейме "role"; jwt.ClaimStrings принимает и строку,
// и массив строк, так что валидатор одинаково читает оба варианта.
type accessClaims struct {
	Email string           `json:"email"`
	Roles jwt.ClaimStrings `json:"role"`
	jwt.RegisteredClaims
}

// generateAccessToken выпускает подписанный access-токен.
// jti — свежий uuid на каждый выпуск: два вызова не дают коллизий
// при нормальной работе источника случайности.
func (s *Service) generateAccessToken(ctx context.Context, email, role string, now time.Time) (string, time.Time, error) {
	const op = "service.token.generateAccessToken"

	lg := log.From(ctx)

	expiresAt := now.Add(s.cfg.TokenTTL)
	claims := accessClaims{
		Email: email,
		Roles: jwt.ClaimStrings{role},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.cfg.Issuer,
			Subject:   email,
			Audience:  jwt.ClaimStrings(s.cfg.Audience),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		lg.Error("access_token_sign_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return "", time.Time{}, fmt.Errorf("%s: %w", op, err)
	}

	return signed, expiresAt, nil
}

// validateAccessToken валидирует access-токен: подпись, издатель,
// аудитория, срок действия. Leeway не задаётся — грейс-окно нулевое.
func (s *Service) validateAccessToken(tokenStr string) (*models.UserClaims, error) {
	const op = "service.token.validateAccessToken"

	token, err := jwt.ParseWithClaims(tokenStr, &accessClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
			}

			return []byte(s.cfg.JWTSecret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithAudience(s.cfg.Audience...),
		jwt.WithExpirationRequired(),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%s: %w", op, ErrTokenExpired)
		}

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	return &models.UserClaims{
		Subject:   claims.Subject,
		Email:     claims.Email,
		Roles:     []string(claims.Roles),
		TokenID:   claims.ID,
		ExpiresAt: expiresAt,
	}, nil
}
