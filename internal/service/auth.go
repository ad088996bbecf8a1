package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/pribylovaa/jwt-auth-demo/internal/models"
	"github.com/pribylovaa/jwt-auth-demo/pkg/log"
	"github.com/pribylovaa/jwt-auth-demo/pkg/redact"
)

// LoginUser выполняет вход по email+пароль и выпускает access-токен.
// Учётка живёт ровно один вызов: после проверки пароль нигде не
// сохраняется и не логируется.
func (s *Service) LoginUser(ctx context.Context, email, password string) (*models.IssuedToken, error) {
	const op = "service.auth.LoginUser"

	lg := log.From(ctx)

	normEmail, err := normalizeEmail(email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if len(password) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	role, err := s.verifier.Verify(ctx, normEmail, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			lg.Warn("login_rejected",
				slog.String("op", op),
				slog.String("email", redact.Email(normEmail)),
			)
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	token, expiresAt, err := s.generateAccessToken(ctx, normEmail, role, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	lg.Info("login_ok",
		slog.String("op", op),
		slog.String("email", redact.Email(normEmail)),
		slog.String("role", role),
	)

	return &models.IssuedToken{
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// ValidateToken проверяет access-токен и возвращает клеймы пользователя.
func (s *Service) ValidateToken(tokenStr string) (*models.UserClaims, error) {
	const op = "service.auth.ValidateToken"

	claims, err := s.validateAccessToken(tokenStr)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return claims, nil
}

// normalizeEmail проверяет базовый формат email и приводит к нижнему регистру.
func normalizeEmail(raw string) (string, error) {
	const op = "service.auth.normalizeEmail"

	email := strings.TrimSpace(raw)
	if email == "" || len(email) > models.MaxEmailLen {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	return strings.ToLower(email), nil
}
