// service содержит бизнес-логику auth-сервера:
// проверку учётных данных, выпуск и валидацию access-токенов.
//
// Основные аспекты:
//   - Экземпляр Service не хранит состояние запроса и безопасен для
//     конкурентного использования из разных горутин: ключ подписи и
//     список учёток неизменяемы после старта.
//   - Ошибки возвращаются сентинелами и далее маппятся HTTP-слоем
//     (см. комментарии к переменным ошибок ниже).
package service

import (
	"context"
	"errors"

	"github.com/pribylovaa/jwt-auth-demo/internal/config"
)

var (
	// ErrInvalidCredentials — пара email/пароль неверна.
	// HTTP-слой: 401 с общим сообщением, без уточнения причины
	// (не даём перечислять существующие учётки).
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken — токен некорректен: подпись, издатель, аудитория
	// или структура. Наружу причина не различается. HTTP-слой: 401.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired — срок действия токена истёк. Грейс-окна нет:
	// токен, просроченный на секунду, уже недействителен. HTTP-слой: 401,
	// тем же сообщением, что и ErrInvalidToken.
	ErrTokenExpired = errors.New("token expired")

	// ErrRoleForbidden — токен валиден, но требуемой роли нет. HTTP-слой: 403.
	ErrRoleForbidden = errors.New("role forbidden")
)

// CredentialVerifier проверяет пару email/пароль и возвращает роль учётки.
//
// Абстракция отделяет выпуск токенов от способа хранения учёток: сейчас за
// интерфейсом фиксированный список в памяти, но реализацию можно заменить
// на персистентное хранилище, не трогая Service. Инвариант для любой
// реализации: поиск учётки — только параметризованный (никакой конкатенации
// пользовательского ввода в запрос).
type CredentialVerifier interface {
	// Verify возвращает роль при совпадении или ErrInvalidCredentials.
	Verify(ctx context.Context, email, password string) (string, error)
}

// Service описывает бизнес-логику auth-сервера.
type Service struct {
	verifier CredentialVerifier
	cfg      config.AuthConfig
}

// New создаёт новый экземпляр Service.
func New(verifier CredentialVerifier, cfg config.AuthConfig) *Service {
	return &Service{
		verifier: verifier,
		cfg:      cfg,
	}
}
