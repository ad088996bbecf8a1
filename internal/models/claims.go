package models

import (
	"slices"
	"time"
)

// UserClaims — проверенные клеймы access-токена, привязанные к запросу.
//
// Заполняется валидатором токена после проверки подписи, издателя,
// аудитории и срока действия; хендлеры читают их из контекста запроса
// и никакой повторной проверки не делают.
type UserClaims struct {
	// Subject — идентичность пользователя (email).
	Subject string
	// Email — email из одноимённого клейма.
	Email string
	// Roles — роли пользователя; в токене клейм "role" может быть
	// как строкой, так и массивом строк.
	Roles []string
	// TokenID — jti, уникальный идентификатор выпуска токена.
	TokenID string
	// ExpiresAt — момент истечения токена (UTC).
	ExpiresAt time.Time
}

// HasAnyRole сообщает, есть ли у пользователя хотя бы одна из ролей.
func (c *UserClaims) HasAnyRole(roles ...string) bool {
	for _, r := range roles {
		if slices.Contains(c.Roles, r) {
			return true
		}
	}

	return false
}
