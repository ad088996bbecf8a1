package models

import "time"

// IssuedToken — результат успешного логина.
//
// Описание:
//   - Token — подписанный JWT для авторизации запросов;
//   - ExpiresAt — момент истечения токена (UTC). Обновления/refresh нет:
//     по истечении клиент логинится заново.
type IssuedToken struct {
	// Token — JWT в компактной сериализации (header.payload.signature).
	Token string
	// ExpiresAt — время истечения действия токена (UTC).
	ExpiresAt time.Time
}
