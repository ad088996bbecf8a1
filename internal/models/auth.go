// Входные/выходные модели REST-слоя.
package models

import (
	"net/mail"
	"strings"
)

// Границы длины полей логина. Проверяются до любого сравнения
// с учётками: чрезмерно длинный ввод отбрасывается на входе.
const (
	MaxEmailLen    = 100
	MinPasswordLen = 6
	MaxPasswordLen = 100
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate выполняет пополевую валидацию запроса.
// Возвращает map поле -> сообщение; nil, если запрос корректен.
func (r LoginRequest) Validate() map[string]string {
	fields := make(map[string]string)

	email := strings.TrimSpace(r.Email)
	switch {
	case email == "":
		fields["email"] = "email is required"
	case len(email) > MaxEmailLen:
		fields["email"] = "email is too long"
	default:
		if _, err := mail.ParseAddress(email); err != nil {
			fields["email"] = "invalid email format"
		}
	}

	switch {
	case r.Password == "":
		fields["password"] = "password is required"
	case len(r.Password) < MinPasswordLen:
		fields["password"] = "password is too short"
	case len(r.Password) > MaxPasswordLen:
		fields["password"] = "password is too long"
	}

	if len(fields) == 0 {
		return nil
	}

	return fields
}

type LoginResponse struct {
	Token      string `json:"token"`
	Expiration string `json:"expiration"` // RFC3339, UTC
}
