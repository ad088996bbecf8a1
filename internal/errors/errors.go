// errors стандартизирует ответы об ошибках HTTP-слоя.
// На вход — доменная ошибка сервиса (sentinel из internal/service),
// на выход:
//   - корректный HTTP-статус;
//   - краткое безопасное message без утечки деталей.
//
// Намеренно: ErrInvalidToken и ErrTokenExpired маппятся в ОДИН и тот же
// ответ 401/unauthenticated — снаружи нельзя узнать, какая именно проверка
// токена не прошла.
package errors

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pribylovaa/jwt-auth-demo/internal/service"
)

// APIError — единый формат ошибки для фронта.
// Code — короткий стабильный код для машиночитаемой обработки.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
// Fields — пополевые сообщения валидации (только для 400).
type APIError struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	RequestID string            `json:"request_id,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует доменную ошибку в HTTP-статус и унифицированный ответ.
//
// Поведение:
//   - err == nil — это программная ошибка вызова: возвращаем 500/internal,
//     чтобы не послать "200 OK" с телом ошибки и не маскировать баг;
//   - известные sentinel-ошибки сервиса маппятся по таблице ниже;
//   - прочее -> 500/internal (без утечки деталей).
func ToHTTP(err error) (int, ErrorResponse) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, newResponse("internal", "internal error")
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, newResponse("invalid_credentials", "invalid credentials")
	case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrTokenExpired):
		return http.StatusUnauthorized, newResponse("unauthenticated", "unauthenticated")
	case errors.Is(err, service.ErrRoleForbidden):
		return http.StatusForbidden, newResponse("permission_denied", "permission denied")
	default:
		return http.StatusInternalServerError, newResponse("internal", "internal error")
	}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)
	write(w, r, status, resp)
}

// WriteValidationError пишет 400 с пополевыми сообщениями валидации.
func WriteValidationError(w http.ResponseWriter, r *http.Request, fields map[string]string) {
	resp := newResponse("invalid_argument", "invalid argument")
	resp.Error.Fields = fields
	write(w, r, http.StatusBadRequest, resp)
}

func newResponse(code, msg string) ErrorResponse {
	return ErrorResponse{Error: APIError{Code: code, Message: msg}}
}

func write(w http.ResponseWriter, r *http.Request, status int, resp ErrorResponse) {
	// Прокидываем request_id для фронта, чтобы он мог репортить баги с привязкой.
	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
