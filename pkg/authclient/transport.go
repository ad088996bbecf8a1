package authclient

import (
	"fmt"
	"net/http"
)

// Transport — http.RoundTripper, который перед каждым исходящим запросом
// читает токен из SessionStore и, если он есть, подставляет заголовок
// "Authorization: Bearer <token>".
//
// Отсутствие токена — не ошибка: запрос уходит без заголовка и сервер
// отвечает на него как анонимному клиенту. Подстановка заголовка живёт
// ТОЛЬКО здесь: ровно одно место в клиенте знает про Authorization.
type Transport struct {
	// Store — источник токена. Обязателен.
	Store SessionStore
	// Base — нижележащий транспорт; nil означает http.DefaultTransport.
	Base http.RoundTripper
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	const op = "authclient.transport.RoundTrip"

	if t.Store == nil {
		return nil, fmt.Errorf("%s: session store is not configured", op)
	}

	token, err := t.Store.GetItem(req.Context(), TokenKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if token != "" {
		// RoundTripper не должен мутировать исходный запрос.
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+token)
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	return base.RoundTrip(req)
}
