// authclient — клиентская половина демо: хранение токена на время сессии,
// автоматическая подстановка Bearer-заголовка в исходящие запросы и
// локальное состояние аутентификации, выводимое из клеймов токена без
// похода на сервер.
//
// Решения об авторизации всегда принимает сервер: всё, что делает этот
// пакет с payload токена, — локальное отображение.
package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrLoginRejected — сервер не принял пару email/пароль (401).
	ErrLoginRejected = errors.New("login rejected")

	// ErrBadResponse — ответ сервера не удалось разобрать.
	ErrBadResponse = errors.New("bad server response")
)

// Client связывает вместе SessionStore, StateProvider и http.Client
// с токен-транспортом — программный аналог браузерного клиента.
type Client struct {
	baseURL string
	store   SessionStore
	state   *StateProvider
	httpc   *http.Client
}

// New создаёт клиента с хранилищем сессии в памяти.
func New(baseURL string) *Client {
	return NewWithStore(baseURL, NewMemorySessionStore())
}

// NewWithStore создаёт клиента поверх произвольного SessionStore.
func NewWithStore(baseURL string, store SessionStore) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		store:   store,
		state:   NewStateProvider(store),
		httpc: &http.Client{
			Transport: &Transport{Store: store},
		},
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token      string `json:"token"`
	Expiration string `json:"expiration"`
}

// Login выполняет POST /api/auth/login, сохраняет выданный токен в сессию
// и оповещает подписчиков о новом состоянии.
func (c *Client) Login(ctx context.Context, email, password string) error {
	const op = "authclient.client.Login"

	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/login", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest {
		return fmt.Errorf("%s: %w", op, ErrLoginRejected)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: unexpected status %d: %w", op, resp.StatusCode, ErrBadResponse)
	}

	var out loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("%s: %w", op, ErrBadResponse)
	}
	if out.Token == "" {
		return fmt.Errorf("%s: empty token: %w", op, ErrBadResponse)
	}

	if err := c.state.MarkAuthenticated(ctx, out.Token); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Logout очищает сессионный слот и рассылает анонимное состояние.
// Следующий запрос уйдёт без Bearer-заголовка.
func (c *Client) Logout(ctx context.Context) error {
	const op = "authclient.client.Logout"

	if err := c.state.MarkLoggedOut(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// State возвращает текущее локальное состояние аутентификации.
func (c *Client) State(ctx context.Context) (AuthState, error) {
	return c.state.State(ctx)
}

// Subscribe — подписка на смены состояния; возвращает функцию отписки.
func (c *Client) Subscribe(fn func(AuthState)) func() {
	return c.state.Subscribe(fn)
}

// Get выполняет GET к серверу; токен (если есть) подставит Transport.
// Закрыть тело ответа — обязанность вызывающего.
func (c *Client) Get(ctx context.Context, path string) (*http.Response, error) {
	const op = "authclient.client.Get"

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return resp, nil
}

// HTTPClient возвращает http.Client с настроенным токен-транспортом —
// для запросов, которые не покрыты хелперами выше.
func (c *Client) HTTPClient() *http.Client {
	return c.httpc
}
