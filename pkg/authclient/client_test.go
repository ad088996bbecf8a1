package authclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeServer имитирует серверную сторону: /api/auth/login выдаёт
// заранее собранный токен, /api/test/echo возвращает Authorization-заголовок.
func fakeServer(t *testing.T, token string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		if req.Email != "admin@prueba.com" || req.Password != "Admin123!" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"token":      token,
			"expiration": "2026-01-01T00:00:00Z",
		})
	})
	mux.HandleFunc("GET /api/test/echo", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, r.Header.Get("Authorization"))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_LoginStoresTokenAndState(t *testing.T) {
	t.Parallel()

	token := buildToken(t, map[string]any{"sub": "admin@prueba.com", "role": "Admin"})
	srv := fakeServer(t, token)

	store := NewMemorySessionStore()
	client := NewWithStore(srv.URL, store)
	ctx := context.Background()

	require.NoError(t, client.Login(ctx, "admin@prueba.com", "Admin123!"))

	saved, err := store.GetItem(ctx, TokenKey)
	require.NoError(t, err)
	require.Equal(t, token, saved)

	state, err := client.State(ctx)
	require.NoError(t, err)
	require.True(t, state.Authenticated)
	require.Equal(t, []string{"Admin"}, state.Roles())
}

func TestClient_LoginRejected(t *testing.T) {
	t.Parallel()

	srv := fakeServer(t, "unused")
	client := New(srv.URL)

	err := client.Login(context.Background(), "admin@prueba.com", "wrong")
	require.ErrorIs(t, err, ErrLoginRejected)

	state, serr := client.State(context.Background())
	require.NoError(t, serr)
	require.False(t, state.Authenticated)
}

func TestClient_LoginBadResponse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "not json at all")
	}))
	t.Cleanup(srv.Close)

	client := New(srv.URL)
	err := client.Login(context.Background(), "admin@prueba.com", "Admin123!")
	require.ErrorIs(t, err, ErrBadResponse)
}

func TestClient_GetCarriesToken(t *testing.T) {
	t.Parallel()

	token := buildToken(t, map[string]any{"sub": "admin@prueba.com"})
	srv := fakeServer(t, token)

	client := New(srv.URL)
	ctx := context.Background()

	// До логина запрос уходит без заголовка.
	resp, err := client.Get(ctx, "/api/test/echo")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.Empty(t, string(body))

	require.NoError(t, client.Login(ctx, "admin@prueba.com", "Admin123!"))

	resp, err = client.Get(ctx, "api/test/echo") // ведущий "/" добавится сам
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.Equal(t, "Bearer "+token, string(body))
}

func TestClient_LogoutDropsToken(t *testing.T) {
	t.Parallel()

	token := buildToken(t, map[string]any{"sub": "admin@prueba.com"})
	srv := fakeServer(t, token)

	client := New(srv.URL)
	ctx := context.Background()

	require.NoError(t, client.Login(ctx, "admin@prueba.com", "Admin123!"))
	require.NoError(t, client.Logout(ctx))

	resp, err := client.Get(ctx, "/api/test/echo")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.Empty(t, string(body))

	state, err := client.State(ctx)
	require.NoError(t, err)
	require.False(t, state.Authenticated)
}

func TestClient_SubscribeSeesLogin(t *testing.T) {
	t.Parallel()

	token := buildToken(t, map[string]any{"sub": "admin@prueba.com", "role": "Admin"})
	srv := fakeServer(t, token)

	client := New(srv.URL)
	events := make(chan AuthState, 2)
	client.Subscribe(func(s AuthState) { events <- s })

	require.NoError(t, client.Login(context.Background(), "admin@prueba.com", "Admin123!"))

	got := waitState(t, events)
	require.True(t, got.Authenticated)
	require.Equal(t, []string{"Admin"}, got.Roles())
}

func TestClient_BaseURLTrailingSlash(t *testing.T) {
	t.Parallel()

	token := buildToken(t, map[string]any{"sub": "admin@prueba.com"})
	srv := fakeServer(t, token)

	client := New(srv.URL + "/")
	require.NoError(t, client.Login(context.Background(), "admin@prueba.com", "Admin123!"))
}
