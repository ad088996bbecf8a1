package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/jwt-auth-demo/internal/config"
	"github.com/pribylovaa/jwt-auth-demo/internal/models"
	"github.com/pribylovaa/jwt-auth-demo/internal/service"
)

func newAuthSvc(t *testing.T) *service.Service {
	t.Helper()

	v, err := service.NewStaticVerifier(service.DefaultAccounts())
	require.NoError(t, err)

	return service.New(v, config.AuthConfig{
		JWTSecret: "mw-secret",
		TokenTTL:  time.Hour,
		Issuer:    "jwt-auth-demo",
		Audience:  []string{"jwt-auth-demo"},
	})
}

func login(t *testing.T, svc *service.Service, email, password string) string {
	t.Helper()

	issued, err := svc.LoginUser(context.Background(), email, password)
	require.NoError(t, err)
	return issued.Token
}

// Хендлер-эхо: отдаёт 200 и subject клеймов, если они в контексте.
func echoHandler(t *testing.T, wantClaims bool) http.Handler {
	t.Helper()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := UserFrom(r.Context())
		if wantClaims {
			require.True(t, ok)
			require.NotNil(t, claims)
			_, _ = w.Write([]byte(claims.Subject))
			return
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate_NoToken(t *testing.T) {
	t.Parallel()

	svc := newAuthSvc(t)
	h := Authenticate(svc)(echoHandler(t, false))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/secure", nil))

	require.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	t.Parallel()

	svc := newAuthSvc(t)
	h := Authenticate(svc)(echoHandler(t, false))

	for _, auth := range []string{"Bearer", "Bearer ", "Basic abc", "token-without-scheme"} {
		req := httptest.NewRequest(http.MethodGet, "/secure", nil)
		req.Header.Set("Authorization", auth)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		require.Equal(t, http.StatusUnauthorized, rr.Code, "auth=%q", auth)
	}
}

func TestAuthenticate_ValidToken_ClaimsInContext(t *testing.T) {
	t.Parallel()

	svc := newAuthSvc(t)
	token := login(t, svc, "admin@prueba.com", "Admin123!")

	h := Authenticate(svc)(echoHandler(t, true))

	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "admin@prueba.com", rr.Body.String())
}

func TestAuthenticate_TokenFromOtherKey(t *testing.T) {
	t.Parallel()

	svc := newAuthSvc(t)

	other, err := service.NewStaticVerifier(service.DefaultAccounts())
	require.NoError(t, err)
	otherSvc := service.New(other, config.AuthConfig{
		JWTSecret: "other-secret",
		TokenTTL:  time.Hour,
		Issuer:    "jwt-auth-demo",
		Audience:  []string{"jwt-auth-demo"},
	})
	token := login(t, otherSvc, "admin@prueba.com", "Admin123!")

	h := Authenticate(svc)(echoHandler(t, false))

	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRequireRoles_Allowed(t *testing.T) {
	t.Parallel()

	svc := newAuthSvc(t)
	token := login(t, svc, "user@prueba.com", "User123!") // Manager

	h := Chain(echoHandler(t, true),
		Authenticate(svc),
		RequireRoles(models.RoleAdmin, models.RoleManager),
	)

	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
}

func TestRequireRoles_Forbidden(t *testing.T) {
	t.Parallel()

	svc := newAuthSvc(t)
	token := login(t, svc, "user@prueba.com", "User123!") // Manager

	h := Chain(echoHandler(t, false),
		Authenticate(svc),
		RequireRoles(models.RoleAdmin),
	)

	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusForbidden, rr.Code)
}

// RequireRoles без Authenticate выше по цепочке — это ошибка сборки
// роутера; реагируем 401, а не паникой.
func TestRequireRoles_NoClaims(t *testing.T) {
	t.Parallel()

	h := RequireRoles(models.RoleAdmin)(echoHandler(t, false))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/secure", nil))

	require.Equal(t, http.StatusUnauthorized, rr.Code)
}
