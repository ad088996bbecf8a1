package handlers

import (
	"fmt"
	"net/http"

	apierrors "github.com/pribylovaa/jwt-auth-demo/internal/errors"
	"github.com/pribylovaa/jwt-auth-demo/internal/http/middleware"
	"github.com/pribylovaa/jwt-auth-demo/internal/service"
)

// Тестовые эндпойнты демонстрируют четыре уровня доступа:
// открытый, любой валидный токен, одна роль, одна из нескольких ролей.
// Сами проверки токена/ролей живут в middleware — хендлеры только
// читают готовые клеймы из контекста.

type testResponse struct {
	Message   string `json:"message"`
	RoleCheck string `json:"role_check,omitempty"`
}

// Public — GET /api/test/public. Без авторизации.
func (h *Handlers) Public(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, testResponse{
		Message: "this endpoint is public, no login required",
	})
}

// Authenticated — GET /api/test/authenticated. Любой валидный токен.
func (h *Handlers) Authenticated(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.UserFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, service.ErrInvalidToken)
		return
	}

	writeJSON(w, http.StatusOK, testResponse{
		Message:   fmt.Sprintf("hello, %s, you are logged in", claims.Email),
		RoleCheck: "any valid token is enough here",
	})
}

// AdminOnly — GET /api/test/admin-only. Только роль Admin.
func (h *Handlers) AdminOnly(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.UserFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, service.ErrInvalidToken)
		return
	}

	writeJSON(w, http.StatusOK, testResponse{
		Message:   fmt.Sprintf("welcome, administrator %s", claims.Email),
		RoleCheck: "token carries the Admin role",
	})
}

// AdminOrManager — GET /api/test/admin-or-manager. Роль Admin или Manager.
func (h *Handlers) AdminOrManager(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, testResponse{
		Message: "access granted for Admin or Manager",
	})
}
