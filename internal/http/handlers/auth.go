package handlers

import (
	"net/http"
	"time"

	apierrors "github.com/pribylovaa/jwt-auth-demo/internal/errors"
	"github.com/pribylovaa/jwt-auth-demo/internal/models"
)

// Login — POST /api/auth/login.
//
// Коды ответов:
//   - 200 {token, expiration} — учётка подошла, токен выпущен;
//   - 400 {error.fields} — битый JSON или пополевая валидация не прошла;
//   - 401 — email/пароль не совпали (без уточнений, одинаково для
//     "нет такой учётки" и "пароль неверный").
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var in models.LoginRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteValidationError(w, r, map[string]string{"body": "malformed json"})
		return
	}

	if fields := in.Validate(); fields != nil {
		apierrors.WriteValidationError(w, r, fields)
		return
	}

	issued, err := h.Service.LoginUser(r.Context(), in.Email, in.Password)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.LoginResponse{
		Token:      issued.Token,
		Expiration: issued.ExpiresAt.UTC().Format(time.RFC3339),
	})
}
