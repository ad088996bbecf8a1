package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	apierrors "github.com/pribylovaa/jwt-auth-demo/internal/errors"
	"github.com/pribylovaa/jwt-auth-demo/internal/models"
	"github.com/pribylovaa/jwt-auth-demo/internal/service"
	logctx "github.com/pribylovaa/jwt-auth-demo/pkg/log"
)

type ctxKeyUser struct{}

// UserFrom возвращает проверенные клеймы пользователя из контекста запроса.
// Присутствуют только ниже мидлвара Authenticate.
func UserFrom(ctx context.Context) (*models.UserClaims, bool) {
	if v := ctx.Value(ctxKeyUser{}); v != nil {
		if claims, ok := v.(*models.UserClaims); ok {
			return claims, true
		}
	}

	return nil, false
}

// Authenticate извлекает Bearer-токен из Authorization, валидирует его
// (подпись, издатель, аудитория, срок — без грейс-окна) и кладёт клеймы
// в контекст. Запросы без валидного токена получают 401.
//
// Проверка чисто вычислительная и не держит состояния между запросами —
// мидлвар безопасен при любой конкурентности.
func Authenticate(svc *service.Service) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				apierrors.WriteError(w, r, service.ErrInvalidToken)
				return
			}

			claims, err := svc.ValidateToken(token)
			if err != nil {
				// Причину пишем только в лог; ответ наружу един для
				// всех провалов проверки.
				logctx.From(r.Context()).LogAttrs(r.Context(), slog.LevelWarn, "token_rejected",
					slog.String("path", r.URL.Path),
					slog.String("err", err.Error()),
				)
				apierrors.WriteError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyUser{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRoles пускает дальше только пользователей, у которых есть хотя бы
// одна из перечисленных ролей. Вешается ниже Authenticate.
func RequireRoles(roles ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := UserFrom(r.Context())
			if !ok {
				apierrors.WriteError(w, r, service.ErrInvalidToken)
				return
			}

			if !claims.HasAnyRole(roles...) {
				logctx.From(r.Context()).LogAttrs(r.Context(), slog.LevelWarn, "role_forbidden",
					slog.String("path", r.URL.Path),
					slog.String("subject", claims.Subject),
				)
				apierrors.WriteError(w, r, service.ErrRoleForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken достаёт токен из "Authorization: Bearer <token>".
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}

	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) || len(auth) <= len(prefix) {
		return ""
	}

	return strings.TrimSpace(auth[len(prefix):])
}
