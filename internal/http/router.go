// http собирает REST-слой auth-сервера: роутер chi, цепочку middleware
// и регистрацию маршрутов.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/jwt-auth-demo/internal/http/handlers"
	"github.com/pribylovaa/jwt-auth-demo/internal/http/middleware"
	"github.com/pribylovaa/jwt-auth-demo/internal/models"
	"github.com/pribylovaa/jwt-auth-demo/internal/service"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger  *slog.Logger
	Timeout time.Duration
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc *service.Service, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
		middleware.Metrics(),            // prometheus-счётчики по маршрутам
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	h := handlers.New(svc)

	root.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", h.Login)
		r.Get("/test/public", h.Public)

		// Защищённые маршруты: валидный токен обязателен, роль — по маршруту.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(svc))

			r.Get("/test/authenticated", h.Authenticated)
			r.With(middleware.RequireRoles(models.RoleAdmin)).
				Get("/test/admin-only", h.AdminOnly)
			r.With(middleware.RequireRoles(models.RoleAdmin, models.RoleManager)).
				Get("/test/admin-or-manager", h.AdminOrManager)
		})
	})

	return root
}
