// client-demo — сценарий работы клиентской библиотеки против запущенного
// auth-server: логин, вызовы эндпойнтов с разными требованиями к ролям,
// логаут и повторный вызов без токена.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/pribylovaa/jwt-auth-demo/pkg/authclient"
)

func main() {
	var (
		serverURL string
		email     string
		password  string
	)
	flag.StringVar(&serverURL, "server", "http://localhost:50095", "auth-server base URL")
	flag.StringVar(&email, "email", "admin@prueba.com", "login email")
	flag.StringVar(&password, "password", "Admin123!", "login password")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := authclient.New(serverURL)

	unsubscribe := client.Subscribe(func(s authclient.AuthState) {
		log.Info("auth_state_changed",
			slog.Bool("authenticated", s.Authenticated),
			slog.Any("roles", s.Roles()),
		)
	})
	defer unsubscribe()

	if err := client.Login(ctx, email, password); err != nil {
		log.Error("login_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	state, err := client.State(ctx)
	if err != nil {
		log.Error("state_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	if sub, ok := state.ClaimValue("sub"); ok {
		log.Info("logged_in", slog.String("subject", sub), slog.Any("roles", state.Roles()))
	}

	for _, path := range []string{
		"/api/test/public",
		"/api/test/authenticated",
		"/api/test/admin-only",
		"/api/test/admin-or-manager",
	} {
		call(ctx, log, client, path)
	}

	if err := client.Logout(ctx); err != nil {
		log.Error("logout_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	// После логаута токена в сессии нет — защищённый эндпойнт отвечает 401.
	call(ctx, log, client, "/api/test/authenticated")
}

func call(ctx context.Context, log *slog.Logger, client *authclient.Client, path string) {
	resp, err := client.Get(ctx, path)
	if err != nil {
		log.Error("request_failed", slog.String("path", path), slog.String("err", err.Error()))
		return
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	fmt.Printf("%-30s -> %d %s\n", path, resp.StatusCode, string(body))
}
