package authclient

import (
	"context"
	"fmt"
	"sync"
)

// AuthState — локальное представление "кто я" на клиенте.
// Строится декодированием сохранённого токена и пересобирается на каждом
// событии (логин, логаут, старт приложения); отдельно не персистится.
type AuthState struct {
	Authenticated bool
	Claims        []Claim
}

// Roles возвращает все значения клейма роли.
func (s AuthState) Roles() []string {
	var roles []string
	for _, c := range s.Claims {
		if c.Name == RoleClaim {
			roles = append(roles, c.Value)
		}
	}

	return roles
}

// ClaimValue возвращает первое значение клейма с данным именем.
func (s AuthState) ClaimValue(name string) (string, bool) {
	for _, c := range s.Claims {
		if c.Name == name {
			return c.Value, true
		}
	}

	return "", false
}

// StateProvider выводит AuthState из SessionStore и оповещает подписчиков
// о сменах состояния.
//
// Provider читает токен, но сам заголовков не выставляет — за прикрепление
// токена к запросам отвечает исключительно Transport.
type StateProvider struct {
	store SessionStore

	mu     sync.Mutex
	subs   map[int]func(AuthState)
	nextID int
}

func NewStateProvider(store SessionStore) *StateProvider {
	return &StateProvider{
		store: store,
		subs:  make(map[int]func(AuthState)),
	}
}

// State строит текущее состояние: нет токена — аноним; токен есть —
// декодируем клеймы. Битый токен означает "нет аутентифицированных
// клеймов", а не ошибку: UI от этого падать не должен.
func (p *StateProvider) State(ctx context.Context) (AuthState, error) {
	const op = "authclient.state.State"

	token, err := p.store.GetItem(ctx, TokenKey)
	if err != nil {
		return AuthState{}, fmt.Errorf("%s: %w", op, err)
	}

	return stateFromToken(token), nil
}

// MarkAuthenticated сохраняет токен после успешного логина и рассылает
// подписчикам новое состояние.
func (p *StateProvider) MarkAuthenticated(ctx context.Context, token string) error {
	const op = "authclient.state.MarkAuthenticated"

	if err := p.store.SetItem(ctx, TokenKey, token); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	p.notify(stateFromToken(token))
	return nil
}

// MarkLoggedOut удаляет токен из сессии и рассылает анонимное состояние.
func (p *StateProvider) MarkLoggedOut(ctx context.Context) error {
	const op = "authclient.state.MarkLoggedOut"

	if err := p.store.RemoveItem(ctx, TokenKey); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	p.notify(AuthState{})
	return nil
}

// Subscribe регистрирует подписчика на смены состояния и возвращает
// функцию отписки. Порядок вызова подписчиков не гарантируется.
func (p *StateProvider) Subscribe(fn func(AuthState)) func() {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.nextID
	p.nextID++
	p.subs[id] = fn

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.subs, id)
	}
}

// notify — fire-and-forget: каждый подписчик получает состояние в своей
// горутине, рассылка не ждёт завершения обработчиков.
func (p *StateProvider) notify(state AuthState) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, fn := range p.subs {
		go fn(state)
	}
}

func stateFromToken(token string) AuthState {
	if token == "" {
		return AuthState{}
	}

	claims, err := ParseClaims(token)
	if err != nil {
		return AuthState{}
	}

	return AuthState{Authenticated: true, Claims: claims}
}
