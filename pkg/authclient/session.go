package authclient

import (
	"context"
	"sync"
)

// TokenKey — имя слота, в котором клиент держит токен на время сессии.
const TokenKey = "authToken"

// SessionStore — хранилище строковых значений со временем жизни "сессия".
//
// Интерфейс асинхронный (context на каждой операции): у браузерного
// session storage чтение/запись не мгновенны, и замена на реализацию с
// реальным I/O не должна менять вызывающий код. Все операции обязаны
// уважать отмену контекста.
type SessionStore interface {
	GetItem(ctx context.Context, key string) (string, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

// MemorySessionStore — потокобезопасная реализация SessionStore в памяти.
// Содержимое живёт до конца процесса — аналог вкладки браузера.
type MemorySessionStore struct {
	mu    sync.RWMutex
	items map[string]string
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{items: make(map[string]string)}
}

// GetItem возвращает значение по ключу; для отсутствующего ключа — "".
func (s *MemorySessionStore) GetItem(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.items[key], nil
}

func (s *MemorySessionStore) SetItem(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[key] = value
	return nil
}

func (s *MemorySessionStore) RemoveItem(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, key)
	return nil
}
