// Package tokenstore хранит единственный bearer-токен консоли.
// Слот переживает перезапуск процесса; срок жизни токена локально не проверяется,
// о протухании мы узнаем только по 401 от API.
package tokenstore

import (
	"context"
	"sync"
)

// Store — персистентный слот на один токен.
type Store interface {
	// Get возвращает токен и признак его наличия.
	Get(ctx context.Context) (token string, ok bool, err error)
	// Set целиком заменяет токен.
	Set(ctx context.Context, token string) error
	// Clear удаляет токен. Очистка пустого слота не ошибка.
	Clear(ctx context.Context) error
}

// Memory держит токен в памяти процесса.
type Memory struct {
	mu    sync.RWMutex
	token string
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Get(_ context.Context) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, m.token != "", nil
}

func (m *Memory) Set(_ context.Context, token string) error {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
	return nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	m.token = ""
	m.mu.Unlock()
	return nil
}

// Noop — бэкенд для окружений без персистентности: всегда пусто, запись игнорируется.
type Noop struct{}

var _ Store = Noop{}

func (Noop) Get(context.Context) (string, bool, error) { return "", false, nil }
func (Noop) Set(context.Context, string) error         { return nil }
func (Noop) Clear(context.Context) error               { return nil }
