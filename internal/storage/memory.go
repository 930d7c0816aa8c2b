package storage

import (
	"context"
	"sync"

	"github.com/viorex/viorex-exchange/internal/models"
)

// MemoryStorage - хранилище аккаунта в памяти.
// Используется в тестах и при запуске без настроенного бэкенда.
type MemoryStorage struct {
	mu   sync.Mutex
	user *models.UserData
}

// Создание хранилища
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (s *MemoryStorage) Load(ctx context.Context) (*models.UserData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return nil, ErrUserNotFound
	}
	// копия, чтобы вызывающий не менял слот напрямую
	user := *s.user
	return &user, nil
}

func (s *MemoryStorage) Save(ctx context.Context, user *models.UserData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *user
	s.user = &copied
	return nil
}

func (s *MemoryStorage) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	return nil
}

func (s *MemoryStorage) Close() error {
	return nil
}
