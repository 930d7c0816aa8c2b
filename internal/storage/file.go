package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/viorex/viorex-exchange/internal/logger"
	"github.com/viorex/viorex-exchange/internal/models"
)

// FileStorage - файловый бэкенд слота аккаунта: один JSON-файл.
// Запись атомарная, через временный файл и rename.
type FileStorage struct {
	Path string
	mu   sync.Mutex
}

// Создание хранилища
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{Path: path}
}

func (s *FileStorage) Load(ctx context.Context) (*models.UserData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to read account slot: %w", err)
	}

	var user models.UserData
	if err := json.Unmarshal(data, &user); err != nil {
		// испорченный слот считаем пустым
		logger.Warn("Corrupt account slot, treating as logged out:", err.Error())
		return nil, ErrUserNotFound
	}
	return &user, nil
}

func (s *FileStorage) Save(ctx context.Context, user *models.UserData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal account: %w", err)
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "account-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp slot: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write account slot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp slot: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace account slot: %w", err)
	}
	return nil
}

func (s *FileStorage) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear account slot: %w", err)
	}
	return nil
}

func (s *FileStorage) Close() error {
	return nil
}
