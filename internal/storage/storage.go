package storage

import (
	"context"
	"errors"

	"github.com/viorex/viorex-exchange/internal/models"
)

// AccountStorage - хранилище единственной записи пользователя.
// Запись одна на всю систему: новая регистрация или вход под другим
// адресом перезаписывают слот целиком (last write wins).
type AccountStorage interface {
	// Load возвращает запись или ErrUserNotFound, если слот пуст.
	// Нечитаемый слот трактуется как пустой: пользователь "разлогинен".
	Load(ctx context.Context) (*models.UserData, error)
	// Save безусловно перезаписывает слот
	Save(ctx context.Context, user *models.UserData) error
	// Clear очищает слот (выход пользователя)
	Clear(ctx context.Context) error
	Close() error
}

var ErrUserNotFound = errors.New("user not found")
