package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/viorex/viorex-exchange/internal/logger"
	"github.com/viorex/viorex-exchange/internal/models"
)

// Единственный ключ слота аккаунта
const accountKey = "viorex:user"

// RedisStorage - key-value бэкенд слота аккаунта: один ключ, JSON-значение
type RedisStorage struct {
	client *redis.Client
}

// Создание хранилища
func NewRedisStorage(addr string) (*RedisStorage, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect redis: %w", err)
	}
	return &RedisStorage{client: client}, nil
}

func (s *RedisStorage) Load(ctx context.Context) (*models.UserData, error) {
	data, err := s.client.Get(ctx, accountKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
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

func (s *RedisStorage) Save(ctx context.Context, user *models.UserData) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal account: %w", err)
	}
	if err := s.client.Set(ctx, accountKey, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write account slot: %w", err)
	}
	return nil
}

func (s *RedisStorage) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, accountKey).Err(); err != nil {
		return fmt.Errorf("failed to clear account slot: %w", err)
	}
	return nil
}

func (s *RedisStorage) Close() error {
	return s.client.Close()
}
