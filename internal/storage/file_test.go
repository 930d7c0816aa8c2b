package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/viorex/viorex-exchange/internal/logger"
	"github.com/viorex/viorex-exchange/internal/models"
)

func newTestFileStorage(t *testing.T) *FileStorage {
	t.Helper()
	if err := logger.Initialize("error"); err != nil {
		t.Fatalf("can't initialize logger: %v", err)
	}
	return NewFileStorage(filepath.Join(t.TempDir(), "viorex_user.json"))
}

func TestFileStorageRoundtrip(t *testing.T) {
	s := newTestFileStorage(t)
	ctx := context.Background()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	user := models.NewDemoUser("demo@viorex.io", "FRIEND2025", now)
	if err := s.Save(ctx, user); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(user, loaded); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestFileStorageOverwrite(t *testing.T) {
	s := newTestFileStorage(t)
	ctx := context.Background()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	if err := s.Save(ctx, models.NewDemoUser("first@viorex.io", "", now)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := s.Save(ctx, models.NewDemoUser("second@viorex.io", "", now)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	// в слоте одна запись, последняя запись побеждает
	if loaded.Email != "second@viorex.io" {
		t.Errorf("Load() email = %s, want second@viorex.io", loaded.Email)
	}
}

func TestFileStorageMissingFile(t *testing.T) {
	s := newTestFileStorage(t)

	_, err := s.Load(context.Background())
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Load() error = %v, want ErrUserNotFound", err)
	}
}

func TestFileStorageCorruptSlot(t *testing.T) {
	s := newTestFileStorage(t)

	if err := os.WriteFile(s.Path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("can't write corrupt slot: %v", err)
	}

	_, err := s.Load(context.Background())
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Load() error = %v, want ErrUserNotFound", err)
	}
}

func TestFileStorageClear(t *testing.T) {
	s := newTestFileStorage(t)
	ctx := context.Background()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	if err := s.Save(ctx, models.NewDemoUser("demo@viorex.io", "", now)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, err := s.Load(ctx); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Load() after Clear() error = %v, want ErrUserNotFound", err)
	}
	// повторная очистка пустого слота не ошибка
	if err := s.Clear(ctx); err != nil {
		t.Errorf("Clear() on empty slot error = %v", err)
	}
}
