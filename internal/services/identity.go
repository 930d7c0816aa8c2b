package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/viorex/viorex-exchange/internal/config"
	"github.com/viorex/viorex-exchange/internal/logger"
	"github.com/viorex/viorex-exchange/internal/models"
	"github.com/viorex/viorex-exchange/internal/storage"
	"github.com/viorex/viorex-exchange/internal/validators"
)

var (
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrPasswordRequired = errors.New("password is required")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrPasswordMismatch = errors.New("passwords do not match")
)

const (
	TokenSecterAlgo     = "HS256"
	TokenExpirationTime = 24 * time.Hour

	MinPasswordLength = 6
)

type IdentityService interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.UserData, bool, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.UserData, error)
	Logout(ctx context.Context) error
	GetProfile(ctx context.Context) (*models.UserData, error)
	GenerateJWT(email string) (string, error)
	GetTokenAuth() *jwtauth.JWTAuth
}

type Identity struct {
	JWTAuth *jwtauth.JWTAuth
	Storage storage.AccountStorage

	// подменяется в тестах
	Now func() time.Time
}

// Создание сервиса
func NewIdentity(cfg config.Config, storage storage.AccountStorage) IdentityService {
	tokenAuth := jwtauth.New(TokenSecterAlgo, []byte(cfg.Server.JWTSecret), nil)
	return &Identity{JWTAuth: tokenAuth, Storage: storage, Now: time.Now}
}

// Login - вход пользователя. Демо-политика: пароль не сверяется, при
// совпадении email вход успешен, незнакомый email молча создаёт новую
// запись поверх слота. Возвращает признак created.
func (i *Identity) Login(ctx context.Context, req models.LoginRequest) (*models.UserData, bool, error) {
	logger.Info("Login user:", req.Email)

	if !validators.CheckEmail(req.Email) {
		return nil, false, ErrInvalidEmail
	}
	if len(req.Password) < 1 {
		return nil, false, ErrPasswordRequired
	}

	user, err := i.Storage.Load(ctx)
	if err != nil && !errors.Is(err, storage.ErrUserNotFound) {
		logger.Error("Failed to load account", err)
		return nil, false, err
	}

	if user != nil && user.Email == req.Email {
		user.LastLogin = i.Now()
		if err := i.Storage.Save(ctx, user); err != nil {
			logger.Error("Failed to update last login", err)
			return nil, false, err
		}
		return user, false, nil
	}

	// демо-режим: неизвестный email создаёт новый аккаунт поверх слота
	logger.Warn("Unknown email, creating demo account:", req.Email)
	user = models.NewDemoUser(req.Email, "", i.Now())
	if err := i.Storage.Save(ctx, user); err != nil {
		logger.Error("Failed to create demo account", err)
		return nil, false, err
	}
	return user, true, nil
}

// Register - регистрация пользователя. Всегда перезаписывает слот новой
// записью с демо-балансом, проверки занятости email нет.
func (i *Identity) Register(ctx context.Context, req models.RegisterRequest) (*models.UserData, error) {
	logger.Info("Register user:", req.Email)

	if !validators.CheckEmail(req.Email) {
		return nil, ErrInvalidEmail
	}
	if len(req.Password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if req.Password != req.Confirm {
		return nil, ErrPasswordMismatch
	}

	user := models.NewDemoUser(req.Email, req.ReferralCode, i.Now())
	if err := i.Storage.Save(ctx, user); err != nil {
		logger.Error("Error registering user", req.Email, err)
		return nil, err
	}
	return user, nil
}

// Logout - выход пользователя, очищает слот аккаунта
func (i *Identity) Logout(ctx context.Context) error {
	return i.Storage.Clear(ctx)
}

// GetProfile возвращает текущую запись пользователя
func (i *Identity) GetProfile(ctx context.Context) (*models.UserData, error) {
	user, err := i.Storage.Load(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	return user, nil
}

// Создание строки JWT токена
func (i *Identity) GenerateJWT(email string) (string, error) {
	expirationTime := i.Now().Add(TokenExpirationTime)

	_, tokenString, err := i.JWTAuth.Encode(map[string]interface{}{
		"email": email,
		"exp":   expirationTime,
	})
	return tokenString, err
}

// Возвращаем указатель на JWTAuth (chi)
func (i *Identity) GetTokenAuth() *jwtauth.JWTAuth {
	return i.JWTAuth
}
