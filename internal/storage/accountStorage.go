package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/viorex/viorex-exchange/internal/logger"
	"github.com/viorex/viorex-exchange/internal/models"
)

const (
	// Слот аккаунта - ровно одна строка с id=1
	UpsertAccount = `INSERT INTO ACCOUNT (id, email, balance, joined, last_login, referral_code, assets)
						VALUES (1, $1, $2, $3, $4, $5, $6)
						ON CONFLICT (id) DO UPDATE SET
							email = EXCLUDED.email,
							balance = EXCLUDED.balance,
							joined = EXCLUDED.joined,
							last_login = EXCLUDED.last_login,
							referral_code = EXCLUDED.referral_code,
							assets = EXCLUDED.assets;`
	GetAccount   = `SELECT email, balance, joined, last_login, referral_code, assets FROM ACCOUNT WHERE id = 1;`
	ClearAccount = `DELETE FROM ACCOUNT WHERE id = 1;`
)

// PostgresStorage - бэкенд слота аккаунта поверх БД
type PostgresStorage struct {
	DB *Database
}

// Создание хранилища
func NewPostgresStorage(db *Database) *PostgresStorage {
	return &PostgresStorage{DB: db}
}

func (s *PostgresStorage) Load(ctx context.Context) (*models.UserData, error) {
	var (
		email        string
		balance      decimal.Decimal
		joined       time.Time
		lastLogin    time.Time
		referralCode string
		assetsRaw    []byte
	)
	err := s.DB.Pool.QueryRow(ctx, GetAccount).Scan(&email, &balance, &joined, &lastLogin, &referralCode, &assetsRaw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	assets := make(map[string]models.AssetData)
	if err := json.Unmarshal(assetsRaw, &assets); err != nil {
		// испорченный слот считаем пустым
		logger.Warn("Corrupt account slot, treating as logged out:", err.Error())
		return nil, ErrUserNotFound
	}

	return &models.UserData{
		Email:        email,
		Balance:      balance,
		Joined:       joined,
		LastLogin:    lastLogin,
		ReferralCode: referralCode,
		Assets:       assets,
	}, nil
}

func (s *PostgresStorage) Save(ctx context.Context, user *models.UserData) error {
	assetsRaw, err := json.Marshal(user.Assets)
	if err != nil {
		return fmt.Errorf("failed to marshal assets: %w", err)
	}

	_, err = s.DB.Pool.Exec(ctx, UpsertAccount,
		user.Email,
		user.Balance,
		user.Joined,
		user.LastLogin,
		user.ReferralCode,
		assetsRaw,
	)
	if err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}
	return nil
}

func (s *PostgresStorage) Clear(ctx context.Context) error {
	if _, err := s.DB.Pool.Exec(ctx, ClearAccount); err != nil {
		return fmt.Errorf("failed to clear account: %w", err)
	}
	return nil
}

func (s *PostgresStorage) Close() error {
	return s.DB.Close()
}
