package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Стартовые значения демо-аккаунта
var (
	DemoBalance = decimal.RequireFromString("1250.75")

	DemoAssets = map[string]AssetData{
		"VRT":  {Amount: decimal.NewFromInt(1000), Value: decimal.NewFromInt(850)},
		"VRDT": {Amount: decimal.NewFromInt(500), Value: decimal.NewFromInt(500)},
		"USDT": {Amount: decimal.NewFromInt(0), Value: decimal.NewFromInt(0)},
	}
)

// LoginRequest - модель для входа пользователя, приходит извне
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest - модель для регистрации пользователя, приходит извне
type RegisterRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	Confirm      string `json:"confirm"`
	ReferralCode string `json:"referral_code,omitempty"`
}

// AssetData - остаток и оценочная стоимость актива пользователя
type AssetData struct {
	Amount decimal.Decimal `json:"amount"`
	Value  decimal.Decimal `json:"value"`
}

// UserData - единственная запись пользователя в хранилище.
// Наличие записи означает "пользователь в системе".
type UserData struct {
	Email        string               `json:"email"`
	Balance      decimal.Decimal      `json:"balance"`
	Joined       time.Time            `json:"joined"`
	LastLogin    time.Time            `json:"lastLogin"`
	ReferralCode string               `json:"referralCode,omitempty"`
	Assets       map[string]AssetData `json:"assets"`
}

// NewDemoUser - создаёт запись пользователя с демо-балансом и стартовыми активами.
// Пароль не сохраняется: демо-режим не хранит учётные данные.
func NewDemoUser(email string, referralCode string, now time.Time) *UserData {
	assets := make(map[string]AssetData, len(DemoAssets))
	for symbol, asset := range DemoAssets {
		assets[symbol] = asset
	}
	return &UserData{
		Email:        email,
		Balance:      DemoBalance,
		Joined:       now,
		LastLogin:    now,
		ReferralCode: referralCode,
		Assets:       assets,
	}
}

// ProfileResponse - модель профиля пользователя для выдачи
type ProfileResponse struct {
	Email        string                   `json:"email"`
	Balance      string                   `json:"balance"`
	Joined       string                   `json:"joined"`
	LastLogin    string                   `json:"last_login"`
	ReferralCode string                   `json:"referral_code,omitempty"`
	Assets       map[string]AssetResponse `json:"assets"`
	TodayPL      string                   `json:"today_pl,omitempty"`
}

// AssetResponse - структура ответа по активу пользователя
type AssetResponse struct {
	Amount string `json:"amount"`
	Value  string `json:"value"`
}
