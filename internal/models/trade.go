package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Направления сделки
const (
	ActionBuy  = "BUY"
	ActionSell = "SELL"
)

// Типы ордеров
const (
	OrderTypeMarket = "market"
	OrderTypeLimit  = "limit"
)

// TradeRequest - модель запроса на совершение сделки, приходит извне.
// Для рыночного ордера цена игнорируется и берётся из таблицы рынка.
type TradeRequest struct {
	Action    string          `json:"action"`
	Pair      string          `json:"pair"`
	OrderType string          `json:"order_type"`
	Price     decimal.Decimal `json:"price"`
	Amount    decimal.Decimal `json:"amount"`
}

// TradeResult - результат исполнения сделки.
// Сами ордера не сохраняются, меняется только баланс пользователя.
type TradeResult struct {
	ID         string          `json:"id"`
	Action     string          `json:"action"`
	Pair       string          `json:"pair"`
	OrderType  string          `json:"order_type"`
	Price      decimal.Decimal `json:"price"`
	Amount     decimal.Decimal `json:"amount"`
	Total      decimal.Decimal `json:"total"`
	ExecutedAt time.Time       `json:"executed_at"`
}
