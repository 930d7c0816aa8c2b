package services

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/viorex/viorex-exchange/internal/config"
	"github.com/viorex/viorex-exchange/internal/logger"
	"github.com/viorex/viorex-exchange/internal/market"
	"github.com/viorex/viorex-exchange/internal/models"
	"github.com/viorex/viorex-exchange/internal/storage"
)

var (
	ErrInvalidAction     = errors.New("unknown trade action")
	ErrInvalidOrderType  = errors.New("unknown order type")
	ErrUnknownPair       = errors.New("unknown trading pair")
	ErrInvalidAmount     = errors.New("amount must be greater than 0")
	ErrInvalidPrice      = errors.New("price must be greater than 0")
	ErrInsufficientFunds = errors.New("insufficient funds for trade")
)

type TradeService interface {
	Execute(ctx context.Context, req models.TradeRequest) (*models.TradeResult, error)
}

type Trade struct {
	Storage storage.AccountStorage
	Market  *market.Table
	Config  config.TradeConfig

	// подменяется в тестах, чтобы не ждать искусственную задержку
	Sleep func(ctx context.Context, d time.Duration) error
}

// Создание сервиса
func NewTrade(cfg config.Config, storage storage.AccountStorage, table *market.Table) TradeService {
	return &Trade{
		Storage: storage,
		Market:  table,
		Config:  cfg.Trade,
		Sleep:   sleepContext,
	}
}

// Execute - исполнение симулированной сделки. Ордера никуда не
// записываются: после искусственной задержки "сети" меняется только
// баланс пользователя, если запись в слоте есть.
func (s *Trade) Execute(ctx context.Context, req models.TradeRequest) (*models.TradeResult, error) {
	action := strings.ToUpper(strings.TrimSpace(req.Action))
	if action != models.ActionBuy && action != models.ActionSell {
		return nil, ErrInvalidAction
	}

	orderType := strings.ToLower(strings.TrimSpace(req.OrderType))
	if orderType == "" {
		orderType = models.OrderTypeLimit
	}
	if orderType != models.OrderTypeMarket && orderType != models.OrderTypeLimit {
		return nil, ErrInvalidOrderType
	}

	pair, ok := s.Market.Get(req.Pair)
	if !ok {
		return nil, ErrUnknownPair
	}

	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	// рыночный ордер берёт текущую цену из таблицы,
	// лимитный требует цену из запроса
	price := req.Price
	if orderType == models.OrderTypeMarket {
		price = pair.PriceValue
	} else if !price.IsPositive() {
		return nil, ErrInvalidPrice
	}

	total := price.Mul(req.Amount)

	// имитация сетевой задержки
	if delay := s.executionDelay(); delay > 0 {
		if err := s.Sleep(ctx, delay); err != nil {
			return nil, err
		}
	}

	user, err := s.Storage.Load(ctx)
	if err != nil && !errors.Is(err, storage.ErrUserNotFound) {
		logger.Error("Failed to load account", err)
		return nil, err
	}

	if user != nil {
		newBalance := user.Balance
		if action == models.ActionBuy {
			newBalance = newBalance.Sub(total)
			if !s.Config.AllowNegativeBalance && newBalance.IsNegative() {
				return nil, ErrInsufficientFunds
			}
		} else {
			newBalance = newBalance.Add(total)
		}
		user.Balance = newBalance
		if err := s.Storage.Save(ctx, user); err != nil {
			logger.Error("Failed to save balance after trade", err)
			return nil, err
		}
	}

	result := &models.TradeResult{
		ID:         uuid.New().String(),
		Action:     action,
		Pair:       pair.Symbol,
		OrderType:  orderType,
		Price:      price,
		Amount:     req.Amount,
		Total:      total,
		ExecutedAt: time.Now(),
	}
	logger.Info("Trade executed", "action", action, "pair", pair.Symbol, "total", total.String())
	return result, nil
}

func (s *Trade) executionDelay() time.Duration {
	min := s.Config.DelayMin
	max := s.Config.DelayMax
	if max <= min {
		return min
	}
	return min + time.Duration(rand.Int63n(int64(max-min)))
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
