package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/viorex/viorex-exchange/internal/logger"
	"github.com/viorex/viorex-exchange/internal/models"
	"github.com/viorex/viorex-exchange/internal/notifier"
	"github.com/viorex/viorex-exchange/internal/services"
	"go.uber.org/zap"
)

// Тексты уведомлений формы торговли
var tradeMessages = map[error]string{
	services.ErrInvalidAction:    "Unknown trade action",
	services.ErrInvalidOrderType: "Unknown order type",
	services.ErrUnknownPair:      "Unknown trading pair",
	services.ErrInvalidAmount:    "Please enter a valid amount",
	services.ErrInvalidPrice:     "Please enter a valid price",
}

// ExecuteTradeHandler — исполнение симулированной сделки
func ExecuteTradeHandler(t services.TradeService, n *notifier.Hub) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.TradeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("Failed to decode request", err)
			http.Error(w, "Invalid request format", http.StatusBadRequest)
			return
		}

		result, err := t.Execute(r.Context(), req)
		if err != nil {
			if message, ok := tradeMessages[err]; ok {
				logger.Warn("Trade rejected", req.Pair, err)
				n.Push(message, models.SeverityError)
				http.Error(w, message, http.StatusBadRequest)
				return
			}
			if errors.Is(err, services.ErrInsufficientFunds) {
				n.Push("Insufficient funds", models.SeverityError)
				http.Error(w, "Insufficient funds", http.StatusPaymentRequired)
				return
			}
			logger.Error("Failed to execute trade:", zap.Error(err))
			http.Error(w, "Server error", http.StatusInternalServerError)
			return
		}

		n.Push(tradeSuccessMessage(result), models.SeveritySuccess)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logger.Error("Failed to encode JSON response:", zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	})
}

// Текст подтверждения сделки, как в торговом терминале:
// "LIMIT BUY Order: 2 VRT at 0.85 USDT - Total: 1.70"
func tradeSuccessMessage(result *models.TradeResult) string {
	base, quote := result.Pair, ""
	if idx := strings.Index(result.Pair, "/"); idx > 0 {
		base, quote = result.Pair[:idx], result.Pair[idx+1:]
	}
	return fmt.Sprintf("%s %s Order: %s %s at %s %s - Total: %s",
		strings.ToUpper(result.OrderType), result.Action,
		result.Amount.String(), base,
		result.Price.StringFixed(4), quote,
		result.Total.StringFixed(2))
}
