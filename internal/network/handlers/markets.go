package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/viorex/viorex-exchange/internal/logger"
	"github.com/viorex/viorex-exchange/internal/market"
	"github.com/viorex/viorex-exchange/internal/models"
	"go.uber.org/zap"
)

// GetMarketsHandler — таблица рынка, опционально отфильтрованная по ?q=
func GetMarketsHandler(t *market.Table) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")

		pairs := t.Search(query)
		if pairs == nil {
			pairs = []models.PairData{}
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(pairs); err != nil {
			logger.Error("Failed to encode JSON response:", zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	})
}

// GetMarketPairHandler — одна пара по адресу вида /markets/VRT-USDT
func GetMarketPairHandler(t *market.Table) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		base := chi.URLParam(r, "base")
		quote := chi.URLParam(r, "quote")
		symbol := strings.ToUpper(base + "/" + quote)

		pair, ok := t.Get(symbol)
		if !ok {
			http.Error(w, "Unknown trading pair", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(pair); err != nil {
			logger.Error("Failed to encode JSON response:", zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	})
}
