package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/viorex/viorex-exchange/internal/logger"
	"github.com/viorex/viorex-exchange/internal/notifier"
	"go.uber.org/zap"
)

// GetNotificationsHandler — живые уведомления пользователя
func GetNotificationsHandler(n *notifier.Hub) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(n.List()); err != nil {
			logger.Error("Failed to encode JSON response:", zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	})
}

// DismissNotificationHandler — закрытие уведомления по идентификатору
func DismissNotificationHandler(n *notifier.Hub) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if !n.Dismiss(id) {
			http.Error(w, "Notification not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
}
