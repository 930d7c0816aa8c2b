package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"time"

	"github.com/viorex/viorex-exchange/internal/helpers"
	"github.com/viorex/viorex-exchange/internal/logger"
	"github.com/viorex/viorex-exchange/internal/models"
	"github.com/viorex/viorex-exchange/internal/notifier"
	"github.com/viorex/viorex-exchange/internal/services"
	"github.com/viorex/viorex-exchange/internal/storage"
	"go.uber.org/zap"
)

// Тексты уведомлений формы входа и регистрации
var validationMessages = map[error]string{
	services.ErrInvalidEmail:     "Please enter a valid email address",
	services.ErrPasswordRequired: "Please enter your password",
	services.ErrPasswordTooShort: "Password must be at least 6 characters",
	services.ErrPasswordMismatch: "Passwords do not match",
}

// RegisterUserHandler — регистрация нового пользователя
func RegisterUserHandler(i services.IdentityService, n *notifier.Hub) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("Failed to decode request", err)
			http.Error(w, "Invalid request format", http.StatusBadRequest)
			return
		}

		user, err := i.Register(r.Context(), req)
		if err != nil {
			if message, ok := validationMessages[err]; ok {
				logger.Warn("Registration rejected", req.Email, err)
				n.Push(message, models.SeverityError)
				http.Error(w, message, http.StatusBadRequest)
			} else {
				logger.Error("Error register user", err)
				http.Error(w, "Server error", http.StatusInternalServerError)
			}
			return
		}

		token, err := i.GenerateJWT(user.Email)
		if err != nil {
			logger.Error("Failed to generate token", err)
			http.Error(w, "Server error", http.StatusInternalServerError)
			return
		}

		message := "Registration successful!"
		if len(user.ReferralCode) > 0 {
			message += " Referral code applied."
		}
		message += " Redirecting..."
		n.Push(message, models.SeveritySuccess)

		logger.Info("User registered and authenticated", user.Email)
		w.Header().Set("Authorization", "Bearer "+token)
		writeProfile(w, user, "")
	})
}

// LoginUserHandler — вход пользователя
func LoginUserHandler(i services.IdentityService, n *notifier.Hub) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("Failed to decode request", err)
			http.Error(w, "Invalid request format", http.StatusBadRequest)
			return
		}

		user, created, err := i.Login(r.Context(), req)
		if err != nil {
			if message, ok := validationMessages[err]; ok {
				logger.Warn("Login rejected", req.Email, err)
				n.Push(message, models.SeverityError)
				http.Error(w, message, http.StatusBadRequest)
			} else {
				logger.Error("Error authenticate user", err)
				http.Error(w, "Server error", http.StatusInternalServerError)
			}
			return
		}

		token, err := i.GenerateJWT(user.Email)
		if err != nil {
			logger.Error("Failed to generate token", err)
			http.Error(w, "Server error", http.StatusInternalServerError)
			return
		}

		if created {
			n.Push("New account created! Redirecting...", models.SeveritySuccess)
		} else {
			n.Push("Login successful! Redirecting...", models.SeveritySuccess)
		}

		logger.Info("User authenticated", user.Email)
		w.Header().Set("Authorization", "Bearer "+token)
		writeProfile(w, user, "")
	})
}

// LogoutHandler — выход пользователя, очищает слот аккаунта
func LogoutHandler(i services.IdentityService, n *notifier.Hub) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := i.Logout(r.Context()); err != nil {
			logger.Error("Failed to logout", zap.Error(err))
			http.Error(w, "Server error", http.StatusInternalServerError)
			return
		}
		n.Push("Logged out. Redirecting...", models.SeverityInfo)
		w.WriteHeader(http.StatusOK)
	})
}

// GetProfileHandler — профиль пользователя с симулированным P&L за день
func GetProfileHandler(i services.IdentityService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := currentUser(r, i)
		if err != nil {
			if errors.Is(err, storage.ErrUserNotFound) {
				http.Error(w, "Not logged in", http.StatusUnauthorized)
				return
			}
			logger.Error("Failed to get profile:", zap.Error(err))
			http.Error(w, "Server Error", http.StatusInternalServerError)
			return
		}
		writeProfile(w, user, simulatedTodayPL())
	})
}

// GetAssetsHandler — список активов пользователя
func GetAssetsHandler(i services.IdentityService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := currentUser(r, i)
		if err != nil {
			if errors.Is(err, storage.ErrUserNotFound) {
				http.Error(w, "Not logged in", http.StatusUnauthorized)
				return
			}
			logger.Error("Failed to get assets:", zap.Error(err))
			http.Error(w, "Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(toAssetResponses(user)); err != nil {
			logger.Error("Failed to encode JSON response:", zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	})
}

// Запись слота, принадлежащая владельцу токена. Слот один, поздний
// вход затирает его: чужая запись равносильна разлогину.
func currentUser(r *http.Request, i services.IdentityService) (*models.UserData, error) {
	email, err := helpers.GetUserEmail(r.Context())
	if err != nil {
		return nil, storage.ErrUserNotFound
	}
	user, err := i.GetProfile(r.Context())
	if err != nil {
		return nil, err
	}
	if user.Email != email {
		logger.Warn("Account slot overwritten by another login:", email)
		return nil, storage.ErrUserNotFound
	}
	return user, nil
}

func writeProfile(w http.ResponseWriter, user *models.UserData, todayPL string) {
	response := models.ProfileResponse{
		Email:        user.Email,
		Balance:      user.Balance.StringFixed(2),
		Joined:       user.Joined.Format(time.RFC3339),
		LastLogin:    user.LastLogin.Format(time.RFC3339),
		ReferralCode: user.ReferralCode,
		Assets:       toAssetResponses(user),
		TodayPL:      todayPL,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error("Failed to encode JSON response:", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func toAssetResponses(user *models.UserData) map[string]models.AssetResponse {
	assets := make(map[string]models.AssetResponse, len(user.Assets))
	for symbol, asset := range user.Assets {
		assets[symbol] = models.AssetResponse{
			Amount: asset.Amount.String(),
			Value:  asset.Value.String(),
		}
	}
	return assets
}

// Декоративный P&L за день, как на главной странице: случайное
// значение из [-25, +25]
func simulatedTodayPL() string {
	value := rand.Float64()*50 - 25
	sign := "+"
	if value < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s$%.2f", sign, math.Abs(value))
}
