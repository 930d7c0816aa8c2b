package helpers

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/viorex/viorex-exchange/internal/logger"
)

// GetUserEmail - извлекает email пользователя из контекста JWT токена
func GetUserEmail(context context.Context) (string, error) {
	_, claims, _ := jwtauth.FromContext(context)
	email, ok := claims["email"].(string)
	if !ok {
		logger.Warn("Undefined email from token")
		return "", fmt.Errorf("undefined email")
	}
	return email, nil
}
