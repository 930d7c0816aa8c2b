package middleware

import (
	"net/http"

	"golang.org/x/time/rate"
)

// RateLimitHandle — middleware-ограничитель входящих запросов.
// rps <= 0 отключает ограничение.
func RateLimitHandle(rps int) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(h http.Handler) http.Handler { return h }
	}

	limiter := rate.NewLimiter(rate.Limit(rps), rps)
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				http.Error(w, "Too many requests", http.StatusTooManyRequests)
				return
			}
			h.ServeHTTP(w, r)
		})
	}
}
