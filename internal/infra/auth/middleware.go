package auth

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// SessionReader — то, что гарду нужно знать о сессии.
// resolved == false означает, что хранилище токена еще не прочитано.
// IsAdmin пересчитывается сессией из текущего токена.
type SessionReader interface {
	AccessToken() (token string, resolved bool)
	IsAdmin() bool
}

// NewMiddleware пропускает запрос только при установленной сессии.
// Пока сессия инициализируется — 503 с Retry-After, решение не принимаем.
func NewMiddleware(s SessionReader, loginPath string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, resolved := s.AccessToken()
			if !resolved {
				w.Header().Set("Retry-After", "1")
				writeGuardError(w, http.StatusServiceUnavailable, "Session is initializing", "")
				return
			}
			if token == "" {
				logger.Debug("unauthenticated request", zap.String("path", r.URL.Path))
				writeGuardError(w, http.StatusUnauthorized, "Unauthorized", loginPath)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin закрывает мутации для не-админов. Роль спрашиваем у сессии на каждый запрос.
func RequireAdmin(s SessionReader, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !s.IsAdmin() {
				logger.Info("admin action rejected",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path))
				writeGuardError(w, http.StatusForbidden, "Admin only", "")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeGuardError(w http.ResponseWriter, status int, message, redirect string) {
	body := map[string]any{
		"error": map[string]any{"message": message},
	}
	if redirect != "" {
		body["redirect"] = redirect
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
