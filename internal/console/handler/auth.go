package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/xela07ax/inventory-console/internal/console/service"
	"github.com/xela07ax/inventory-console/internal/domain"
	"github.com/xela07ax/inventory-console/internal/inventory"
	"github.com/xela07ax/inventory-console/internal/session"
)

type AuthHandler struct {
	responder
	service *service.AuthService
}

// NewAuthHandler: ответы логина не несут redirect, оператор и так на экране входа.
func NewAuthHandler(s *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		responder: responder{logger: logger.Named("auth-handler")},
		service:   s,
	}
}

// Login POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if !h.decode(w, r, &req) {
		return
	}

	view, err := h.service.Login(r.Context(), req)
	switch {
	case err == nil:
		h.json(w, http.StatusOK, view)
	case errors.Is(err, inventory.ErrInvalidLoginResponse), errors.Is(err, session.ErrEmptyToken):
		h.json(w, http.StatusBadGateway, errorBody{Error: errorPayload{Message: inventory.ErrInvalidLoginResponse.Error()}})
	default:
		// неверные учетные данные приходят от API как 401
		h.fail(w, r, err)
	}
}

// Logout POST /auth/logout. Сессия закрывается даже при сбое хранилища.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Logout(r.Context())
	if err != nil {
		h.logger.Warn("logout left a stale token in the store", zap.Error(err))
	}
	h.json(w, http.StatusOK, view)
}

// Session GET /auth/session
func (h *AuthHandler) Session(w http.ResponseWriter, _ *http.Request) {
	h.json(w, http.StatusOK, h.service.Session())
}
