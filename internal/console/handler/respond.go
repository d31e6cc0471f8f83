package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/xela07ax/inventory-console/internal/console/service"
	"github.com/xela07ax/inventory-console/internal/domain"
	"github.com/xela07ax/inventory-console/internal/gateway"
)

// errorBody — формат ошибок консоли, совпадает с форматом ошибок API инвентаря.
type errorBody struct {
	Error    errorPayload `json:"error"`
	Redirect string       `json:"redirect,omitempty"`
}

type errorPayload struct {
	Message   string              `json:"message"`
	Details   map[string][]string `json:"details,omitempty"`
	Fields    []string            `json:"fields,omitempty"`
	RequestID string              `json:"requestId,omitempty"`
}

// responder — общая часть всех обработчиков: JSON-ответы и перевод ошибок в HTTP.
type responder struct {
	logger    *zap.Logger
	loginPath string
}

func (rs responder) json(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		rs.logger.Warn("failed to encode response", zap.Error(err))
	}
}

// fail: APIError — его статус, ошибка формы — 400, нет base URL — 500, прочее — 502.
func (rs responder) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, context.Canceled) {
		// клиент ушел, отвечать некому
		return
	}

	var (
		apiErr  *gateway.APIError
		formErr *service.ValidationError
	)
	switch {
	case errors.As(err, &apiErr):
		body := errorBody{Error: errorPayload{
			Message:   apiErr.Message,
			Details:   apiErr.Details,
			RequestID: apiErr.RequestID,
		}}
		if apiErr.Status == http.StatusUnauthorized {
			body.Redirect = rs.loginPath
		}
		rs.json(w, apiErr.Status, body)
	case errors.As(err, &formErr):
		rs.json(w, http.StatusBadRequest, errorBody{Error: errorPayload{
			Message: formErr.Message,
			Fields:  formErr.Fields,
		}})
	case errors.Is(err, gateway.ErrMissingBaseURL):
		rs.logger.Error("inventory api is not configured", zap.String("path", r.URL.Path))
		rs.json(w, http.StatusInternalServerError, errorBody{Error: errorPayload{Message: err.Error()}})
	default:
		rs.logger.Warn("upstream call failed", zap.String("path", r.URL.Path), zap.Error(err))
		rs.json(w, http.StatusBadGateway, errorBody{Error: errorPayload{Message: err.Error()}})
	}
}

func (rs responder) badRequest(w http.ResponseWriter, message string) {
	rs.json(w, http.StatusBadRequest, errorBody{Error: errorPayload{Message: message}})
}

// decode читает JSON-тело; при ошибке сам отвечает 400.
func (rs responder) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		rs.badRequest(w, "Invalid request body")
		return false
	}
	return true
}

func pathID(r *http.Request) domain.ID {
	return domain.ParseID(chi.URLParam(r, "id"))
}

func queryInt(r *http.Request, key string, fallback int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return fallback
	}
	return n
}
