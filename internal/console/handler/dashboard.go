package handler

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/xela07ax/inventory-console/internal/domain"
)

// DashboardService Описываем, что нам нужно от сервиса
type DashboardService interface {
	Load(ctx context.Context) (domain.Dashboard, error)
}

type DashboardHandler struct {
	responder
	service DashboardService
}

func NewDashboardHandler(s DashboardService, loginPath string, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		responder: responder{logger: logger.Named("dashboard-handler"), loginPath: loginPath},
		service:   s,
	}
}

// Get GET /api/dashboard
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.Load(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.json(w, http.StatusOK, dashboard)
}
