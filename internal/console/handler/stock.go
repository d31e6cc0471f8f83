package handler

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/xela07ax/inventory-console/internal/console/service"
	"github.com/xela07ax/inventory-console/internal/console/views"
	"github.com/xela07ax/inventory-console/internal/domain"
)

type StockService interface {
	View(ctx context.Context, q views.StockQuery) (domain.StockView, error)
	Update(ctx context.Context, form service.StockForm) (domain.StockView, error)
}

type StockHandler struct {
	responder
	service StockService
}

func NewStockHandler(s StockService, loginPath string, logger *zap.Logger) *StockHandler {
	return &StockHandler{
		responder: responder{logger: logger.Named("stock-handler"), loginPath: loginPath},
		service:   s,
	}
}

// List GET /api/stock?productId=&storeId=&sort=asc|desc
func (h *StockHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view, err := h.service.View(r.Context(), views.StockQuery{
		ProductID: q.Get("productId"),
		StoreID:   q.Get("storeId"),
		Sort:      views.ParseSort(q.Get("sort")),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.json(w, http.StatusOK, view)
}

// Update PUT /api/stock
func (h *StockHandler) Update(w http.ResponseWriter, r *http.Request) {
	var form service.StockForm
	if !h.decode(w, r, &form) {
		return
	}
	view, err := h.service.Update(r.Context(), form)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.json(w, http.StatusOK, view)
}
