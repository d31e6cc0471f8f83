package handler

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/xela07ax/inventory-console/internal/console/service"
	"github.com/xela07ax/inventory-console/internal/domain"
)

type StoreService interface {
	List(ctx context.Context) ([]domain.Store, error)
	Save(ctx context.Context, id domain.ID, form service.StoreForm) (domain.Store, error)
	Delete(ctx context.Context, id domain.ID) ([]domain.Store, error)
}

type StoreHandler struct {
	responder
	service StoreService
}

func NewStoreHandler(s StoreService, loginPath string, logger *zap.Logger) *StoreHandler {
	return &StoreHandler{
		responder: responder{logger: logger.Named("store-handler"), loginPath: loginPath},
		service:   s,
	}
}

// List GET /api/stores
func (h *StoreHandler) List(w http.ResponseWriter, r *http.Request) {
	stores, err := h.service.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.json(w, http.StatusOK, stores)
}

// Create POST /api/stores
func (h *StoreHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, domain.ID{}, http.StatusCreated)
}

// Update PUT /api/stores/{id}
func (h *StoreHandler) Update(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, pathID(r), http.StatusOK)
}

func (h *StoreHandler) save(w http.ResponseWriter, r *http.Request, id domain.ID, status int) {
	var form service.StoreForm
	if !h.decode(w, r, &form) {
		return
	}
	store, err := h.service.Save(r.Context(), id, form)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.json(w, status, store)
}

// Delete DELETE /api/stores/{id}
func (h *StoreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	stores, err := h.service.Delete(r.Context(), pathID(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.json(w, http.StatusOK, stores)
}
