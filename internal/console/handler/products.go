package handler

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/xela07ax/inventory-console/internal/console/service"
	"github.com/xela07ax/inventory-console/internal/console/views"
	"github.com/xela07ax/inventory-console/internal/domain"
)

type ProductService interface {
	List(ctx context.Context, page int, filter views.ProductFilter) (domain.ProductsView, error)
	Save(ctx context.Context, id domain.ID, form service.ProductForm) (domain.Product, error)
	Delete(ctx context.Context, id domain.ID) (domain.ProductsView, error)
}

type ProductHandler struct {
	responder
	service ProductService
}

func NewProductHandler(s ProductService, loginPath string, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		responder: responder{logger: logger.Named("product-handler"), loginPath: loginPath},
		service:   s,
	}
}

// List GET /api/products?page=&sku=&name=&minPrice=&maxPrice=
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := views.ProductFilter{
		SKU:      q.Get("sku"),
		Name:     q.Get("name"),
		MinPrice: q.Get("minPrice"),
		MaxPrice: q.Get("maxPrice"),
	}

	view, err := h.service.List(r.Context(), queryInt(r, "page", 1), filter)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.json(w, http.StatusOK, view)
}

// Create POST /api/products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, domain.ID{}, http.StatusCreated)
}

// Update PUT /api/products/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, pathID(r), http.StatusOK)
}

func (h *ProductHandler) save(w http.ResponseWriter, r *http.Request, id domain.ID, status int) {
	var form service.ProductForm
	if !h.decode(w, r, &form) {
		return
	}
	product, err := h.service.Save(r.Context(), id, form)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.json(w, status, product)
}

// Delete DELETE /api/products/{id}; в ответе страница без удаленной строки.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Delete(r.Context(), pathID(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.json(w, http.StatusOK, view)
}
