package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/xela07ax/inventory-console/internal/activity"
	"github.com/xela07ax/inventory-console/internal/console/views"
	"github.com/xela07ax/inventory-console/internal/domain"
)

type ProductService struct {
	api       InventoryAPI
	validator *Validator
	journal   activity.Recorder
	logger    *zap.Logger

	// Удерживаемая страница: удаление правит ее на месте, создание и правка перезагружают
	mu     sync.Mutex
	page   int
	held   domain.ProductPage
	filter views.ProductFilter
}

func NewProductService(api InventoryAPI, v *Validator, journal activity.Recorder, logger *zap.Logger) *ProductService {
	return &ProductService{
		api:       api,
		validator: v,
		journal:   journal,
		logger:    logger.Named("product-service"),
		page:      1,
	}
}

// List загружает страницу и применяет фильтры к загруженным строкам.
func (s *ProductService) List(ctx context.Context, page int, filter views.ProductFilter) (domain.ProductsView, error) {
	if page < 1 {
		page = 1
	}
	loaded, err := s.api.ProductsPage(ctx, page, views.ProductsPageSize)
	if err != nil {
		return domain.ProductsView{}, fmt.Errorf("failed to load products: %w", err)
	}

	s.mu.Lock()
	s.page, s.held, s.filter = page, loaded, filter
	s.mu.Unlock()

	return views.Products(loaded, page, filter), nil
}

// Save создает товар (пустой id) или обновляет существующий, затем перезагружает страницу.
func (s *ProductService) Save(ctx context.Context, id domain.ID, form ProductForm) (domain.Product, error) {
	form = form.trimmed()
	if err := s.validator.Check(form, MsgProductInvalid); err != nil {
		return domain.Product{}, err
	}

	var (
		saved domain.Product
		err   error
		title = "Product created"
	)
	if id.IsZero() {
		saved, err = s.api.CreateProduct(ctx, form.product())
	} else {
		title = "Product updated"
		saved, err = s.api.UpdateProduct(ctx, id, form.product())
	}
	if err != nil {
		s.logger.Warn("product save failed", zap.String("sku", form.SKU), zap.Error(err))
		s.journal.Record(activity.Failure("Failed to save product", err))
		return domain.Product{}, err
	}
	s.journal.Record(activity.Success(title, form.SKU))

	s.mu.Lock()
	page, filter := s.page, s.filter
	s.mu.Unlock()
	if _, err := s.List(ctx, page, filter); err != nil {
		// Сохранение уже состоялось; список догрузится при следующем запросе
		s.logger.Warn("reload after save failed", zap.Error(err))
	}
	return saved, nil
}

// Delete удаляет товар и убирает его из удерживаемой страницы без перезагрузки.
// Пустой id — ничего не делает.
func (s *ProductService) Delete(ctx context.Context, id domain.ID) (domain.ProductsView, error) {
	if id.IsZero() {
		return s.Current(), nil
	}
	if err := s.api.DeleteProduct(ctx, id); err != nil {
		s.journal.Record(activity.Failure("Failed to delete product", err))
		return domain.ProductsView{}, err
	}
	s.journal.Record(activity.Success("Product deleted", "#"+id.String()))

	s.mu.Lock()
	s.held.Items = views.RemoveByID(s.held.Items, id, views.ProductID)
	s.mu.Unlock()
	return s.Current(), nil
}

// Current — представление удерживаемой страницы без похода в API.
func (s *ProductService) Current() domain.ProductsView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return views.Products(s.held, s.page, s.filter)
}
