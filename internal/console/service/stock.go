package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xela07ax/inventory-console/internal/activity"
	"github.com/xela07ax/inventory-console/internal/console/views"
	"github.com/xela07ax/inventory-console/internal/domain"
)

type StockService struct {
	api       InventoryAPI
	validator *Validator
	journal   activity.Recorder
	logger    *zap.Logger

	mu       sync.Mutex
	stock    []domain.StockItem
	products []domain.Product
	stores   []domain.Store
	query    views.StockQuery
}

func NewStockService(api InventoryAPI, v *Validator, journal activity.Recorder, logger *zap.Logger) *StockService {
	return &StockService{
		api:       api,
		validator: v,
		journal:   journal,
		logger:    logger.Named("stock-service"),
	}
}

// View загружает остатки, магазины и выборку товаров параллельно.
// Сбой любого запроса проваливает всю загрузку, удерживаемые данные не трогаются.
func (s *StockService) View(ctx context.Context, q views.StockQuery) (domain.StockView, error) {
	var (
		stock    []domain.StockItem
		stores   []domain.Store
		products domain.ProductPage
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stock, err = s.api.Stock(gctx)
		return err
	})
	g.Go(func() (err error) {
		stores, err = s.api.Stores(gctx)
		return err
	})
	g.Go(func() (err error) {
		products, err = s.api.ProductsPage(gctx, 1, views.StockProductSample)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.StockView{}, fmt.Errorf("failed to load stock: %w", err)
	}

	s.mu.Lock()
	s.stock, s.stores, s.products, s.query = stock, stores, products.Items, q
	s.mu.Unlock()

	return views.Stock(stock, products.Items, stores, q), nil
}

// Update выставляет количество и перезагружает только остатки.
func (s *StockService) Update(ctx context.Context, form StockForm) (domain.StockView, error) {
	if err := s.validator.Check(form, MsgStockInvalid); err != nil {
		return domain.StockView{}, err
	}

	if _, err := s.api.UpdateStock(ctx, form.item()); err != nil {
		s.logger.Warn("stock update failed",
			zap.String("product_id", form.ProductID.String()),
			zap.String("store_id", form.StoreID.String()),
			zap.Error(err))
		s.journal.Record(activity.Failure("Failed to update stock", err))
		return domain.StockView{}, err
	}
	s.journal.Record(activity.Success("Stock updated", "#"+form.ProductID.String()+" @ #"+form.StoreID.String()))

	stock, err := s.api.Stock(ctx)
	if err != nil {
		return domain.StockView{}, fmt.Errorf("failed to load stock: %w", err)
	}

	s.mu.Lock()
	s.stock = stock
	view := views.Stock(s.stock, s.products, s.stores, s.query)
	s.mu.Unlock()
	return view, nil
}
