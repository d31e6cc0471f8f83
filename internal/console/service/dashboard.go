package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xela07ax/inventory-console/internal/console/views"
	"github.com/xela07ax/inventory-console/internal/domain"
)

type DashboardService struct {
	api    InventoryAPI
	logger *zap.Logger
	now    func() time.Time
}

func NewDashboardService(api InventoryAPI, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		api:    api,
		logger: logger.Named("dashboard-service"),
		now:    time.Now,
	}
}

// Load — параллельная загрузка товаров (1, 100), магазинов и остатков.
// Любой сбой проваливает весь дашборд.
func (s *DashboardService) Load(ctx context.Context) (domain.Dashboard, error) {
	var (
		sample domain.ProductPage
		stores []domain.Store
		stock  []domain.StockItem
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		sample, err = s.api.ProductsPage(gctx, 1, views.DashboardProductSample)
		return err
	})
	g.Go(func() (err error) {
		stores, err = s.api.Stores(gctx)
		return err
	})
	g.Go(func() (err error) {
		stock, err = s.api.Stock(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Warn("dashboard refresh failed", zap.Error(err))
		return domain.Dashboard{}, fmt.Errorf("failed to load overview: %w", err)
	}

	return views.Dashboard(sample, stores, stock, s.now().UTC()), nil
}
