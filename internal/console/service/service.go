package service

import (
	"context"

	"github.com/xela07ax/inventory-console/internal/domain"
)

// InventoryAPI — вызовы удаленного API, которые нужны экранам консоли.
type InventoryAPI interface {
	ProductsPage(ctx context.Context, page, pageSize int) (domain.ProductPage, error)
	CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error)
	UpdateProduct(ctx context.Context, id domain.ID, p domain.Product) (domain.Product, error)
	DeleteProduct(ctx context.Context, id domain.ID) error

	Stores(ctx context.Context) ([]domain.Store, error)
	CreateStore(ctx context.Context, s domain.Store) (domain.Store, error)
	UpdateStore(ctx context.Context, id domain.ID, s domain.Store) (domain.Store, error)
	DeleteStore(ctx context.Context, id domain.ID) error

	Stock(ctx context.Context) ([]domain.StockItem, error)
	UpdateStock(ctx context.Context, item domain.StockItem) (domain.StockItem, error)
}
