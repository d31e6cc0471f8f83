package views

import (
	"sort"
	"time"

	"github.com/xela07ax/inventory-console/internal/domain"
)

const (
	DashboardProductSample = 100
	LowStockThreshold      = 20
	RecentLimit            = 5
)

// Stats считает карточки дашборда. totalCount, если известен, важнее длины выборки.
func Stats(sample domain.ProductPage, stores []domain.Store, stock []domain.StockItem) domain.DashboardStats {
	stats := domain.DashboardStats{
		TotalProducts: len(sample.Items),
		TotalStores:   len(stores),
		StockRows:     len(stock),
	}
	if sample.TotalCount != nil {
		stats.TotalProducts = *sample.TotalCount
	}

	var top *domain.StockItem
	for i := range stock {
		if stock[i].QuantityOrZero() < LowStockThreshold {
			stats.LowStock++
		}
		// строго больше: при равенстве остается первая строка
		if top == nil || stock[i].QuantityOrZero() > top.QuantityOrZero() {
			top = &stock[i]
		}
	}
	if top != nil {
		row := stockRow(*top, sample.Items, stores)
		stats.TopStocked = &row
	}
	return stats
}

// LatestProducts — n последних товаров по createdAt; битая или пустая дата — эпоха.
func LatestProducts(products []domain.Product, n int) []domain.Product {
	out := append([]domain.Product(nil), products...)
	sort.SliceStable(out, func(i, j int) bool {
		return domain.UnixMilliOrZero(out[i].CreatedAt) > domain.UnixMilliOrZero(out[j].CreatedAt)
	})
	return head(out, n)
}

// RecentStock — n последних изменений остатков по updatedAt.
func RecentStock(stock []domain.StockItem, n int) []domain.StockItem {
	out := append([]domain.StockItem(nil), stock...)
	sort.SliceStable(out, func(i, j int) bool {
		return domain.UnixMilliOrZero(out[i].UpdatedAt) > domain.UnixMilliOrZero(out[j].UpdatedAt)
	})
	return head(out, n)
}

// Dashboard собирает дашборд из трех полностью загруженных наборов.
func Dashboard(sample domain.ProductPage, stores []domain.Store, stock []domain.StockItem, now time.Time) domain.Dashboard {
	latest := LatestProducts(sample.Items, RecentLimit)
	if latest == nil {
		latest = []domain.Product{}
	}
	return domain.Dashboard{
		Stats:          Stats(sample, stores, stock),
		LatestProducts: latest,
		RecentStock:    StockRows(RecentStock(stock, RecentLimit), sample.Items, stores),
		LastUpdated:    now,
	}
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
