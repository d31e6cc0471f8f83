package views

import (
	"sort"

	"github.com/xela07ax/inventory-console/internal/domain"
)

// StockProductSample — сколько товаров грузит экран остатков для подписей и выбора.
const StockProductSample = 500

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ParseSort: все, что не "desc", сортируется по возрастанию.
func ParseSort(s string) SortDirection {
	if SortDirection(s) == SortDesc {
		return SortDesc
	}
	return SortAsc
}

type StockQuery struct {
	ProductID string
	StoreID   string
	Sort      SortDirection
}

// FilterStock оставляет строки с нужным товаром и/или магазином. Сравниваются строковые формы ID.
func FilterStock(items []domain.StockItem, productID, storeID string) []domain.StockItem {
	out := make([]domain.StockItem, 0, len(items))
	for _, item := range items {
		if productID != "" && item.ProductID.String() != productID {
			continue
		}
		if storeID != "" && item.StoreID.String() != storeID {
			continue
		}
		out = append(out, item)
	}
	return out
}

// SortStock — устойчивая сортировка по количеству; отсутствующее количество — 0.
func SortStock(items []domain.StockItem, dir SortDirection) []domain.StockItem {
	out := append([]domain.StockItem(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].QuantityOrZero(), out[j].QuantityOrZero()
		if dir == SortDesc {
			return a > b
		}
		return a < b
	})
	return out
}

// Stock собирает экран остатков.
func Stock(items []domain.StockItem, products []domain.Product, stores []domain.Store, q StockQuery) domain.StockView {
	dir := q.Sort
	if dir == "" {
		dir = SortAsc
	}
	sorted := SortStock(FilterStock(items, q.ProductID, q.StoreID), dir)
	return domain.StockView{
		Items:          StockRows(sorted, products, stores),
		ProductOptions: ProductOptions(products),
		StoreOptions:   StoreOptions(stores),
		Sort:           string(dir),
	}
}
