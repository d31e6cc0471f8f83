// Package views считает производные представления экранов консоли:
// фильтры, сортировки, пагинацию, подписи внешних ключей и статистику дашборда.
// Все функции чистые и не меняют входные срезы.
package views

import (
	"math"
	"strings"

	"github.com/xela07ax/inventory-console/internal/domain"
)

const ProductsPageSize = 10

// ProductFilter — фильтры экрана товаров в том виде, в каком их ввел оператор.
type ProductFilter struct {
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	MinPrice string `json:"minPrice"`
	MaxPrice string `json:"maxPrice"`
}

// FilterProducts применяет фильтры к загруженной странице.
// Нечисловая граница цены отсекает все строки, отсутствующая цена считается нулем.
func FilterProducts(items []domain.Product, f ProductFilter) []domain.Product {
	sku := strings.ToLower(f.SKU)
	name := strings.ToLower(f.Name)
	minBound, minOK := priceBound(f.MinPrice)
	maxBound, maxOK := priceBound(f.MaxPrice)

	out := make([]domain.Product, 0, len(items))
	for _, p := range items {
		if sku != "" && !strings.Contains(strings.ToLower(p.SKU), sku) {
			continue
		}
		if name != "" && !strings.Contains(strings.ToLower(p.Name), name) {
			continue
		}
		if f.MinPrice != "" && (!minOK || p.PriceOrZero() < minBound) {
			continue
		}
		if f.MaxPrice != "" && (!maxOK || p.PriceOrZero() > maxBound) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func priceBound(s string) (float64, bool) {
	v, ok := domain.NumberText(s).Float()
	if !ok || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Pager считает навигацию по страницам.
// Нулевой или отсутствующий total означает "неизвестно": тогда следующая страница
// есть, если текущая заполнена целиком.
func Pager(page, pageSize, itemsOnPage int, total *int) (totalPages *int, canPrev, canNext bool) {
	canPrev = page > 1
	if total != nil && *total > 0 && pageSize > 0 {
		pages := max(1, int(math.Ceil(float64(*total)/float64(pageSize))))
		return &pages, canPrev, page < pages
	}
	return nil, canPrev, itemsOnPage == pageSize
}

// Products собирает экран товаров. Пагинация считается по загруженной странице,
// фильтры применяются к ней же.
func Products(loaded domain.ProductPage, page int, f ProductFilter) domain.ProductsView {
	totalPages, canPrev, canNext := Pager(page, ProductsPageSize, len(loaded.Items), loaded.TotalCount)

	filtered := FilterProducts(loaded.Items, f)
	rows := make([]domain.ProductRow, 0, len(filtered))
	for _, p := range filtered {
		rows = append(rows, domain.ProductRow{
			Product:     p,
			PriceText:   domain.FormatPrice(p.Price),
			CreatedText: domain.FormatDate(p.CreatedAt),
		})
	}

	return domain.ProductsView{
		Items:      rows,
		Page:       page,
		PageSize:   ProductsPageSize,
		TotalCount: loaded.TotalCount,
		TotalPages: totalPages,
		CanPrev:    canPrev,
		CanNext:    canNext,
	}
}
