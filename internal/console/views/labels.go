package views

import (
	"strings"

	"github.com/xela07ax/inventory-console/internal/domain"
)

const noValue = "-"

// Пустое имя не отличается от отсутствующего: оба дают "Product".
func productTitle(p domain.Product) string {
	name := p.Name
	if name == "" {
		name = "Product"
	}
	return strings.TrimSpace(name + " - " + p.SKU)
}

func storeTitle(s domain.Store) string {
	if s.Name != "" {
		return s.Name
	}
	return "Store #" + s.ID.String()
}

// ProductLabel — "name - sku" найденного товара, иначе "#<productId>", иначе "-".
func ProductLabel(item domain.StockItem, products []domain.Product) string {
	if item.ProductID.IsZero() {
		return noValue
	}
	for _, p := range products {
		if p.ID.Equal(item.ProductID) {
			return productTitle(p)
		}
	}
	return "#" + item.ProductID.String()
}

// StoreLabel — имя найденного магазина или "Store #<id>", иначе "#<storeId>", иначе "-".
func StoreLabel(item domain.StockItem, stores []domain.Store) string {
	if item.StoreID.IsZero() {
		return noValue
	}
	for _, s := range stores {
		if s.ID.Equal(item.StoreID) {
			return storeTitle(s)
		}
	}
	return "#" + item.StoreID.String()
}

// ProductOptions — пункты выбора товара; записи без ID пропускаются.
func ProductOptions(products []domain.Product) []domain.Option {
	out := make([]domain.Option, 0, len(products))
	for _, p := range products {
		if p.ID.IsZero() {
			continue
		}
		out = append(out, domain.Option{Value: p.ID.String(), Label: productTitle(p)})
	}
	return out
}

// StoreOptions — пункты выбора магазина; записи без ID пропускаются.
func StoreOptions(stores []domain.Store) []domain.Option {
	out := make([]domain.Option, 0, len(stores))
	for _, s := range stores {
		if s.ID.IsZero() {
			continue
		}
		out = append(out, domain.Option{Value: s.ID.String(), Label: storeTitle(s)})
	}
	return out
}

// StockRows подставляет подписи товара и магазина в строки остатков.
func StockRows(items []domain.StockItem, products []domain.Product, stores []domain.Store) []domain.StockRow {
	out := make([]domain.StockRow, 0, len(items))
	for _, item := range items {
		out = append(out, stockRow(item, products, stores))
	}
	return out
}

func stockRow(item domain.StockItem, products []domain.Product, stores []domain.Store) domain.StockRow {
	return domain.StockRow{
		StockItem:    item,
		ProductLabel: ProductLabel(item, products),
		StoreLabel:   StoreLabel(item, stores),
		QuantityText: domain.FormatQuantity(item.Quantity),
		UpdatedText:  domain.FormatDate(item.UpdatedAt),
	}
}
