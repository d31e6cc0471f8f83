package domain

import "time"

type Dashboard struct {
	Stats          DashboardStats `json:"stats"`
	LatestProducts []Product      `json:"latestProducts"` // 5 последних по createdAt
	RecentStock    []StockRow     `json:"recentStock"`    // 5 последних по updatedAt
	LastUpdated    time.Time      `json:"lastUpdated"`
}

type DashboardStats struct {
	TotalProducts int       `json:"totalProducts"`
	TotalStores   int       `json:"totalStores"`
	StockRows     int       `json:"stockRows"`
	LowStock      int       `json:"lowStock"`             // quantity < 20
	TopStocked    *StockRow `json:"topStocked,omitempty"` // nil, если остатков нет
}

// StockRow — строка остатков с подписями вместо внешних ключей.
type StockRow struct {
	StockItem
	ProductLabel string `json:"productLabel"`
	StoreLabel   string `json:"storeLabel"`
	QuantityText string `json:"quantityText"`
	UpdatedText  string `json:"updatedText"`
}

// Option — пункт выпадающего списка.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type ProductsView struct {
	Items      []ProductRow `json:"items"`
	Page       int          `json:"page"`
	PageSize   int          `json:"pageSize"`
	TotalCount *int         `json:"totalCount,omitempty"`
	TotalPages *int         `json:"totalPages,omitempty"` // nil, если API не прислал total
	CanPrev    bool         `json:"canPrev"`
	CanNext    bool         `json:"canNext"`
}

type ProductRow struct {
	Product
	PriceText   string `json:"priceText"`
	CreatedText string `json:"createdText"`
}

type StockView struct {
	Items          []StockRow `json:"items"`
	ProductOptions []Option   `json:"productOptions"`
	StoreOptions   []Option   `json:"storeOptions"`
	Sort           string     `json:"sort"`
}
