package domain

// Все поля необязательные: консоль показывает то, что вернул бэкенд,
// и не проверяет схему. Нулевые значения в запросах опускаются.

type Product struct {
	ID        ID       `json:"id,omitzero"`
	SKU       string   `json:"sku,omitempty"`
	Name      string   `json:"name,omitempty"`
	Price     *float64 `json:"price,omitempty"`
	CreatedAt string   `json:"createdAt,omitempty"`
}

type Store struct {
	ID        ID     `json:"id,omitzero"`
	Code      string `json:"code,omitempty"`
	Name      string `json:"name,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

type StockItem struct {
	ID        ID       `json:"id,omitzero"`
	ProductID ID       `json:"productId,omitzero"`
	StoreID   ID       `json:"storeId,omitzero"`
	Quantity  *float64 `json:"quantity,omitempty"`
	UpdatedAt string   `json:"updatedAt,omitempty"`
}

// QuantityOrZero — количество, отсутствующее значение считается нулем.
func (s StockItem) QuantityOrZero() float64 {
	if s.Quantity == nil {
		return 0
	}
	return *s.Quantity
}

// PriceOrZero — цена, отсутствующее значение считается нулем.
func (p Product) PriceOrZero() float64 {
	if p.Price == nil {
		return 0
	}
	return *p.Price
}

// Float возвращает указатель на значение, для заполнения необязательных полей.
func Float(v float64) *float64 {
	return &v
}

// ProductPage — страница товаров и, если API его прислал, общее количество.
type ProductPage struct {
	Items      []Product `json:"items"`
	TotalCount *int      `json:"totalCount,omitempty"`
}
