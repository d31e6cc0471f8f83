package service

import (
	"strings"

	"github.com/xela07ax/inventory-console/internal/domain"
)

const (
	MsgProductInvalid = "SKU, name, and price are required."
	MsgStoreInvalid   = "Code and store name are required."
	MsgStockInvalid   = "Select product, store, and a valid quantity."
)

type ProductForm struct {
	SKU   string            `json:"sku" validate:"required"`
	Name  string            `json:"name" validate:"required"`
	Price domain.NumberText `json:"price" validate:"amount"`
}

func (f ProductForm) trimmed() ProductForm {
	f.SKU = strings.TrimSpace(f.SKU)
	f.Name = strings.TrimSpace(f.Name)
	return f
}

func (f ProductForm) product() domain.Product {
	price, _ := f.Price.Float()
	return domain.Product{SKU: f.SKU, Name: f.Name, Price: domain.Float(price)}
}

type StoreForm struct {
	Code string `json:"code" validate:"required"`
	Name string `json:"name" validate:"required"`
}

func (f StoreForm) trimmed() StoreForm {
	f.Code = strings.TrimSpace(f.Code)
	f.Name = strings.TrimSpace(f.Name)
	return f
}

func (f StoreForm) store() domain.Store {
	return domain.Store{Code: f.Code, Name: f.Name}
}

type StockForm struct {
	ProductID domain.ID         `json:"productId" validate:"required"`
	StoreID   domain.ID         `json:"storeId" validate:"required"`
	Quantity  domain.NumberText `json:"quantity" validate:"amount"`
}

func (f StockForm) item() domain.StockItem {
	qty, _ := f.Quantity.Float()
	return domain.StockItem{ProductID: f.ProductID, StoreID: f.StoreID, Quantity: domain.Float(qty)}
}
