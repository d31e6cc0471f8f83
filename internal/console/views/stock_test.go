package views

import (
	"testing"

	. "github.com/onsi/gomega"

	"github.com/xela07ax/inventory-console/internal/domain"
)

func fixtureProducts() []domain.Product {
	return []domain.Product{
		{ID: domain.NumericID(1), SKU: "APL", Name: "Apple"},
		{ID: domain.StringID("2"), SKU: "BAN"},
		{SKU: "ORPHAN", Name: "No id"},
		{ID: domain.NumericID(4), Name: "Kiwi"},
	}
}

func fixtureStores() []domain.Store {
	return []domain.Store{
		{ID: domain.NumericID(10), Code: "N", Name: "North"},
		{ID: domain.NumericID(11), Code: "S"},
		{Code: "X", Name: "No id"},
	}
}

func fixtureStock() []domain.StockItem {
	return []domain.StockItem{
		{ID: domain.NumericID(100), ProductID: domain.NumericID(1), StoreID: domain.NumericID(10), Quantity: domain.Float(30)},
		{ID: domain.NumericID(101), ProductID: domain.NumericID(2), StoreID: domain.NumericID(11), Quantity: domain.Float(5)},
		{ID: domain.NumericID(102), ProductID: domain.NumericID(1), StoreID: domain.NumericID(11)},
		{ID: domain.NumericID(103), ProductID: domain.NumericID(99), StoreID: domain.NumericID(77), Quantity: domain.Float(5)},
		{ID: domain.NumericID(104), Quantity: domain.Float(30)},
	}
}

func ids(items []domain.StockItem) []string {
	out := make([]string, 0, len(items))
	for _, i := range items {
		out = append(out, i.ID.String())
	}
	return out
}

func TestLabels(t *testing.T) {
	g := NewWithT(t)
	products, stores := fixtureProducts(), fixtureStores()
	stock := fixtureStock()

	g.Expect(ProductLabel(stock[0], products)).To(Equal("Apple - APL"))
	// строковый и числовой ID совпадают
	g.Expect(ProductLabel(stock[1], products)).To(Equal("Product - BAN"))
	g.Expect(ProductLabel(stock[3], products)).To(Equal("#99"))
	g.Expect(ProductLabel(stock[4], products)).To(Equal("-"))

	g.Expect(StoreLabel(stock[0], stores)).To(Equal("North"))
	g.Expect(StoreLabel(stock[1], stores)).To(Equal("Store #11"))
	g.Expect(StoreLabel(stock[3], stores)).To(Equal("#77"))
	g.Expect(StoreLabel(stock[4], stores)).To(Equal("-"))

	kiwi := domain.StockItem{ProductID: domain.NumericID(4)}
	g.Expect(ProductLabel(kiwi, products)).To(Equal("Kiwi -"))
}

func TestProductLabelEmptyName(t *testing.T) {
	g := NewWithT(t)

	products := []domain.Product{{ID: domain.NumericID(5), Name: "", SKU: "GRP"}}
	item := domain.StockItem{ProductID: domain.NumericID(5)}
	g.Expect(ProductLabel(item, products)).To(Equal("Product - GRP"))
}

func TestOptionsSkipEntriesWithoutID(t *testing.T) {
	g := NewWithT(t)

	g.Expect(ProductOptions(fixtureProducts())).To(Equal([]domain.Option{
		{Value: "1", Label: "Apple - APL"},
		{Value: "2", Label: "Product - BAN"},
		{Value: "4", Label: "Kiwi -"},
	}))
	g.Expect(StoreOptions(fixtureStores())).To(Equal([]domain.Option{
		{Value: "10", Label: "North"},
		{Value: "11", Label: "Store #11"},
	}))
}

func TestFilterStock(t *testing.T) {
	g := NewWithT(t)
	stock := fixtureStock()

	g.Expect(ids(FilterStock(stock, "", ""))).To(HaveLen(5))
	g.Expect(ids(FilterStock(stock, "1", ""))).To(Equal([]string{"100", "102"}))
	g.Expect(ids(FilterStock(stock, "", "11"))).To(Equal([]string{"101", "102"}))
	g.Expect(ids(FilterStock(stock, "1", "11"))).To(Equal([]string{"102"}))
	g.Expect(ids(FilterStock(stock, "nope", ""))).To(BeEmpty())
}

func TestSortStockIsStable(t *testing.T) {
	g := NewWithT(t)
	stock := fixtureStock()

	g.Expect(ids(SortStock(stock, SortAsc))).To(Equal([]string{"102", "101", "103", "100", "104"}))
	g.Expect(ids(SortStock(stock, SortDesc))).To(Equal([]string{"100", "104", "101", "103", "102"}))
	// вход не меняется
	g.Expect(ids(stock)).To(Equal([]string{"100", "101", "102", "103", "104"}))
}

func TestParseSort(t *testing.T) {
	g := NewWithT(t)
	g.Expect(ParseSort("desc")).To(Equal(SortDesc))
	g.Expect(ParseSort("asc")).To(Equal(SortAsc))
	g.Expect(ParseSort("")).To(Equal(SortAsc))
	g.Expect(ParseSort("DESC")).To(Equal(SortAsc))
}

func TestStockView(t *testing.T) {
	g := NewWithT(t)

	view := Stock(fixtureStock(), fixtureProducts(), fixtureStores(), StockQuery{StoreID: "11", Sort: SortDesc})

	g.Expect(view.Sort).To(Equal("desc"))
	g.Expect(view.Items).To(HaveLen(2))
	g.Expect(view.Items[0].ProductLabel).To(Equal("Product - BAN"))
	g.Expect(view.Items[0].QuantityText).To(Equal("5"))
	g.Expect(view.Items[1].QuantityText).To(Equal("-"))
	g.Expect(view.ProductOptions).To(HaveLen(3))
	g.Expect(view.StoreOptions).To(HaveLen(2))
}
