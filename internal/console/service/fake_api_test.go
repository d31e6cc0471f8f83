package service

import (
	"context"
	"sync"

	"github.com/xela07ax/inventory-console/internal/activity"
	"github.com/xela07ax/inventory-console/internal/domain"
)

type fakeAPI struct {
	mu sync.Mutex

	products []domain.Product
	total    *int
	stores   []domain.Store
	stock    []domain.StockItem

	productsErr error
	storesErr   error
	stockErr    error
	mutateErr   error

	calls       map[string]int
	lastPage    [2]int
	lastProduct domain.Product
	lastStore   domain.Store
	lastStock   domain.StockItem
	lastID      domain.ID
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{calls: map[string]int{}}
}

func (f *fakeAPI) hit(name string) {
	f.mu.Lock()
	f.calls[name]++
	f.mu.Unlock()
}

func (f *fakeAPI) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAPI) ProductsPage(_ context.Context, page, size int) (domain.ProductPage, error) {
	f.hit("ProductsPage")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastPage = [2]int{page, size}
	if f.productsErr != nil {
		return domain.ProductPage{}, f.productsErr
	}
	return domain.ProductPage{Items: append([]domain.Product(nil), f.products...), TotalCount: f.total}, nil
}

func (f *fakeAPI) CreateProduct(_ context.Context, p domain.Product) (domain.Product, error) {
	f.hit("CreateProduct")
	f.lastProduct = p
	if f.mutateErr != nil {
		return domain.Product{}, f.mutateErr
	}
	p.ID = domain.NumericID(int64(len(f.products) + 100))
	f.products = append(f.products, p)
	return p, nil
}

func (f *fakeAPI) UpdateProduct(_ context.Context, id domain.ID, p domain.Product) (domain.Product, error) {
	f.hit("UpdateProduct")
	f.lastID, f.lastProduct = id, p
	if f.mutateErr != nil {
		return domain.Product{}, f.mutateErr
	}
	p.ID = id
	return p, nil
}

func (f *fakeAPI) DeleteProduct(_ context.Context, id domain.ID) error {
	f.hit("DeleteProduct")
	f.lastID = id
	return f.mutateErr
}

func (f *fakeAPI) Stores(context.Context) ([]domain.Store, error) {
	f.hit("Stores")
	if f.storesErr != nil {
		return nil, f.storesErr
	}
	return append([]domain.Store(nil), f.stores...), nil
}

func (f *fakeAPI) CreateStore(_ context.Context, s domain.Store) (domain.Store, error) {
	f.hit("CreateStore")
	f.lastStore = s
	if f.mutateErr != nil {
		return domain.Store{}, f.mutateErr
	}
	return s, nil
}

func (f *fakeAPI) UpdateStore(_ context.Context, id domain.ID, s domain.Store) (domain.Store, error) {
	f.hit("UpdateStore")
	f.lastID, f.lastStore = id, s
	if f.mutateErr != nil {
		return domain.Store{}, f.mutateErr
	}
	return s, nil
}

func (f *fakeAPI) DeleteStore(_ context.Context, id domain.ID) error {
	f.hit("DeleteStore")
	f.lastID = id
	return f.mutateErr
}

func (f *fakeAPI) Stock(context.Context) ([]domain.StockItem, error) {
	f.hit("Stock")
	if f.stockErr != nil {
		return nil, f.stockErr
	}
	return append([]domain.StockItem(nil), f.stock...), nil
}

func (f *fakeAPI) UpdateStock(_ context.Context, item domain.StockItem) (domain.StockItem, error) {
	f.hit("UpdateStock")
	f.lastStock = item
	if f.mutateErr != nil {
		return domain.StockItem{}, f.mutateErr
	}
	return item, nil
}

type journalSpy struct {
	mu     sync.Mutex
	events []activity.Event
}

func (j *journalSpy) Record(e activity.Event) {
	j.mu.Lock()
	j.events = append(j.events, e)
	j.mu.Unlock()
}

func (j *journalSpy) titles() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]string, 0, len(j.events))
	for _, e := range j.events {
		out = append(out, e.Title)
	}
	return out
}
