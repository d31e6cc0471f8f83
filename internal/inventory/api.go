// Package inventory — типизированные вызовы REST API инвентаря поверх шлюза.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/xela07ax/inventory-console/internal/domain"
	"github.com/xela07ax/inventory-console/internal/gateway"
)

// ErrInvalidLoginResponse — логин прошел, но в ответе нет ни token, ни accessToken.
var ErrInvalidLoginResponse = errors.New("Invalid login response") //nolint:staticcheck // текст показывается оператору

const (
	DefaultLoginPath = "/api/auth/login"

	productsPath = "/api/products"
	storesPath   = "/api/stores"
	stockPath    = "/api/stock"
)

// Doer — шлюз с точки зрения API.
type Doer interface {
	Do(ctx context.Context, req gateway.Request) (*gateway.Result, error)
}

type API struct {
	gw        Doer
	loginPath string
}

func New(gw Doer, loginPath string) *API {
	if loginPath == "" {
		loginPath = DefaultLoginPath
	}
	return &API{gw: gw, loginPath: loginPath}
}

// Login отправляет учетные данные без Authorization и возвращает токен.
// token предпочтительнее accessToken.
func (a *API) Login(ctx context.Context, req domain.LoginRequest) (string, error) {
	res, err := a.gw.Do(ctx, gateway.Request{
		Method: http.MethodPost,
		Path:   a.loginPath,
		Body:   req,
		NoAuth: true,
	})
	if err != nil {
		return "", err
	}
	if !res.JSON {
		return "", ErrInvalidLoginResponse
	}

	var out domain.LoginResponse
	if err := res.Decode(&out); err != nil {
		return "", ErrInvalidLoginResponse
	}

	token := out.Token
	if token == "" {
		token = out.AccessToken
	}
	if token == "" {
		return "", ErrInvalidLoginResponse
	}
	return token, nil
}

func (a *API) Products(ctx context.Context) ([]domain.Product, error) {
	res, err := a.gw.Do(ctx, gateway.Request{Path: productsPath})
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Product](res.Value)
}

func (a *API) ProductsPage(ctx context.Context, page, pageSize int) (domain.ProductPage, error) {
	path := fmt.Sprintf("%s?page=%d&pageSize=%d", productsPath, page, pageSize)
	res, err := a.gw.Do(ctx, gateway.Request{Path: path})
	if err != nil {
		return domain.ProductPage{}, err
	}

	items, err := decodeList[domain.Product](res.Value)
	if err != nil {
		return domain.ProductPage{}, err
	}
	out := domain.ProductPage{Items: items}
	if total, ok := ExtractTotalCount(res.Value); ok {
		out.TotalCount = &total
	}
	return out, nil
}

func (a *API) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	var out domain.Product
	err := a.send(ctx, http.MethodPost, productsPath, p, &out)
	return out, err
}

func (a *API) UpdateProduct(ctx context.Context, id domain.ID, p domain.Product) (domain.Product, error) {
	var out domain.Product
	err := a.send(ctx, http.MethodPut, entityPath(productsPath, id), p, &out)
	return out, err
}

func (a *API) DeleteProduct(ctx context.Context, id domain.ID) error {
	return a.send(ctx, http.MethodDelete, entityPath(productsPath, id), nil, nil)
}

func (a *API) Stores(ctx context.Context) ([]domain.Store, error) {
	res, err := a.gw.Do(ctx, gateway.Request{Path: storesPath})
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Store](res.Value)
}

func (a *API) CreateStore(ctx context.Context, s domain.Store) (domain.Store, error) {
	var out domain.Store
	err := a.send(ctx, http.MethodPost, storesPath, s, &out)
	return out, err
}

func (a *API) UpdateStore(ctx context.Context, id domain.ID, s domain.Store) (domain.Store, error) {
	var out domain.Store
	err := a.send(ctx, http.MethodPut, entityPath(storesPath, id), s, &out)
	return out, err
}

func (a *API) DeleteStore(ctx context.Context, id domain.ID) error {
	return a.send(ctx, http.MethodDelete, entityPath(storesPath, id), nil, nil)
}

func (a *API) Stock(ctx context.Context) ([]domain.StockItem, error) {
	res, err := a.gw.Do(ctx, gateway.Request{Path: stockPath})
	if err != nil {
		return nil, err
	}
	return decodeList[domain.StockItem](res.Value)
}

// UpdateStock выставляет количество товара в магазине (PUT /api/stock).
func (a *API) UpdateStock(ctx context.Context, item domain.StockItem) (domain.StockItem, error) {
	var out domain.StockItem
	err := a.send(ctx, http.MethodPut, stockPath, item, &out)
	return out, err
}

func (a *API) send(ctx context.Context, method, path string, body, out any) error {
	res, err := a.gw.Do(ctx, gateway.Request{Method: method, Path: path, Body: body})
	if err != nil {
		return err
	}
	if out == nil || !res.JSON {
		return nil
	}
	return res.Decode(out)
}

func entityPath(base string, id domain.ID) string {
	return base + "/" + url.PathEscape(id.String())
}
