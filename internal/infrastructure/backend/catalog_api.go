package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/savinduamalka/agni-storefront/internal/application/ports"
	"github.com/savinduamalka/agni-storefront/internal/domain/entity"
)

var _ ports.CatalogAPI = (*CatalogAPI)(nil)

// CatalogAPI adaptador de lectura pública del catálogo.
type CatalogAPI struct {
	c *Client
}

// NewCatalogAPI construye el adaptador.
func NewCatalogAPI(c *Client) *CatalogAPI { return &CatalogAPI{c: c} }

func (a *CatalogAPI) get(ctx context.Context, route, path string, query url.Values, key string, out interface{}) error {
	raw, err := a.c.do(ctx, call{method: http.MethodGet, route: route, path: path, query: query})
	if err != nil {
		return err
	}
	_, payload := envelope(raw, key)
	return decode("GET "+route, payload, out)
}

func (a *CatalogAPI) page(ctx context.Context, route string, query url.Values) (*entity.ProductPage, error) {
	raw, err := a.c.do(ctx, call{method: http.MethodGet, route: route, path: route, query: query})
	if err != nil {
		return nil, err
	}
	// Algunas versiones del backend devuelven el arreglo sin metadatos de página.
	if isArray(raw) {
		var products []entity.Product
		if err := decode("GET "+route, raw, &products); err != nil {
			return nil, err
		}
		return &entity.ProductPage{Products: products, CurrentPage: 1, TotalPages: 1, TotalProducts: len(products)}, nil
	}
	var p entity.ProductPage
	if err := decode("GET "+route, raw, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListProducts GET /products con los filtros de la URL.
func (a *CatalogAPI) ListProducts(ctx context.Context, query url.Values) (*entity.ProductPage, error) {
	return a.page(ctx, "/products", query)
}

// ListOffers GET /products/offers.
func (a *CatalogAPI) ListOffers(ctx context.Context, query url.Values) (*entity.ProductPage, error) {
	return a.page(ctx, "/products/offers", query)
}

// GetProduct GET /products/:id.
func (a *CatalogAPI) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	var p entity.Product
	if err := a.get(ctx, "/products/:id", "/products/"+url.PathEscape(id), nil, "product", &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Categories GET /categories.
func (a *CatalogAPI) Categories(ctx context.Context) ([]entity.Category, error) {
	var out []entity.Category
	if err := a.get(ctx, "/categories", "/categories", nil, "categories", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Reviews GET /reviews/:productId.
func (a *CatalogAPI) Reviews(ctx context.Context, productID string) (*entity.ReviewSummary, error) {
	raw, err := a.c.do(ctx, call{
		method: http.MethodGet, route: "/reviews/:productId", path: "/reviews/" + url.PathEscape(productID),
	})
	if err != nil {
		return nil, err
	}
	var out entity.ReviewSummary
	if isArray(raw) {
		if err := decode("GET /reviews/:productId", raw, &out.Reviews); err != nil {
			return nil, err
		}
		out.TotalReviews = len(out.Reviews)
		return &out, nil
	}
	if err := decode("GET /reviews/:productId", raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
