package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/savinduamalka/agni-storefront/internal/application/dto"
	"github.com/savinduamalka/agni-storefront/internal/application/ports"
	"github.com/savinduamalka/agni-storefront/internal/domain/entity"
)

var _ ports.CartAPI = (*CartAPI)(nil)

// CartAPI adaptador de /cart. El carrito devuelto es el del servidor, sin recalcular.
type CartAPI struct {
	c *Client
}

// NewCartAPI construye el adaptador.
func NewCartAPI(c *Client) *CartAPI { return &CartAPI{c: c} }

type quantityBody struct {
	ProductID string `json:"productId,omitempty"`
	Quantity  int    `json:"quantity"`
}

func (a *CartAPI) send(ctx context.Context, in call) (*dto.CartEnvelope, error) {
	raw, err := a.c.do(ctx, in)
	if err != nil {
		return nil, err
	}
	msg, payload := envelope(raw, "cart")
	out := &dto.CartEnvelope{Message: msg}
	if isNull(payload) {
		return out, nil
	}
	var cart entity.Cart
	if err := decode(in.method+" "+in.route, payload, &cart); err != nil {
		return nil, err
	}
	out.Cart = &cart
	return out, nil
}

// Get GET /cart.
func (a *CartAPI) Get(ctx context.Context, token string) (*dto.CartEnvelope, error) {
	return a.send(ctx, call{method: http.MethodGet, route: "/cart", path: "/cart", token: token})
}

// Add POST /cart/add.
func (a *CartAPI) Add(ctx context.Context, token, productID string, quantity int) (*dto.CartEnvelope, error) {
	return a.send(ctx, call{
		method: http.MethodPost, route: "/cart/add", path: "/cart/add", token: token,
		body: quantityBody{ProductID: productID, Quantity: quantity},
	})
}

// UpdateItem PUT /cart/item/:productId.
func (a *CartAPI) UpdateItem(ctx context.Context, token, productID string, quantity int) (*dto.CartEnvelope, error) {
	return a.send(ctx, call{
		method: http.MethodPut, route: "/cart/item/:productId", path: "/cart/item/" + url.PathEscape(productID),
		token: token, body: quantityBody{Quantity: quantity},
	})
}

// RemoveItem DELETE /cart/item/:productId.
func (a *CartAPI) RemoveItem(ctx context.Context, token, productID string) (*dto.CartEnvelope, error) {
	return a.send(ctx, call{
		method: http.MethodDelete, route: "/cart/item/:productId", path: "/cart/item/" + url.PathEscape(productID),
		token: token,
	})
}

// Clear DELETE /cart/clear.
func (a *CartAPI) Clear(ctx context.Context, token string) (*dto.CartEnvelope, error) {
	return a.send(ctx, call{method: http.MethodDelete, route: "/cart/clear", path: "/cart/clear", token: token})
}
