package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/savinduamalka/agni-storefront/internal/application/dto"
	"github.com/savinduamalka/agni-storefront/internal/application/ports"
)

var _ ports.WishlistAPI = (*WishlistAPI)(nil)

// WishlistAPI adaptador de /wishlist. Los ítems se entregan crudos; la normalización
// es responsabilidad del proxy.
type WishlistAPI struct {
	c *Client
}

// NewWishlistAPI construye el adaptador.
func NewWishlistAPI(c *Client) *WishlistAPI { return &WishlistAPI{c: c} }

func (a *WishlistAPI) send(ctx context.Context, in call) (*dto.WishlistEnvelope, error) {
	raw, err := a.c.do(ctx, in)
	if err != nil {
		return nil, err
	}
	msg, payload := envelope(raw, "wishlist.products", "products", "wishlist", "items")
	out := &dto.WishlistEnvelope{Message: msg}
	if isNull(payload) {
		return out, nil
	}
	if isObject(payload) {
		out.MessageOnly = true
		return out, nil
	}
	var items []json.RawMessage
	if err := decode(in.method+" "+in.route, payload, &items); err != nil {
		return nil, err
	}
	out.Items = items
	return out, nil
}

// Get GET /wishlist.
func (a *WishlistAPI) Get(ctx context.Context, token string) (*dto.WishlistEnvelope, error) {
	return a.send(ctx, call{method: http.MethodGet, route: "/wishlist", path: "/wishlist", token: token})
}

// Add POST /wishlist.
func (a *WishlistAPI) Add(ctx context.Context, token, productID string) (*dto.WishlistEnvelope, error) {
	return a.send(ctx, call{
		method: http.MethodPost, route: "/wishlist", path: "/wishlist", token: token,
		body: map[string]string{"productId": productID},
	})
}

// Remove DELETE /wishlist/:productId.
func (a *WishlistAPI) Remove(ctx context.Context, token, productID string) (*dto.WishlistEnvelope, error) {
	return a.send(ctx, call{
		method: http.MethodDelete, route: "/wishlist/:productId", path: "/wishlist/" + url.PathEscape(productID),
		token: token,
	})
}

// Clear DELETE /wishlist.
func (a *WishlistAPI) Clear(ctx context.Context, token string) (*dto.WishlistEnvelope, error) {
	return a.send(ctx, call{method: http.MethodDelete, route: "/wishlist", path: "/wishlist", token: token})
}
