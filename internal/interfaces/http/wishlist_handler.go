package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/savinduamalka/agni-storefront/internal/application/dto"
	"github.com/savinduamalka/agni-storefront/internal/application/wishlist"
)

// WishlistHandler expone el proxy de la wishlist con la misma convención ok/notificación del carrito.
type WishlistHandler struct {
	proxy *wishlist.Proxy
}

// NewWishlistHandler construye el handler de wishlist.
func NewWishlistHandler(proxy *wishlist.Proxy) *WishlistHandler {
	return &WishlistHandler{proxy: proxy}
}

// Get godoc
// @Summary      Wishlist actual
// @Tags         wishlist
// @Produce      json
// @Param        refresh  query  bool  false  "recargar desde el backend"
// @Success      200  {object}  dto.ResultResponse
// @Router       /api/wishlist [get]
func (h *WishlistHandler) Get(c *fiber.Ctx) error {
	if c.QueryBool("refresh") {
		if err := h.proxy.Refresh(c.UserContext()); err != nil {
			return writeError(c, err)
		}
	}
	return h.result(c, true)
}

// Toggle godoc
// @Summary      Agregar o quitar un producto de la wishlist
// @Tags         wishlist
// @Produce      json
// @Param        productId  path  string  true  "id del producto"
// @Success      200  {object}  dto.ResultResponse
// @Router       /api/wishlist/{productId}/toggle [post]
func (h *WishlistHandler) Toggle(c *fiber.Ctx) error {
	return h.result(c, h.proxy.Toggle(c.UserContext(), c.Params("productId")))
}

// Remove godoc
// @Summary      Quitar un producto de la wishlist
// @Tags         wishlist
// @Produce      json
// @Param        productId  path  string  true  "id del producto"
// @Success      200  {object}  dto.ResultResponse
// @Router       /api/wishlist/{productId} [delete]
func (h *WishlistHandler) Remove(c *fiber.Ctx) error {
	return h.result(c, h.proxy.Remove(c.UserContext(), c.Params("productId")))
}

// Clear godoc
// @Summary      Vaciar la wishlist
// @Tags         wishlist
// @Produce      json
// @Success      200  {object}  dto.ResultResponse
// @Router       /api/wishlist [delete]
func (h *WishlistHandler) Clear(c *fiber.Ctx) error {
	return h.result(c, h.proxy.Clear(c.UserContext()))
}

func (h *WishlistHandler) result(c *fiber.Ctx, ok bool) error {
	return c.JSON(dto.ResultResponse{OK: ok, Data: h.proxy.Items()})
}
