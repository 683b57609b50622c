package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/savinduamalka/agni-storefront/internal/application/cart"
	"github.com/savinduamalka/agni-storefront/internal/application/dto"
	"github.com/savinduamalka/agni-storefront/internal/domain/entity"
)

// CartHandler expone el proxy del carrito. Las mutaciones responden 200 con ok=false
// cuando el proxy las rechaza; el motivo llega por /api/notifications.
type CartHandler struct {
	proxy *cart.Proxy
}

// NewCartHandler construye el handler del carrito.
func NewCartHandler(proxy *cart.Proxy) *CartHandler {
	return &CartHandler{proxy: proxy}
}

// Get godoc
// @Summary      Carrito actual
// @Tags         cart
// @Produce      json
// @Param        refresh  query  bool  false  "recargar desde el backend"
// @Success      200  {object}  dto.ResultResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	if c.QueryBool("refresh") {
		if err := h.proxy.Load(c.UserContext()); err != nil {
			return writeError(c, err)
		}
	}
	return h.result(c, true)
}

// Add godoc
// @Summary      Agregar producto al carrito
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CartItemRequest  true  "productId, quantity, stock opcional"
// @Success      200   {object}  dto.ResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/cart [post]
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var in dto.CartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	var ok bool
	if in.Stock != nil {
		ok = h.proxy.AddProduct(c.UserContext(), &entity.Product{ProductID: in.ProductID, Stock: *in.Stock}, in.Quantity)
	} else {
		ok = h.proxy.AddItem(c.UserContext(), in.ProductID, in.Quantity)
	}
	return h.result(c, ok)
}

// Update godoc
// @Summary      Cambiar cantidad de una línea
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        productId  path  string               true  "id del producto"
// @Param        body       body  dto.CartItemRequest  true  "quantity"
// @Success      200   {object}  dto.ResultResponse
// @Router       /api/cart/items/{productId} [put]
func (h *CartHandler) Update(c *fiber.Ctx) error {
	var in dto.CartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	return h.result(c, h.proxy.UpdateItem(c.UserContext(), c.Params("productId"), in.Quantity))
}

// Remove godoc
// @Summary      Quitar una línea del carrito
// @Tags         cart
// @Produce      json
// @Param        productId  path  string  true  "id del producto"
// @Success      200   {object}  dto.ResultResponse
// @Router       /api/cart/items/{productId} [delete]
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	return h.result(c, h.proxy.RemoveItem(c.UserContext(), c.Params("productId")))
}

// Clear godoc
// @Summary      Vaciar el carrito
// @Tags         cart
// @Produce      json
// @Success      200   {object}  dto.ResultResponse
// @Router       /api/cart [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	return h.result(c, h.proxy.Clear(c.UserContext()))
}

func (h *CartHandler) result(c *fiber.Ctx, ok bool) error {
	return c.JSON(dto.ResultResponse{OK: ok, Data: h.proxy.Cart()})
}
