package dto

import (
	"encoding/json"

	"github.com/savinduamalka/agni-storefront/internal/domain/entity"
)

// CartItemRequest entrada para agregar o actualizar una línea. Stock es el valor que
// el UI ya muestra; si viene, la guarda de stock se aplica sin llamar al backend.
type CartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1"`
	Stock     *int   `json:"stock,omitempty"`
}

// CartEnvelope respuesta de /cart: {message, cart} o el carrito directo.
type CartEnvelope struct {
	Message string
	Cart    *entity.Cart
}

// WishlistEnvelope respuesta de /wishlist con los ítems aún sin normalizar.
// MessageOnly indica que el backend respondió sin lista; Items no es el estado actual.
type WishlistEnvelope struct {
	Message     string
	Items       []json.RawMessage
	MessageOnly bool
}

// ProductListResponse listado paginado para el UI.
type ProductListResponse struct {
	Items []entity.Product `json:"items"`
	Page  PageResponse     `json:"page"`
	Query string           `json:"query"`
}

// ProductDetailResponse producto con sus reseñas.
type ProductDetailResponse struct {
	Product *entity.Product       `json:"product"`
	Reviews *entity.ReviewSummary `json:"reviews,omitempty"`
}

// FilterEditRequest valores editados en los controles de filtro. Vacío = quitar parámetro.
type FilterEditRequest struct {
	Query string            `json:"query"`
	Edits map[string]string `json:"edits"`
}

// ContactRequest formulario de contacto.
type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" validate:"required"`
}
