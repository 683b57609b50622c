package entity

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// OwnerRef referencia al dueño del carrito (id o documento de usuario embebido).
type OwnerRef string

// UnmarshalJSON acepta "id" o {"_id": "..."}.
func (o *OwnerRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*o = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*o = OwnerRef(s)
		return nil
	}
	var doc struct {
		ID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*o = OwnerRef(doc.ID)
	return nil
}

// CartItem línea del carrito. Price es el precio unitario fijado por el servidor.
type CartItem struct {
	ID       string          `json:"_id,omitempty"`
	Product  ProductRef      `json:"product"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	AddedAt  *time.Time      `json:"addedAt,omitempty"`
}

// Cart carrito remoto de un usuario autenticado. Los totales son del servidor;
// el cliente nunca los recalcula.
type Cart struct {
	ID         string          `json:"_id,omitempty"`
	User       OwnerRef        `json:"user,omitempty"`
	Items      []CartItem      `json:"items"`
	TotalItems int             `json:"totalItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	UpdatedAt  *time.Time      `json:"updatedAt,omitempty"`
}

// Clone copia profunda para entregar snapshots sin compartir slices.
func (c *Cart) Clone() *Cart {
	if c == nil {
		return nil
	}
	out := *c
	out.Items = make([]CartItem, len(c.Items))
	copy(out.Items, c.Items)
	return &out
}
