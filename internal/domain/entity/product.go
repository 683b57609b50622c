package entity

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Product producto del catálogo. Precios, stock y agregados de rating los calcula el servidor.
// LabeledPrice es el precio antes del descuento.
type Product struct {
	ID            string          `json:"_id,omitempty"`
	ProductID     string          `json:"productId,omitempty"`
	Name          string          `json:"name"`
	AltNames      []string        `json:"altNames"`
	Description   string          `json:"description"`
	Brand         string          `json:"brand"`
	Category      string          `json:"category"`
	Price         decimal.Decimal `json:"price"`
	LabeledPrice  decimal.Decimal `json:"labeledPrice"`
	Discount      decimal.Decimal `json:"discount"`
	Stock         int             `json:"stock"`
	Images        []string        `json:"images"`
	IsHot         bool            `json:"isHot"`
	IsOffer       bool            `json:"isOffer"`
	AverageRating float64         `json:"averageRating"`
	ReviewCount   int             `json:"reviewCount"`
}

// Key identificador que el backend acepta en las rutas de carrito y wishlist.
func (p *Product) Key() string {
	if p.ProductID != "" {
		return p.ProductID
	}
	return p.ID
}

// InStock indica si hay al menos una unidad disponible.
func (p *Product) InStock() bool { return p.Stock > 0 }

// ProductRef referencia a producto en una línea de carrito: el backend envía el id
// como string o el documento embebido (populate), según el endpoint.
type ProductRef struct {
	ID      string
	Product *Product
}

// Key devuelve el identificador de la referencia.
func (r ProductRef) Key() string {
	if r.Product != nil {
		if k := r.Product.Key(); k != "" {
			return k
		}
	}
	return r.ID
}

// UnmarshalJSON acepta "id" o {...producto...}.
func (r *ProductRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = ProductRef{}
		return nil
	}
	if data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = ProductRef{ID: id}
		return nil
	}
	var p Product
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = ProductRef{ID: p.Key(), Product: &p}
	return nil
}

// MarshalJSON conserva la forma recibida: objeto si venía embebido, string si no.
func (r ProductRef) MarshalJSON() ([]byte, error) {
	if r.Product != nil {
		return json.Marshal(r.Product)
	}
	return json.Marshal(r.ID)
}

// ProductPage página de resultados de GET /products y /products/offers.
type ProductPage struct {
	Products      []Product `json:"products"`
	CurrentPage   int       `json:"currentPage"`
	TotalPages    int       `json:"totalPages"`
	TotalProducts int       `json:"totalProducts"`
}
