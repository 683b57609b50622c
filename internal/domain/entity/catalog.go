package entity

import "time"

// Wishlist lista de productos ya normalizados para mostrar.
type Wishlist struct {
	Products []Product `json:"products"`
}

// Contains indica si el producto (por Key) está en la lista.
func (w *Wishlist) Contains(productID string) bool {
	if w == nil {
		return false
	}
	for i := range w.Products {
		if w.Products[i].Key() == productID {
			return true
		}
	}
	return false
}

// Review reseña de un producto.
type Review struct {
	ID        string    `json:"_id"`
	ProductID string    `json:"productId"`
	UserName  string    `json:"userName"`
	Rating    float64   `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReviewSummary respuesta de GET /reviews/:productId; los agregados vienen del servidor.
type ReviewSummary struct {
	Reviews       []Review `json:"reviews"`
	AverageRating float64  `json:"averageRating"`
	TotalReviews  int      `json:"totalReviews"`
}
