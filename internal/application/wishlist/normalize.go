package wishlist

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/savinduamalka/agni-storefront/internal/domain/entity"
)

// rawItem ítem tal como lo envía el backend: {product:{...}}, el producto directo o su id.
type rawItem struct {
	entity.Product
	AltID   string          `json:"id"`
	Wrapped json.RawMessage `json:"product"`
}

// Normalize convierte los ítems crudos al shape Product. Los ítems sin identificador
// resoluble se descartan; los campos opcionales ausentes quedan con su valor vacío.
func Normalize(items []json.RawMessage) []entity.Product {
	out := make([]entity.Product, 0, len(items))
	for _, raw := range items {
		if p, ok := normalizeOne(raw, 0); ok {
			out = append(out, p)
		}
	}
	return out
}

func normalizeOne(raw json.RawMessage, depth int) (entity.Product, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || depth > 2 {
		return entity.Product{}, false
	}
	switch raw[0] {
	case '"':
		var id string
		if json.Unmarshal(raw, &id) != nil || strings.TrimSpace(id) == "" {
			return entity.Product{}, false
		}
		return withDefaults(entity.Product{ID: strings.TrimSpace(id)}), true
	case '{':
		var it rawItem
		if json.Unmarshal(raw, &it) != nil {
			return entity.Product{}, false
		}
		if len(it.Wrapped) > 0 && !bytes.Equal(bytes.TrimSpace(it.Wrapped), []byte("null")) {
			return normalizeOne(it.Wrapped, depth+1)
		}
		p := it.Product
		if p.ID == "" {
			p.ID = it.AltID
		}
		if p.Key() == "" {
			return entity.Product{}, false
		}
		return withDefaults(p), true
	}
	return entity.Product{}, false
}

func withDefaults(p entity.Product) entity.Product {
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.AltNames == nil {
		p.AltNames = []string{}
	}
	return p
}
