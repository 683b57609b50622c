package catalog

import (
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Parámetros de query de los listados.
const (
	ParamBrand       = "brand"
	ParamCategory    = "category"
	ParamMinPrice    = "minPrice"
	ParamMaxPrice    = "maxPrice"
	ParamMinRating   = "minRating"
	ParamMinDiscount = "minDiscount"
	ParamMaxDiscount = "maxDiscount"
	ParamSortBy      = "sortBy"
	ParamSortOrder   = "sortOrder"
	ParamSearch      = "search"
	ParamPage        = "page"
)

// Filters valores de los controles de filtro sembrados desde la URL.
type Filters struct {
	Brand       string `json:"brand"`
	Category    string `json:"category"`
	MinPrice    string `json:"minPrice"`
	MaxPrice    string `json:"maxPrice"`
	MinRating   string `json:"minRating"`
	MinDiscount string `json:"minDiscount"`
	MaxDiscount string `json:"maxDiscount"`
	SortBy      string `json:"sortBy"`
	SortOrder   string `json:"sortOrder"`
	Search      string `json:"search,omitempty"`
	Page        int    `json:"page"`
}

// ReadProductFilters lee los filtros del listado de productos.
func ReadProductFilters(q url.Values) Filters {
	f := readCommon(q)
	f.Search = NormalizeSearch(q.Get(ParamSearch))
	return f
}

// ReadOfferFilters lee los filtros del listado de ofertas (sin búsqueda libre).
func ReadOfferFilters(q url.Values) Filters {
	return readCommon(q)
}

func readCommon(q url.Values) Filters {
	return Filters{
		Brand:       strings.TrimSpace(q.Get(ParamBrand)),
		Category:    strings.TrimSpace(q.Get(ParamCategory)),
		MinPrice:    strings.TrimSpace(q.Get(ParamMinPrice)),
		MaxPrice:    strings.TrimSpace(q.Get(ParamMaxPrice)),
		MinRating:   strings.TrimSpace(q.Get(ParamMinRating)),
		MinDiscount: strings.TrimSpace(q.Get(ParamMinDiscount)),
		MaxDiscount: strings.TrimSpace(q.Get(ParamMaxDiscount)),
		SortBy:      strings.TrimSpace(q.Get(ParamSortBy)),
		SortOrder:   strings.TrimSpace(q.Get(ParamSortOrder)),
		Page:        ParsePage(q.Get(ParamPage)),
	}
}

// Apply mezcla los valores editados en la query actual, elimina todo parámetro que
// quede vacío y vuelve a la primera página.
func Apply(current url.Values, edits map[string]string) url.Values {
	out := clean(current)
	for k, v := range edits {
		v = strings.TrimSpace(v)
		if k == ParamSearch {
			v = NormalizeSearch(v)
		}
		if v == "" {
			out.Del(k)
			continue
		}
		out.Set(k, v)
	}
	out.Set(ParamPage, "1")
	return out
}

// ClearProducts conserva solo el orden y la búsqueda libre.
func ClearProducts(current url.Values) url.Values {
	return keepOnly(current, ParamSortBy, ParamSortOrder, ParamSearch)
}

// ClearOffers conserva solo el orden.
func ClearOffers(current url.Values) url.Values {
	return keepOnly(current, ParamSortBy, ParamSortOrder)
}

func keepOnly(current url.Values, keys ...string) url.Values {
	out := url.Values{}
	for _, k := range keys {
		if v := strings.TrimSpace(current.Get(k)); v != "" {
			out.Set(k, v)
		}
	}
	out.Set(ParamPage, "1")
	return out
}

// clean copia q sin parámetros vacíos.
func clean(q url.Values) url.Values {
	out := url.Values{}
	for k, vs := range q {
		for _, v := range vs {
			if strings.TrimSpace(v) != "" {
				out.Add(k, v)
			}
		}
	}
	return out
}

// NormalizeSearch recorta, colapsa espacios y normaliza a NFC.
func NormalizeSearch(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

// ParsePage interpreta el parámetro page; inválido o < 1 equivale a 1.
func ParsePage(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// ClampPage ajusta page a [1, max(totalPages, 1)].
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// PageWindow números de página a mostrar alrededor de page, hasta size elementos.
func PageWindow(page, totalPages, size int) []int {
	if totalPages < 1 {
		totalPages = 1
	}
	if size < 1 {
		size = 1
	}
	if size > totalPages {
		size = totalPages
	}
	page = ClampPage(page, totalPages)
	start := page - size/2
	if start < 1 {
		start = 1
	}
	if start+size-1 > totalPages {
		start = totalPages - size + 1
	}
	out := make([]int, size)
	for i := range out {
		out[i] = start + i
	}
	return out
}
