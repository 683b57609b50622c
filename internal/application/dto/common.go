package dto

// PageResponse metadatos de página en respuestas. Page siempre está en [1, TotalPages].
type PageResponse struct {
	Page       int   `json:"page"`
	TotalPages int   `json:"total_pages"`
	Total      int   `json:"total,omitempty"`
	Window     []int `json:"window,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ResultResponse resultado booleano de una mutación del carrito o wishlist.
type ResultResponse struct {
	OK      bool        `json:"ok"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// QueryResponse query string resultante de aplicar o limpiar filtros.
type QueryResponse struct {
	Query string `json:"query"`
}
