package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/savinduamalka/agni-storefront/internal/application/catalog"
	"github.com/savinduamalka/agni-storefront/internal/application/dto"
)

// CatalogHandler listados, detalle, categorías, reseñas y estado de los filtros.
type CatalogHandler struct {
	svc *catalog.Service
}

// NewCatalogHandler construye el handler del catálogo.
func NewCatalogHandler(svc *catalog.Service) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// Products godoc
// @Summary      Listado de productos
// @Tags         catalog
// @Produce      json
// @Param        search     query  string  false  "búsqueda"
// @Param        page       query  int     false  "página (1..totalPages)"
// @Success      200  {object}  dto.ProductListResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *CatalogHandler) Products(c *fiber.Ctx) error {
	out, err := h.svc.ListProducts(c.UserContext(), queryValues(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Offers godoc
// @Summary      Listado de ofertas
// @Tags         catalog
// @Produce      json
// @Param        minDiscount  query  number  false  "descuento mínimo"
// @Param        page         query  int     false  "página (1..totalPages)"
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/offers [get]
func (h *CatalogHandler) Offers(c *fiber.Ctx) error {
	out, err := h.svc.ListOffers(c.UserContext(), queryValues(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Product godoc
// @Summary      Detalle de producto
// @Tags         catalog
// @Produce      json
// @Param        id       path   string  true   "id del producto"
// @Param        reviews  query  bool    false  "incluir reseñas"
// @Success      200  {object}  dto.ProductDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *CatalogHandler) Product(c *fiber.Ctx) error {
	out, err := h.svc.ProductDetail(c.UserContext(), c.Params("id"), c.QueryBool("reviews"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Categories godoc
// @Summary      Categorías
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  entity.Category
// @Router       /api/categories [get]
func (h *CatalogHandler) Categories(c *fiber.Ctx) error {
	out, err := h.svc.Categories(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reviews godoc
// @Summary      Reseñas de un producto
// @Tags         catalog
// @Produce      json
// @Param        productId  path  string  true  "id del producto"
// @Success      200  {object}  entity.ReviewSummary
// @Router       /api/reviews/{productId} [get]
func (h *CatalogHandler) Reviews(c *fiber.Ctx) error {
	out, err := h.svc.Reviews(c.UserContext(), c.Params("productId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ProductFilters godoc
// @Summary      Controles de filtro sembrados desde la query
// @Tags         filters
// @Produce      json
// @Success      200  {object}  catalog.Filters
// @Router       /api/filters/products [get]
func (h *CatalogHandler) ProductFilters(c *fiber.Ctx) error {
	return c.JSON(catalog.ReadProductFilters(queryValues(c)))
}

// OfferFilters godoc
// @Summary      Controles de filtro de ofertas
// @Tags         filters
// @Produce      json
// @Success      200  {object}  catalog.Filters
// @Router       /api/filters/offers [get]
func (h *CatalogHandler) OfferFilters(c *fiber.Ctx) error {
	return c.JSON(catalog.ReadOfferFilters(queryValues(c)))
}

// ApplyFilters godoc
// @Summary      Aplicar filtros editados
// @Tags         filters
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FilterEditRequest  true  "query actual y valores editados"
// @Success      200   {object}  dto.QueryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/filters/products/apply [post]
// @Router       /api/filters/offers/apply [post]
func (h *CatalogHandler) ApplyFilters(c *fiber.Ctx) error {
	in, current, err := filterRequest(c)
	if err != nil {
		return badBody(c)
	}
	return c.JSON(dto.QueryResponse{Query: catalog.Apply(current, in.Edits).Encode()})
}

// ClearProductFilters godoc
// @Summary      Limpiar filtros de productos (conserva orden y búsqueda)
// @Tags         filters
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FilterEditRequest  true  "query actual"
// @Success      200   {object}  dto.QueryResponse
// @Router       /api/filters/products/clear [post]
func (h *CatalogHandler) ClearProductFilters(c *fiber.Ctx) error {
	_, current, err := filterRequest(c)
	if err != nil {
		return badBody(c)
	}
	return c.JSON(dto.QueryResponse{Query: catalog.ClearProducts(current).Encode()})
}

// ClearOfferFilters godoc
// @Summary      Limpiar filtros de ofertas (conserva orden)
// @Tags         filters
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FilterEditRequest  true  "query actual"
// @Success      200   {object}  dto.QueryResponse
// @Router       /api/filters/offers/clear [post]
func (h *CatalogHandler) ClearOfferFilters(c *fiber.Ctx) error {
	_, current, err := filterRequest(c)
	if err != nil {
		return badBody(c)
	}
	return c.JSON(dto.QueryResponse{Query: catalog.ClearOffers(current).Encode()})
}

// queryValues query string cruda como url.Values; una query ilegible cuenta como vacía.
func queryValues(c *fiber.Ctx) url.Values {
	q, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err != nil {
		return url.Values{}
	}
	return q
}

func filterRequest(c *fiber.Ctx) (dto.FilterEditRequest, url.Values, error) {
	var in dto.FilterEditRequest
	if err := c.BodyParser(&in); err != nil {
		return in, nil, err
	}
	current, err := url.ParseQuery(in.Query)
	if err != nil {
		return in, nil, err
	}
	return in, current, nil
}
