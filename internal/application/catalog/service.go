package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/savinduamalka/agni-storefront/internal/application/dto"
	"github.com/savinduamalka/agni-storefront/internal/application/ports"
	"github.com/savinduamalka/agni-storefront/internal/domain"
	"github.com/savinduamalka/agni-storefront/internal/domain/entity"
	"github.com/savinduamalka/agni-storefront/pkg/logger"
)

const windowSize = 5

// Service lectura del catálogo. Sin caché: cada llamada va al backend.
type Service struct {
	api ports.CatalogAPI
	log *logger.Logger
}

// NewService construye el servicio.
func NewService(api ports.CatalogAPI, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{api: api, log: log.Component("catalog")}
}

// ListProducts GET /products con la query saneada.
func (s *Service) ListProducts(ctx context.Context, q url.Values) (*dto.ProductListResponse, error) {
	q = sanitize(q, true)
	page, err := s.api.ListProducts(ctx, q)
	if err != nil {
		s.log.Error().Err(err).Str("query", q.Encode()).Msg("listar productos")
		return nil, fmt.Errorf("catalog products: %w", err)
	}
	return toListResponse(q, page), nil
}

// ListOffers GET /products/offers; la búsqueda libre no aplica.
func (s *Service) ListOffers(ctx context.Context, q url.Values) (*dto.ProductListResponse, error) {
	q = sanitize(q, false)
	page, err := s.api.ListOffers(ctx, q)
	if err != nil {
		s.log.Error().Err(err).Str("query", q.Encode()).Msg("listar ofertas")
		return nil, fmt.Errorf("catalog offers: %w", err)
	}
	return toListResponse(q, page), nil
}

// ProductDetail GET /products/:id y, si withReviews, GET /reviews/:productId.
// Un fallo de las reseñas no invalida el detalle.
func (s *Service) ProductDetail(ctx context.Context, id string, withReviews bool) (*dto.ProductDetailResponse, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	p, err := s.api.GetProduct(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Str("product_id", id).Msg("obtener producto")
		return nil, fmt.Errorf("catalog product: %w", err)
	}
	out := &dto.ProductDetailResponse{Product: p}
	if withReviews {
		rev, err := s.Reviews(ctx, p.Key())
		if err == nil {
			out.Reviews = rev
		}
	}
	return out, nil
}

// Categories GET /categories.
func (s *Service) Categories(ctx context.Context) ([]entity.Category, error) {
	cats, err := s.api.Categories(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("listar categorías")
		return nil, fmt.Errorf("catalog categories: %w", err)
	}
	if cats == nil {
		cats = []entity.Category{}
	}
	return cats, nil
}

// Reviews GET /reviews/:productId.
func (s *Service) Reviews(ctx context.Context, productID string) (*entity.ReviewSummary, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	rev, err := s.api.Reviews(ctx, productID)
	if err != nil {
		s.log.Warn().Err(err).Str("product_id", productID).Msg("obtener reseñas")
		return nil, fmt.Errorf("catalog reviews: %w", err)
	}
	if rev.Reviews == nil {
		rev.Reviews = []entity.Review{}
	}
	return rev, nil
}

func sanitize(q url.Values, allowSearch bool) url.Values {
	out := clean(q)
	if allowSearch {
		if s := NormalizeSearch(out.Get(ParamSearch)); s != "" {
			out.Set(ParamSearch, s)
		} else {
			out.Del(ParamSearch)
		}
	} else {
		out.Del(ParamSearch)
	}
	out.Set(ParamPage, strconv.Itoa(ParsePage(out.Get(ParamPage))))
	return out
}

func toListResponse(q url.Values, page *entity.ProductPage) *dto.ProductListResponse {
	requested := ParsePage(q.Get(ParamPage))
	current := page.CurrentPage
	if current == 0 {
		current = requested
	}
	current = ClampPage(current, page.TotalPages)
	total := page.TotalPages
	if total < 1 {
		total = 1
	}
	items := page.Products
	if items == nil {
		items = []entity.Product{}
	}
	return &dto.ProductListResponse{
		Items: items,
		Page: dto.PageResponse{
			Page:       current,
			TotalPages: total,
			Total:      page.TotalProducts,
			Window:     PageWindow(current, total, windowSize),
		},
		Query: q.Encode(),
	}
}
