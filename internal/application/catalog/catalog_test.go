package catalog

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savinduamalka/agni-storefront/internal/domain"
	"github.com/savinduamalka/agni-storefront/internal/domain/entity"
)

// ═══════════════════════════════════════════════════════════════════════════
// Filtros
// ═══════════════════════════════════════════════════════════════════════════

func mustQuery(t *testing.T, raw string) url.Values {
	t.Helper()
	q, err := url.ParseQuery(raw)
	require.NoError(t, err)
	return q
}

func noEmptyValues(t *testing.T, q url.Values) {
	t.Helper()
	for k, vs := range q {
		for _, v := range vs {
			assert.NotEmpty(t, v, "el parámetro %q quedó vacío", k)
		}
	}
}

func TestReadProductFilters(t *testing.T) {
	f := ReadProductFilters(mustQuery(t, "brand=Agni&minPrice=100&sortBy=price&sortOrder=desc&search=++led+++lamp&page=3"))

	assert.Equal(t, "Agni", f.Brand)
	assert.Equal(t, "100", f.MinPrice)
	assert.Equal(t, "price", f.SortBy)
	assert.Equal(t, "desc", f.SortOrder)
	assert.Equal(t, "led lamp", f.Search)
	assert.Equal(t, 3, f.Page)
}

func TestReadOfferFilters_SinBusqueda(t *testing.T) {
	f := ReadOfferFilters(mustQuery(t, "search=lamp&page=abc"))

	assert.Empty(t, f.Search)
	assert.Equal(t, 1, f.Page, "page inválido equivale a 1")
}

func TestApply_QuitaVaciosYVuelveAPagina1(t *testing.T) {
	cur := mustQuery(t, "brand=Agni&minPrice=100&page=4&maxPrice=")

	out := Apply(cur, map[string]string{
		ParamBrand:     "",
		ParamMinRating: "4",
		ParamMaxPrice:  "  ",
	})

	noEmptyValues(t, out)
	assert.Equal(t, "1", out.Get(ParamPage))
	assert.Equal(t, "100", out.Get(ParamMinPrice))
	assert.Equal(t, "4", out.Get(ParamMinRating))
	_, hasBrand := out[ParamBrand]
	assert.False(t, hasBrand, "un valor editado a vacío elimina el parámetro")
	_, hasMax := out[ParamMaxPrice]
	assert.False(t, hasMax)
	assert.Equal(t, "4", cur.Get(ParamPage), "la query original no se modifica")
}

func TestApply_NormalizaBusqueda(t *testing.T) {
	// "é" descompuesta (e + U+0301) debe quedar en su forma compuesta.
	out := Apply(url.Values{}, map[string]string{ParamSearch: "  cafe\u0301   lamp "})
	assert.Equal(t, "caf\u00e9 lamp", out.Get(ParamSearch))
}

func TestClearProducts_ConservaOrdenYBusqueda(t *testing.T) {
	cur := mustQuery(t, "brand=Agni&minPrice=1&sortBy=price&sortOrder=asc&search=lamp&page=7&minRating=3")

	out := ClearProducts(cur)

	assert.Equal(t, url.Values{
		ParamSortBy:    {"price"},
		ParamSortOrder: {"asc"},
		ParamSearch:    {"lamp"},
		ParamPage:      {"1"},
	}, out)
}

func TestClearOffers_ConservaSoloOrden(t *testing.T) {
	cur := mustQuery(t, "minDiscount=10&sortBy=discount&search=lamp&page=2")

	out := ClearOffers(cur)

	assert.Equal(t, url.Values{ParamSortBy: {"discount"}, ParamPage: {"1"}}, out)
}

func TestClampPage(t *testing.T) {
	cases := []struct{ page, total, want int }{
		{0, 5, 1},
		{-3, 5, 1},
		{3, 5, 3},
		{9, 5, 5},
		{2, 0, 1},
		{1, 1, 1},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ClampPage(c.page, c.total), "ClampPage(%d, %d)", c.page, c.total)
	}
}

func TestPageWindow(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3, 4, 5}, PageWindow(1, 10, 5))
	assert.Equal(t, []int{4, 5, 6, 7, 8}, PageWindow(6, 10, 5))
	assert.Equal(t, []int{6, 7, 8, 9, 10}, PageWindow(10, 10, 5))
	assert.Equal(t, []int{1, 2}, PageWindow(5, 2, 5))
	assert.Equal(t, []int{1}, PageWindow(1, 0, 5))
}

// ═══════════════════════════════════════════════════════════════════════════
// Service
// ═══════════════════════════════════════════════════════════════════════════

type fakeCatalog struct {
	lastQuery url.Values
	page      *entity.ProductPage
	product   *entity.Product
	reviews   *entity.ReviewSummary
	err       error
	reviewErr error
}

func (f *fakeCatalog) ListProducts(_ context.Context, q url.Values) (*entity.ProductPage, error) {
	f.lastQuery = q
	return f.page, f.err
}
func (f *fakeCatalog) ListOffers(_ context.Context, q url.Values) (*entity.ProductPage, error) {
	f.lastQuery = q
	return f.page, f.err
}
func (f *fakeCatalog) GetProduct(context.Context, string) (*entity.Product, error) {
	return f.product, f.err
}
func (f *fakeCatalog) Categories(context.Context) ([]entity.Category, error) { return nil, f.err }
func (f *fakeCatalog) Reviews(context.Context, string) (*entity.ReviewSummary, error) {
	return f.reviews, f.reviewErr
}

func TestService_ListProducts_PaginaAcotada(t *testing.T) {
	api := &fakeCatalog{page: &entity.ProductPage{
		Products: []entity.Product{{ID: "p1"}}, CurrentPage: 12, TotalPages: 4, TotalProducts: 31,
	}}
	svc := NewService(api, nil)

	res, err := svc.ListProducts(context.Background(), mustQuery(t, "page=12&brand=&search=+lamp+"))

	require.NoError(t, err)
	assert.Equal(t, 4, res.Page.Page, "la página se acota a totalPages")
	assert.Equal(t, 4, res.Page.TotalPages)
	assert.Equal(t, 31, res.Page.Total)
	assert.Equal(t, "lamp", api.lastQuery.Get(ParamSearch))
	_, hasBrand := api.lastQuery[ParamBrand]
	assert.False(t, hasBrand, "los parámetros vacíos no viajan al backend")
}

func TestService_ListOffers_SinBusqueda(t *testing.T) {
	api := &fakeCatalog{page: &entity.ProductPage{}}
	svc := NewService(api, nil)

	res, err := svc.ListOffers(context.Background(), mustQuery(t, "search=lamp&page=0"))

	require.NoError(t, err)
	assert.Empty(t, api.lastQuery.Get(ParamSearch))
	assert.Equal(t, 1, res.Page.Page)
	assert.Equal(t, 1, res.Page.TotalPages)
	assert.NotNil(t, res.Items)
}

func TestService_ProductDetail_ResenasOpcionales(t *testing.T) {
	api := &fakeCatalog{
		product:   &entity.Product{ID: "p1", Name: "Lamp"},
		reviewErr: errors.New("reviews down"),
	}
	svc := NewService(api, nil)

	res, err := svc.ProductDetail(context.Background(), "p1", true)

	require.NoError(t, err, "un fallo de reseñas no invalida el detalle")
	assert.Equal(t, "Lamp", res.Product.Name)
	assert.Nil(t, res.Reviews)
}

func TestService_ProductDetail_IDVacio(t *testing.T) {
	_, err := NewService(&fakeCatalog{}, nil).ProductDetail(context.Background(), " ", false)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestService_ErrorDelBackend(t *testing.T) {
	api := &fakeCatalog{err: &domain.APIError{Status: 404, Message: "Product not found"}}
	svc := NewService(api, nil)

	_, err := svc.ProductDetail(context.Background(), "nope", false)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "Product not found", domain.UserMessage(err))
}
