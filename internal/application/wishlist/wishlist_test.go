package wishlist

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savinduamalka/agni-storefront/internal/application/dto"
)

// ─── fakes ──────────────────────────────────────────────────────────────────

type tokenFn func() string

func (f tokenFn) Token() string { return f() }

type notes struct {
	mu       sync.Mutex
	success  []string
	failures []string
}

func (n *notes) Success(m string) { n.mu.Lock(); n.success = append(n.success, m); n.mu.Unlock() }
func (n *notes) Error(m string)   { n.mu.Lock(); n.failures = append(n.failures, m); n.mu.Unlock() }
func (n *notes) Info(string)      {}

type fakeWishlistAPI struct {
	calls   []string
	resp    *dto.WishlistEnvelope
	getResp *dto.WishlistEnvelope // nil = resp
	err     error
}

func (f *fakeWishlistAPI) reply(op string) (*dto.WishlistEnvelope, error) {
	f.calls = append(f.calls, op)
	return f.resp, f.err
}

func (f *fakeWishlistAPI) Get(context.Context, string) (*dto.WishlistEnvelope, error) {
	if f.getResp != nil {
		f.calls = append(f.calls, "get")
		return f.getResp, f.err
	}
	return f.reply("get")
}
func (f *fakeWishlistAPI) Add(_ context.Context, _, id string) (*dto.WishlistEnvelope, error) {
	return f.reply("add:" + id)
}
func (f *fakeWishlistAPI) Remove(_ context.Context, _, id string) (*dto.WishlistEnvelope, error) {
	return f.reply("remove:" + id)
}
func (f *fakeWishlistAPI) Clear(context.Context, string) (*dto.WishlistEnvelope, error) {
	return f.reply("clear")
}

func items(t *testing.T, raw ...string) []json.RawMessage {
	t.Helper()
	out := make([]json.RawMessage, len(raw))
	for i, r := range raw {
		out[i] = json.RawMessage(r)
	}
	return out
}

// ═══════════════════════════════════════════════════════════════════════════
// Normalize
// ═══════════════════════════════════════════════════════════════════════════

func TestNormalize_FormasYDescartes(t *testing.T) {
	got := Normalize(items(t,
		`{"_id":"w1","product":{"_id":"p1","name":"Lamp","price":1200}}`,
		`{"_id":"p2","name":"Fan"}`,
		`"p3"`,
		`{"id":"p4"}`,
		`{"name":"sin id"}`,
		`{"product":null}`,
		`""`,
		`42`,
	))

	require.Len(t, got, 4, "los ítems sin id se descartan en silencio")
	assert.Equal(t, "p1", got[0].Key(), "el id del envoltorio no reemplaza al del producto")
	assert.Equal(t, "Lamp", got[0].Name)
	assert.Equal(t, "p2", got[1].Key())
	assert.Equal(t, "p3", got[2].Key())
	assert.Equal(t, "p4", got[3].Key())
}

func TestNormalize_DefaultsOpcionales(t *testing.T) {
	got := Normalize(items(t, `{"_id":"p1"}`))

	require.Len(t, got, 1)
	assert.NotNil(t, got[0].Images)
	assert.Empty(t, got[0].Images)
	assert.NotNil(t, got[0].AltNames)
	assert.Zero(t, got[0].AverageRating)
	assert.Equal(t, "", got[0].Description)
}

// ═══════════════════════════════════════════════════════════════════════════
// Proxy
// ═══════════════════════════════════════════════════════════════════════════

func TestToggle_AgregaSiNoEsta(t *testing.T) {
	api := &fakeWishlistAPI{resp: &dto.WishlistEnvelope{Items: items(t, `{"_id":"p1"}`)}}
	n := &notes{}
	p := NewProxy(api, tokenFn(func() string { return "tok" }), n, nil)

	require.True(t, p.Toggle(context.Background(), "p1"))

	assert.Equal(t, []string{"add:p1"}, api.calls)
	assert.True(t, p.Contains("p1"))
	assert.Equal(t, []string{MsgAdded}, n.success)
}

func TestToggle_QuitaSiYaEsta(t *testing.T) {
	api := &fakeWishlistAPI{resp: &dto.WishlistEnvelope{Items: items(t, `{"_id":"p1"}`)}}
	p := NewProxy(api, tokenFn(func() string { return "tok" }), &notes{}, nil)
	require.NoError(t, p.Refresh(context.Background()))

	api.resp = &dto.WishlistEnvelope{Message: "Removed", Items: nil}
	require.True(t, p.Toggle(context.Background(), "p1"))

	assert.Equal(t, []string{"get", "remove:p1"}, api.calls)
	assert.False(t, p.Contains("p1"))
	assert.Empty(t, p.Items())
}

func TestMutacion_SinToken(t *testing.T) {
	api := &fakeWishlistAPI{}
	n := &notes{}
	p := NewProxy(api, tokenFn(func() string { return "" }), n, nil)

	assert.False(t, p.Toggle(context.Background(), "p1"))
	assert.False(t, p.Remove(context.Background(), "p1"))
	assert.False(t, p.Clear(context.Background()))
	assert.Empty(t, api.calls)
	assert.Len(t, n.failures, 3)
}

func TestMutacion_Fallo_ListaSinCambios(t *testing.T) {
	api := &fakeWishlistAPI{resp: &dto.WishlistEnvelope{Items: items(t, `{"_id":"p1"}`, `{"_id":"p2"}`)}}
	n := &notes{}
	p := NewProxy(api, tokenFn(func() string { return "tok" }), n, nil)
	require.NoError(t, p.Refresh(context.Background()))
	before := p.Items()

	api.err = errors.New("boom")
	assert.False(t, p.Remove(context.Background(), "p1"))
	assert.False(t, p.Clear(context.Background()))

	assert.Equal(t, before, p.Items())
	assert.Len(t, n.failures, 2)
}

func TestRefresh_SinToken_ListaVacia(t *testing.T) {
	api := &fakeWishlistAPI{}
	p := NewProxy(api, tokenFn(func() string { return "" }), &notes{}, nil)

	require.NoError(t, p.Refresh(context.Background()))
	assert.Empty(t, p.Items())
	assert.Empty(t, api.calls)
}

func TestToggle_RespuestaSinLista_RecargaYEsExito(t *testing.T) {
	api := &fakeWishlistAPI{
		resp:    &dto.WishlistEnvelope{Message: "Product added to wishlist", MessageOnly: true},
		getResp: &dto.WishlistEnvelope{Items: items(t, `{"_id":"p1","name":"Lamp"}`)},
	}
	n := &notes{}
	p := NewProxy(api, tokenFn(func() string { return "tok" }), n, nil)

	require.True(t, p.Toggle(context.Background(), "p1"))

	assert.Equal(t, []string{"add:p1", "get"}, api.calls)
	assert.True(t, p.Contains("p1"), "el estado se toma de la recarga")
	assert.Equal(t, []string{"Product added to wishlist"}, n.success)
	assert.Empty(t, n.failures)
}
