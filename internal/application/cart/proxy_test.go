package cart

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savinduamalka/agni-storefront/internal/application/dto"
	"github.com/savinduamalka/agni-storefront/internal/application/session"
	"github.com/savinduamalka/agni-storefront/internal/domain"
	"github.com/savinduamalka/agni-storefront/internal/domain/entity"
)

// ─── fakes ──────────────────────────────────────────────────────────────────

type staticToken struct {
	mu  sync.Mutex
	tok string
}

func (s *staticToken) Token() string { s.mu.Lock(); defer s.mu.Unlock(); return s.tok }
func (s *staticToken) set(v string)  { s.mu.Lock(); s.tok = v; s.mu.Unlock() }

type recordingNotifier struct {
	mu       sync.Mutex
	success  []string
	failures []string
}

func (n *recordingNotifier) Success(m string) { n.mu.Lock(); n.success = append(n.success, m); n.mu.Unlock() }
func (n *recordingNotifier) Error(m string)   { n.mu.Lock(); n.failures = append(n.failures, m); n.mu.Unlock() }
func (n *recordingNotifier) Info(string)      {}

type fakeCartAPI struct {
	mu    sync.Mutex
	calls []string
	resp  *dto.CartEnvelope
	err   error
}

func (f *fakeCartAPI) record(op string) (*dto.CartEnvelope, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, op)
	return f.resp, f.err
}

func (f *fakeCartAPI) Get(_ context.Context, _ string) (*dto.CartEnvelope, error) {
	return f.record("get")
}
func (f *fakeCartAPI) Add(_ context.Context, _, _ string, _ int) (*dto.CartEnvelope, error) {
	return f.record("add")
}
func (f *fakeCartAPI) UpdateItem(_ context.Context, _, _ string, _ int) (*dto.CartEnvelope, error) {
	return f.record("update")
}
func (f *fakeCartAPI) RemoveItem(_ context.Context, _, _ string) (*dto.CartEnvelope, error) {
	return f.record("remove")
}
func (f *fakeCartAPI) Clear(_ context.Context, _ string) (*dto.CartEnvelope, error) {
	return f.record("clear")
}

func (f *fakeCartAPI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func serverCart(qty int, total string) *entity.Cart {
	return &entity.Cart{
		ID: "c1",
		Items: []entity.CartItem{{
			Product:  entity.ProductRef{ID: "p1"},
			Quantity: qty,
			Price:    decimal.RequireFromString("10"),
		}},
		TotalItems: qty,
		TotalPrice: decimal.RequireFromString(total),
	}
}

func newProxy(token string) (*Proxy, *fakeCartAPI, *recordingNotifier, *staticToken) {
	api := &fakeCartAPI{}
	n := &recordingNotifier{}
	tok := &staticToken{tok: token}
	return NewProxy(api, tok, n, nil), api, n, tok
}

// ═══════════════════════════════════════════════════════════════════════════
// Load
// ═══════════════════════════════════════════════════════════════════════════

func TestLoad_SinToken_CarritoAusenteSinLlamada(t *testing.T) {
	p, api, _, _ := newProxy("")

	require.NoError(t, p.Load(context.Background()))

	assert.Nil(t, p.Cart())
	assert.Zero(t, api.callCount())
}

func TestLoad_ReemplazaConRespuestaDelServidor(t *testing.T) {
	p, api, _, _ := newProxy("tok")
	api.resp = &dto.CartEnvelope{Cart: serverCart(3, "999.99")}

	require.NoError(t, p.Load(context.Background()))

	got := p.Cart()
	require.NotNil(t, got)
	assert.Equal(t, "999.99", got.TotalPrice.String(), "los totales no se recalculan")
	assert.Equal(t, 3, p.ItemCount())
}

func TestItemCount_UsaTotalDelServidor(t *testing.T) {
	p, api, _, _ := newProxy("tok")
	c := serverCart(2, "20")
	c.TotalItems = 5
	api.resp = &dto.CartEnvelope{Cart: c}

	assert.Zero(t, p.ItemCount(), "sin carrito el badge es 0")
	require.NoError(t, p.Load(context.Background()))

	assert.Equal(t, 5, p.ItemCount(), "el badge muestra totalItems, no la suma local")
}

// ═══════════════════════════════════════════════════════════════════════════
// AddItem / AddProduct
// ═══════════════════════════════════════════════════════════════════════════

func TestAddItem_SinToken(t *testing.T) {
	p, api, n, _ := newProxy("")

	ok := p.AddItem(context.Background(), "p1", 1)

	assert.False(t, ok)
	assert.Zero(t, api.callCount())
	assert.Equal(t, []string{MsgSignInRequired}, n.failures)
}

func TestAddItem_Exito_EstadoIgualAlServidor(t *testing.T) {
	p, api, n, _ := newProxy("tok")
	want := serverCart(2, "20")
	api.resp = &dto.CartEnvelope{Message: "Item added", Cart: want}

	ok := p.AddItem(context.Background(), "p1", 2)

	require.True(t, ok)
	assert.Equal(t, want, p.Cart())
	assert.Equal(t, []string{"Item added"}, n.success)
}

func TestAddItem_Fallo_EstadoSinCambios(t *testing.T) {
	p, api, n, _ := newProxy("tok")
	api.resp = &dto.CartEnvelope{Cart: serverCart(1, "10")}
	require.NoError(t, p.Load(context.Background()))
	before := p.Cart()

	api.err = &domain.APIError{Status: 400, Message: "Insufficient stock"}
	ok := p.AddItem(context.Background(), "p1", 50)

	assert.False(t, ok)
	assert.Equal(t, before, p.Cart())
	assert.Equal(t, []string{"Insufficient stock"}, n.failures)
}

func TestAddItem_ErrorDeRed_MensajeLegible(t *testing.T) {
	p, api, n, _ := newProxy("tok")
	api.err = &domain.TransportError{Op: "POST /cart/add", Err: errors.New("connection refused")}

	assert.False(t, p.AddItem(context.Background(), "p1", 1))
	require.Len(t, n.failures, 1)
	assert.Contains(t, n.failures[0], "Unable to reach the store")
}

func TestAddProduct_SinStock_RechazoSinRed(t *testing.T) {
	p, api, n, _ := newProxy("tok")

	ok := p.AddProduct(context.Background(), &entity.Product{ID: "p1", Stock: 0}, 1)

	assert.False(t, ok)
	assert.Zero(t, api.callCount(), "no debe haber llamada de red")
	assert.Equal(t, []string{MsgOutOfStock}, n.failures)
}

func TestAddProduct_CantidadMayorQueStock(t *testing.T) {
	p, api, n, _ := newProxy("tok")

	ok := p.AddProduct(context.Background(), &entity.Product{ID: "p1", Stock: 2}, 3)

	assert.False(t, ok)
	assert.Zero(t, api.callCount())
	assert.Equal(t, []string{"Only 2 left in stock"}, n.failures)
}

func TestAddProduct_ConStockLlamaAlBackend(t *testing.T) {
	p, api, _, _ := newProxy("tok")
	api.resp = &dto.CartEnvelope{Cart: serverCart(1, "10")}

	assert.True(t, p.AddProduct(context.Background(), &entity.Product{ProductID: "AG-1", Stock: 5}, 1))
	assert.Equal(t, []string{"add"}, api.calls)
}

// ═══════════════════════════════════════════════════════════════════════════
// Update / Remove / Clear
// ═══════════════════════════════════════════════════════════════════════════

func TestMutaciones_UnaLlamadaCadaUna(t *testing.T) {
	p, api, _, _ := newProxy("tok")
	api.resp = &dto.CartEnvelope{Cart: serverCart(4, "40")}
	ctx := context.Background()

	assert.True(t, p.UpdateItem(ctx, "p1", 4))
	assert.True(t, p.RemoveItem(ctx, "p1"))
	assert.True(t, p.Clear(ctx))

	assert.Equal(t, []string{"update", "remove", "clear"}, api.calls)
}

func TestMutaciones_FalloNoReintentaNiModifica(t *testing.T) {
	p, api, _, _ := newProxy("tok")
	api.resp = &dto.CartEnvelope{Cart: serverCart(2, "20")}
	require.NoError(t, p.Load(context.Background()))
	before := p.Cart()
	api.err = errors.New("boom")

	assert.False(t, p.UpdateItem(context.Background(), "p1", 9))
	assert.False(t, p.RemoveItem(context.Background(), "p1"))
	assert.False(t, p.Clear(context.Background()))

	assert.Equal(t, 4, api.callCount(), "load + una llamada por mutación, sin reintentos")
	assert.Equal(t, before, p.Cart())
}

func TestReplace_DescartaRespuestaDeSesionAnterior(t *testing.T) {
	p, api, _, tok := newProxy("tok-a")
	api.resp = &dto.CartEnvelope{Cart: serverCart(1, "10")}
	require.NoError(t, p.Load(context.Background()))

	tok.set("tok-b")
	p.replace("tok-a", &dto.CartEnvelope{Cart: serverCart(7, "70")})

	assert.Equal(t, 1, p.ItemCount())
}

// ═══════════════════════════════════════════════════════════════════════════
// Watch
// ═══════════════════════════════════════════════════════════════════════════

func TestWatch_RecargaSoloSiCambiaElToken(t *testing.T) {
	p, api, _, _ := newProxy("tok-a")
	api.resp = &dto.CartEnvelope{Cart: serverCart(1, "10")}
	changes := make(chan session.Change, 3)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() { p.Watch(ctx, changes); close(done) }()

	changes <- session.Change{Token: "tok-a"}
	changes <- session.Change{Token: "tok-b"}
	close(changes)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Watch no terminó al cerrar el canal")
	}
	assert.Equal(t, []string{"get"}, api.calls, "el mismo token no dispara recarga")
	assert.Equal(t, 1, p.ItemCount())
}
