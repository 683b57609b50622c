package cart

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/savinduamalka/agni-storefront/internal/application/dto"
	"github.com/savinduamalka/agni-storefront/internal/application/ports"
	"github.com/savinduamalka/agni-storefront/internal/application/session"
	"github.com/savinduamalka/agni-storefront/internal/domain"
	"github.com/savinduamalka/agni-storefront/internal/domain/entity"
	"github.com/savinduamalka/agni-storefront/pkg/logger"
)

// Textos mostrados al comprador.
const (
	MsgSignInRequired = "Please sign in to add items to your cart"
	MsgAdded          = "Added to cart"
	MsgRemoved        = "Item removed from cart"
	MsgCleared        = "Cart cleared"
	MsgOutOfStock     = "This product is out of stock"
	msgOnlyLeft       = "Only %d left in stock"
	msgInvalidQty     = "Quantity must be at least 1"
)

// Proxy espejo del carrito remoto del usuario autenticado. Cada mutación es una
// llamada REST; el estado local solo se reemplaza con la respuesta exitosa del servidor.
type Proxy struct {
	api    ports.CartAPI
	tokens ports.TokenSource
	notify ports.Notifier
	log    *logger.Logger

	mu   sync.RWMutex
	cart *entity.Cart
}

// NewProxy construye el proxy con el carrito ausente.
func NewProxy(api ports.CartAPI, tokens ports.TokenSource, notifier ports.Notifier, log *logger.Logger) *Proxy {
	if log == nil {
		log = logger.Nop()
	}
	return &Proxy{api: api, tokens: tokens, notify: notifier, log: log.Component("cart")}
}

// Load sin token deja el carrito ausente; con token trae GET /cart y lo reemplaza.
func (p *Proxy) Load(ctx context.Context) error {
	token := p.tokens.Token()
	if token == "" {
		p.Reset()
		return nil
	}
	env, err := p.api.Get(ctx, token)
	if err != nil {
		p.log.Error().Err(err).Str("op", "load").Msg("no se pudo cargar el carrito")
		return fmt.Errorf("cart load: %w", err)
	}
	p.replace(token, env)
	return nil
}

// AddItem agrega quantity unidades. Nunca retorna error: el resultado se informa
// con el bool y una notificación.
func (p *Proxy) AddItem(ctx context.Context, productID string, quantity int) bool {
	token := p.tokens.Token()
	if token == "" {
		p.notify.Error(MsgSignInRequired)
		return false
	}
	productID = strings.TrimSpace(productID)
	if productID == "" || quantity < 1 {
		p.notify.Error(msgInvalidQty)
		return false
	}
	env, err := p.api.Add(ctx, token, productID, quantity)
	if err != nil {
		p.fail("add", productID, err)
		return false
	}
	p.replace(token, env)
	p.notify.Success(orDefault(env.Message, MsgAdded))
	return true
}

// AddProduct aplica la guarda de stock local antes de llamar a AddItem; un rechazo
// no genera ninguna llamada de red.
func (p *Proxy) AddProduct(ctx context.Context, product *entity.Product, quantity int) bool {
	if product == nil {
		p.notify.Error(domain.GenericMessage)
		return false
	}
	if !product.InStock() {
		p.notify.Error(MsgOutOfStock)
		return false
	}
	if quantity > product.Stock {
		p.notify.Error(fmt.Sprintf(msgOnlyLeft, product.Stock))
		return false
	}
	return p.AddItem(ctx, product.Key(), quantity)
}

// UpdateItem PUT /cart/item/:id con la nueva cantidad.
func (p *Proxy) UpdateItem(ctx context.Context, productID string, quantity int) bool {
	token, ok := p.requireToken()
	if !ok {
		return false
	}
	if quantity < 1 {
		p.notify.Error(msgInvalidQty)
		return false
	}
	env, err := p.api.UpdateItem(ctx, token, productID, quantity)
	if err != nil {
		p.fail("update", productID, err)
		return false
	}
	p.replace(token, env)
	return true
}

// RemoveItem DELETE /cart/item/:id.
func (p *Proxy) RemoveItem(ctx context.Context, productID string) bool {
	token, ok := p.requireToken()
	if !ok {
		return false
	}
	env, err := p.api.RemoveItem(ctx, token, productID)
	if err != nil {
		p.fail("remove", productID, err)
		return false
	}
	p.replace(token, env)
	p.notify.Success(orDefault(env.Message, MsgRemoved))
	return true
}

// Clear DELETE /cart/clear.
func (p *Proxy) Clear(ctx context.Context) bool {
	token, ok := p.requireToken()
	if !ok {
		return false
	}
	env, err := p.api.Clear(ctx, token)
	if err != nil {
		p.fail("clear", "", err)
		return false
	}
	p.replace(token, env)
	p.notify.Success(orDefault(env.Message, MsgCleared))
	return true
}

// Cart copia del carrito actual; nil si no hay sesión o aún no se cargó.
func (p *Proxy) Cart() *entity.Cart {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cart.Clone()
}

// ItemCount totalItems informado por el servidor para el badge del header; 0 sin carrito.
func (p *Proxy) ItemCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.cart == nil {
		return 0
	}
	return p.cart.TotalItems
}

// Reset deja el carrito ausente (logout).
func (p *Proxy) Reset() {
	p.mu.Lock()
	p.cart = nil
	p.mu.Unlock()
}

// Watch recarga el carrito cada vez que cambia el valor del token, para que dos
// instancias que comparten almacenamiento converjan al mismo carrito.
func (p *Proxy) Watch(ctx context.Context, changes <-chan session.Change) {
	last := p.tokens.Token()
	for {
		select {
		case <-ctx.Done():
			return
		case ch, ok := <-changes:
			if !ok {
				return
			}
			if ch.Token == last {
				continue
			}
			last = ch.Token
			_ = p.Load(ctx)
		}
	}
}

func (p *Proxy) requireToken() (string, bool) {
	token := p.tokens.Token()
	if token == "" {
		p.notify.Error(MsgSignInRequired)
		return "", false
	}
	return token, true
}

// replace descarta respuestas que llegan después de un cambio de sesión.
func (p *Proxy) replace(token string, env *dto.CartEnvelope) {
	if token != p.tokens.Token() {
		p.log.Debug().Msg("respuesta de carrito de una sesión anterior; se descarta")
		return
	}
	p.mu.Lock()
	p.cart = env.Cart
	p.mu.Unlock()
}

func (p *Proxy) fail(op, productID string, err error) {
	p.log.Error().Err(err).Str("op", op).Str("product_id", productID).Msg("operación de carrito fallida")
	p.notify.Error(domain.UserMessage(err))
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
