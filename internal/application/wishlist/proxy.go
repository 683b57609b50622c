package wishlist

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
	MsgSignInRequired = "Please sign in to use your wishlist"
	MsgAdded          = "Added to wishlist"
	MsgRemoved        = "Removed from wishlist"
	MsgCleared        = "Wishlist cleared"
)

// Proxy espejo de la wishlist remota. Igual que el carrito: una llamada por operación
// y reemplazo completo con la respuesta normalizada.
type Proxy struct {
	api    ports.WishlistAPI
	tokens ports.TokenSource
	notify ports.Notifier
	log    *logger.Logger

	mu    sync.RWMutex
	items []entity.Product
}

// NewProxy construye el proxy con la lista vacía.
func NewProxy(api ports.WishlistAPI, tokens ports.TokenSource, notifier ports.Notifier, log *logger.Logger) *Proxy {
	if log == nil {
		log = logger.Nop()
	}
	return &Proxy{api: api, tokens: tokens, notify: notifier, log: log.Component("wishlist")}
}

// Refresh GET /wishlist. Sin token la lista queda vacía.
func (p *Proxy) Refresh(ctx context.Context) error {
	token := p.tokens.Token()
	if token == "" {
		p.Reset()
		return nil
	}
	env, err := p.api.Get(ctx, token)
	if err != nil {
		p.log.Error().Err(err).Str("op", "refresh").Msg("no se pudo cargar la wishlist")
		return fmt.Errorf("wishlist refresh: %w", err)
	}
	p.replace(token, env)
	return nil
}

// Toggle quita el producto si ya está en la lista local; si no, lo agrega.
func (p *Proxy) Toggle(ctx context.Context, productID string) bool {
	token, ok := p.requireToken()
	if !ok {
		return false
	}
	productID = strings.TrimSpace(productID)
	if productID == "" {
		p.notify.Error(domain.UserMessage(domain.ErrInvalidInput))
		return false
	}
	if p.Contains(productID) {
		return p.remove(ctx, token, productID)
	}
	env, err := p.api.Add(ctx, token, productID)
	if err != nil {
		p.fail("add", productID, err)
		return false
	}
	p.settle(ctx, token, env)
	p.notify.Success(orDefault(env.Message, MsgAdded))
	return true
}

// Remove DELETE /wishlist/:productId.
func (p *Proxy) Remove(ctx context.Context, productID string) bool {
	token, ok := p.requireToken()
	if !ok {
		return false
	}
	return p.remove(ctx, token, productID)
}

func (p *Proxy) remove(ctx context.Context, token, productID string) bool {
	env, err := p.api.Remove(ctx, token, productID)
	if err != nil {
		p.fail("remove", productID, err)
		return false
	}
	p.settle(ctx, token, env)
	p.notify.Success(orDefault(env.Message, MsgRemoved))
	return true
}

// Clear DELETE /wishlist.
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
	p.settle(ctx, token, env)
	p.notify.Success(orDefault(env.Message, MsgCleared))
	return true
}

// Items copia de la lista normalizada.
func (p *Proxy) Items() []entity.Product {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]entity.Product, len(p.items))
	copy(out, p.items)
	return out
}

// Contains indica si productID está en la lista local.
func (p *Proxy) Contains(productID string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	w := entity.Wishlist{Products: p.items}
	return w.Contains(productID)
}

// Reset vacía la lista local (logout).
func (p *Proxy) Reset() {
	p.mu.Lock()
	p.items = nil
	p.mu.Unlock()
}

// Watch refresca la lista cuando cambia el valor del token.
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
			_ = p.Refresh(ctx)
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

// settle aplica la respuesta de una mutación exitosa. Sin lista en la respuesta se
// recarga con GET; un fallo de esa recarga no convierte la mutación en fallida.
func (p *Proxy) settle(ctx context.Context, token string, env *dto.WishlistEnvelope) {
	if !env.MessageOnly {
		p.replace(token, env)
		return
	}
	if err := p.Refresh(ctx); err != nil {
		p.log.Warn().Err(err).Msg("recarga tras mutación sin lista")
	}
}

func (p *Proxy) replace(token string, env *dto.WishlistEnvelope) {
	if token != p.tokens.Token() {
		return
	}
	items := Normalize(env.Items)
	p.mu.Lock()
	p.items = items
	p.mu.Unlock()
}

func (p *Proxy) fail(op, productID string, err error) {
	p.log.Error().Err(err).Str("op", op).Str("product_id", productID).Msg("operación de wishlist fallida")
	p.notify.Error(domain.UserMessage(err))
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
